package blake2

import "math"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Word-level helpers shared by both variants. Every conversion between words and bytes is
// spelled out with shifts so that the result is least-significant byte first on any host.

type word interface {
	~uint32 | ~uint64
}

// wordBits returns the width of W in bits.
func wordBits[W word]() uint {
	if uint64(^W(0)) == math.MaxUint64 {
		return 64
	}
	return 32
}

func wordBytes[W word]() int { return int(wordBits[W]() >> 3) }

func rotr[W word](x W, n uint) W {
	return x>>n | x<<(wordBits[W]()-n)
}

/* Unsigned arithmetic in Go already wraps; this exists so the mixing code reads like G. */
func add[W word](a, b W) W { return a + b }

// putWordsLE serializes src into dst, which must hold len(src) words.
func putWordsLE[W word](dst []byte, src []W) {
	n := wordBytes[W]()
	for i, w := range src {
		for j := 0; j < n; j++ {
			dst[i*n+j] = byte(w >> (8 * j))
		}
	}
}

// loadWordsLE is the inverse of putWordsLE.
func loadWordsLE[W word](dst []W, src []byte) {
	n := wordBytes[W]()
	for i := range dst {
		var w W
		for j := n - 1; j >= 0; j-- {
			w = w<<8 | W(src[i*n+j])
		}
		dst[i] = w
	}
}
