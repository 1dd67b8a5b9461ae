// Package paint fills test and benchmark buffers with reproducible pseudo-random bytes.
package paint

import "github.com/aead/chacha20/chacha"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var nonce [8]byte

// Fill overwrites buf with an 8-round ChaCha keystream keyed by seed. The same seed always
// paints the same bytes, and a longer buffer extends a shorter one.
func Fill(buf []byte, seed string) {
	var key [32]byte
	copy(key[:], seed)
	for i := range buf {
		buf[i] = 0
	}
	chacha.XORKeyStream(buf, buf, nonce[:], key[:], 8)
}

// Bytes returns n freshly painted bytes.
func Bytes(n int, seed string) []byte {
	buf := make([]byte, n)
	Fill(buf, seed)
	return buf
}

// Counter writes i%251 to buf[i]. 251 is prime, so the pattern never lines up with a block.
func Counter(buf []byte) {
	for i := range buf {
		buf[i] = byte(i % 251)
	}
}
