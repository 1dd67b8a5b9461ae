package main

import (
	"encoding/binary"
	"math/big"

	"github.com/p7r0x7/blake2"
	"github.com/p7r0x7/blake2/internal/paint"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const samples = uint32(5e4)

// integerInputs hashes the big-endian encoding of i.
func integerInputs(i uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i)
	return b[:]
}

// randomInputs hashes a kilobyte painted from i.
func randomInputs(i uint32) []byte {
	return paint.Bytes(1024, string(integerInputs(i)))
}

// monobit returns the mean deviation, in percent, of each BLAKE2b-512 output bit from being set
// in exactly half of the samples.
func monobit(input func(i uint32) []byte) float64 {
	const bits = 512
	tally := make([]int64, bits)
	for i := samples; i > 0; i-- {
		sum := new(big.Int).SetBytes(blake2.Sum512(input(i)).Bytes())
		for b := 0; b < bits; b++ {
			tally[b] += int64(sum.Bit(b))
		}
	}
	var total int64
	for _, t := range tally {
		d := t - int64(samples>>1)
		if d < 0 {
			d = -d
		}
		total += d
	}
	return float64(total) / bits / float64(samples>>1) * 100
}
