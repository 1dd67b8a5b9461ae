package blake2

import "strconv"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Variant selects one of the two BLAKE2 word widths.
type Variant int

const (
	// BLAKE2b works on 64-bit words and 128-byte blocks; digests are 1 to 64 bytes long.
	BLAKE2b Variant = iota
	// BLAKE2s works on 32-bit words and 64-byte blocks; digests are 1 to 32 bytes long.
	BLAKE2s
)

func (v Variant) String() string {
	switch v {
	case BLAKE2b:
		return "BLAKE2b"
	case BLAKE2s:
		return "BLAKE2s"
	default:
		return "Variant(" + strconv.Itoa(int(v)) + ")"
	}
}

func (v Variant) valid() bool { return v == BLAKE2b || v == BLAKE2s }

// BlockSize returns the number of bytes consumed by one compression.
func (v Variant) BlockSize() int { return v.pick(b2b.blockSize, b2s.blockSize) }

// Size returns the largest digest the variant can produce, which is also the largest key.
func (v Variant) Size() int { return v.pick(b2b.maxSize, b2s.maxSize) }

// KeySize returns the maximum key length in bytes.
func (v Variant) KeySize() int { return v.pick(b2b.maxSize, b2s.maxSize) }

// SaltSize returns the exact salt length accepted by WithSalt.
func (v Variant) SaltSize() int { return v.pick(b2b.saltSize, b2s.saltSize) }

// PersonalSize returns the exact personalization length accepted by WithPersonal.
func (v Variant) PersonalSize() int { return v.pick(b2b.saltSize, b2s.saltSize) }

func (v Variant) pick(big, small int) int {
	if v == BLAKE2s {
		return small
	}
	return big
}

/* Each variant differs only in these constants; all algorithmic code is shared. */
type variant[W word] struct {
	iv        [8]W
	rounds    int
	rot       [4]uint
	blockSize int
	maxSize   int
	saltSize  int
	paramSize int
}

var b2b = &variant[uint64]{
	iv: [8]uint64{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	},
	rounds:    12,
	rot:       [4]uint{32, 24, 16, 63},
	blockSize: 128,
	maxSize:   64,
	saltSize:  16,
	paramSize: 64,
}

var b2s = &variant[uint32]{
	iv: [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	},
	rounds:    10,
	rot:       [4]uint{16, 12, 8, 7},
	blockSize: 64,
	maxSize:   32,
	saltSize:  8,
	paramSize: 32,
}

// Message word schedule. BLAKE2b runs two rounds more than there are rows; those reuse rows
// 0 and 1.
var sigma = [10][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}
