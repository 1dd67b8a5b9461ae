package blake2

import (
	"crypto/subtle"
	"encoding/hex"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Hash is a finished digest. Its length is the digest length the hasher was built with.
type Hash struct {
	b [64]byte
	n uint8
}

// Bytes returns a copy of the digest.
func (h Hash) Bytes() []byte { return append([]byte(nil), h.b[:h.n]...) }

func (h Hash) Len() int { return int(h.n) }

// Hex renders the digest as lowercase hexadecimal.
func (h Hash) Hex() string { return hex.EncodeToString(h.b[:h.n]) }

func (h Hash) String() string { return h.Hex() }

// Equal compares two digests in constant time. Digests of different lengths are never equal.
func (h Hash) Equal(other Hash) bool {
	return subtle.ConstantTimeCompare(h.b[:h.n], other.b[:other.n]) == 1
}

// Verify compares the digest against expected in constant time.
func (h Hash) Verify(expected []byte) bool {
	return subtle.ConstantTimeCompare(h.b[:h.n], expected) == 1
}
