package blake2

import (
	"hash"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the public hashing API. Digest implements hash.Hash, but unlike most
// hash.Hash values it also has an explicit, one-time Finalize.

var _ hash.Hash = (*Digest)(nil)

// Digest is an incremental BLAKE2b or BLAKE2s hasher. A Digest is not safe for concurrent use;
// give each goroutine its own.
type Digest struct {
	v     Variant
	size  int
	keyed bool
	eng   engine
	init  engine /* Snapshot taken right after construction, used by Reset. */
	done  bool
	sum   Hash
}

// New returns a hasher for variant v producing size-byte digests. All parameters are checked
// here; an *Error of kind InvalidParameter is returned when any is out of range.
func New(v Variant, size int, opts ...Option) (*Digest, error) {
	p := defaultParams(size)
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.validate(v); err != nil {
		return nil, err
	}
	return newDigest(v, &p), nil
}

// New512 returns a BLAKE2b-512 hasher; a non-empty key makes it a MAC.
func New512(key []byte) (*Digest, error) { return New(BLAKE2b, 64, WithKey(key)) }

// New256 returns a BLAKE2s-256 hasher; a non-empty key makes it a MAC.
func New256(key []byte) (*Digest, error) { return New(BLAKE2s, 32, WithKey(key)) }

func newDigest(v Variant, p *params) *Digest {
	raw := p.marshal(v)
	var eng engine
	if v == BLAKE2s {
		eng = newState(b2s, initialState(b2s, raw), p.size, p.lastNode)
	} else {
		eng = newState(b2b, initialState(b2b, raw), p.size, p.lastNode)
	}

	d := &Digest{v: v, size: p.size, keyed: len(p.key) > 0}
	if d.keyed {
		/* The zero-padded key is the first block. It waits in the buffer like any other input
		so that an empty message still finalizes on it. */
		block := make([]byte, v.BlockSize())
		copy(block, p.key)
		eng.update(block)
		for i := range block {
			block[i] = 0
		}
	}
	d.init = eng.fork()
	d.eng = eng
	return d
}

func finalizedError(op Op) error {
	return newError(op, InvalidState, "hasher already finalized")
}

// Update absorbs p. Empty input is a no-op. Update fails with InvalidState after Finalize.
func (d *Digest) Update(p []byte) error {
	if d.done {
		return finalizedError("update")
	}
	d.eng.update(p)
	return nil
}

// Write is Update in io.Writer form. It only fails after Finalize, in which case nothing is
// written.
func (d *Digest) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads and compresses the last block and returns the digest. It may be called once;
// later calls, like later updates, fail with InvalidState.
func (d *Digest) Finalize() (Hash, error) {
	if d.done {
		return Hash{}, finalizedError("finalize")
	}
	d.done = true
	d.sum.n = uint8(d.size)
	d.eng.finalize(d.sum.b[:d.size])
	return d.sum, nil
}

// Sum appends the digest of everything written so far to b without changing the state. After
// Finalize it appends the finalized digest.
func (d *Digest) Sum(b []byte) []byte {
	if d.done {
		return append(b, d.sum.b[:d.sum.n]...)
	}
	var out [64]byte
	d.eng.fork().finalize(out[:d.size])
	return append(b, out[:d.size]...)
}

// Reset returns the hasher to its state right after New, including the key block and the
// construction-time last-node flag.
func (d *Digest) Reset() {
	d.eng = d.init.fork()
	d.done = false
	d.sum = Hash{}
}

// SetLastNode sets or clears the last-node flag used by the final compression.
func (d *Digest) SetLastNode(last bool) error {
	if d.done {
		return finalizedError("set last node")
	}
	d.eng.setLastNode(last)
	return nil
}

// Count returns the 128-bit number of message bytes given to Update, not counting the key.
func (d *Digest) Count() (hi, lo uint64) {
	hi, lo = d.eng.absorbed()
	if d.keyed {
		var borrow uint64
		lo, borrow = bits.Sub64(lo, uint64(d.v.BlockSize()), 0)
		hi -= borrow
	}
	return hi, lo
}

// Clone returns an independent copy of d, including its finalized flag.
func (d *Digest) Clone() *Digest {
	c := *d
	c.eng = d.eng.fork()
	return &c
}

// Finalized reports whether Finalize has been called since construction or the last Reset.
func (d *Digest) Finalized() bool { return d.done }

func (d *Digest) Variant() Variant { return d.v }

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the variant's block size in bytes.
func (d *Digest) BlockSize() int { return d.v.BlockSize() }

// Sum computes the digest of data in one call; it is equivalent to New, Update and Finalize.
func Sum(v Variant, data []byte, size int, opts ...Option) (Hash, error) {
	d, err := New(v, size, opts...)
	if err != nil {
		return Hash{}, err
	}
	d.eng.update(data)
	return d.Finalize()
}

// Sum512 returns the unkeyed BLAKE2b-512 digest of data.
func Sum512(data []byte) Hash {
	p := defaultParams(64)
	d := newDigest(BLAKE2b, &p)
	d.eng.update(data)
	h, _ := d.Finalize()
	return h
}

// Sum256 returns the unkeyed BLAKE2s-256 digest of data.
func Sum256(data []byte) Hash {
	p := defaultParams(32)
	d := newDigest(BLAKE2s, &p)
	d.eng.update(data)
	h, _ := d.Finalize()
	return h
}
