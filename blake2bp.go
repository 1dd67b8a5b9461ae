package blake2

import (
	"hash"

	"golang.org/x/sync/errgroup"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// BLAKE2bp: four BLAKE2b leaves fed 128-byte blocks round-robin, whose full-width outputs are
// hashed in order by a root node. Only the scheduling lives here; every node is an ordinary
// BLAKE2b state.

const (
	lanes      = 4
	stripeSize = lanes * 128
)

var _ hash.Hash = (*ParallelDigest)(nil)

// ParallelDigest is an incremental BLAKE2bp hasher. It is not safe for concurrent use, though
// it runs its own leaves concurrently.
type ParallelDigest struct {
	size   int
	keyLen int
	leaves [lanes]*state[uint64]
	root   *state[uint64]
	init   [lanes]*state[uint64]
	buf    [stripeSize]byte
	n      int
	done   bool
	sum    Hash
}

// NewParallel returns a BLAKE2bp hasher producing size-byte digests, keyed when key is
// non-empty. The limits are those of BLAKE2b.
func NewParallel(size int, key []byte) (*ParallelDigest, error) {
	p := defaultParams(size)
	p.key = key
	if err := p.validate(BLAKE2b); err != nil {
		return nil, err
	}

	d := &ParallelDigest{size: size, keyLen: len(key)}
	var block [128]byte
	copy(block[:], key)
	for i := range d.leaves {
		leaf := d.nodeParams(uint64(i), 0)
		st := newState(b2b, initialState(b2b, leaf.marshal(BLAKE2b)), b2b.maxSize, i == lanes-1)
		if d.keyLen > 0 {
			st.update(block[:])
		}
		d.init[i] = st
	}
	for i := range block {
		block[i] = 0
	}
	d.Reset()
	return d, nil
}

// nodeParams returns the parameter block shared by leaves and root; only the key length is
// recorded, the key itself is never copied into it.
func (d *ParallelDigest) nodeParams(offset uint64, depth uint8) params {
	p := defaultParams(d.size)
	p.fanout, p.depth = lanes, 2
	p.nodeOffset, p.nodeDepth = offset, depth
	p.inner = uint8(b2b.maxSize)
	p.key = make([]byte, d.keyLen)
	return p
}

// Reset returns every node to its state right after NewParallel.
func (d *ParallelDigest) Reset() {
	for i, st := range d.init {
		d.leaves[i] = st.clone()
	}
	root := d.nodeParams(0, 1)
	d.root = newState(b2b, initialState(b2b, root.marshal(BLAKE2b)), d.size, true)
	d.n = 0
	d.done = false
	d.sum = Hash{}
}

// feed hands whole stripes to the leaves, one goroutine per leaf. len(p) must be a multiple of
// stripeSize.
func (d *ParallelDigest) feed(p []byte) {
	if len(p) == stripeSize {
		for i, leaf := range d.leaves {
			leaf.update(p[i*128 : (i+1)*128])
		}
		return
	}
	var g errgroup.Group
	for i, leaf := range d.leaves {
		i, leaf := i, leaf
		g.Go(func() error {
			for off := i * 128; off < len(p); off += stripeSize {
				leaf.update(p[off : off+128])
			}
			return nil
		})
	}
	_ = g.Wait() /* Leaves cannot fail. */
}

// Update absorbs p, failing with InvalidState after Finalize.
func (d *ParallelDigest) Update(p []byte) error {
	if d.done {
		return finalizedError("update")
	}
	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n < stripeSize {
			return nil
		}
		d.feed(d.buf[:])
		d.n = 0
	}
	whole := len(p) - len(p)%stripeSize
	if whole > 0 {
		d.feed(p[:whole])
	}
	d.n = copy(d.buf[:], p[whole:])
	return nil
}

func (d *ParallelDigest) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

/* finish drains the stripe buffer into working copies of the leaves and folds them into a copy
of the root, leaving d untouched. */
func (d *ParallelDigest) finish(out []byte) {
	root := d.root.clone()
	var leafOut [64]byte
	for i, st := range d.leaves {
		leaf := st.clone()
		if rest := d.n - i*128; rest > 0 {
			if rest > 128 {
				rest = 128
			}
			leaf.update(d.buf[i*128 : i*128+rest])
		}
		leaf.finalize(leafOut[:])
		root.update(leafOut[:])
	}
	root.finalize(out)
}

// Finalize returns the digest. Like Digest.Finalize, it may only be called once.
func (d *ParallelDigest) Finalize() (Hash, error) {
	if d.done {
		return Hash{}, finalizedError("finalize")
	}
	d.done = true
	d.sum.n = uint8(d.size)
	d.finish(d.sum.b[:d.size])
	return d.sum, nil
}

// Sum appends the current digest to b without changing the state.
func (d *ParallelDigest) Sum(b []byte) []byte {
	if d.done {
		return append(b, d.sum.b[:d.sum.n]...)
	}
	var out [64]byte
	d.finish(out[:d.size])
	return append(b, out[:d.size]...)
}

func (d *ParallelDigest) Size() int { return d.size }

// BlockSize returns the BLAKE2b block size; the stripe is four times larger.
func (d *ParallelDigest) BlockSize() int { return b2b.blockSize }

// SumParallel returns the BLAKE2bp digest of data in one call.
func SumParallel(data []byte, size int, key []byte) (Hash, error) {
	d, err := NewParallel(size, key)
	if err != nil {
		return Hash{}, err
	}
	if err = d.Update(data); err != nil {
		return Hash{}, err
	}
	return d.Finalize()
}
