package blake2

import "math/bits"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The absorb/finalize machine shared by both variants. It always stays one block behind the
// input: a full buffer is only compressed once more input proves it is not the last block.

type state[W word] struct {
	vp       *variant[W]
	h        [8]W
	t        [2]W
	buf      [128]byte /* Large enough for either variant; only buf[:vp.blockSize] is used. */
	n        int
	outLen   int
	lastNode bool
}

func newState[W word](vp *variant[W], h [8]W, outLen int, lastNode bool) *state[W] {
	return &state[W]{vp: vp, h: h, outLen: outLen, lastNode: lastNode}
}

// increment advances the two-word byte counter, carrying into the high word.
func (st *state[W]) increment(n int) {
	st.t[0] += W(n)
	if st.t[0] < W(n) {
		st.t[1]++
	}
}

func (st *state[W]) update(p []byte) {
	bs := st.vp.blockSize
	for len(p) > 0 {
		if st.n == bs {
			st.increment(bs)
			st.h = compress(st.vp, st.h, st.buf[:bs], st.t, false, false)
			st.n = 0
		}
		if st.n == 0 {
			/* Blocks that are provably not last skip the buffer entirely. */
			for len(p) > bs {
				st.increment(bs)
				st.h = compress(st.vp, st.h, p[:bs], st.t, false, false)
				p = p[bs:]
			}
		}
		c := copy(st.buf[st.n:bs], p)
		st.n += c
		p = p[c:]
	}
}

// finalize pads and compresses the pending block and writes outLen bytes to out. Afterwards
// only absorbed remains meaningful.
func (st *state[W]) finalize(out []byte) {
	bs := st.vp.blockSize
	st.increment(st.n)
	for i := st.n; i < bs; i++ {
		st.buf[i] = 0
	}
	st.n = 0 /* The tail now lives in the counter; absorbed must not add it twice. */
	st.h = compress(st.vp, st.h, st.buf[:bs], st.t, true, st.lastNode)

	var full [64]byte
	putWordsLE(full[:], st.h[:])
	copy(out, full[:st.outLen])
}

// compressed returns the 128-bit number of bytes already folded into h.
func (st *state[W]) compressed() (hi, lo uint64) {
	if wordBits[W]() == 64 {
		return uint64(st.t[1]), uint64(st.t[0])
	}
	return 0, uint64(st.t[1])<<32 | uint64(st.t[0])
}

// absorbed returns compressed plus the bytes waiting in the buffer.
func (st *state[W]) absorbed() (hi, lo uint64) {
	hi, lo = st.compressed()
	lo, carry := bits.Add64(lo, uint64(st.n), 0)
	return hi + carry, lo
}

func (st *state[W]) clone() *state[W] {
	c := *st
	return &c
}

func (st *state[W]) fork() engine { return st.clone() }

func (st *state[W]) setLastNode(last bool) { st.lastNode = last }

// engine erases the word type so Digest can hold either variant. Dispatch happens once per
// call, never inside the compression loop.
type engine interface {
	update(p []byte)
	finalize(out []byte)
	absorbed() (hi, lo uint64)
	setLastNode(last bool)
	fork() engine
}
