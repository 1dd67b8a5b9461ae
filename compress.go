package blake2

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// compress mixes one block into the chaining value h and returns the new chaining value. t is
// the byte counter after this block, low word first. last marks the final block of the
// message; lastNode additionally marks the final node of a tree level and is only honored
// together with last.
func compress[W word](vp *variant[W], h [8]W, block []byte, t [2]W, last, lastNode bool) [8]W {
	var m, v [16]W
	loadWordsLE(m[:], block[:vp.blockSize])

	/* Chaining value on top, tweaked IV below. */
	copy(v[:8], h[:])
	copy(v[8:], vp.iv[:])
	v[12] ^= t[0]
	v[13] ^= t[1]
	if last {
		v[14] = ^v[14]
		if lastNode {
			v[15] = ^v[15]
		}
	}

	r := vp.rot
	for i := 0; i < vp.rounds; i++ {
		sched := &sigma[i%len(sigma)]
		/* Columns. */
		g(&v, 0, 4, 8, 12, m[sched[0]], m[sched[1]], r)
		g(&v, 1, 5, 9, 13, m[sched[2]], m[sched[3]], r)
		g(&v, 2, 6, 10, 14, m[sched[4]], m[sched[5]], r)
		g(&v, 3, 7, 11, 15, m[sched[6]], m[sched[7]], r)
		/* Diagonals. */
		g(&v, 0, 5, 10, 15, m[sched[8]], m[sched[9]], r)
		g(&v, 1, 6, 11, 12, m[sched[10]], m[sched[11]], r)
		g(&v, 2, 7, 8, 13, m[sched[12]], m[sched[13]], r)
		g(&v, 3, 4, 9, 14, m[sched[14]], m[sched[15]], r)
	}

	for i := range h {
		h[i] ^= v[i] ^ v[i+8]
	}
	return h
}

// g is the quarter-round mixing function.
func g[W word](v *[16]W, a, b, c, d int, m0, m1 W, r [4]uint) {
	v[a] = add(add(v[a], v[b]), m0)
	v[d] = rotr(v[d]^v[a], r[0])
	v[c] = add(v[c], v[d])
	v[b] = rotr(v[b]^v[c], r[1])
	v[a] = add(add(v[a], v[b]), m1)
	v[d] = rotr(v[d]^v[a], r[2])
	v[c] = add(v[c], v[d])
	v[b] = rotr(v[b]^v[c], r[3])
}
