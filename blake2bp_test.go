package blake2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelAllParameters(t *testing.T) {
	h, err := SumParallel([]byte("foo"), 18, []byte("bar"))
	require.NoError(t, err)
	require.Equal(t, "8c54e888a8a01c63da6585c058fe54ea81df", h.Hex())
}

/* BLAKE2bp computed one leaf at a time, with no stripe buffer and no goroutines. */
func serialParallel(msg []byte, size int, key []byte) []byte {
	node := func(offset uint64, depth uint8, last bool, outLen int) *state[uint64] {
		p := defaultParams(size)
		p.key = make([]byte, len(key))
		p.fanout, p.depth = 4, 2
		p.nodeOffset, p.nodeDepth, p.inner = offset, depth, 64
		return newState(b2b, initialState(b2b, p.marshal(BLAKE2b)), outLen, last)
	}

	root := node(0, 1, true, size)
	for i := 0; i < 4; i++ {
		leaf := node(uint64(i), 0, i == 3, 64)
		if len(key) > 0 {
			block := make([]byte, 128)
			copy(block, key)
			leaf.update(block)
		}
		for off := i * 128; off < len(msg); off += 4 * 128 {
			end := off + 128
			if end > len(msg) {
				end = len(msg)
			}
			leaf.update(msg[off:end])
		}
		var out [64]byte
		leaf.finalize(out[:])
		root.update(out[:])
	}
	out := make([]byte, size)
	root.finalize(out)
	return out
}

func TestParallelMatchesSerial(t *testing.T) {
	msg := painted(9*512 + 77)
	for _, n := range []int{0, 1, 128, 129, 511, 512, 513, 1024, 3*512 + 200, len(msg)} {
		for _, key := range [][]byte{nil, []byte("bar"), sequence(64)} {
			want := serialParallel(msg[:n], 64, key)

			got, err := SumParallel(msg[:n], 64, key)
			require.NoError(t, err)
			require.Equalf(t, want, got.Bytes(), "len %d key %d", n, len(key))

			/* Awkward chunk sizes cross the stripe buffer in every position. */
			d, err := NewParallel(64, key)
			require.NoError(t, err)
			for rest, step := msg[:n], 1; len(rest) > 0; step = step*3 + 1 {
				if step > len(rest) {
					step = len(rest)
				}
				_, err = d.Write(rest[:step])
				require.NoError(t, err)
				rest = rest[step:]
			}
			require.Equalf(t, want, d.Sum(nil), "chunked len %d key %d", n, len(key))
		}
	}
}

func TestParallelDiffersFromSequential(t *testing.T) {
	p, err := SumParallel([]byte("abc"), 64, nil)
	require.NoError(t, err)
	require.NotEqual(t, abcHash, p.Hex())
}

func TestParallelLifecycle(t *testing.T) {
	d, err := NewParallel(32, []byte("key"))
	require.NoError(t, err)
	require.Equal(t, 32, d.Size())
	require.Equal(t, 128, d.BlockSize())

	msg := painted(2000)
	require.NoError(t, d.Update(msg[:700]))
	mid := d.Sum(nil)
	require.NoError(t, d.Update(msg[700:]))
	h, err := d.Finalize()
	require.NoError(t, err)
	require.Equal(t, serialParallel(msg, 32, []byte("key")), h.Bytes())
	require.Equal(t, serialParallel(msg[:700], 32, []byte("key")), mid)

	_, err = d.Finalize()
	require.ErrorIs(t, err, InvalidState)
	require.ErrorIs(t, d.Update(nil), ErrFinalized)
	require.Equal(t, h.Bytes(), d.Sum(nil))

	d.Reset()
	require.NoError(t, d.Update(msg))
	again, err := d.Finalize()
	require.NoError(t, err)
	require.True(t, h.Equal(again))
}

func TestNewParallelRejectsBadParameters(t *testing.T) {
	_, err := NewParallel(0, nil)
	require.ErrorIs(t, err, InvalidParameter)
	_, err = NewParallel(65, nil)
	require.ErrorIs(t, err, InvalidParameter)
	_, err = NewParallel(64, make([]byte, 65))
	require.ErrorIs(t, err, InvalidParameter)
	_, err = SumParallel(nil, 64, make([]byte, 65))
	require.ErrorIs(t, err, InvalidParameter)
}
