package blake2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressDeterministic(t *testing.T) {
	block := painted(128)
	t1 := [2]uint64{128, 0}
	a := compress(b2b, b2b.iv, block, t1, false, false)
	b := compress(b2b, b2b.iv, block, t1, false, false)
	require.Equal(t, a, b)

	s1 := compress(b2s, b2s.iv, block[:64], [2]uint32{64, 0}, true, false)
	s2 := compress(b2s, b2s.iv, block[:64], [2]uint32{64, 0}, true, false)
	require.Equal(t, s1, s2)
}

func TestCompressFlags(t *testing.T) {
	block := painted(128)
	iv := b2b.iv
	h := b2b.iv
	plain := compress(b2b, h, block, [2]uint64{128, 0}, false, false)

	/* Every input the function takes must reach the output. */
	require.NotEqual(t, plain, compress(b2b, h, block, [2]uint64{128, 0}, true, false))
	require.NotEqual(t, plain, compress(b2b, h, block, [2]uint64{129, 0}, false, false))
	require.NotEqual(t, plain, compress(b2b, h, block, [2]uint64{128, 1}, false, false))
	require.Equal(t, plain, compress(b2b, h, block, [2]uint64{128, 0}, false, true),
		"lastNode only applies to the last block")
	require.NotEqual(t,
		compress(b2b, h, block, [2]uint64{128, 0}, true, false),
		compress(b2b, h, block, [2]uint64{128, 0}, true, true))

	h[3] ^= 1
	require.NotEqual(t, plain, compress(b2b, h, block, [2]uint64{128, 0}, false, false))
	require.Equal(t, iv, b2b.iv)
}

func BenchmarkCompress(b *testing.B) {
	block := painted(128)
	b.Run("BLAKE2b", func(b *testing.B) {
		h := b2b.iv
		b.SetBytes(128)
		for i := 0; i < b.N; i++ {
			h = compress(b2b, h, block, [2]uint64{uint64(i), 0}, false, false)
		}
	})
	b.Run("BLAKE2s", func(b *testing.B) {
		h := b2s.iv
		b.SetBytes(64)
		for i := 0; i < b.N; i++ {
			h = compress(b2s, h, block[:64], [2]uint32{uint32(i), 0}, false, false)
		}
	})
}
