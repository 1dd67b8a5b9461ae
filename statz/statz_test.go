package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFmtFloats(t *testing.T) {
	assert.Equal(t, "        64  1.500000", fmtFloats(64, 1.5))
	assert.Equal(t, "   1.5e+09", fmtFloats(1.5e9))
	assert.Equal(t, "  123.2500  0.500000         0", fmtFloats(123.25, 0.5, 0))
}

func TestInputsDiffer(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 1, 0}, integerInputs(256))
	assert.NotEqual(t, randomInputs(1), randomInputs(2))
	assert.Len(t, randomInputs(1), 1024)
}
