package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/p7r0x7/blake2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckLine(t *testing.T) {
	e, err := parseCheckLine("00ff  some file.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, e.want)
	assert.Equal(t, "some file.txt", e.path)

	e, err = parseCheckLine("abcd *binary.bin\r")
	require.NoError(t, err)
	assert.Equal(t, "binary.bin", e.path)

	for _, bad := range []string{"abcd", "abcd x", "abcd  ", "zz  file", "  file", "abc  file"} {
		_, err = parseCheckLine(bad)
		assert.Errorf(t, err, "%q", bad)
	}
}

func memOpener(files map[string]string) func(string) (io.ReadCloser, error) {
	return func(path string) (io.ReadCloser, error) {
		body, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func TestCheckList(t *testing.T) {
	pAlgorithm, pSalt, pPersonal, key = "blake2b", "", "", nil

	abc := blake2.Sum512([]byte("abc")).Hex()
	short, err := blake2.Sum(blake2.BLAKE2b, []byte("abc"), 16)
	require.NoError(t, err)

	list := strings.Join([]string{
		abc + "  abc.txt",
		short.Hex() + "  abc.txt",
		abc + "  changed.txt",
		"",
		"not a digest line",
		abc + "  missing.txt",
	}, "\n")
	files := map[string]string{"abc.txt": "abc", "changed.txt": "abd"}

	var out bytes.Buffer
	res, err := checkList(strings.NewReader(list), &out, newHasher, memOpener(files))
	require.NoError(t, err)
	assert.Equal(t, checkResult{failed: 1, unreadable: 1, malformed: 1}, res)
	assert.Equal(t, "abc.txt: OK\nabc.txt: OK\nchanged.txt: FAILED\nmissing.txt: FAILED open or read\n",
		out.String())
}

func TestCheckListKeyedBLAKE2s(t *testing.T) {
	pAlgorithm, pSalt, pPersonal, key = "blake2s", "", "", []byte("secret")
	defer func() { pAlgorithm, key = "blake2b", nil }()

	mac, err := blake2.Sum(blake2.BLAKE2s, []byte("payload"), 32, blake2.WithKey([]byte("secret")))
	require.NoError(t, err)
	unkeyed := blake2.Sum256([]byte("payload"))

	list := mac.Hex() + "  p\n" + unkeyed.Hex() + "  p\n"
	var out bytes.Buffer
	res, err := checkList(strings.NewReader(list), &out, newHasher, memOpener(map[string]string{"p": "payload"}))
	require.NoError(t, err)
	assert.Equal(t, checkResult{failed: 1}, res)
	assert.Equal(t, "p: OK\np: FAILED\n", out.String())
}

func TestNewHasherFlags(t *testing.T) {
	defer func() { pAlgorithm, pSalt, pPersonal, key = "blake2b", "", "", nil }()

	pAlgorithm, key = "blake2bp", []byte("bar")
	d, err := newHasher(18)
	require.NoError(t, err)
	d.Write([]byte("foo"))
	sum, err := d.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "8c54e888a8a01c63da6585c058fe54ea81df", sum.Hex())

	pSalt = "00"
	_, err = newHasher(18)
	assert.Error(t, err)

	pAlgorithm, key = "blake2s", nil
	_, err = newHasher(0)
	assert.ErrorIs(t, err, blake2.InvalidParameter, "salt must be exactly 8 bytes")

	pSalt, pPersonal = "0001020304050607", "zz"
	_, err = newHasher(0)
	assert.Error(t, err)

	pPersonal = ""
	_, err = newHasher(33)
	assert.ErrorIs(t, err, blake2.InvalidParameter)

	pAlgorithm = "md5"
	_, err = newHasher(16)
	assert.EqualError(t, err, `unknown algorithm "md5"`)
}

func TestCheckListOversizedDigest(t *testing.T) {
	pAlgorithm, pSalt, pPersonal, key = "blake2s", "", "", nil
	defer func() { pAlgorithm = "blake2b" }()

	long := blake2.Sum512([]byte("payload")).Hex()
	ok := blake2.Sum256([]byte("payload")).Hex()
	list := long + "  p\n" + ok + "  p\n"

	var out bytes.Buffer
	res, err := checkList(strings.NewReader(list), &out, newHasher, memOpener(map[string]string{"p": "payload"}))
	require.NoError(t, err)
	assert.Equal(t, checkResult{malformed: 1}, res)
	assert.Equal(t, "p: OK\n", out.String())
}
