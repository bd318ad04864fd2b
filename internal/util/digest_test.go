package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexDigest(t *testing.T) {
	got, err := HexDigest("sha1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", got)

	got, err = HexDigest("SHA256", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got)

	got, err = HexDigest("", "abc")
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", got)
}

func TestHexDigest_Unsupported(t *testing.T) {
	_, err := HexDigest("md5", "abc")
	require.Error(t, err)
}
