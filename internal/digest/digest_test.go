package digest_test

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjivesterby/go-dsa/internal/config"
	"github.com/benjivesterby/go-dsa/internal/digest"
)

func TestKnownDigests(t *testing.T) {
	// Digests of "abc".
	cases := map[string]string{
		config.HashSHA512: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		config.HashSHA3_512: "b751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e" +
			"10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0",
	}
	for name, want := range cases {
		got, err := digest.Reader(strings.NewReader("abc"), name)
		require.NoError(t, err)
		assert.Equal(t, want, hex.EncodeToString(got), name)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	fromFile, err := digest.File(path, config.HashSHA512)
	require.NoError(t, err)
	fromReader, err := digest.Reader(strings.NewReader("abc"), config.HashSHA512)
	require.NoError(t, err)
	assert.Equal(t, fromReader, fromFile)

	_, err = digest.File(filepath.Join(t.TempDir(), "missing"), config.HashSHA512)
	assert.Error(t, err)
}

func TestUnknownHash(t *testing.T) {
	_, err := digest.New("md5")
	assert.Error(t, err)
	h, err := digest.New("")
	require.NoError(t, err)
	assert.Equal(t, 64, h.Size())
}
