package main

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjivesterby/go-dsa/dsa"
	"github.com/benjivesterby/go-dsa/internal/keyfile"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

// Run in dir, restoring the working directory afterwards.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func resultFiles(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if name, ok := strings.CutPrefix(line, "The result file is: "); ok {
			files = append(files, name)
		}
	}
	return files
}

func TestKeygenSignVerify(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "alice")

	out, err := run(t, "keygen", "-s", "1024", "-p", prefix, "--workers", "2")
	require.NoError(t, err)
	pubPath := prefix + "-1024bits.public"
	privPath := prefix + "-1024bits.private"
	assert.Equal(t, []string{pubPath, privPath}, resultFiles(out))

	pub, err := keyfile.ReadPublicKey(pubPath)
	require.NoError(t, err)
	require.NoError(t, pub.Validate(20))
	assert.Equal(t, 1024, pub.P.BitLen())
	assert.Equal(t, 160, pub.Q.BitLen())

	input := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(input, []byte("quarterly numbers\n"), 0o644))
	sigPath := filepath.Join(dir, "report.sgn")

	for _, hash := range []string{"sha512", "sha3-512"} {
		out, err = run(t, "sign", "-i", input, "-p", pubPath, "-s", privPath, "-o", sigPath, "--hash", hash)
		require.NoError(t, err)
		assert.Equal(t, []string{sigPath}, resultFiles(out))

		out, err = run(t, "verify", "-i", input, "-p", pubPath, "-s", sigPath, "--hash", hash)
		require.NoError(t, err)
		assert.Contains(t, out, msgValid, hash)
	}

	// Verifying with the other digest fails.
	out, err = run(t, "ver", "-i", input, "-p", pubPath, "-s", sigPath, "--hash", "sha512")
	require.NoError(t, err)
	assert.Contains(t, out, msgInvalid)

	// Modified data.
	require.NoError(t, os.WriteFile(input, []byte("quarterly numbers!\n"), 0o644))
	out, err = run(t, "verify", "-i", input, "-p", pubPath, "-s", sigPath, "--hash", "sha3-512")
	require.NoError(t, err)
	assert.Contains(t, out, msgInvalid)

	// Default signature name, written to the current directory.
	chdir(t, dir)
	out, err = run(t, "enc", "-i", input, "-p", pubPath, "-s", privPath)
	require.NoError(t, err)
	files := resultFiles(out)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "report_DigitalSignature_"), files[0])
	assert.True(t, strings.HasSuffix(files[0], ".sgn"), files[0])
	_, err = os.Stat(filepath.Join(dir, files[0]))
	require.NoError(t, err)

	out, err = run(t, "verify", "-i", input, "-p", pubPath, "-s", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, msgValid)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "keygen", "-s", "512", "-p", filepath.Join(dir, "x"))
	assert.Error(t, err)

	_, err = run(t, "sign", "-i", "in")
	assert.Error(t, err)

	_, err = run(t, "verify", "-i", "in", "-p", "pub", "-s", "sig", "--hash", "md5")
	assert.Error(t, err)

	// Malformed public key file.
	bad := filepath.Join(dir, "bad.public")
	require.NoError(t, os.WriteFile(bad, []byte("not base64\n"), 0o644))
	_, err = run(t, "verify", "-i", bad, "-p", bad, "-s", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, keyfile.ErrMalformedKeyOrSignatureFile)

	_, err = run(t, "verify", "-i", bad, "-p", filepath.Join(dir, "missing"), "-s", bad)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Well-formed files holding a tiny group (p = 3, q = 2) are refused.
	tinyPub := filepath.Join(dir, "tiny.public")
	tinyPriv := filepath.Join(dir, "tiny.private")
	require.NoError(t, keyfile.WritePublicKey(tinyPub, &dsa.PublicKey{
		DomainParameters: dsa.DomainParameters{P: big.NewInt(3), Q: big.NewInt(2), Alpha: big.NewInt(2)},
		Beta:             big.NewInt(2),
	}))
	require.NoError(t, keyfile.WritePrivateKey(tinyPriv, &dsa.PrivateKey{D: big.NewInt(1)}))
	_, err = run(t, "sign", "-i", bad, "-p", tinyPub, "-s", tinyPriv, "-o", filepath.Join(dir, "tiny.sgn"))
	assert.ErrorIs(t, err, dsa.ErrInvalidDomainParameters)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "dsa.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("key_bits: 4096\n"), 0o644))
	_, err := run(t, "keygen", "--config", cfg)
	assert.Error(t, err)

	_, err = run(t, "keygen", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
