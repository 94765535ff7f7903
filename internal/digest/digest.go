// Package digest hashes the files handled by the command line tool.
package digest

import (
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/benjivesterby/go-dsa/internal/config"
)

// New returns a fresh hash for the named algorithm.
func New(name string) (hash.Hash, error) {
	switch name {
	case config.HashSHA512, "":
		return sha512.New(), nil
	case config.HashSHA3_512:
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("unknown hash %q", name)
	}
}

// Reader returns the digest of everything read from r.
func Reader(r io.Reader, name string) ([]byte, error) {
	h, err := New(name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// File returns the digest of the file contents.
func File(path, name string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Reader(f, name)
}
