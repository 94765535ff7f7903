// Package keyfile reads and writes DSA keys and signatures as text files.
//
// Every file holds one integer per line, each integer being the base64
// (standard alphabet, padded) encoding of its minimal big-endian two's
// complement representation:
//
//	public key:  p, q, alpha, beta
//	private key: d
//	signature:   r, s
package keyfile

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/benjivesterby/go-dsa/dsa"
)

// ErrMalformedKeyOrSignatureFile is returned (wrapped with the file path)
// when a key or signature file has missing, empty, extra or non-base64
// lines.
var ErrMalformedKeyOrSignatureFile = errors.New("malformed key or signature file")

const (
	permPublic  = 0o644
	permPrivate = 0o600
)

func malformed(path, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", path, ErrMalformedKeyOrSignatureFile,
		fmt.Sprintf(format, args...))
}

// Write the integers, one base64 line each, to path. The lines go to a
// temporary file next to path which is synced, given its final mode and
// renamed over path; an existing file is left untouched on failure.
func store(path string, perm os.FileMode, values ...*big.Int) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	for _, v := range values {
		w.WriteString(base64.StdEncoding.EncodeToString(dsa.EncodeInt(v)))
		w.WriteByte('\n')
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		// Windows refuses to rename over a locked or existing file.
		os.Remove(path)
		if err2 := os.Rename(tmp, path); err2 != nil {
			return fmt.Errorf("rename %s: %v (after remove: %v)", path, err, err2)
		}
	}
	return nil
}

// Read exactly n integers from the file; trailing blank lines are allowed,
// anything else after the n-th line is not.
func decode_lines(path string, n int) ([]*big.Int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values []*big.Int
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if len(values) == n {
			if s != "" {
				return nil, malformed(path, "unexpected data on line %d", line)
			}
			continue
		}
		if s == "" {
			return nil, malformed(path, "empty line %d", line)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil || len(b) == 0 {
			return nil, malformed(path, "line %d is not a base64 integer", line)
		}
		values = append(values, dsa.DecodeInt(b))
	}
	if err := sc.Err(); err != nil {
		return nil, malformed(path, "%v", err)
	}
	if len(values) < n {
		return nil, malformed(path, "expected %d lines, found %d", n, len(values))
	}
	return values, nil
}

// WritePublicKey stores the public key (p, q, alpha, beta).
func WritePublicKey(path string, pub *dsa.PublicKey) error {
	if pub == nil || pub.P == nil || pub.Q == nil || pub.Alpha == nil || pub.Beta == nil {
		return errors.New("incomplete public key")
	}
	return store(path, permPublic, pub.P, pub.Q, pub.Alpha, pub.Beta)
}

// WritePrivateKey stores the private exponent d; the file is readable by
// its owner only.
func WritePrivateKey(path string, priv *dsa.PrivateKey) error {
	if priv == nil || priv.D == nil {
		return errors.New("incomplete private key")
	}
	return store(path, permPrivate, priv.D)
}

// WriteSignature stores the signature (r, s).
func WriteSignature(path string, sig *dsa.Signature) error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return errors.New("incomplete signature")
	}
	return store(path, permPublic, sig.R, sig.S)
}

// ReadPublicKey loads a public key file (p, q, alpha, beta). The values
// are not checked; see [dsa.PublicKey.Validate].
func ReadPublicKey(path string) (*dsa.PublicKey, error) {
	v, err := decode_lines(path, 4)
	if err != nil {
		return nil, err
	}
	return &dsa.PublicKey{
		DomainParameters: dsa.DomainParameters{P: v[0], Q: v[1], Alpha: v[2]},
		Beta:             v[3],
	}, nil
}

// ReadPrivateKey loads a private key file (d).
func ReadPrivateKey(path string) (*dsa.PrivateKey, error) {
	v, err := decode_lines(path, 1)
	if err != nil {
		return nil, err
	}
	return &dsa.PrivateKey{D: v[0]}, nil
}

// ReadSignature loads a signature file (r, s).
func ReadSignature(path string) (*dsa.Signature, error) {
	v, err := decode_lines(path, 2)
	if err != nil {
		return nil, err
	}
	return &dsa.Signature{R: v[0], S: v[1]}, nil
}
