package dsa

import (
	"encoding/binary"
	"io"

	sha3 "golang.org/x/crypto/sha3"
)

// A deterministic random source based on four parallel SHAKE256 instances,
// with interleaved outputs. It is used for reproducible tests and to derive
// independent per-worker streams from a single seed.
//
// In general this is not better than a single SHAKE256, but it can yield
// some speed-ups when used with SIMD opcodes that can run the four
// SHAKE instances at the same time (e.g. AVX2 on x86 systems).
type shake256x4 struct {
	state [4]sha3.ShakeHash
	buf   [4 * 136]byte
	ptr   int
}

// NewSeededReader returns a deterministic random source initialized with the
// provided seed. Two readers created with the same seed produce the same
// byte stream. The returned reader is not safe for concurrent use.
func NewSeededReader(seed []byte) io.Reader {
	r := new(shake256x4)
	for i := 0; i < 4; i++ {
		var tmp [1]byte
		tmp[0] = byte(i)
		r.state[i] = sha3.NewShake256()
		r.state[i].Write(seed)
		r.state[i].Write(tmp[:])
	}
	r.ptr = len(r.buf)
	return r
}

// Read fills p with the next bytes of the stream; it never fails.
func (r *shake256x4) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.ptr == len(r.buf) {
			r.refill()
		}
		k := copy(p[n:], r.buf[r.ptr:])
		r.ptr += k
		n += k
	}
	return n, nil
}

// Refill a SHAKE256x4 instance.
func (r *shake256x4) refill() {
	var tmp [136]byte
	for i := 0; i < 4; i++ {
		r.state[i].Read(tmp[:])
		for j := 0; j < 17; j++ {
			u := (i << 3) + (j << 5)
			v := j << 3
			copy(r.buf[u:u+8], tmp[v:v+8])
		}
	}
	r.ptr = 0
}

// Derive the seed for search worker number id from a base seed: the base
// seed followed by the worker identifier over 4 bytes (little-endian).
func worker_seed(seed []byte, id int) []byte {
	ws := make([]byte, len(seed)+4)
	copy(ws, seed)
	binary.LittleEndian.PutUint32(ws[len(seed):], uint32(id))
	return ws
}
