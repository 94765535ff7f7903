package dsa

import (
	"io"
	"math/big"

	"go.uber.org/zap"
)

// CreateSignature signs a message digest with the imported key pair. The
// digest (normally SHA-512 of the message) is interpreted as a big-endian
// non-negative integer.
//
// A fresh ephemeral value k is drawn for every signature (from the source
// set with [WithRand], or the OS RNG). The process is restarted whenever
// r or s would be zero, so a degenerate signature is never returned. An
// error is reported if a key is missing or incomplete, if q is lower than
// 3, or if the random source fails.
func (e *Engine) CreateSignature(digest []byte) (*Signature, error) {
	pub, priv := e.pub, e.priv
	if pub == nil || pub.P == nil || pub.Q == nil ||
		pub.Alpha == nil || pub.Beta == nil {
		return nil, ErrNoPublicKey
	}
	if priv == nil || priv.D == nil {
		return nil, ErrNoPrivateKey
	}
	return sign_inner(e.opts.rng, pub, priv, digest, e.opts.logger)
}

// Inner signature function. q must be at least 3: with q = 2 the only
// ephemeral value is k = 1 and r may be zero forever.
func sign_inner(rng io.Reader, pub *PublicKey, priv *PrivateKey,
	digest []byte, log *zap.Logger) (*Signature, error) {

	p, q := pub.P, pub.Q
	if q.Cmp(bigThree) < 0 || p.Cmp(q) <= 0 {
		return nil, fail_params("q is too small")
	}
	h := new(big.Int).SetBytes(digest)
	r := new(big.Int)
	s := new(big.Int)
	for {
		k, err := RandomInRange(rng, bigOne, q)
		if err != nil {
			return nil, err
		}

		// r = (alpha^k mod p) mod q
		r.Exp(pub.Alpha, k, p)
		r.Mod(r, q)

		// s = k^-1 * (H(m) + d*r) mod q
		kinv := ModInverse(k, q)
		if kinv == nil {
			// Only possible if q is not prime.
			continue
		}
		s.Mul(priv.D, r)
		s.Add(s, h)
		s.Mul(s, kinv)
		s.Mod(s, q)

		if r.Sign() == 0 || s.Sign() == 0 {
			log.Debug("degenerate signature, retrying")
			continue
		}
		return &Signature{R: r, S: s}, nil
	}
}
