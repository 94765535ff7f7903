package dsa

import (
	"math/big"
)

// Modular inversion used by verification (replaced in tests).
var mod_inverse = ModInverse

// VerifySignature verifies a signature over a message digest with the
// imported public key. The digest is interpreted as a big-endian
// non-negative integer, as in [Engine.CreateSignature].
//
// Returned value is true for a valid signature, false otherwise. If no
// public key was imported, or if r or s is out of the (0, q) range, then
// false is returned without further computation.
func (e *Engine) VerifySignature(digest []byte, sig *Signature) bool {
	return verify_inner(e.pub, digest, sig)
}

// Inner verification function.
func verify_inner(pub *PublicKey, digest []byte, sig *Signature) bool {
	if pub == nil || pub.P == nil || pub.Q == nil ||
		pub.Alpha == nil || pub.Beta == nil {
		return false
	}
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	p, q := pub.P, pub.Q
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 ||
		sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return false
	}

	w := mod_inverse(sig.S, q)
	if w == nil {
		return false
	}

	// u1 = H(m)*w mod q, u2 = r*w mod q
	u1 := new(big.Int).SetBytes(digest)
	u1.Mul(u1, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	// v = ((alpha^u1 * beta^u2) mod p) mod q
	v := new(big.Int).Exp(pub.Alpha, u1, p)
	t := new(big.Int).Exp(pub.Beta, u2, p)
	v.Mul(v, t)
	v.Mod(v, p)
	v.Mod(v, q)

	return v.Cmp(sig.R) == 0
}
