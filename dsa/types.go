package dsa

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidDomainParameters is returned by [PublicKey.Validate] and
// [PrivateKey.Validate] when a key does not satisfy the DSA invariants.
var ErrInvalidDomainParameters = errors.New("dsa: invalid domain parameters")

// DomainParameters are the shared public DSA parameters: the prime modulus
// P, the prime order Q of the subgroup (Q divides P-1), and the generator
// Alpha of that subgroup.
type DomainParameters struct {
	P     *big.Int
	Q     *big.Int
	Alpha *big.Int
}

// PublicKey is a verifying key: the domain parameters and
// Beta = Alpha^d mod P.
type PublicKey struct {
	DomainParameters
	Beta *big.Int
}

// PrivateKey is a signing key: the secret exponent D, with 0 < D < Q.
type PrivateKey struct {
	D *big.Int
}

// Signature is a DSA signature (R, S), with 0 < R < Q and 0 < S < Q.
type Signature struct {
	R *big.Int
	S *big.Int
}

// Validate checks the domain parameters and public value:
//
//   - P has 1024, 2048 or 3072 bits, and Q has QBits(P.BitLen()) bits
//   - P and Q are probable primes (with the given number of witnesses)
//   - Q divides P-1
//   - 1 < Alpha < P and Alpha^Q = 1 mod P
//   - 0 < Beta < P
//
// ErrInvalidDomainParameters (wrapped with the failed check) is returned
// if any check fails.
func (pub *PublicKey) Validate(witnesses int) error {
	if pub == nil || pub.P == nil || pub.Q == nil ||
		pub.Alpha == nil || pub.Beta == nil {
		return fail_params("missing value")
	}
	p, q := pub.P, pub.Q
	qbits, err := QBits(p.BitLen())
	if err != nil || q.BitLen() != qbits {
		return fail_params("wrong sizes for p and q")
	}
	ok, err := IsProbablePrime(nil, p, witnesses)
	if err != nil {
		return err
	}
	if !ok {
		return fail_params("p is not prime")
	}
	ok, err = IsProbablePrime(nil, q, witnesses)
	if err != nil {
		return err
	}
	if !ok {
		return fail_params("q is not prime")
	}
	t := new(big.Int).Sub(p, bigOne)
	if t.Mod(t, q).Sign() != 0 {
		return fail_params("q does not divide p-1")
	}
	if pub.Alpha.Cmp(bigOne) <= 0 || pub.Alpha.Cmp(p) >= 0 {
		return fail_params("alpha is out of range")
	}
	if t.Exp(pub.Alpha, q, p).Cmp(bigOne) != 0 {
		return fail_params("alpha does not have order q")
	}
	if pub.Beta.Sign() <= 0 || pub.Beta.Cmp(p) >= 0 {
		return fail_params("beta is out of range")
	}
	return nil
}

// Validate checks that 0 < D < Q for the provided public key, and that D
// matches the public value Beta.
func (priv *PrivateKey) Validate(pub *PublicKey) error {
	if priv == nil || priv.D == nil {
		return fail_params("missing private exponent")
	}
	if pub == nil || pub.Q == nil || pub.P == nil ||
		pub.Alpha == nil || pub.Beta == nil {
		return fail_params("missing value")
	}
	if priv.D.Sign() <= 0 || priv.D.Cmp(pub.Q) >= 0 {
		return fail_params("d is out of range")
	}
	if new(big.Int).Exp(pub.Alpha, priv.D, pub.P).Cmp(pub.Beta) != 0 {
		return fail_params("d does not match beta")
	}
	return nil
}

func fail_params(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDomainParameters, msg)
}
