package dsa

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/big"
)

// Provable prime generation (Maurer's algorithm).
//
// A prime N of L bits is built from a smaller provable prime q' as
// N = 2*R*q' + 1, for a random R chosen so that N has exactly L bits.
// Primality of N follows from the primality of q' when, for some a:
//
//	a^(N-1) = 1 mod N
//	gcd(a^(2*R) - 1, N) = 1
//
// since then every prime factor of N is equal to 1 modulo 2*q', and
// (2*q' + 1)^2 > N. Small primes (up to maurer_small bits) are obtained
// directly by trial division.

const (
	// Primes up to this size are generated by trial division.
	maurer_small = 20

	// Trial division bound for candidates is maurer_c*L^2.
	maurer_c = 0.1

	// Number of Miller-Rabin witnesses used to filter out composite
	// candidates before the certificate check.
	maurer_witnesses = 20
)

// ErrInvalidPrimeSize is returned when a prime of less than 2 bits is
// requested.
var ErrInvalidPrimeSize = errors.New("dsa: prime size must be at least 2 bits")

// A Certificate proves the primality of N.
//
// At the base level (Sub == nil), N has at most 20 bits and its primality
// is checked by trial division. Otherwise, N = 2*R*q' + 1 where q' is the
// prime certified by Sub, and A is the base for which the Pocklington-style
// conditions hold.
type Certificate struct {
	N   *big.Int
	R   *big.Int
	A   *big.Int
	Sub *Certificate
}

// Depth returns the number of recursion levels of the certificate (1 for
// a base-level certificate).
func (c *Certificate) Depth() int {
	d := 0
	for ; c != nil; c = c.Sub {
		d++
	}
	return d
}

// Verify checks the certificate; it returns true only if N is proven prime.
func (c *Certificate) Verify() bool {
	if c == nil || c.N == nil {
		return false
	}
	N := c.N
	if c.Sub == nil {
		if N.Cmp(bigTwo) < 0 || N.BitLen() > maurer_small {
			return false
		}
		return !has_small_factor(N, Sieve(int(new(big.Int).Sqrt(N).Int64())))
	}
	if c.R == nil || c.A == nil || c.Sub.N == nil {
		return false
	}
	q := c.Sub.N

	// N = 2*R*q + 1
	t := new(big.Int).Mul(c.R, q)
	t.Lsh(t, 1)
	t.Add(t, bigOne)
	if t.Cmp(N) != 0 {
		return false
	}

	// 2 <= A <= N-2
	nm1 := new(big.Int).Sub(N, bigOne)
	if c.A.Cmp(bigTwo) < 0 || c.A.Cmp(nm1) >= 0 {
		return false
	}

	// (2*q + 1)^2 > N
	t.Lsh(q, 1)
	t.Add(t, bigOne)
	t.Mul(t, t)
	if t.Cmp(N) <= 0 {
		return false
	}

	if !pocklington_check(N, c.R, c.A) {
		return false
	}
	return c.Sub.Verify()
}

// A PrimeCandidate is a (probable or provable) prime produced by one of the
// generators. Cert is nil for probable primes.
type PrimeCandidate struct {
	Value *big.Int
	Bits  int
	Depth int
	Cert  *Certificate
}

// Provable returns true if the candidate carries a primality certificate.
func (pc *PrimeCandidate) Provable() bool {
	return pc.Cert != nil
}

// ProvablePrime generates a random prime of exactly bits bits with Maurer's
// algorithm. The returned candidate carries the primality certificate.
// Random values are drawn from rng (nil to use the OS RNG).
func ProvablePrime(rng io.Reader, bits int) (*PrimeCandidate, error) {
	return ProvablePrimeContext(context.Background(), rng, bits)
}

// ProvablePrimeContext is like [ProvablePrime] but stops with
// ErrSearchCancelled when ctx is done. The context is polled before each
// trial division pass.
func ProvablePrimeContext(ctx context.Context, rng io.Reader,
	bits int) (*PrimeCandidate, error) {

	if bits < 2 {
		return nil, ErrInvalidPrimeSize
	}
	cert, err := maurer_inner(ctx, source(rng), bits)
	if err != nil {
		return nil, err
	}
	return &PrimeCandidate{
		Value: cert.N,
		Bits:  cert.N.BitLen(),
		Depth: cert.Depth(),
		Cert:  cert,
	}, nil
}

// Inner recursive function; bits >= 2 and rng is not nil.
func maurer_inner(ctx context.Context, rng io.Reader,
	bits int) (*Certificate, error) {

	if bits <= maurer_small {
		return maurer_small_prime(ctx, rng, bits)
	}

	// Choose the relative size r of q'.
	r := 0.5
	if bits > 2*maurer_small {
		for {
			s, err := random_unit(rng)
			if err != nil {
				return nil, err
			}
			r = math.Pow(2, s-1)
			if float64(bits)-r*float64(bits) > maurer_small {
				break
			}
		}
	}

	sub, err := maurer_inner(ctx, rng, int(math.Floor(r*float64(bits)))+1)
	if err != nil {
		return nil, err
	}
	q := sub.N

	// I = 2^(bits-1) / (2*q); R is taken in [I+1, 2*I].
	I := new(big.Int).Lsh(bigOne, uint(bits-1))
	I.Quo(I, new(big.Int).Lsh(q, 1))
	lo := new(big.Int).Add(I, bigOne)
	hi := new(big.Int).Lsh(I, 1)
	hi.Add(hi, bigOne)

	primes := Sieve(int(maurer_c * float64(bits) * float64(bits)))
	N := new(big.Int)
	for {
		if ctx.Err() != nil {
			return nil, ErrSearchCancelled
		}
		R, err := RandomInRange(rng, lo, hi)
		if err != nil {
			return nil, err
		}
		N.Mul(R, q)
		N.Lsh(N, 1)
		N.Add(N, bigOne)

		if has_small_factor(N, primes) {
			continue
		}
		ok, err := IsProbablePrime(rng, N, maurer_witnesses)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		a, err := RandomInRange(rng, bigTwo, new(big.Int).Sub(N, bigOne))
		if err != nil {
			return nil, err
		}
		if pocklington_check(N, R, a) {
			return &Certificate{N: N, R: R, A: a, Sub: sub}, nil
		}
	}
}

// Generate a small prime (2 to maurer_small bits) by trial division: a
// random odd value with the top bit set is drawn until it has no prime
// factor up to its square root.
func maurer_small_prime(ctx context.Context, rng io.Reader,
	bits int) (*Certificate, error) {

	for {
		if ctx.Err() != nil {
			return nil, ErrSearchCancelled
		}
		var tmp [4]byte
		if _, err := io.ReadFull(rng, tmp[:]); err != nil {
			return nil, err
		}
		w := binary.BigEndian.Uint32(tmp[:])
		w &= (uint32(1) << uint(bits-1)) - 1
		w |= uint32(1) << uint(bits-1)
		w |= 1
		n := new(big.Int).SetUint64(uint64(w))
		bound := int(math.Sqrt(float64(w)))
		if !has_small_factor(n, Sieve(bound)) {
			return &Certificate{N: n}, nil
		}
	}
}

// Check the certificate conditions for N = 2*R*q + 1 with base a:
// a^(N-1) = 1 mod N and gcd(a^(2*R) - 1, N) = 1.
func pocklington_check(N, R, a *big.Int) bool {
	nm1 := new(big.Int).Sub(N, bigOne)
	b := new(big.Int).Exp(a, nm1, N)
	if b.Cmp(bigOne) != 0 {
		return false
	}
	e := new(big.Int).Lsh(R, 1)
	b.Exp(a, e, N)
	b.Sub(b, bigOne)
	return new(big.Int).GCD(nil, nil, b, N).Cmp(bigOne) == 0
}

// Get a random floating-point value in [0, 1), with 53 bits of precision.
func random_unit(rng io.Reader) (float64, error) {
	var tmp [8]byte
	if _, err := io.ReadFull(rng, tmp[:]); err != nil {
		return 0, err
	}
	return float64(binary.BigEndian.Uint64(tmp[:])>>11) / (1 << 53), nil
}
