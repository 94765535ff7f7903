package dsa

import (
	"io"
	"math/big"
)

// Default number of Miller-Rabin witnesses.
const DefaultWitnesses = 10

// IsProbablePrime runs the Miller-Rabin test on n with the given number of
// random witnesses (values lower than 1 are replaced with
// DefaultWitnesses). It returns false if n is definitely composite (or
// lower than 2), true if n is probably prime; for a composite n, the
// probability of a true result is at most 4^(-witnesses).
//
// Witnesses are drawn from rng (nil to use the OS RNG). An error is
// returned only if the random source fails.
func IsProbablePrime(rng io.Reader, n *big.Int, witnesses int) (bool, error) {
	if witnesses <= 0 {
		witnesses = DefaultWitnesses
	}
	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}

	// 2 and 3 have no witness in [2, n-2].
	if n.Cmp(bigThree) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// n - 1 = 2^s * d, with d odd.
	nm1 := new(big.Int).Sub(n, bigOne)
	s := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, s)

	x := new(big.Int)
	for i := 0; i < witnesses; i++ {
		// a is uniform in [2, n-2].
		a, err := RandomInRange(rng, bigTwo, nm1)
		if err != nil {
			return false, err
		}
		x.Exp(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nm1) == 0 {
			continue
		}
		for r := uint(1); r < s; r++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(bigOne) == 0 {
				return false, nil
			}
			if x.Cmp(nm1) == 0 {
				break
			}
		}
		if x.Cmp(nm1) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// Sieve returns the ordered list of all primes lower than or equal to
// bound (sieve of Eratosthenes). The list is empty if bound < 2.
func Sieve(bound int) []int {
	if bound < 2 {
		return nil
	}

	// composite[i] is set for odd i = 2*j+1 once proven composite.
	composite := make([]bool, (bound>>1)+1)
	for c := 3; c*c <= bound; c += 2 {
		if composite[c>>1] {
			continue
		}
		for j := c * c; j <= bound; j += c << 1 {
			composite[j>>1] = true
		}
	}
	primes := []int{2}
	for i := 3; i <= bound; i += 2 {
		if !composite[i>>1] {
			primes = append(primes, i)
		}
	}
	return primes
}

// Check whether n has a factor in primes (other than n itself).
func has_small_factor(n *big.Int, primes []int) bool {
	m := new(big.Int)
	p := new(big.Int)
	for _, sp := range primes {
		p.SetInt64(int64(sp))
		if n.Cmp(p) == 0 {
			return false
		}
		if m.Mod(n, p).Sign() == 0 {
			return true
		}
	}
	return false
}
