package dsa

import (
	"math/big"
	"reflect"
	"testing"
)

func TestSieve(t *testing.T) {
	exp := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if got := Sieve(30); !reflect.DeepEqual(got, exp) {
		t.Fatalf("ERR: Sieve(30) -> %v\n", got)
	}
	if got := Sieve(2); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("ERR: Sieve(2) -> %v\n", got)
	}
	if got := Sieve(3); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("ERR: Sieve(3) -> %v\n", got)
	}
	for _, b := range []int{-1, 0, 1} {
		if got := Sieve(b); len(got) != 0 {
			t.Fatalf("ERR: Sieve(%d) -> %v\n", b, got)
		}
	}

	// Compare with naive trial division.
	primes := Sieve(10000)
	j := 0
	for n := 2; n <= 10000; n++ {
		if !naive_is_prime(n) {
			continue
		}
		if j >= len(primes) || primes[j] != n {
			t.Fatalf("ERR: Sieve(10000) misses %d\n", n)
		}
		j++
	}
	if j != len(primes) {
		t.Fatalf("ERR: Sieve(10000) has %d extra values\n", len(primes)-j)
	}
}

func naive_is_prime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestIsProbablePrimeSmall(t *testing.T) {
	rng := NewSeededReader([]byte("mr small"))
	for n := int64(-3); n <= 5000; n++ {
		isp := naive_is_prime(int(n))
		for _, k := range []int{1, 10} {
			r, err := IsProbablePrime(rng, big.NewInt(n), k)
			if err != nil {
				t.Fatal(err)
			}
			// No false negative, ever.
			if isp && !r {
				t.Fatalf("ERR: prime %d rejected (k=%d)\n", n, k)
			}
			if n <= 1 && r {
				t.Fatalf("ERR: %d accepted\n", n)
			}
		}
	}
}

func TestIsProbablePrimeCarmichael(t *testing.T) {
	rng := NewSeededReader([]byte("carmichael"))
	var carmichael = []int64{
		561, 1105, 1729, 2465, 2821, 6601, 8911, 10585, 15841,
		29341, 41041, 46657, 52633, 62745, 63973, 75361, 101101,
		115921, 126217, 162401, 172081, 188461, 252601, 278545,
		294409, 314821, 334153, 340561, 399001, 410041, 449065,
		488881, 512461, 825265, 321197185,
	}
	for _, n := range carmichael {
		r, err := IsProbablePrime(rng, big.NewInt(n), 20)
		if err != nil {
			t.Fatal(err)
		}
		if r {
			t.Fatalf("ERR: Carmichael number %d accepted\n", n)
		}
	}
}

func TestIsProbablePrimeLarge(t *testing.T) {
	rng := NewSeededReader([]byte("mr large"))

	// Mersenne primes and their composite neighbours.
	for _, e := range []uint{61, 89, 107, 127, 521, 607, 1279} {
		m := new(big.Int).Lsh(bigOne, e)
		m.Sub(m, bigOne)
		r, err := IsProbablePrime(rng, m, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !r {
			t.Fatalf("ERR: 2^%d-1 rejected\n", e)
		}
		m.Add(m, bigTwo)
		r, err = IsProbablePrime(rng, m, 0)
		if err != nil {
			t.Fatal(err)
		}
		if r {
			t.Fatalf("ERR: 2^%d+1 accepted\n", e)
		}
	}

	// Product of two large primes.
	p := new(big.Int).Lsh(bigOne, 127)
	p.Sub(p, bigOne)
	q := new(big.Int).Lsh(bigOne, 89)
	q.Sub(q, bigOne)
	n := new(big.Int).Mul(p, q)
	r, err := IsProbablePrime(rng, n, 10)
	if err != nil {
		t.Fatal(err)
	}
	if r {
		t.Fatalf("ERR: (2^127-1)*(2^89-1) accepted\n")
	}
}
