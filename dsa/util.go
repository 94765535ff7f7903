package dsa

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// Utility functions over big integers.

var (
	// ErrInvalidRange is returned when a random range has min > max.
	ErrInvalidRange = errors.New("dsa: invalid random range (min > max)")

	// ErrInvalidBitLength is returned when a fixed-size random value is
	// requested with a size which is not a positive multiple of 8.
	ErrInvalidBitLength = errors.New("dsa: bit length must be a positive multiple of 8")
)

var (
	bigZero  = big.NewInt(0)
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// Get the random source to use: rng itself, or the OS RNG if rng is nil.
func source(rng io.Reader) io.Reader {
	if rng == nil {
		return rand.Reader
	}
	return rng
}

// RandomInRange returns a random integer in the [min, max) range.
//
// A buffer with the size of the encoding of max (see [EncodeInt]) is filled
// with random bytes, interpreted as a signed integer, and its absolute value
// is reduced modulo (max - min). The distribution is thus only roughly
// uniform. If min == max, then a copy of min is returned. If min > max,
// then ErrInvalidRange is returned.
func RandomInRange(rng io.Reader, min, max *big.Int) (*big.Int, error) {
	c := min.Cmp(max)
	if c > 0 {
		return nil, ErrInvalidRange
	}
	if c == 0 {
		return new(big.Int).Set(min), nil
	}
	data := make([]byte, len(EncodeInt(max)))
	if _, err := io.ReadFull(source(rng), data); err != nil {
		return nil, err
	}
	v := DecodeInt(data)
	v.Abs(v)
	diff := new(big.Int).Sub(max, min)
	v.Mod(v, diff)
	return v.Add(v, min), nil
}

// RandomFixedBitLength returns a random signed integer obtained by reading
// bits/8 random bytes and interpreting them as a big-endian two's
// complement value; the result is thus in [-2^(bits-1), 2^(bits-1)).
// The bit length must be a positive multiple of 8.
func RandomFixedBitLength(rng io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 || bits%8 != 0 {
		return nil, ErrInvalidBitLength
	}
	data := make([]byte, bits>>3)
	if _, err := io.ReadFull(source(rng), data); err != nil {
		return nil, err
	}
	return DecodeInt(data), nil
}

// RandomPositiveFixedBitLength is like [RandomFixedBitLength] but returns
// the absolute value of the random integer.
func RandomPositiveFixedBitLength(rng io.Reader, bits int) (*big.Int, error) {
	v, err := RandomFixedBitLength(rng, bits)
	if err != nil {
		return nil, err
	}
	return v.Abs(v), nil
}

// Log2Estimate returns ceil(log2(n)) for n >= 1, and 0 for lower values.
// It is meant for coarse sizing only.
func Log2Estimate(n *big.Int) int {
	if n.Cmp(bigOne) <= 0 {
		return 0
	}
	return new(big.Int).Sub(n, bigOne).BitLen()
}

// ModInverse computes x in [0, m) such that a*x = 1 mod m, with the extended
// Euclidean algorithm. The larger operand is always divided by the smaller
// one; the Bezout coefficient which is returned depends on whether the
// operands were swapped. If a is not invertible modulo m (or m < 2), then
// nil is returned.
func ModInverse(a, m *big.Int) *big.Int {
	if m.Cmp(bigTwo) < 0 {
		return nil
	}

	// Negative (or null) values are first brought back into range.
	A := new(big.Int).Set(m)
	B := new(big.Int).Set(a)
	if B.Sign() <= 0 {
		B.Mod(B, m)
		if B.Sign() == 0 {
			return nil
		}
	}
	reverse := false
	if A.Cmp(B) < 0 {
		A, B = B, A
		reverse = true
	}

	// Invariant: A0*x0 + B0*y0 = A and A0*x1 + B0*y1 = B, with (A0, B0)
	// the operands after the optional swap.
	x0, y0 := big.NewInt(1), big.NewInt(0)
	x1, y1 := big.NewInt(0), big.NewInt(1)
	q := new(big.Int)
	r := new(big.Int)
	t := new(big.Int)
	for {
		q.QuoRem(A, B, r)
		if r.Sign() == 0 {
			break
		}
		x0.Sub(x0, t.Mul(q, x1))
		y0.Sub(y0, t.Mul(q, y1))
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		A, B, r = B, r, A
	}

	// B is now gcd(a, m).
	if B.Cmp(bigOne) != 0 {
		return nil
	}
	var x *big.Int
	if reverse {
		x = x1
	} else {
		x = y1
	}
	return x.Mod(x, m)
}
