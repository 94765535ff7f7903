package dsa

import (
	"math/big"
)

// Encoding and decoding of big integers.
//
// Integers are exchanged as big-endian two's complement byte strings of
// minimal length: a positive value whose top bit is set gets an extra
// leading 0x00 byte, so that it is not read back as a negative value.
// Zero is encoded over a single byte.

// EncodeInt encodes an integer into its minimal big-endian two's complement
// representation.
func EncodeInt(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{0x00}
	case 1:
		b := v.Bytes()
		if (b[0] & 0x80) != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}

	// Negative value: the smallest length k such that
	// -2^(8*k-1) <= v is obtained from the bit length of |v| - 1.
	a := new(big.Int).Neg(v)
	k := (new(big.Int).Sub(a, bigOne).BitLen() >> 3) + 1
	t := new(big.Int).Lsh(bigOne, uint(k<<3))
	t.Sub(t, a)
	return t.FillBytes(make([]byte, k))
}

// DecodeInt decodes a big-endian two's complement byte string. An empty
// slice decodes to zero.
func DecodeInt(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && (b[0]&0x80) != 0 {
		t := new(big.Int).Lsh(bigOne, uint(len(b)<<3))
		v.Sub(v, t)
	}
	return v
}
