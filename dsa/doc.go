// This package implements the Digital Signature Algorithm (DSA) from first
// principles, on top of math/big.
//
// WARNING: this implementation is not constant-time and makes no attempt at
// hiding secret values from side channels. It is meant for tests, teaching
// and prototype purposes. It produces and consumes raw numeric tuples only:
// domain parameters (p, q, alpha), a public value beta, a private exponent
// d, and signatures (r, s). There is no certificate or PKI layer.
//
// Domain parameters are characterized by the bit length L of the modulus p;
// supported values are 1024, 2048 and 3072, with the bit length N of the
// subgroup order q set to 160, 224 and 256, respectively (see [QBits]).
//
// The prime q is produced with Maurer's algorithm ([ProvablePrime]), which
// yields a prime along with a recursive Pocklington-style certificate
// ([Certificate]). The modulus p is then searched as p = m - (m mod 2q) + 1
// for random L-bit values m, and accepted when the Miller-Rabin test
// ([IsProbablePrime]) passes. Since the search time is highly variable,
// several independent search workers are raced against each other
// ([GeneratePQ]); the first result is adopted and the other workers are
// cancelled.
//
// A key pair is created with [Engine.GenerateKeyPair]. A message digest
// (normally SHA-512 of the message, computed by the caller) is signed with
// [Engine.CreateSignature] and checked with [Engine.VerifySignature]; the
// digest is interpreted as a big-endian non-negative integer. Callers that
// only need one role can hold the engine through the narrow [KeyGenerator],
// [SignatureCreator] and [SignatureValidator] interfaces.
//
// All random values are drawn from an explicit io.Reader. If the source is
// nil, then the operating system's RNG is used (through crypto/rand.Reader).
// A deterministic source for reproducible tests is provided by
// [NewSeededReader]; such a source MUST NOT be used to produce real keys.
package dsa
