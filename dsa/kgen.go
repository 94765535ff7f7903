package dsa

import (
	"context"
	"io"
	"math/big"
	"time"

	"go.uber.org/zap"
)

// GenerateKeyPair generates new domain parameters (p of bits bits, with
// bits in 1024, 2048 or 3072) and a new key pair. The engine keeps the
// generated keys, which are also returned.
//
// The (p, q) search runs concurrently (see [GeneratePQ]) and may take a
// while; it stops with ctx.Err() if ctx is cancelled first. An error is
// also reported if the requested size is invalid, or if the random source
// fails.
func (e *Engine) GenerateKeyPair(ctx context.Context, bits int) (*PublicKey, *PrivateKey, error) {
	o := e.opts
	log := o.logger.With(zap.Int("bits", bits))
	log.Info("key pair generation started", zap.Int("workers", o.workers))
	start := time.Now()

	pc, qc, err := generate_pq(ctx, bits, o)
	if err != nil {
		return nil, nil, err
	}
	pub, priv, err := keygen_inner(o.rng, pc.Value, qc.Value)
	if err != nil {
		return nil, nil, err
	}
	e.pub = pub
	e.priv = priv

	log.Info("key pair generation completed",
		zap.Int("q_depth", qc.Depth),
		zap.Duration("elapsed", time.Since(start)))
	return pub, priv, nil
}

// Inner function: given the primes p and q, pick a generator alpha, a
// private exponent d in [1, q), and compute beta = alpha^d mod p.
func keygen_inner(rng io.Reader, p, q *big.Int) (*PublicKey, *PrivateKey, error) {
	alpha, err := generate_alpha(rng, p, q)
	if err != nil {
		return nil, nil, err
	}
	d, err := RandomInRange(rng, bigOne, q)
	if err != nil {
		return nil, nil, err
	}
	beta := new(big.Int).Exp(alpha, d, p)
	pub := &PublicKey{
		DomainParameters: DomainParameters{P: p, Q: q, Alpha: alpha},
		Beta:             beta,
	}
	return pub, &PrivateKey{D: d}, nil
}

// Get a generator of the subgroup of order q: alpha = g^((p-1)/q) mod p
// for random g in [2, p), until alpha != 1.
func generate_alpha(rng io.Reader, p, q *big.Int) (*big.Int, error) {
	e := new(big.Int).Sub(p, bigOne)
	e.Quo(e, q)
	alpha := new(big.Int)
	for {
		g, err := RandomInRange(rng, bigTwo, p)
		if err != nil {
			return nil, err
		}
		alpha.Exp(g, e, p)
		if alpha.Cmp(bigOne) != 0 {
			return alpha, nil
		}
	}
}
