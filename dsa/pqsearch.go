package dsa

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Concurrent search of the (p, q) domain parameters.

var (
	// ErrInvalidKeySize is returned for a modulus size other than 1024,
	// 2048 or 3072 bits.
	ErrInvalidKeySize = errors.New("dsa: invalid key size (allowed: 1024, 2048, 3072)")

	// ErrSearchCancelled is returned by a search worker (or a prime
	// generator) which observed cancellation. The race coordinator never
	// returns it.
	ErrSearchCancelled = errors.New("dsa: search cancelled")

	errSearchExhausted = errors.New("dsa: prime search ended without result")
)

// Number of p candidates tried for a given q before a new q is generated.
const pq_trials = 4096

// QBits returns the size of q for a modulus p of the given size:
// 1024 -> 160, 2048 -> 224, 3072 -> 256. An error is returned for any other
// size.
func QBits(bits int) (int, error) {
	switch bits {
	case 1024:
		return 160, nil
	case 2048:
		return 224, nil
	case 3072:
		return 256, nil
	default:
		return 0, ErrInvalidKeySize
	}
}

// GeneratePQ searches for primes p (of bits bits) and q (of QBits(bits)
// bits) such that q divides p-1. Several workers (see [WithWorkers]) race
// each other; the first result is returned and the other workers are
// cancelled. q is a provable prime (its certificate is included); p is a
// probable prime. If ctx is cancelled before any worker succeeds, then
// ctx.Err() is returned.
func GeneratePQ(ctx context.Context, bits int, opts ...Option) (p, q *PrimeCandidate, err error) {
	o := new_options(opts)
	return generate_pq(ctx, bits, o)
}

func generate_pq(ctx context.Context, bits int, o *options) (p, q *PrimeCandidate, err error) {
	qbits, err := QBits(bits)
	if err != nil {
		return nil, nil, err
	}
	srcs, err := worker_sources(o.rng, o.workers)
	if err != nil {
		return nil, nil, err
	}
	log := o.logger.With(zap.Int("bits", bits), zap.Int("qbits", qbits))

	search := func(ctx context.Context, id int) (*pqResult, error) {
		res, err := search_pq(ctx, srcs[id], bits, qbits, o.witnesses)
		if errors.Is(err, ErrSearchCancelled) {
			log.Debug("search worker cancelled", zap.Int("worker", id))
		}
		if res != nil {
			res.worker = id
		}
		return res, err
	}

	start := time.Now()
	res, err := race_pq(ctx, o.workers, search)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("search race won",
		zap.Int("worker", res.worker),
		zap.Int("workers", o.workers),
		zap.Duration("elapsed", time.Since(start)))
	return res.p, res.q, nil
}

// Get one random source per worker. With the OS RNG, all workers share
// crypto/rand.Reader (which is safe for concurrent use); otherwise, a
// 32-byte seed is read from rng and each worker gets its own deterministic
// stream derived from that seed.
func worker_sources(rng io.Reader, workers int) ([]io.Reader, error) {
	srcs := make([]io.Reader, workers)
	if rng == nil {
		for i := range srcs {
			srcs[i] = rand.Reader
		}
		return srcs, nil
	}
	var seed [32]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, err
	}
	for i := range srcs {
		srcs[i] = NewSeededReader(worker_seed(seed[:], i))
	}
	return srcs, nil
}

type pqResult struct {
	worker int
	p      *PrimeCandidate
	q      *PrimeCandidate
}

type pqSearchFunc func(ctx context.Context, worker int) (*pqResult, error)

// Run workers concurrent searches and return the first result; the other
// searches are then cancelled and joined before returning. Searches which
// stop with ErrSearchCancelled are not failures. Any other error cancels
// the whole race and is returned, unless a result was already obtained.
func race_pq(ctx context.Context, workers int, search pqSearchFunc) (*pqResult, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(raceCtx)
	results := make(chan *pqResult, workers)
	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error {
			res, err := search(gctx, id)
			if err != nil {
				if errors.Is(err, ErrSearchCancelled) {
					return nil
				}
				return err
			}
			results <- res
			return nil
		})
	}
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case res := <-results:
		cancel()
		<-done
		return res, nil
	case err := <-done:
		select {
		case res := <-results:
			return res, nil
		default:
		}
		if err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errSearchExhausted
	}
}

// Single search worker: alternate generation of a provable prime q and up
// to pq_trials candidates p = m - (m mod 2q) + 1 for random bits-bit values
// m, until p is probably prime. The context is polled before each new q
// and each candidate p.
func search_pq(ctx context.Context, rng io.Reader,
	bits, qbits, witnesses int) (*pqResult, error) {

	twoq := new(big.Int)
	r := new(big.Int)
	for {
		if ctx.Err() != nil {
			return nil, ErrSearchCancelled
		}
		qc, err := ProvablePrimeContext(ctx, rng, qbits)
		if err != nil {
			return nil, err
		}
		q := qc.Value
		twoq.Lsh(q, 1)

		for i := 0; i < pq_trials; i++ {
			if ctx.Err() != nil {
				return nil, ErrSearchCancelled
			}
			m, err := RandomPositiveFixedBitLength(rng, bits)
			if err != nil {
				return nil, err
			}
			// Force the top bit so that p has exactly the requested
			// size (candidates which fall just below are skipped).
			m.SetBit(m, bits-1, 1)
			p := m.Sub(m, r.Mod(m, twoq))
			p.Add(p, bigOne)
			if p.BitLen() != bits {
				continue
			}
			ok, err := IsProbablePrime(rng, p, witnesses)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if r.Mod(r.Sub(p, bigOne), q).Sign() != 0 {
				continue
			}
			return &pqResult{
				p: &PrimeCandidate{Value: p, Bits: bits},
				q: qc,
			}, nil
		}
	}
}
