package dsa

import (
	"io"
	"runtime"

	"go.uber.org/zap"
)

// An Option tunes key pair generation, signing and the (p, q) search.
type Option func(*options)

type options struct {
	rng       io.Reader
	workers   int
	witnesses int
	logger    *zap.Logger
}

// WithRand sets the random source (nil to use the OS RNG). The source is
// only read from the calling goroutine; each search worker gets its own
// stream, seeded from this source.
func WithRand(rng io.Reader) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithWorkers sets the number of concurrent (p, q) search workers. Values
// lower than 1 select the default, which depends on the number of CPUs
// (see [WorkerCount]).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithWitnesses sets the number of Miller-Rabin witnesses used to test
// candidates for p (default: DefaultWitnesses).
func WithWitnesses(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.witnesses = n
		}
	}
}

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func new_options(opts []Option) *options {
	o := &options{
		workers:   WorkerCount(runtime.NumCPU()),
		witnesses: DefaultWitnesses,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WorkerCount returns the default number of search workers for a given
// number of CPUs: the largest of 1, 2, 4 and 8 which is not greater than
// half the CPU count (and at least 1).
func WorkerCount(cpus int) int {
	w := 1
	for w < 8 && (w << 2) <= cpus {
		w <<= 1
	}
	return w
}
