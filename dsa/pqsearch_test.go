package dsa

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

func TestQBits(t *testing.T) {
	var expected = map[int]int{1024: 160, 2048: 224, 3072: 256}
	for bits, n := range expected {
		got, err := QBits(bits)
		if err != nil || got != n {
			t.Fatalf("ERR: QBits(%d) -> %d, %v (exp: %d)\n", bits, got, err, n)
		}
	}
	for _, bits := range []int{0, 512, 1023, 4096} {
		if _, err := QBits(bits); !errors.Is(err, ErrInvalidKeySize) {
			t.Fatalf("ERR: QBits(%d) -> %v\n", bits, err)
		}
	}
}

func TestWorkerCount(t *testing.T) {
	var expected = []struct{ cpus, w int }{
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 2},
		{8, 4}, {15, 4}, {16, 8}, {64, 8},
	}
	for _, e := range expected {
		if w := WorkerCount(e.cpus); w != e.w {
			t.Fatalf("ERR: WorkerCount(%d) -> %d (exp: %d)\n", e.cpus, w, e.w)
		}
	}
}

func TestRaceFirstWinner(t *testing.T) {
	const workers = 6
	var cancelled, finished int32
	search := func(ctx context.Context, id int) (*pqResult, error) {
		if id == 3 {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&finished, 1)
			return &pqResult{worker: id, p: &PrimeCandidate{Value: big.NewInt(int64(id))}}, nil
		}
		<-ctx.Done()
		atomic.AddInt32(&cancelled, 1)
		return nil, ErrSearchCancelled
	}
	res, err := race_pq(context.Background(), workers, search)
	if err != nil {
		t.Fatal(err)
	}
	if res.worker != 3 {
		t.Fatalf("ERR: wrong winner %d\n", res.worker)
	}

	// All losers have been joined before race_pq returned.
	if c := atomic.LoadInt32(&cancelled); c != workers-1 {
		t.Fatalf("ERR: %d workers observed cancellation (exp: %d)\n", c, workers-1)
	}
	if f := atomic.LoadInt32(&finished); f != 1 {
		t.Fatalf("ERR: %d results produced\n", f)
	}
}

func TestRaceSingleAdoption(t *testing.T) {
	// Every worker finds a result at about the same time; exactly one is
	// adopted.
	search := func(ctx context.Context, id int) (*pqResult, error) {
		return &pqResult{worker: id}, nil
	}
	for i := 0; i < 50; i++ {
		res, err := race_pq(context.Background(), 8, search)
		if err != nil {
			t.Fatal(err)
		}
		if res == nil || res.worker < 0 || res.worker >= 8 {
			t.Fatalf("ERR: bad result %v\n", res)
		}
	}
}

func TestRaceWorkerError(t *testing.T) {
	boom := errors.New("rng failure")
	search := func(ctx context.Context, id int) (*pqResult, error) {
		if id == 0 {
			return nil, boom
		}
		<-ctx.Done()
		return nil, ErrSearchCancelled
	}
	if _, err := race_pq(context.Background(), 4, search); !errors.Is(err, boom) {
		t.Fatalf("ERR: expected worker error, got %v\n", err)
	}
}

func TestRaceParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	search := func(ctx context.Context, id int) (*pqResult, error) {
		<-ctx.Done()
		return nil, ErrSearchCancelled
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := race_pq(ctx, 4, search)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ERR: expected context.Canceled, got %v\n", err)
	}
	if errors.Is(err, ErrSearchCancelled) {
		t.Fatalf("ERR: ErrSearchCancelled leaked out of the race\n")
	}
}

func check_pq(t *testing.T, p, q *PrimeCandidate, bits int) {
	qbits, _ := QBits(bits)
	if p.Value.BitLen() != bits || q.Value.BitLen() != qbits {
		t.Fatalf("ERR: wrong sizes: p=%d q=%d\n", p.Value.BitLen(), q.Value.BitLen())
	}
	t1 := new(big.Int).Sub(p.Value, bigOne)
	if t1.Mod(t1, q.Value).Sign() != 0 {
		t.Fatalf("ERR: q does not divide p-1\n")
	}
	for _, x := range []*big.Int{p.Value, q.Value} {
		r, err := IsProbablePrime(nil, x, 40)
		if err != nil {
			t.Fatal(err)
		}
		if !r {
			t.Fatalf("ERR: %s is not prime\n", x)
		}
	}
	if !q.Provable() || !q.Cert.Verify() {
		t.Fatalf("ERR: q has no valid certificate\n")
	}
	if p.Provable() {
		t.Fatalf("ERR: p should be a probable prime\n")
	}
}

func TestGeneratePQ(t *testing.T) {
	sizes := []int{1024}
	if !testing.Short() {
		sizes = append(sizes, 2048, 3072)
	}
	for _, bits := range sizes {
		p, q, err := GeneratePQ(context.Background(), bits, WithWorkers(2))
		if err != nil {
			t.Fatal(err)
		}
		check_pq(t, p, q, bits)
	}
}

func TestGeneratePQDeterministic(t *testing.T) {
	gen := func() (*PrimeCandidate, *PrimeCandidate) {
		p, q, err := GeneratePQ(context.Background(), 1024,
			WithWorkers(1), WithRand(NewSeededReader([]byte("pq"))))
		if err != nil {
			t.Fatal(err)
		}
		return p, q
	}
	p1, q1 := gen()
	p2, q2 := gen()
	if p1.Value.Cmp(p2.Value) != 0 || q1.Value.Cmp(q2.Value) != 0 {
		t.Fatalf("ERR: same seed, different (p, q)\n")
	}
	check_pq(t, p1, q1, 1024)
}

func TestGeneratePQErrors(t *testing.T) {
	if _, _, err := GeneratePQ(context.Background(), 1000); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("ERR: expected ErrInvalidKeySize, got %v\n", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := GeneratePQ(ctx, 1024, WithWorkers(4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ERR: expected context.Canceled, got %v\n", err)
	}
}
