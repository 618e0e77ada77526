// Package sweep runs an exhaustive self-check of the numtheory package: every
// square root modulo every prime up to a bound, table primality against the
// standard library, and Miller-Rabin against randomly sampled composites.
package sweep

import (
	"context"
	"crypto/cipher"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drand/kyber/group/mod"
	"github.com/drand/kyber/util/random"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/drand/numtheory/common/log"
	"github.com/drand/numtheory/internal/config"
	"github.com/drand/numtheory/internal/metrics"
	"github.com/drand/numtheory/numtheory"
)

// probablyPrimeRounds is the number of Miller-Rabin rounds of the reference
// test, on top of its Baillie-PSW test.
const probablyPrimeRounds = 20

// Report summarises a sweep.
type Report struct {
	RunID            string        `json:"run_id"`
	MaxPrime         int64         `json:"max_prime"`
	Primes           int           `json:"primes"`
	SquareRootChecks uint64        `json:"sqrt_checks"`
	PrimalityChecks  uint64        `json:"primality_checks"`
	CompositeSamples int           `json:"composite_samples"`
	MaxWitnessRounds int           `json:"max_witness_rounds"`
	Elapsed          time.Duration `json:"elapsed"`
}

// Sweeper runs verification sweeps. It is not meant to run two sweeps
// concurrently.
type Sweeper struct {
	cfg    *config.Sweep
	l      log.Logger
	clock  clockwork.Clock
	stream cipher.Stream

	sqrt    func(a, p *big.Int) (*big.Int, error)
	isPrime func(n *big.Int) numtheory.PrimalityResult

	primesDone  uint64
	primesTotal uint64
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithLogger sets the logger. Otherwise Run uses the logger found on its
// context.
func WithLogger(l log.Logger) Option {
	return func(s *Sweeper) {
		s.l = l
	}
}

// WithClock sets the clock used to time the sweep.
func WithClock(c clockwork.Clock) Option {
	return func(s *Sweeper) {
		s.clock = c
	}
}

// WithRandomStream sets the source of the sampled composites.
func WithRandomStream(stream cipher.Stream) Option {
	return func(s *Sweeper) {
		s.stream = stream
	}
}

// New returns a Sweeper for the given configuration.
func New(cfg *config.Sweep, opts ...Option) (*Sweeper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sweeper{
		cfg:     cfg,
		clock:   clockwork.NewRealClock(),
		stream:  random.New(),
		sqrt:    numtheory.SquareRootModPrime,
		isPrime: numtheory.TestPrimality,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Progress returns how many primes of the square root check are done, out
// of how many.
func (s *Sweeper) Progress() (done, total uint64) {
	return atomic.LoadUint64(&s.primesDone), atomic.LoadUint64(&s.primesTotal)
}

// Run performs the sweep. Check failures do not stop it: they are all
// collected in the returned *multierror.Error, alongside a complete report.
// Context cancellation stops it early and returns the context error.
func (s *Sweeper) Run(ctx context.Context) (*Report, error) {
	start := s.clock.Now()
	report := &Report{
		RunID:    uuid.New().String(),
		MaxPrime: s.cfg.MaxPrime,
	}
	l := s.l
	if l == nil {
		l = log.FromContextOrDefault(ctx)
	}
	l = l.Named("sweep").With("run", report.RunID)
	l.Infow("starting sweep", "max_prime", s.cfg.MaxPrime, "workers", s.cfg.Workers,
		"composite_samples", s.cfg.CompositeSamples, "composite_bits", s.cfg.CompositeBits)

	var failures *multierror.Error

	primes := s.primes()
	report.Primes = len(primes)
	atomic.StoreUint64(&s.primesDone, 0)
	atomic.StoreUint64(&s.primesTotal, uint64(len(primes)))

	checks, err := s.checkSquareRoots(ctx, primes, &failures)
	if err != nil {
		return nil, err
	}
	report.SquareRootChecks = checks
	l.Debugw("square roots checked", "primes", len(primes), "checks", checks)

	checks, err = s.checkTablePrimality(ctx, &failures)
	if err != nil {
		return nil, err
	}
	report.PrimalityChecks = checks

	report.CompositeSamples, report.MaxWitnessRounds, err = s.checkComposites(ctx, &failures)
	if err != nil {
		return nil, err
	}

	report.Elapsed = s.clock.Since(start)
	metrics.SweepDuration.Set(report.Elapsed.Seconds())

	if err := failures.ErrorOrNil(); err != nil {
		l.Errorw("sweep finished with failures", "failures", failures.Len(), "elapsed", report.Elapsed)
		return report, err
	}
	l.Infow("sweep finished", "sqrt_checks", report.SquareRootChecks,
		"primality_checks", report.PrimalityChecks, "elapsed", report.Elapsed)
	return report, nil
}

// primes lists every odd prime up to MaxPrime.
func (s *Sweeper) primes() []*big.Int {
	var res []*big.Int
	limit := big.NewInt(s.cfg.MaxPrime)
	for p := numtheory.NextPrime(big.NewInt(2)); p.Cmp(limit) <= 0; p = numtheory.NextPrime(p) {
		res = append(res, p)
	}
	return res
}

func (s *Sweeper) checkSquareRoots(ctx context.Context, primes []*big.Int, failures **multierror.Error) (uint64, error) {
	var (
		mu     sync.Mutex
		checks uint64
	)
	todo := make(chan *big.Int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(todo)
		for _, p := range primes {
			select {
			case todo <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.cfg.Workers; i++ {
		g.Go(func() error {
			for p := range todo {
				if err := ctx.Err(); err != nil {
					return err
				}
				n, errs := s.checkPrime(p)
				atomic.AddUint64(&checks, n)
				atomic.AddUint64(&s.primesDone, 1)
				if len(errs) > 0 {
					mu.Lock()
					*failures = multierror.Append(*failures, errs...)
					mu.Unlock()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return checks, nil
}

// checkPrime checks the Jacobi symbol and the square root of every a in
// [0, p).
func (s *Sweeper) checkPrime(p *big.Int) (uint64, []error) {
	var errs []error
	var checks uint64
	fail := func(kind string, err error) {
		metrics.SweepFailures.WithLabelValues(kind).Inc()
		errs = append(errs, err)
	}

	a := new(big.Int)
	sq := new(big.Int)
	for ; a.Cmp(p) < 0; a.Add(a, big.NewInt(1)) {
		jac, err := numtheory.Jacobi(a, p)
		if err != nil {
			fail(metrics.KindJacobi, fmt.Errorf("jacobi(%s, %s): %w", a, p, err))
			continue
		}
		metrics.SweepChecks.WithLabelValues(metrics.KindJacobi).Inc()
		if want := referenceJacobi(a, p); want != jac {
			fail(metrics.KindJacobi, fmt.Errorf("jacobi(%s, %s) = %d, want %d", a, p, jac, want))
		}

		checks++
		metrics.SweepChecks.WithLabelValues(metrics.KindSquareRoot).Inc()
		r, err := s.sqrt(a, p)
		if jac == -1 {
			if !errors.Is(err, numtheory.ErrNoSquareRoot) {
				fail(metrics.KindSquareRoot, fmt.Errorf("sqrt(%s) mod %s: non-residue not rejected, got %v, %v", a, p, r, err))
			}
			continue
		}
		if err != nil {
			fail(metrics.KindSquareRoot, fmt.Errorf("sqrt(%s) mod %s: %w", a, p, err))
			continue
		}
		sq.Mul(r, r).Mod(sq, p)
		if r.Sign() < 0 || r.Cmp(p) >= 0 || sq.Cmp(a) != 0 {
			fail(metrics.KindSquareRoot, fmt.Errorf("sqrt(%s) mod %s = %s is not a square root", a, p, r))
		}
	}
	return checks, errs
}

// referenceJacobi computes (a/p) with kyber's modular integers.
func referenceJacobi(a, p *big.Int) int {
	sym := mod.NewInt64(0, p).Jacobi(mod.NewInt(a, p))
	return int(sym.(*mod.Int).V.Int64())
}

// checkTablePrimality compares IsPrime with the standard library on every
// integer up to MaxPrime.
func (s *Sweeper) checkTablePrimality(ctx context.Context, failures **multierror.Error) (uint64, error) {
	var checks uint64
	n := new(big.Int)
	for i := int64(0); i <= s.cfg.MaxPrime; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		n.SetInt64(i)
		checks++
		metrics.SweepChecks.WithLabelValues(metrics.KindPrimality).Inc()
		if got, want := s.isPrime(n).Prime, n.ProbablyPrime(probablyPrimeRounds); got != want {
			metrics.SweepFailures.WithLabelValues(metrics.KindPrimality).Inc()
			*failures = multierror.Append(*failures, fmt.Errorf("is_prime(%d) = %v, want %v", i, got, want))
		}
	}
	return checks, nil
}

// checkComposites samples random odd integers of CompositeBits bits and
// checks that every composite among them is rejected. It returns the number
// of composites sampled and the largest number of witnesses one needed.
func (s *Sweeper) checkComposites(ctx context.Context, failures **multierror.Error) (int, int, error) {
	sampled, maxRounds := 0, 0
	n := new(big.Int)
	for i := 0; i < s.cfg.CompositeSamples; i++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		n.SetBytes(random.Bits(uint(s.cfg.CompositeBits), true, s.stream))
		n.SetBit(n, 0, 1)
		if n.ProbablyPrime(probablyPrimeRounds) {
			continue
		}

		sampled++
		metrics.SweepChecks.WithLabelValues(metrics.KindComposite).Inc()
		res := s.isPrime(n)
		metrics.MillerRabinRounds.Observe(float64(res.WitnessRounds))
		if res.WitnessRounds > maxRounds {
			maxRounds = res.WitnessRounds
		}
		if res.Prime {
			metrics.SweepFailures.WithLabelValues(metrics.KindComposite).Inc()
			*failures = multierror.Append(*failures, fmt.Errorf("composite %s reported prime", n))
		}
	}
	return sampled, maxRounds, nil
}
