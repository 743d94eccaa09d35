package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/awmpietro/palindrome-trace/internal/app/cache"
	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/replay"
)

type Cache interface {
	GetOrCompute(key string, fn func() (*cache.Entry, error)) (*cache.Entry, error)
}

type Runner interface {
	Run(ctx context.Context, text string) (bench.Result, error)
}

// Limits bounds the inputs the service accepts, in runes.
type Limits struct {
	MaxInputLength     int
	MaxBenchmarkLength int
	// PerAlgorithm caps visualize below MaxInputLength for engines whose
	// traces grow fastest.
	PerAlgorithm map[palindrome.Algorithm]int
}

// DefaultLimits keeps every default trace under palindrome.DefaultMaxSteps.
func DefaultLimits() Limits {
	return Limits{
		MaxInputLength:     1000,
		MaxBenchmarkLength: 20_000,
		PerAlgorithm: map[palindrome.Algorithm]int{
			palindrome.BruteForce:         200,
			palindrome.DynamicProgramming: 600,
		},
	}
}

func (l Limits) visualize(algo palindrome.Algorithm) int {
	limit := l.MaxInputLength
	if v, ok := l.PerAlgorithm[algo]; ok && v < limit {
		limit = v
	}
	return limit
}

// Visualization is a finished traced run.
type Visualization struct {
	Algorithm palindrome.Algorithm
	Input     string
	Length    int
	Trace     *palindrome.Trace
	Result    palindrome.Result
}

type Service struct {
	cache    Cache
	runner   Runner
	observer RunObserver
	limits   Limits
	locale   palindrome.Locale
	maxSteps int
}

type Option func(*Service)

func WithObserver(o RunObserver) Option {
	return func(s *Service) {
		s.observer = o
	}
}

func WithLimits(l Limits) Option {
	return func(s *Service) {
		s.limits = l
	}
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(l palindrome.Locale) Option {
	return func(s *Service) {
		s.locale = l
	}
}

// WithMaxSteps sets the per-trace step budget.
func WithMaxSteps(n int) Option {
	return func(s *Service) {
		s.maxSteps = n
	}
}

func NewService(c Cache, runner Runner, opts ...Option) *Service {
	s := &Service{
		cache:    c,
		runner:   runner,
		limits:   DefaultLimits(),
		locale:   palindrome.English,
		maxSteps: palindrome.DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Visualize runs one engine and returns its full trace. Results are cached
// per (algorithm, locale, step budget, text).
func (s *Service) Visualize(ctx context.Context, text, algorithm string, locale palindrome.Locale) (v *Visualization, err error) {
	start := time.Now()
	n := len([]rune(text))
	ev := RunEvent{Op: "visualize", Length: n}
	defer func() {
		ev.Duration, ev.Err = time.Since(start), err
		if v != nil {
			ev.Steps = v.Trace.Len()
		}
		s.observe(ctx, ev)
	}()

	algo, err := palindrome.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	ev.Algorithm = algo
	if limit := s.limits.visualize(algo); n > limit {
		return nil, fmt.Errorf("%w: %d characters exceeds the %s limit of %d", palindrome.ErrInputTooLarge, n, algo, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if locale == "" {
		locale = s.locale
	}

	key := cache.Key(string(algo), string(locale), strconv.Itoa(s.maxSteps), text)
	entry, err := s.cache.GetOrCompute(key, func() (*cache.Entry, error) {
		e, err := palindrome.Lookup(algo)
		if err != nil {
			return nil, err
		}
		tr, res, err := e.Trace(text, palindrome.WithLocale(locale), palindrome.WithMaxSteps(s.maxSteps))
		if err != nil {
			return nil, err
		}
		return &cache.Entry{Trace: tr, Result: res}, nil
	})
	if err != nil {
		return nil, err
	}

	return &Visualization{
		Algorithm: algo,
		Input:     text,
		Length:    n,
		Trace:     entry.Trace,
		Result:    entry.Result,
	}, nil
}

// Benchmark times every engine on text under the runner's skip policy.
func (s *Service) Benchmark(ctx context.Context, text string) (res bench.Result, err error) {
	start := time.Now()
	n := len([]rune(text))
	defer func() {
		s.observe(ctx, RunEvent{Op: "benchmark", Length: n, Duration: time.Since(start), Err: err})
	}()

	if n > s.limits.MaxBenchmarkLength {
		return bench.Result{}, fmt.Errorf("%w: %d characters exceeds the benchmark limit of %d", palindrome.ErrInputTooLarge, n, s.limits.MaxBenchmarkLength)
	}
	return s.runner.Run(ctx, text)
}

// Replay returns the visual state after the given step of a run.
func (s *Service) Replay(ctx context.Context, text, algorithm string, locale palindrome.Locale, step int) (replay.State, error) {
	v, err := s.Visualize(ctx, text, algorithm, locale)
	if err != nil {
		return replay.State{}, err
	}
	return replay.At(v.Trace, step)
}

func (s *Service) Algorithms() []palindrome.Info {
	return palindrome.Describe()
}

func (s *Service) Cases() []palindrome.Case {
	return palindrome.Cases()
}

func (s *Service) observe(ctx context.Context, ev RunEvent) {
	if s.observer != nil {
		s.observer.ObserveRun(ctx, ev)
	}
}
