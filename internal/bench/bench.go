// Package bench times the four engines on one input.
package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/palindrome/skip"
)

// Timing is one engine's measurement. A skipped engine has Skipped set and
// no elapsed time; it is never reported as a zero-duration run.
type Timing struct {
	Algorithm palindrome.Algorithm
	Elapsed   time.Duration
	Skipped   bool
	Reason    string
	// Longest is the answer length the timed run produced.
	Longest int
}

// Millis returns the elapsed wall-clock time in milliseconds.
func (t Timing) Millis() float64 {
	return float64(t.Elapsed.Nanoseconds()) / 1e6
}

// Result holds one Timing per engine.
type Result struct {
	Length  int
	Timings map[palindrome.Algorithm]Timing
}

// Ran lists the engines that were actually timed, in presentation order.
func (r Result) Ran() []Timing {
	out := make([]Timing, 0, len(r.Timings))
	for _, a := range palindrome.Algorithms() {
		if t, ok := r.Timings[a]; ok && !t.Skipped {
			out = append(out, t)
		}
	}
	return out
}

// Skipped lists the engines left out, in presentation order.
func (r Result) Skipped() []Timing {
	out := make([]Timing, 0, len(r.Timings))
	for _, a := range palindrome.Algorithms() {
		if t, ok := r.Timings[a]; ok && t.Skipped {
			out = append(out, t)
		}
	}
	return out
}

// Runner measures engines under a skip policy.
type Runner struct {
	policy   skip.Policy
	parallel bool
	now      func() time.Time
}

type Option func(*Runner)

// WithPolicy replaces the default skip policy.
func WithPolicy(p skip.Policy) Option {
	return func(r *Runner) {
		r.policy = p
	}
}

// WithParallel times every engine in its own goroutine. Each goroutine owns
// its timer, so measurements stay per-engine.
func WithParallel(parallel bool) Option {
	return func(r *Runner) {
		r.parallel = parallel
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{policy: skip.Default(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run benchmarks every engine on text. Only Solve is timed; no steps are
// recorded.
func (r *Runner) Run(ctx context.Context, text string) (Result, error) {
	n := len([]rune(text))
	algos := palindrome.Algorithms()
	timings := make([]Timing, len(algos))

	for i, algo := range algos {
		skipped, reason, err := r.policy.Skip(algo, n)
		if err != nil {
			return Result{}, err
		}
		timings[i] = Timing{Algorithm: algo, Skipped: skipped, Reason: reason}
	}

	if r.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range timings {
			if timings[i].Skipped {
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return r.measure(&timings[i], text)
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	} else {
		for i := range timings {
			if timings[i].Skipped {
				continue
			}
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			if err := r.measure(&timings[i], text); err != nil {
				return Result{}, err
			}
		}
	}

	out := Result{Length: n, Timings: make(map[palindrome.Algorithm]Timing, len(timings))}
	for _, t := range timings {
		out.Timings[t.Algorithm] = t
	}
	return out, nil
}

func (r *Runner) measure(t *Timing, text string) error {
	e, err := palindrome.Lookup(t.Algorithm)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}
	start := r.now()
	res := e.Solve(text)
	t.Elapsed = r.now().Sub(start)
	t.Longest = res.Longest.Length
	return nil
}
