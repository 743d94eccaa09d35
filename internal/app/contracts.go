package app

import (
	"context"

	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/replay"
)

// PalindromeService is what the transports call.
type PalindromeService interface {
	Visualize(ctx context.Context, text, algorithm string, locale palindrome.Locale) (*Visualization, error)
	Benchmark(ctx context.Context, text string) (bench.Result, error)
	Replay(ctx context.Context, text, algorithm string, locale palindrome.Locale, step int) (replay.State, error)
	Algorithms() []palindrome.Info
	Cases() []palindrome.Case
}
