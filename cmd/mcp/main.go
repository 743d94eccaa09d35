package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/app/cache"
	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/config"
	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/transport/mcptransport"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	// stdout carries the protocol; logs go to stderr.
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	policy, err := cfg.SkipPolicy()
	if err != nil {
		log.Fatalf("invalid skip policy: %v", err)
	}
	traces, err := cache.NewTraces(int64(cfg.TraceCacheMaxCost))
	if err != nil {
		log.Fatalf("trace cache: %v", err)
	}
	defer traces.Close()

	runObserver := app.NewAsyncRunObserver(app.NewRunLogger(logger), cfg.ObsBuffer)
	defer runObserver.Close()

	runner := bench.NewRunner(bench.WithPolicy(policy), bench.WithParallel(cfg.BenchParallel))
	svc := app.NewService(traces, runner,
		app.WithObserver(runObserver),
		app.WithLimits(cfg.Limits()),
		app.WithMaxSteps(cfg.TraceMaxSteps),
		app.WithDefaultLocale(cfg.Locale()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcptransport.NewServer(svc, version, logger).Serve(ctx); err != nil && ctx.Err() == nil {
		logger.Error("mcp server stopped", "error", err)
	}
}
