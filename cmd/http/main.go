package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/klauspost/compress/gzhttp"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/app/cache"
	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/config"
	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/transport/httptransport"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

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
	h := httptransport.NewHandler(svc, logger)

	logger.Info("listening", slog.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, gzhttp.GzipHandler(h.Routes())); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
