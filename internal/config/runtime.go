package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/palindrome/skip"
)

type Runtime struct {
	HTTPAddr           string
	TraceCacheMaxCost  int
	MaxInputLength     int
	MaxBenchmarkLength int
	TraceMaxSteps      int
	SkipBruteForce     string
	SkipDP             string
	BenchParallel      bool
	ObsBuffer          int
	LogLevel           string
	DefaultLocale      string
}

func Load() Runtime {
	return Runtime{
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		TraceCacheMaxCost:  getenvInt("TRACE_CACHE_MAX_COST", 4_000_000, 0),
		MaxInputLength:     getenvInt("MAX_INPUT_LENGTH", 1000, 1),
		MaxBenchmarkLength: getenvInt("MAX_BENCHMARK_LENGTH", 20_000, 1),
		TraceMaxSteps:      getenvInt("TRACE_MAX_STEPS", palindrome.DefaultMaxSteps, 1),
		SkipBruteForce:     getenv("BENCH_SKIP_BRUTE_FORCE", skip.DefaultBruteForce),
		SkipDP:             getenv("BENCH_SKIP_DYNAMIC_PROGRAMMING", skip.DefaultDynamicProgramming),
		BenchParallel:      getenvBool("BENCH_PARALLEL", false),
		ObsBuffer:          getenvInt("OBS_BUFFER", 4096, 1),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		DefaultLocale:      getenv("DEFAULT_LOCALE", string(palindrome.English)),
	}
}

// SkipPolicy compiles the configured benchmark skip rules.
func (r Runtime) SkipPolicy() (skip.Policy, error) {
	return skip.NewPolicy(map[palindrome.Algorithm]string{
		palindrome.BruteForce:         r.SkipBruteForce,
		palindrome.DynamicProgramming: r.SkipDP,
	})
}

// Limits applies MaxInputLength and MaxBenchmarkLength on top of the
// service's per-engine visualize caps.
func (r Runtime) Limits() app.Limits {
	l := app.DefaultLimits()
	l.MaxInputLength = r.MaxInputLength
	l.MaxBenchmarkLength = r.MaxBenchmarkLength
	return l
}

// Locale returns the configured default locale, falling back to English.
func (r Runtime) Locale() palindrome.Locale {
	return palindrome.ParseLocale(r.DefaultLocale)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
