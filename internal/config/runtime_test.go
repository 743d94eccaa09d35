package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 1000, cfg.MaxInputLength)
	assert.Equal(t, 20_000, cfg.MaxBenchmarkLength)
	assert.Equal(t, palindrome.DefaultMaxSteps, cfg.TraceMaxSteps)
	assert.False(t, cfg.BenchParallel)
	assert.Equal(t, palindrome.English, cfg.Locale())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MAX_INPUT_LENGTH", "500")
	t.Setenv("BENCH_PARALLEL", "true")
	t.Setenv("DEFAULT_LOCALE", "vi")
	t.Setenv("BENCH_SKIP_BRUTE_FORCE", "n > 10")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 500, cfg.MaxInputLength)
	assert.True(t, cfg.BenchParallel)
	assert.Equal(t, palindrome.Vietnamese, cfg.Locale())

	p, err := cfg.SkipPolicy()
	require.NoError(t, err)
	skipped, _, err := p.Skip(palindrome.BruteForce, 11)
	require.NoError(t, err)
	assert.True(t, skipped)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_INPUT_LENGTH", "zero")
	t.Setenv("TRACE_MAX_STEPS", "-5")
	t.Setenv("BENCH_PARALLEL", "maybe")

	cfg := Load()
	assert.Equal(t, 1000, cfg.MaxInputLength)
	assert.Equal(t, palindrome.DefaultMaxSteps, cfg.TraceMaxSteps)
	assert.False(t, cfg.BenchParallel)
}

func TestSkipPolicyRejectsBadRule(t *testing.T) {
	t.Setenv("BENCH_SKIP_DYNAMIC_PROGRAMMING", "len(n) > 3")

	_, err := Load().SkipPolicy()
	require.Error(t, err)
}

func TestRuntimeLimits(t *testing.T) {
	t.Setenv("MAX_INPUT_LENGTH", "150")
	t.Setenv("MAX_BENCHMARK_LENGTH", "5000")

	l := Load().Limits()
	assert.Equal(t, 150, l.MaxInputLength)
	assert.Equal(t, 5000, l.MaxBenchmarkLength)
	assert.Equal(t, 600, l.PerAlgorithm[palindrome.DynamicProgramming])
}
