package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/app/cache"
	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/replay"
	"github.com/awmpietro/palindrome-trace/internal/tracegraph"
)

type svcStub struct {
	visualizeFn func(ctx context.Context, text, algorithm string, locale palindrome.Locale) (*app.Visualization, error)
	benchmarkFn func(ctx context.Context, text string) (bench.Result, error)
}

func (s *svcStub) Visualize(ctx context.Context, text, algorithm string, locale palindrome.Locale) (*app.Visualization, error) {
	return s.visualizeFn(ctx, text, algorithm, locale)
}

func (s *svcStub) Benchmark(ctx context.Context, text string) (bench.Result, error) {
	return s.benchmarkFn(ctx, text)
}

func (s *svcStub) Replay(ctx context.Context, text, algorithm string, locale palindrome.Locale, step int) (replay.State, error) {
	return replay.State{}, fmt.Errorf("not implemented")
}

func (s *svcStub) Algorithms() []palindrome.Info { return palindrome.Describe() }

func (s *svcStub) Cases() []palindrome.Case { return palindrome.Cases() }

func newRealHandler(t *testing.T) http.Handler {
	t.Helper()
	traces, err := cache.NewTraces(1 << 20)
	require.NoError(t, err)
	t.Cleanup(traces.Close)
	return NewHandler(app.NewService(traces, bench.NewRunner()), nil).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Health(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "Palindrome Visualizer API is running", out["message"])
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestHandler_KeepsRequestID(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodGet, "/", "", map[string]string{"X-Request-ID": "req-7"})
	assert.Equal(t, "req-7", rr.Header().Get("X-Request-ID"))
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := newRealHandler(t)
	for _, path := range []string{"/visualize", "/benchmark", "/replay"} {
		rr := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
	}
	rr := do(t, h, http.MethodPost, "/algorithms", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandler_Visualize_InvalidJSON(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", "{", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "invalid json", out["error"])
	assert.NotEmpty(t, out["details"])
}

func TestHandler_Visualize_SchemaViolation(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"abc"}`, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "invalid request", out["error"])
}

func TestHandler_Visualize_InvalidAlgorithm(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"abc","algorithm":"bogo"}`, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "invalid algorithm", out["error"])
}

func TestHandler_Visualize_TooLong(t *testing.T) {
	body := fmt.Sprintf(`{"text":%q,"algorithm":"manacher"}`, strings.Repeat("a", 1001))
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", body, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Visualize_Steps(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"babad","algorithm":"expand_center"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var steps []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &steps))
	require.NotEmpty(t, steps)
	assert.Equal(t, "init", steps[0]["type"])

	var maxLen float64
	for _, s := range steps {
		if s["type"] == "update_max" {
			maxLen = s["length"].(float64)
		}
	}
	assert.Equal(t, float64(3), maxLen)
}

func TestHandler_Visualize_Full(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"cbbd","algorithm":"manacher","format":"full"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Algorithm string                `json:"algorithm"`
		Steps     []palindrome.WireStep `json:"steps"`
		Result    palindrome.Result     `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "manacher", out.Algorithm)
	assert.Equal(t, "bb", out.Result.Longest.Value)
	assert.NotEmpty(t, out.Steps)
}

func TestHandler_Visualize_DOT(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"aba","algorithm":"brute_force","format":"dot"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/vnd.graphviz", rr.Header().Get("Content-Type"))

	g, err := tracegraph.Parse(rr.Body.String())
	require.NoError(t, err)
	assert.Equal(t, 1, g.Visits[palindrome.KindInit])
}

func TestHandler_Visualize_Msgpack(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/visualize", `{"text":"aa","algorithm":"manacher"}`,
		map[string]string{"Accept": "application/msgpack"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/msgpack", rr.Header().Get("Content-Type"))

	var steps []map[string]any
	require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &steps))
	require.NotEmpty(t, steps)
	assert.Equal(t, "init", steps[0]["type"])
	assert.Equal(t, "transform", steps[1]["type"])
	assert.Equal(t, "^#a#a#$", steps[1]["string"])
}

func TestHandler_Visualize_Locale(t *testing.T) {
	var got palindrome.Locale
	h := NewHandler(&svcStub{visualizeFn: func(ctx context.Context, text, algorithm string, locale palindrome.Locale) (*app.Visualization, error) {
		got = locale
		tr, res, err := palindrome.Visualize(text, algorithm, palindrome.WithLocale(locale))
		return &app.Visualization{Algorithm: palindrome.Algorithm(algorithm), Trace: tr, Result: res}, err
	}}, nil).Routes()

	rr := do(t, h, http.MethodPost, "/visualize", `{"text":"a","algorithm":"manacher","locale":"vi"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, palindrome.Vietnamese, got)
}

func TestHandler_Visualize_InternalError(t *testing.T) {
	h := NewHandler(&svcStub{visualizeFn: func(ctx context.Context, text, algorithm string, locale palindrome.Locale) (*app.Visualization, error) {
		return nil, &palindrome.InvariantError{Algorithm: palindrome.Manacher, Detail: "span out of range"}
	}}, nil).Routes()

	rr := do(t, h, http.MethodPost, "/visualize", `{"text":"a","algorithm":"manacher"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "internal error", out["error"])
}

func TestHandler_Benchmark(t *testing.T) {
	body := fmt.Sprintf(`{"text":%q}`, strings.Repeat("ab", 2500))
	rr := do(t, newRealHandler(t), http.MethodPost, "/benchmark", body, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Nil(t, out["brute_force"])
	assert.Nil(t, out["dynamic_programming"])
	assert.IsType(t, float64(0), out["expand_center"])
	assert.IsType(t, float64(0), out["manacher"])

	skipped := out["skipped"].(map[string]any)
	assert.Contains(t, skipped, "brute_force")
	assert.Contains(t, skipped, "dynamic_programming")
}

func TestHandler_Benchmark_SVG(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/benchmark", `{"text":"racecar","format":"svg"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<svg")
}

func TestHandler_Replay(t *testing.T) {
	rr := do(t, newRealHandler(t), http.MethodPost, "/replay", `{"text":"aa","algorithm":"dynamic_programming","step":7}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, float64(7), out["index"])
	table := out["table"].([]any)
	require.Len(t, table, 2)

	rr = do(t, newRealHandler(t), http.MethodPost, "/replay", `{"text":"aa","algorithm":"dynamic_programming","step":99}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Catalogs(t *testing.T) {
	h := newRealHandler(t)

	rr := do(t, h, http.MethodGet, "/algorithms", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var infos []palindrome.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &infos))
	assert.Len(t, infos, 4)

	rr = do(t, h, http.MethodGet, "/cases", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var cases []palindrome.Case
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cases))
	assert.NotEmpty(t, cases)
}
