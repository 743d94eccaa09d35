package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/chart"
	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/tracegraph"
	"github.com/awmpietro/palindrome-trace/internal/transport/dto"
)

const (
	maxBodyBytes = 1 << 20

	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
	contentTypeDOT     = "text/vnd.graphviz"
	requestIDHeader    = "X-Request-ID"
)

type Handler struct {
	svc    app.PalindromeService
	v      *dto.Validator
	logger *slog.Logger
}

func NewHandler(svc app.PalindromeService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, v: dto.MustValidator(), logger: logger}
}

// Routes mounts every endpoint and tags each request with an ID.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", h.Health)
	mux.HandleFunc("/visualize", h.Visualize)
	mux.HandleFunc("/benchmark", h.Benchmark)
	mux.HandleFunc("/replay", h.Replay)
	mux.HandleFunc("/algorithms", h.Algorithms)
	mux.HandleFunc("/cases", h.Cases)
	return withRequestID(mux)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeBody(w, r, http.StatusOK, dto.HealthResponse{Message: dto.HealthMessage})
}

func (h *Handler) Visualize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.v.DecodeVisualize(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := h.svc.Visualize(r.Context(), in.Text, in.Algorithm, in.LocaleOrDefault())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch in.Format {
	case dto.FormatDOT:
		dot, err := tracegraph.Export(v.Trace)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeRaw(w, http.StatusOK, contentTypeDOT, []byte(dot))
	case dto.FormatFull:
		writeBody(w, r, http.StatusOK, dto.NewVisualizeResponse(v))
	default:
		writeBody(w, r, http.StatusOK, v.Trace.Wire())
	}
}

func (h *Handler) Benchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.v.DecodeBenchmark(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.svc.Benchmark(r.Context(), in.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch in.Format {
	case dto.FormatSVG, dto.FormatPNG:
		format, err := chart.ParseFormat(in.Format)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		img, err := chart.Render(res, format)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeRaw(w, http.StatusOK, format.ContentType(), img)
	default:
		writeBody(w, r, http.StatusOK, dto.BenchmarkBody(res))
	}
}

func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.v.DecodeReplay(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	st, err := h.svc.Replay(r.Context(), in.Text, in.Algorithm, in.LocaleOrDefault(), in.Step)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBody(w, r, http.StatusOK, dto.NewReplayResponse(st))
}

func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeBody(w, r, http.StatusOK, h.svc.Algorithms())
}

func (h *Handler) Cases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeBody(w, r, http.StatusOK, h.svc.Cases())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := dto.Status(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
	writeBody(w, r, status, dto.ErrorBody(dto.Message(err), err))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body", "details": err.Error()})
		return nil, false
	}
	return body, true
}

// writeBody encodes body as msgpack when the client accepts it, JSON
// otherwise.
func writeBody(w http.ResponseWriter, r *http.Request, status int, body any) {
	if !wantsMsgpack(r) {
		writeJSON(w, status, body)
		return
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(body); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "encode failed", "details": err.Error()})
		return
	}
	writeRaw(w, status, contentTypeMsgpack, buf.Bytes())
}

func wantsMsgpack(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, contentTypeMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			ctx, id = logging.NewRequestID(ctx)
		} else {
			ctx = logging.WithRequestID(ctx, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
