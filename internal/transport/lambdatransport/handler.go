package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/chart"
	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/tracegraph"
	"github.com/awmpietro/palindrome-trace/internal/transport/dto"
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

type route func(ctx context.Context, body []byte) events.APIGatewayV2HTTPResponse

// Handle dispatches an API Gateway v2 request by method and path.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	id := req.RequestContext.RequestID
	if id == "" {
		ctx, id = logging.NewRequestID(ctx)
	} else {
		ctx = logging.WithRequestID(ctx, id)
	}

	method, path := routeOf(req)
	routes := map[string]map[string]route{
		"/":           {http.MethodGet: h.health},
		"/visualize":  {http.MethodPost: h.visualize},
		"/benchmark":  {http.MethodPost: h.benchmark},
		"/replay":     {http.MethodPost: h.replay},
		"/algorithms": {http.MethodGet: h.algorithms},
		"/cases":      {http.MethodGet: h.cases},
	}
	byMethod, ok := routes[path]
	if !ok {
		return withID(jsonResp(http.StatusNotFound, map[string]any{"error": "not found", "details": path}), id), nil
	}
	fn, ok := byMethod[method]
	if !ok {
		return withID(jsonResp(http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed", "details": method}), id), nil
	}

	body, err := readBody(req)
	if err != nil {
		return withID(jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid body", "details": err.Error()}), id), nil
	}
	return withID(fn(ctx, body), id), nil
}

func (h *Handler) health(ctx context.Context, _ []byte) events.APIGatewayV2HTTPResponse {
	return jsonResp(http.StatusOK, dto.HealthResponse{Message: dto.HealthMessage})
}

func (h *Handler) visualize(ctx context.Context, body []byte) events.APIGatewayV2HTTPResponse {
	in, err := h.v.DecodeVisualize(body)
	if err != nil {
		return h.fail(ctx, err)
	}
	v, err := h.svc.Visualize(ctx, in.Text, in.Algorithm, in.LocaleOrDefault())
	if err != nil {
		return h.fail(ctx, err)
	}
	switch in.Format {
	case dto.FormatDOT:
		dot, err := tracegraph.Export(v.Trace)
		if err != nil {
			return h.fail(ctx, err)
		}
		return rawResp(http.StatusOK, "text/vnd.graphviz", dot)
	case dto.FormatFull:
		return jsonResp(http.StatusOK, dto.NewVisualizeResponse(v))
	default:
		return jsonResp(http.StatusOK, v.Trace.Wire())
	}
}

func (h *Handler) benchmark(ctx context.Context, body []byte) events.APIGatewayV2HTTPResponse {
	in, err := h.v.DecodeBenchmark(body)
	if err != nil {
		return h.fail(ctx, err)
	}
	res, err := h.svc.Benchmark(ctx, in.Text)
	if err != nil {
		return h.fail(ctx, err)
	}
	if in.Format != dto.FormatSVG && in.Format != dto.FormatPNG {
		return jsonResp(http.StatusOK, dto.BenchmarkBody(res))
	}

	format, err := chart.ParseFormat(in.Format)
	if err != nil {
		return h.fail(ctx, err)
	}
	img, err := chart.Render(res, format)
	if err != nil {
		return h.fail(ctx, err)
	}
	if format == chart.PNG {
		resp := rawResp(http.StatusOK, format.ContentType(), base64.StdEncoding.EncodeToString(img))
		resp.IsBase64Encoded = true
		return resp
	}
	return rawResp(http.StatusOK, format.ContentType(), string(img))
}

func (h *Handler) replay(ctx context.Context, body []byte) events.APIGatewayV2HTTPResponse {
	in, err := h.v.DecodeReplay(body)
	if err != nil {
		return h.fail(ctx, err)
	}
	st, err := h.svc.Replay(ctx, in.Text, in.Algorithm, in.LocaleOrDefault(), in.Step)
	if err != nil {
		return h.fail(ctx, err)
	}
	return jsonResp(http.StatusOK, dto.NewReplayResponse(st))
}

func (h *Handler) algorithms(ctx context.Context, _ []byte) events.APIGatewayV2HTTPResponse {
	return jsonResp(http.StatusOK, h.svc.Algorithms())
}

func (h *Handler) cases(ctx context.Context, _ []byte) events.APIGatewayV2HTTPResponse {
	return jsonResp(http.StatusOK, h.svc.Cases())
}

func (h *Handler) fail(ctx context.Context, err error) events.APIGatewayV2HTTPResponse {
	status := dto.Status(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
	}
	return jsonResp(status, dto.ErrorBody(dto.Message(err), err))
}

// routeOf prefers the HTTP fields of the request context and falls back to
// the "METHOD /path" route key.
func routeOf(req events.APIGatewayV2HTTPRequest) (method, path string) {
	method = strings.ToUpper(req.RequestContext.HTTP.Method)
	path = req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	if method == "" || path == "" {
		if m, p, ok := strings.Cut(req.RouteKey, " "); ok {
			if method == "" {
				method = strings.ToUpper(m)
			}
			if path == "" {
				path = p
			}
		}
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return method, path
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return rawResp(status, "application/json", string(b))
}

func rawResp(status int, contentType, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": contentType},
		Body:       body,
	}
}

func withID(resp events.APIGatewayV2HTTPResponse, id string) events.APIGatewayV2HTTPResponse {
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers["x-request-id"] = id
	return resp
}
