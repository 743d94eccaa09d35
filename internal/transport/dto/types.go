// Package dto holds the request and response shapes shared by every
// transport.
package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/replay"
)

// Visualize response formats.
const (
	FormatSteps = "steps"
	FormatFull  = "full"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
)

type VisualizeRequest struct {
	Text      string `json:"text" msgpack:"text"`
	Algorithm string `json:"algorithm" msgpack:"algorithm"`
	Locale    string `json:"locale,omitempty" msgpack:"locale,omitempty"`
	Format    string `json:"format,omitempty" msgpack:"format,omitempty"`
}

func (r VisualizeRequest) LocaleOrDefault() palindrome.Locale {
	if r.Locale == "" {
		return ""
	}
	return palindrome.ParseLocale(r.Locale)
}

// VisualizeResponse is the "full" visualize body. The default body is the
// bare step array.
type VisualizeResponse struct {
	Algorithm palindrome.Algorithm  `json:"algorithm" msgpack:"algorithm"`
	Length    int                   `json:"length" msgpack:"length"`
	Steps     []palindrome.WireStep `json:"steps" msgpack:"steps"`
	Result    palindrome.Result     `json:"result" msgpack:"result"`
}

func NewVisualizeResponse(v *app.Visualization) VisualizeResponse {
	return VisualizeResponse{
		Algorithm: v.Algorithm,
		Length:    v.Length,
		Steps:     v.Trace.Wire(),
		Result:    v.Result,
	}
}

type BenchmarkRequest struct {
	Text   string `json:"text" msgpack:"text"`
	Format string `json:"format,omitempty" msgpack:"format,omitempty"`
}

// BenchmarkBody is the flat timing contract: one key per engine holding
// milliseconds, or null when skipped, plus the skip reasons.
func BenchmarkBody(res bench.Result) map[string]any {
	body := make(map[string]any, len(res.Timings)+1)
	skipped := map[string]string{}
	for _, a := range palindrome.Algorithms() {
		t, ok := res.Timings[a]
		if !ok || t.Skipped {
			body[string(a)] = nil
			if ok {
				skipped[string(a)] = t.Reason
			}
			continue
		}
		body[string(a)] = t.Millis()
	}
	body["skipped"] = skipped
	return body
}

type ReplayRequest struct {
	Text      string `json:"text" msgpack:"text"`
	Algorithm string `json:"algorithm" msgpack:"algorithm"`
	Locale    string `json:"locale,omitempty" msgpack:"locale,omitempty"`
	Step      int    `json:"step" msgpack:"step"`
}

func (r ReplayRequest) LocaleOrDefault() palindrome.Locale {
	if r.Locale == "" {
		return ""
	}
	return palindrome.ParseLocale(r.Locale)
}

// ReplayResponse is the wire form of a replay.State.
type ReplayResponse struct {
	Index       int                 `json:"index" msgpack:"index"`
	Step        palindrome.WireStep `json:"step" msgpack:"step"`
	Active      []int               `json:"active" msgpack:"active"`
	Transformed bool                `json:"transformed,omitempty" msgpack:"transformed,omitempty"`
	Mirror      *int                `json:"mirror_index,omitempty" msgpack:"mirror_index,omitempty"`
	Max         *palindrome.Span    `json:"max,omitempty" msgpack:"max,omitempty"`
	Table       [][]*bool           `json:"table,omitempty" msgpack:"table,omitempty"`
	Display     string              `json:"display" msgpack:"display"`
	Center      int                 `json:"center" msgpack:"center"`
	Right       int                 `json:"right" msgpack:"right"`
}

func NewReplayResponse(s replay.State) ReplayResponse {
	out := ReplayResponse{
		Index:       s.Index,
		Step:        palindrome.ToWire(s.Step),
		Active:      s.Active,
		Transformed: s.Transformed,
		Display:     s.Display,
		Center:      s.Center,
		Right:       s.Right,
	}
	if out.Active == nil {
		out.Active = []int{}
	}
	if s.Mirror >= 0 {
		m := s.Mirror
		out.Mirror = &m
	}
	if s.HasMax {
		m := s.Max
		out.Max = &m
	}
	if s.Table != nil {
		out.Table = tableRows(s.Table)
	}
	return out
}

// tableRows renders a DP table with nil for unset cells.
func tableRows(t *palindrome.Table) [][]*bool {
	n := t.Size()
	rows := make([][]*bool, n)
	for i := range rows {
		rows[i] = make([]*bool, n)
		for j := range rows[i] {
			switch t.Get(i, j) {
			case palindrome.True:
				v := true
				rows[i][j] = &v
			case palindrome.False:
				v := false
				rows[i][j] = &v
			}
		}
	}
	return rows
}

type HealthResponse struct {
	Message string `json:"message" msgpack:"message"`
}

const HealthMessage = "Palindrome Visualizer API is running"

// ErrorBody is the error payload every transport returns.
func ErrorBody(msg string, err error) map[string]any {
	return map[string]any{
		"error":   msg,
		"details": err.Error(),
	}
}

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrInvalidJSON),
		errors.Is(err, palindrome.ErrInvalidAlgorithm),
		errors.Is(err, palindrome.ErrInputTooLarge),
		errors.Is(err, replay.ErrStepOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message is the short "error" text for a failure.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrInvalidJSON):
		return "invalid json"
	case errors.As(err, &verr):
		return "invalid request"
	case errors.Is(err, palindrome.ErrInvalidAlgorithm):
		return "invalid algorithm"
	case errors.Is(err, palindrome.ErrInputTooLarge):
		return "input too large"
	case errors.Is(err, replay.ErrStepOutOfRange):
		return "step out of range"
	case errors.Is(err, palindrome.ErrInternalInvariant):
		return "internal error"
	default:
		return "request failed"
	}
}
