package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const visualizeSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["text", "algorithm"],
  "properties": {
    "text": {"type": "string"},
    "algorithm": {"type": "string", "minLength": 1},
    "locale": {"enum": ["", "en", "vi"]},
    "format": {"enum": ["", "steps", "full", "dot"]}
  }
}`

const benchmarkSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["text"],
  "properties": {
    "text": {"type": "string"},
    "format": {"enum": ["", "json", "svg", "png"]}
  }
}`

const replaySchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["text", "algorithm", "step"],
  "properties": {
    "text": {"type": "string"},
    "algorithm": {"type": "string", "minLength": 1},
    "locale": {"enum": ["", "en", "vi"]},
    "step": {"type": "integer", "minimum": 0}
  }
}`

// ErrInvalidJSON marks a body that is not well-formed JSON.
var ErrInvalidJSON = errors.New("invalid json")

// ValidationError lists every schema violation of a request body.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0]
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// Validator checks request bodies against their JSON Schema before decoding.
// It is safe for concurrent use.
type Validator struct {
	visualize *jsonschema.Schema
	benchmark *jsonschema.Schema
	replay    *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	compile := func(name, doc string) (*jsonschema.Schema, error) {
		parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("unmarshal %s schema: %w", name, err)
		}
		url := "palindrome://schemas/" + name + ".json"
		if err := c.AddResource(url, parsed); err != nil {
			return nil, fmt.Errorf("add %s schema resource: %w", name, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", name, err)
		}
		return s, nil
	}

	v := &Validator{}
	var err error
	if v.visualize, err = compile("visualize", visualizeSchemaJSON); err != nil {
		return nil, err
	}
	if v.benchmark, err = compile("benchmark", benchmarkSchemaJSON); err != nil {
		return nil, err
	}
	if v.replay, err = compile("replay", replaySchemaJSON); err != nil {
		return nil, err
	}
	return v, nil
}

// MustValidator is NewValidator for the fixed built-in schemas.
func MustValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) DecodeVisualize(body []byte) (VisualizeRequest, error) {
	var in VisualizeRequest
	return in, decode(v.visualize, body, &in)
}

func (v *Validator) DecodeBenchmark(body []byte) (BenchmarkRequest, error) {
	var in BenchmarkRequest
	return in, decode(v.benchmark, body, &in)
}

func (v *Validator) DecodeReplay(body []byte) (ReplayRequest, error) {
	var in ReplayRequest
	return in, decode(v.replay, body, &in)
}

// ValidateVisualize checks an already-decoded request, for transports that
// do not receive raw JSON.
func (v *Validator) ValidateVisualize(in VisualizeRequest) error {
	return validateValue(v.visualize, in)
}

func (v *Validator) ValidateBenchmark(in BenchmarkRequest) error {
	return validateValue(v.benchmark, in)
}

func (v *Validator) ValidateReplay(in ReplayRequest) error {
	return validateValue(v.replay, in)
}

// decode validates body, then unmarshals it into dst. Malformed JSON wraps
// ErrInvalidJSON; schema violations are a *ValidationError.
func decode(s *jsonschema.Schema, body []byte, dst any) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := s.Validate(doc); err != nil {
		return toValidationError(err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

func validateValue(s *jsonschema.Schema, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Violations: []string{err.Error()}}
	}
	violations := collectViolations(verr)
	if len(violations) == 0 {
		violations = []string{verr.Error()}
	}
	return &ValidationError{Violations: violations}
}

// collectViolations walks a ValidationError tree and returns its leaf
// messages prefixed with their instance location.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
