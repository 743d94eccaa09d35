package palindrome

import (
	"fmt"
	"strings"
)

// Algorithm tags one of the four engines.
type Algorithm string

const (
	BruteForce         Algorithm = "brute_force"
	DynamicProgramming Algorithm = "dynamic_programming"
	ExpandCenter       Algorithm = "expand_center"
	Manacher           Algorithm = "manacher"
)

// Algorithms lists every engine tag in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{BruteForce, DynamicProgramming, ExpandCenter, Manacher}
}

// ParseAlgorithm validates a tag.
func ParseAlgorithm(tag string) (Algorithm, error) {
	a := Algorithm(strings.TrimSpace(tag))
	if _, ok := engines[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, tag)
	}
	return a, nil
}

// Engine is one instrumented solver.
type Engine interface {
	Algorithm() Algorithm
	// Trace runs the algorithm and records every step.
	Trace(text string, opts ...Option) (*Trace, Result, error)
	// Solve runs the algorithm without recording steps.
	Solve(text string) Result
}

// Lookup returns the engine for algo.
func Lookup(algo Algorithm) (Engine, error) {
	e, ok := engines[algo]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, algo)
	}
	return e, nil
}

// Visualize runs the named engine and returns its trace.
func Visualize(text, algorithm string, opts ...Option) (*Trace, Result, error) {
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return nil, Result{}, err
	}
	return engines[algo].Trace(text, opts...)
}

var engines = map[Algorithm]Engine{
	BruteForce:         bruteForceEngine{},
	DynamicProgramming: dpEngine{},
	ExpandCenter:       expandEngine{},
	Manacher:           manacherEngine{},
}

// traced wraps an engine's recording run with option handling, the
// empty-input case and panic recovery.
func traced(algo Algorithm, text string, opts []Option, initMsg msgID,
	run func(rec *recorder, runes []rune) Result) (tr *Trace, res Result, err error) {
	defer recoverRun(algo, &err)

	rec := newRecorder(buildOptions(opts))
	runes := []rune(text)
	rec.emit(Init{Meta: rec.meta(1, initMsg)})
	if len(runes) == 0 {
		rec.emit(Found{Meta: rec.meta(0, msgEmptyInput), Span: Span{End: -1}})
		return rec.trace(algo, text), newTally(runes).result(), nil
	}
	res = run(rec, runes)
	return rec.trace(algo, text), res, nil
}
