package palindrome

import (
	"encoding/json"
	"iter"
)

// Trace is the ordered, immutable step sequence of one run.
type Trace struct {
	algo  Algorithm
	text  string
	steps []Step
}

// Algorithm reports which engine produced the trace.
func (t *Trace) Algorithm() Algorithm { return t.algo }

// Input returns the text the trace was built from.
func (t *Trace) Input() string { return t.text }

func (t *Trace) Len() int { return len(t.steps) }

// At returns step i. It panics when i is out of range, like a slice index.
func (t *Trace) At(i int) Step { return t.steps[i] }

// Steps returns a copy of the step sequence.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// All iterates steps in emission order.
func (t *Trace) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, s := range t.steps {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Wire flattens every step.
func (t *Trace) Wire() []WireStep {
	out := make([]WireStep, len(t.steps))
	for i, s := range t.steps {
		out[i] = ToWire(s)
	}
	return out
}

// MarshalJSON encodes the trace as an array of WireStep.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Wire())
}

// recorder accumulates steps for one traced run.
type recorder struct {
	msg   catalog
	steps []Step
	limit int
}

func newRecorder(o options) *recorder {
	return &recorder{msg: catalogFor(o.locale), limit: o.maxSteps}
}

func (r *recorder) emit(s Step) {
	if r.limit > 0 && len(r.steps) >= r.limit {
		panic(budgetExceeded{limit: r.limit})
	}
	r.steps = append(r.steps, s)
}

func (r *recorder) meta(line int, id msgID, args ...any) Meta {
	return Meta{Text: r.msg.format(id, args...), PseudoLine: line}
}

func (r *recorder) trace(algo Algorithm, text string) *Trace {
	return &Trace{algo: algo, text: text, steps: r.steps}
}
