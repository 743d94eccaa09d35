// Package replay reconstructs the visual state of a run from a trace prefix.
// At rescans the prefix on every call; Player keeps state between calls and
// only rescans when moving backwards. Both produce identical states.
package replay

import (
	"errors"
	"fmt"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

// ErrStepOutOfRange is returned for a step index outside the trace.
var ErrStepOutOfRange = errors.New("replay: step out of range")

// State is what a front-end draws after applying steps 0..Index.
type State struct {
	Index int
	Step  palindrome.Step

	// Active holds the indices the current step highlights. They address the
	// transformed string when Transformed is set.
	Active      []int
	Transformed bool
	// Mirror is the mirror position of the current Manacher step, -1 if none.
	Mirror int

	Max    palindrome.Span
	HasMax bool

	// Table is the DP table so far; nil for other engines.
	Table *palindrome.Table

	// Display is the string being drawn: the input, or Manacher's
	// transformed string once it has been emitted.
	Display       string
	Center, Right int
}

// At returns the state after step k of tr.
func At(tr *palindrome.Trace, k int) (State, error) {
	if k < 0 || k >= tr.Len() {
		return State{}, fmt.Errorf("%w: %d not in [0,%d)", ErrStepOutOfRange, k, tr.Len())
	}
	b := newBuilder(tr)
	for i := 0; i <= k; i++ {
		b.apply(i, tr.At(i))
	}
	return b.snapshot(), nil
}

// Player steps through one trace, reusing state for forward moves.
type Player struct {
	tr  *palindrome.Trace
	b   *builder
	pos int
}

func NewPlayer(tr *palindrome.Trace) *Player {
	return &Player{tr: tr, b: newBuilder(tr), pos: -1}
}

func (p *Player) Len() int { return p.tr.Len() }

// Seek moves to step k and returns the state there.
func (p *Player) Seek(k int) (State, error) {
	if k < 0 || k >= p.tr.Len() {
		return State{}, fmt.Errorf("%w: %d not in [0,%d)", ErrStepOutOfRange, k, p.tr.Len())
	}
	if k < p.pos {
		p.b, p.pos = newBuilder(p.tr), -1
	}
	for p.pos < k {
		p.pos++
		p.b.apply(p.pos, p.tr.At(p.pos))
	}
	return p.b.snapshot(), nil
}

// Next advances one step. ok is false at the end of the trace.
func (p *Player) Next() (s State, ok bool) {
	if p.pos+1 >= p.tr.Len() {
		return State{}, false
	}
	s, _ = p.Seek(p.pos + 1)
	return s, true
}

type builder struct {
	input string
	s     State
}

func newBuilder(tr *palindrome.Trace) *builder {
	b := &builder{input: tr.Input()}
	b.reset(tr.Algorithm())
	return b
}

func (b *builder) reset(algo palindrome.Algorithm) {
	b.s = State{Display: b.input, Mirror: -1, Max: palindrome.Span{End: -1}}
	if algo == palindrome.DynamicProgramming {
		b.s.Table = palindrome.NewTable(len([]rune(b.input)))
	}
}

func (b *builder) apply(i int, step palindrome.Step) {
	s := &b.s
	s.Index, s.Step = i, step
	s.Active, s.Transformed, s.Mirror = nil, false, -1

	switch v := step.(type) {
	case palindrome.Select:
		s.Active = []int{v.I, v.J}
	case palindrome.Check:
		s.Active = []int{v.I, v.J}
	case palindrome.Compare:
		s.Active, s.Transformed = pairOf(v.Pair), v.Transformed
	case palindrome.Match:
		s.Active, s.Transformed = pairOf(v.Pair), v.Transformed
	case palindrome.Mismatch:
		s.Active, s.Transformed = pairOf(v.Pair), v.Transformed
	case palindrome.Expand:
		s.Active = pairOf(v.Pair)
	case palindrome.Center:
		s.Active = []int{v.Left}
		if v.Right != v.Left {
			s.Active = append(s.Active, v.Right)
		}
	case palindrome.LoopI:
		s.Active = []int{v.I}
	case palindrome.UpdateMax:
		s.Max, s.HasMax = v.Span, true
	case palindrome.DPUpdate:
		if s.Table != nil {
			s.Table.Set(v.Row, v.Col, cell(v.Value))
		}
	case palindrome.Transform:
		s.Display = v.Value
	case palindrome.InitVars:
		s.Center, s.Right = v.Center, v.Right
	case palindrome.UpdateCenter:
		s.Center, s.Right = v.Center, v.Right
	case palindrome.SelectCenter:
		s.Active, s.Transformed = []int{v.Index}, true
	case palindrome.CalcMirror:
		s.Active, s.Transformed, s.Mirror = []int{v.Index}, true, v.MirrorIndex
	case palindrome.Mirror:
		s.Active, s.Transformed, s.Mirror = []int{v.Index}, true, v.MirrorIndex
	}
}

// snapshot copies the mutable parts so callers cannot alias builder state.
func (b *builder) snapshot() State {
	out := b.s
	if out.Active != nil {
		out.Active = append([]int(nil), out.Active...)
	}
	if out.Table != nil {
		out.Table = out.Table.Clone()
	}
	return out
}

func pairOf(p palindrome.Pair) []int { return []int{p.Left, p.Right} }

func cell(v bool) palindrome.Cell {
	if v {
		return palindrome.True
	}
	return palindrome.False
}
