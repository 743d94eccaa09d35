package palindrome

import "fmt"

// WireStep is the flat record a Step serializes to. Optional fields are
// present only for the kinds that carry them.
type WireStep struct {
	Type        Kind    `json:"type" msgpack:"type"`
	Description string  `json:"description" msgpack:"description"`
	Indices     []int   `json:"indices,omitempty" msgpack:"indices,omitempty"`
	Index       *int    `json:"index,omitempty" msgpack:"index,omitempty"`
	Start       *int    `json:"start,omitempty" msgpack:"start,omitempty"`
	End         *int    `json:"end,omitempty" msgpack:"end,omitempty"`
	Length      *int    `json:"length,omitempty" msgpack:"length,omitempty"`
	Value       any     `json:"value,omitempty" msgpack:"value,omitempty"`
	MirrorIndex *int    `json:"mirror_index,omitempty" msgpack:"mirror_index,omitempty"`
	Center      *int    `json:"center,omitempty" msgpack:"center,omitempty"`
	Right       *int    `json:"right,omitempty" msgpack:"right,omitempty"`
	String      *string `json:"string,omitempty" msgpack:"string,omitempty"`
	Row         *int    `json:"row,omitempty" msgpack:"row,omitempty"`
	Col         *int    `json:"col,omitempty" msgpack:"col,omitempty"`
	Line        int     `json:"line,omitempty" msgpack:"line,omitempty"`
	Transformed bool    `json:"transformed,omitempty" msgpack:"transformed,omitempty"`
}

func intp(v int) *int { return &v }

func pair(p Pair) []int { return []int{p.Left, p.Right} }

// ToWire flattens a step.
func ToWire(s Step) WireStep {
	w := WireStep{Type: s.Kind(), Description: s.Description(), Line: s.Line()}
	switch v := s.(type) {
	case Init:
	case Select:
		w.Indices = []int{v.I, v.J}
	case Compare:
		w.Indices, w.Transformed = pair(v.Pair), v.Transformed
	case Match:
		w.Indices, w.Transformed = pair(v.Pair), v.Transformed
	case Mismatch:
		w.Indices, w.Transformed = pair(v.Pair), v.Transformed
	case UpdateMax:
		w.Start, w.End, w.Length = intp(v.Start), intp(v.End), intp(v.Length)
	case Found:
		w.Start, w.End, w.Length = intp(v.Start), intp(v.End), intp(v.Length)
	case Center:
		if v.Left == v.Right {
			w.Index = intp(v.Left)
		} else {
			w.Indices = []int{v.Left, v.Right}
		}
	case Transform:
		w.String = &v.Value
	case Mirror:
		w.Index, w.MirrorIndex, w.Value = intp(v.Index), intp(v.MirrorIndex), v.Value
	case UpdateCenter:
		w.Center, w.Right = intp(v.Center), intp(v.Right)
	case DPUpdate:
		w.Row, w.Col, w.Value = intp(v.Row), intp(v.Col), v.Value
	case DPCheck:
		w.Row, w.Col, w.Value = intp(v.Row), intp(v.Col), v.Value
	case LoopI:
		w.Index = intp(v.I)
	case Check:
		w.Indices = []int{v.I, v.J}
	case Expand:
		w.Indices = pair(v.Pair)
	case LoopLen:
		w.Length = intp(v.Length)
	case CalcMirror:
		w.Index, w.MirrorIndex = intp(v.Index), intp(v.MirrorIndex)
	case InitVars:
		w.Center, w.Right = intp(v.Center), intp(v.Right)
	case SelectCenter:
		w.Index = intp(v.Index)
	default:
		panic(fmt.Sprintf("palindrome: unknown step type %T", s))
	}
	return w
}
