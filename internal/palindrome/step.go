package palindrome

// Kind tags a Step. The set is closed.
type Kind string

const (
	KindInit         Kind = "init"
	KindSelect       Kind = "select"
	KindCompare      Kind = "compare"
	KindMatch        Kind = "match"
	KindMismatch     Kind = "mismatch"
	KindUpdateMax    Kind = "update_max"
	KindFound        Kind = "found"
	KindCenter       Kind = "center"
	KindTransform    Kind = "transform"
	KindMirror       Kind = "mirror"
	KindUpdateCenter Kind = "update_center"
	KindDPUpdate     Kind = "dp_update"
	KindDPCheck      Kind = "dp_check"
	KindLoopI        Kind = "loop_i"
	KindCheck        Kind = "check"
	KindExpand       Kind = "expand"
	KindLoopLen      Kind = "loop_len"
	KindCalcMirror   Kind = "calc_mirror"
	KindInitVars     Kind = "init_vars"
	KindSelectCenter Kind = "select_center"
)

// Kinds returns every step kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindInit, KindSelect, KindCompare, KindMatch, KindMismatch,
		KindUpdateMax, KindFound, KindCenter, KindTransform, KindMirror,
		KindUpdateCenter, KindDPUpdate, KindDPCheck, KindLoopI, KindCheck,
		KindExpand, KindLoopLen, KindCalcMirror, KindInitVars, KindSelectCenter,
	}
}

// Step is one observable event of an algorithm run. The concrete types
// below are the only implementations.
type Step interface {
	Kind() Kind
	Description() string
	// Line is the pseudo-code line to highlight, 0 when none.
	Line() int
	isStep()
}

// Meta holds the fields shared by every step.
type Meta struct {
	Text       string
	PseudoLine int
}

func (m Meta) Description() string { return m.Text }
func (m Meta) Line() int           { return m.PseudoLine }
func (Meta) isStep()               {}

// Pair is two indices examined together, left first.
type Pair struct {
	Left, Right int
}

// Span is an inclusive range of the original input. The empty span is
// {Start: 0, End: -1, Length: 0}.
type Span struct {
	Start  int `json:"start" msgpack:"start"`
	End    int `json:"end" msgpack:"end"`
	Length int `json:"length" msgpack:"length"`
}

func spanOf(start, length int) Span {
	return Span{Start: start, End: start + length - 1, Length: length}
}

type (
	Init struct{ Meta }

	Select struct {
		Meta
		I, J int
	}

	// Compare, Match and Mismatch address the transformed string when
	// Transformed is set (Manacher only).
	Compare struct {
		Meta
		Pair
		Transformed bool
	}
	Match struct {
		Meta
		Pair
		Transformed bool
	}
	Mismatch struct {
		Meta
		Pair
		Transformed bool
	}

	UpdateMax struct {
		Meta
		Span
	}

	Found struct {
		Meta
		Span
	}

	// Center starts an expansion. Left == Right for odd centers.
	Center struct {
		Meta
		Left, Right int
	}

	// Transform carries the display form of Manacher's transformed string.
	Transform struct {
		Meta
		Value string
	}

	Mirror struct {
		Meta
		Index, MirrorIndex, Value int
	}

	UpdateCenter struct {
		Meta
		Center, Right int
	}

	DPUpdate struct {
		Meta
		Row, Col int
		Value    bool
	}

	DPCheck struct {
		Meta
		Row, Col int
		Value    bool
	}

	LoopI struct {
		Meta
		I int
	}

	Check struct {
		Meta
		I, J int
	}

	Expand struct {
		Meta
		Pair
	}

	LoopLen struct {
		Meta
		Length int
	}

	CalcMirror struct {
		Meta
		Index, MirrorIndex int
	}

	InitVars struct {
		Meta
		Center, Right int
	}

	SelectCenter struct {
		Meta
		Index int
	}
)

func (Init) Kind() Kind         { return KindInit }
func (Select) Kind() Kind       { return KindSelect }
func (Compare) Kind() Kind      { return KindCompare }
func (Match) Kind() Kind        { return KindMatch }
func (Mismatch) Kind() Kind     { return KindMismatch }
func (UpdateMax) Kind() Kind    { return KindUpdateMax }
func (Found) Kind() Kind        { return KindFound }
func (Center) Kind() Kind       { return KindCenter }
func (Transform) Kind() Kind    { return KindTransform }
func (Mirror) Kind() Kind       { return KindMirror }
func (UpdateCenter) Kind() Kind { return KindUpdateCenter }
func (DPUpdate) Kind() Kind     { return KindDPUpdate }
func (DPCheck) Kind() Kind      { return KindDPCheck }
func (LoopI) Kind() Kind        { return KindLoopI }
func (Check) Kind() Kind        { return KindCheck }
func (Expand) Kind() Kind       { return KindExpand }
func (LoopLen) Kind() Kind      { return KindLoopLen }
func (CalcMirror) Kind() Kind   { return KindCalcMirror }
func (InitVars) Kind() Kind     { return KindInitVars }
func (SelectCenter) Kind() Kind { return KindSelectCenter }
