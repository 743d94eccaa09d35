package palindrome

// Cell is a tri-state DP table entry. Unset is distinct from False so that
// "not computed yet" and "computed, not a palindrome" never collapse.
type Cell int8

const (
	Unset Cell = iota
	False
	True
)

func cellOf(b bool) Cell {
	if b {
		return True
	}
	return False
}

func (c Cell) String() string {
	switch c {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// Table is the n×n palindrome table; only the upper triangle is written.
type Table struct {
	n     int
	cells []Cell
}

// NewTable returns an all-Unset n×n table.
func NewTable(n int) *Table {
	return &Table{n: n, cells: make([]Cell, n*n)}
}

func (t *Table) Size() int { return t.n }

func (t *Table) Get(row, col int) Cell { return t.cells[row*t.n+col] }

func (t *Table) Set(row, col int, c Cell) { t.cells[row*t.n+col] = c }

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := &Table{n: t.n, cells: make([]Cell, len(t.cells))}
	copy(c.cells, t.cells)
	return c
}

// dpEngine fills dp[i][j] = s[i]==s[j] && dp[i+1][j-1] by increasing length.
// O(n²) time and space.
type dpEngine struct{}

func (dpEngine) Algorithm() Algorithm { return DynamicProgramming }

// read returns a computed cell, faulting on reads of Unset entries.
func (dpEngine) read(t *Table, row, col int) bool {
	c := t.Get(row, col)
	if c == Unset {
		invariant(DynamicProgramming, "dp[%d][%d] read before write", row, col)
	}
	return c == True
}

func (e dpEngine) Solve(text string) Result {
	runes := []rune(text)
	n := len(runes)
	t := newTally(runes)
	if n == 0 {
		return t.result()
	}
	dp := NewTable(n)
	for i := 0; i < n; i++ {
		dp.Set(i, i, True)
		t.offer(i, 1)
	}
	for i := 0; i+1 < n; i++ {
		eq := runes[i] == runes[i+1]
		dp.Set(i, i+1, cellOf(eq))
		if eq {
			t.offer(i, 2)
		}
	}
	for length := 3; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := i + length - 1
			ok := runes[i] == runes[j] && e.read(dp, i+1, j-1)
			dp.Set(i, j, cellOf(ok))
			if ok {
				t.offer(i, length)
			}
		}
	}
	return t.result()
}

func (e dpEngine) Trace(text string, opts ...Option) (*Trace, Result, error) {
	return traced(DynamicProgramming, text, opts, msgInitDP, func(rec *recorder, runes []rune) Result {
		res, _ := e.fill(rec, runes)
		return res
	})
}

// TraceDP runs the dynamic programming engine and also returns its final
// table, so callers can inspect cells without replaying the trace.
func TraceDP(text string, opts ...Option) (tr *Trace, res Result, table *Table, err error) {
	var e dpEngine
	tr, res, err = traced(DynamicProgramming, text, opts, msgInitDP, func(rec *recorder, runes []rune) Result {
		var r Result
		r, table = e.fill(rec, runes)
		return r
	})
	if table == nil && err == nil {
		table = NewTable(0)
	}
	return tr, res, table, err
}

func (e dpEngine) fill(rec *recorder, runes []rune) (Result, *Table) {
	n := len(runes)
	t := newTally(runes)
	dp := NewTable(n)

	set := func(line, i, j int, v bool) {
		dp.Set(i, j, cellOf(v))
		rec.emit(DPUpdate{Meta: rec.meta(line, msgDPSet, i, j, v), Row: i, Col: j, Value: v})
	}
	offer := func(line, i, length int) {
		if t.offer(i, length) {
			rec.emit(UpdateMax{Meta: rec.meta(line, msgNewMax, length), Span: spanOf(i, length)})
		}
	}

	for i := 0; i < n; i++ {
		dp.Set(i, i, True)
		rec.emit(DPUpdate{Meta: rec.meta(5, msgDPBase, i), Row: i, Col: i, Value: true})
		offer(5, i, 1)
	}

	for i := 0; i+1 < n; i++ {
		p := Pair{Left: i, Right: i + 1}
		rec.emit(Compare{Meta: rec.meta(8, msgDPCompare, i, i+1), Pair: p})
		if runes[i] == runes[i+1] {
			rec.emit(Match{Meta: rec.meta(8, msgMatch), Pair: p})
			set(8, i, i+1, true)
			offer(8, i, 2)
		} else {
			rec.emit(Mismatch{Meta: rec.meta(8, msgMismatch), Pair: p})
			set(8, i, i+1, false)
		}
	}

	for length := 3; length <= n; length++ {
		rec.emit(LoopLen{Meta: rec.meta(10, msgLoopLen, length), Length: length})
		for i := 0; i+length <= n; i++ {
			j := i + length - 1
			p := Pair{Left: i, Right: j}
			rec.emit(Select{Meta: rec.meta(12, msgSelect, i, j+1), I: i, J: j})
			rec.emit(Compare{Meta: rec.meta(13, msgDPCompare, i, j), Pair: p})
			if runes[i] != runes[j] {
				rec.emit(Mismatch{Meta: rec.meta(13, msgEndsMismatch), Pair: p})
				set(13, i, j, false)
				continue
			}
			rec.emit(Match{Meta: rec.meta(13, msgEndsMatch), Pair: p})
			inner := e.read(dp, i+1, j-1)
			if inner {
				rec.emit(DPCheck{Meta: rec.meta(13, msgInnerPalindrome, i+1, j-1), Row: i + 1, Col: j - 1, Value: true})
				set(14, i, j, true)
				offer(15, i, length)
			} else {
				rec.emit(DPCheck{Meta: rec.meta(13, msgInnerNotPalindrome, i+1, j-1), Row: i + 1, Col: j - 1, Value: false})
				set(13, i, j, false)
			}
		}
	}
	return t.result(), dp
}
