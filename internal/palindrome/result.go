package palindrome

// Palindrome is a palindromic substring located in the original input.
type Palindrome struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Length int    `json:"length"`
	Value  string `json:"value"`
}

// Result is an engine's answer. Longest is the first maximal palindrome in
// the engine's scan order; Ties holds every maximal-length span by
// increasing start and always includes Longest.
type Result struct {
	Longest Palindrome   `json:"longest"`
	Ties    []Palindrome `json:"ties"`
}

// Values returns the tie set as substrings.
func (r Result) Values() []string {
	out := make([]string, len(r.Ties))
	for i, p := range r.Ties {
		out[i] = p.Value
	}
	return out
}

// tally tracks the running maximum and its tie set during a scan.
type tally struct {
	runes []rune
	best  Span
	ties  []Span
}

func newTally(runes []rune) *tally {
	return &tally{runes: runes, best: Span{End: -1}}
}

// offer records a palindromic span and reports whether it is a new
// strict maximum.
func (t *tally) offer(start, length int) bool {
	switch {
	case length > t.best.Length:
		t.best = spanOf(start, length)
		t.ties = append(t.ties[:0], t.best)
		return true
	case length == t.best.Length && length > 0:
		t.ties = append(t.ties, spanOf(start, length))
	}
	return false
}

func (t *tally) result() Result {
	if t.best.Length == 0 {
		empty := Palindrome{Start: 0, End: -1}
		return Result{Longest: empty, Ties: []Palindrome{empty}}
	}
	ties := make([]Palindrome, len(t.ties))
	for i, s := range t.ties {
		ties[i] = t.palindrome(s)
	}
	return Result{Longest: t.palindrome(t.best), Ties: ties}
}

func (t *tally) palindrome(s Span) Palindrome {
	return Palindrome{
		Start:  s.Start,
		End:    s.End,
		Length: s.Length,
		Value:  string(t.runes[s.Start : s.End+1]),
	}
}
