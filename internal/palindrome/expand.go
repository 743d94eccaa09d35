package palindrome

// expandEngine grows a palindrome outward from every odd and even center.
// O(n²) time, O(1) extra space.
type expandEngine struct{}

func (expandEngine) Algorithm() Algorithm { return ExpandCenter }

func (expandEngine) Solve(text string) Result {
	runes := []rune(text)
	n := len(runes)
	t := newTally(runes)
	for i := 0; i < n; i++ {
		for width := 0; width < 2; width++ {
			for l, r := i, i+width; l >= 0 && r < n && runes[l] == runes[r]; l, r = l-1, r+1 {
				t.offer(l, r-l+1)
			}
		}
	}
	return t.result()
}

func (expandEngine) Trace(text string, opts ...Option) (*Trace, Result, error) {
	return traced(ExpandCenter, text, opts, msgInitExpand, func(rec *recorder, runes []rune) Result {
		n := len(runes)
		t := newTally(runes)

		expand := func(l, r int) {
			for l >= 0 && r < n {
				p := Pair{Left: l, Right: r}
				rec.emit(Compare{Meta: rec.meta(10, msgCompare, l, r), Pair: p})
				if runes[l] != runes[r] {
					rec.emit(Mismatch{Meta: rec.meta(10, msgMismatch), Pair: p})
					return
				}
				rec.emit(Match{Meta: rec.meta(10, msgMatch), Pair: p})
				if length := r - l + 1; t.offer(l, length) {
					rec.emit(UpdateMax{Meta: rec.meta(11, msgNewMax, length), Span: spanOf(l, length)})
				}
				l, r = l-1, r+1
				if l >= 0 && r < n {
					rec.emit(Expand{Meta: rec.meta(12, msgExpand), Pair: Pair{Left: l, Right: r}})
				}
			}
		}

		for i := 0; i < n; i++ {
			rec.emit(Center{Meta: rec.meta(5, msgCenterOdd, i), Left: i, Right: i})
			expand(i, i)
			if i+1 < n {
				rec.emit(Center{Meta: rec.meta(7, msgCenterEven, i, i+1), Left: i, Right: i + 1})
				expand(i, i+1)
			}
		}
		return t.result()
	})
}
