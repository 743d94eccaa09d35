package palindrome

import "strings"

// Sentinels of the transformed sequence. They sit below every rune value so
// input containing '^', '#' or '$' can never match them.
const (
	sepMark   = -1
	startMark = -2
	endMark   = -3
)

// transform interleaves runes with separators and wraps the result in
// guards: "aba" -> ^#a#b#a#$ (length 2n+3).
func transform(runes []rune) []int {
	t := make([]int, 0, 2*len(runes)+3)
	t = append(t, startMark, sepMark)
	for _, r := range runes {
		t = append(t, int(r), sepMark)
	}
	return append(t, endMark)
}

func displayRune(v int) string {
	switch v {
	case sepMark:
		return "#"
	case startMark:
		return "^"
	case endMark:
		return "$"
	default:
		return string(rune(v))
	}
}

func displayTransformed(t []int) string {
	var b strings.Builder
	for _, v := range t {
		b.WriteString(displayRune(v))
	}
	return b.String()
}

// originalSpan maps the palindrome of radius p centered at transformed
// index i back to the input: it starts at (i-p)/2 and has length p.
func originalSpan(i, p int) (start, length int) {
	return (i - p) / 2, p
}

// manacherEngine finds every maximal palindrome radius in linear time by
// reusing the radius of the mirror position inside the rightmost known
// palindrome. O(n) time and space.
type manacherEngine struct{}

func (manacherEngine) Algorithm() Algorithm { return Manacher }

func (manacherEngine) Solve(text string) Result {
	runes := []rune(text)
	tl := newTally(runes)
	if len(runes) == 0 {
		return tl.result()
	}
	t := transform(runes)
	p := make([]int, len(t))
	c, r := 0, 0
	for i := 1; i < len(t)-1; i++ {
		if i < r {
			p[i] = min(r-i, p[2*c-i])
		}
		for t[i+1+p[i]] == t[i-1-p[i]] {
			p[i]++
		}
		if i+p[i] > r {
			c, r = i, i+p[i]
		}
		tl.offer(originalSpan(i, p[i]))
	}
	return tl.result()
}

func (manacherEngine) Trace(text string, opts ...Option) (*Trace, Result, error) {
	return traced(Manacher, text, opts, msgInitManacher, func(rec *recorder, runes []rune) Result {
		n := len(runes)
		tl := newTally(runes)
		t := transform(runes)
		shown := displayTransformed(t)
		rec.emit(Transform{Meta: rec.meta(2, msgTransform, shown), Value: shown})

		p := make([]int, len(t))
		c, r := 0, 0
		rec.emit(InitVars{Meta: rec.meta(4, msgInitVars), Center: c, Right: r})

		for i := 1; i < len(t)-1; i++ {
			rec.emit(SelectCenter{Meta: rec.meta(5, msgSelectCenter, i, displayRune(t[i])), Index: i})

			mirror := 2*c - i
			rec.emit(CalcMirror{Meta: rec.meta(6, msgCalcMirror, mirror), Index: i, MirrorIndex: mirror})
			if i < r {
				p[i] = min(r-i, p[mirror])
				rec.emit(Mirror{Meta: rec.meta(7, msgMirrorSeed, i, p[i]), Index: i, MirrorIndex: mirror, Value: p[i]})
			}

			for {
				hi, lo := i+1+p[i], i-1-p[i]
				probe := Pair{Left: lo, Right: hi}
				rec.emit(Compare{Meta: rec.meta(8, msgCompareChars, displayRune(t[hi]), displayRune(t[lo])), Pair: probe, Transformed: true})
				if t[hi] != t[lo] {
					rec.emit(Mismatch{Meta: rec.meta(8, msgMismatch), Pair: probe, Transformed: true})
					break
				}
				rec.emit(Match{Meta: rec.meta(9, msgMatch), Pair: probe, Transformed: true})
				p[i]++
			}

			if i+p[i] > r {
				c, r = i, i+p[i]
				rec.emit(UpdateCenter{Meta: rec.meta(11, msgUpdateCenter, c, r), Center: c, Right: r})
			}

			start, length := originalSpan(i, p[i])
			if tl.offer(start, length) {
				if start < 0 || start+length > n {
					invariant(Manacher, "span [%d,+%d) from center %d outside input of length %d", start, length, i, n)
				}
				rec.emit(UpdateMax{Meta: rec.meta(0, msgNewMax, length), Span: spanOf(start, length)})
			}
		}
		return tl.result()
	})
}
