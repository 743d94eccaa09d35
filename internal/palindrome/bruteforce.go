package palindrome

// bruteForceEngine checks every substring s[i..j] with a two-pointer scan.
// O(n³) time, O(1) extra space.
type bruteForceEngine struct{}

func (bruteForceEngine) Algorithm() Algorithm { return BruteForce }

func (bruteForceEngine) Solve(text string) Result {
	runes := []rune(text)
	t := newTally(runes)
	n := len(runes)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if isPalindrome(runes, i, j) {
				t.offer(i, j-i+1)
			}
		}
	}
	return t.result()
}

func isPalindrome(runes []rune, low, high int) bool {
	for low < high {
		if runes[low] != runes[high] {
			return false
		}
		low++
		high--
	}
	return true
}

func (bruteForceEngine) Trace(text string, opts ...Option) (*Trace, Result, error) {
	return traced(BruteForce, text, opts, msgInitBruteForce, func(rec *recorder, runes []rune) Result {
		t := newTally(runes)
		n := len(runes)
		for i := 0; i < n; i++ {
			rec.emit(LoopI{Meta: rec.meta(3, msgLoopI, i), I: i})
			for j := i; j < n; j++ {
				rec.emit(Select{Meta: rec.meta(4, msgSelect, i, j+1), I: i, J: j})
				rec.emit(Check{Meta: rec.meta(5, msgCheck), I: i, J: j})

				ok := true
				for low, high := i, j; low < high; low, high = low+1, high-1 {
					p := Pair{Left: low, Right: high}
					rec.emit(Compare{Meta: rec.meta(5, msgCompare, low, high), Pair: p})
					if runes[low] != runes[high] {
						rec.emit(Mismatch{Meta: rec.meta(5, msgMismatch), Pair: p})
						ok = false
						break
					}
					rec.emit(Match{Meta: rec.meta(5, msgMatch), Pair: p})
				}
				if !ok {
					continue
				}

				length := j - i + 1
				if t.offer(i, length) {
					rec.emit(UpdateMax{Meta: rec.meta(7, msgNewMax, length), Span: spanOf(i, length)})
				} else {
					rec.emit(Found{Meta: rec.meta(6, msgFoundShorter), Span: spanOf(i, length)})
				}
			}
		}
		return t.result()
	})
}
