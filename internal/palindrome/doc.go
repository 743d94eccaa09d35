// Package palindrome implements four instrumented solvers for the longest
// palindromic substring problem and the step trace they emit.
//
// Engines:
//
//	BruteForce          every substring, two-pointer check     O(n³) time, O(1) space
//	DynamicProgramming  n×n tri-state table, by length         O(n²) time, O(n²) space
//	ExpandCenter        odd and even expansion per center      O(n²) time, O(1) space
//	Manacher            transformed string + radius array      O(n)  time, O(n) space
//
// Each engine has two entry points. Trace runs the algorithm and records a
// Step for every internal decision, so that a consumer can replay the run
// from the Trace alone. Solve runs the same algorithm without recording and
// is what the benchmark runner times.
//
// Indices are rune indices into the input. Every UpdateMax span is in the
// index space of the original input, including Manacher's, which works on a
// transformed representation internally.
//
//	e, _ := palindrome.Lookup(palindrome.Manacher)
//	tr, res, err := e.Trace("babad")
//	// res.Longest.Value == "bab", res.Ties -> bab, aba
package palindrome
