package palindrome

// Case is a reference input with every acceptable answer.
type Case struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Input    string   `json:"input"`
	Expected []string `json:"expected"`
	Category string   `json:"category"`
}

// Cases returns the reference catalog shown by the front-end.
func Cases() []Case {
	out := make([]Case, len(cases))
	copy(out, cases)
	return out
}

var cases = []Case{
	{1, "Basic 1", "babad", []string{"bab", "aba"}, "Basic"},
	{2, "Basic 2", "cbbd", []string{"bb"}, "Basic"},
	{3, "Single Char", "a", []string{"a"}, "Basic"},
	{4, "Double Char", "aa", []string{"aa"}, "Basic"},
	{5, "Racecar", "racecar", []string{"racecar"}, "Classic"},
	{6, "ABBA", "abba", []string{"abba"}, "Classic"},
	{7, "Abacaba", "abacabad", []string{"abacaba"}, "Classic"},
	{8, "Empty String", "", []string{""}, "Edge Cases"},
	{9, "No Palindrome", "abcdef", []string{"a", "b", "c", "d", "e", "f"}, "Edge Cases"},
	{10, "All Same", "aaaaaaa", []string{"aaaaaaa"}, "Edge Cases"},
	{11, "Long Palindrome", "xyzabcdedcbapqr", []string{"abcdedcba"}, "Complex"},
	{12, "Prefix Palindrome", "racecarXYZ", []string{"racecar"}, "Complex"},
	{13, "Suffix Palindrome", "XYZabba", []string{"abba"}, "Complex"},
	{14, "Long Middle", "abccbae", []string{"abccba"}, "Complex"},
	{15, "Multiple Same Length", "cabbaab", []string{"abba", "baab"}, "Complex"},
	{16, "With Spaces", "a man, a plan", []string{" a p a ", "ana", " a a ", " a "}, "Special Chars"},
	{17, "Case Sensitive", "Aa", []string{"A", "a"}, "Special Chars"},
	{18, "With Symbols", "a!@#@!a", []string{"a!@#@!a"}, "Special Chars"},
	{19, "Japanese", "日本語本日", []string{"日本語本日", "本語本"}, "Unicode"},
	{20, "Spanish", "mañana", []string{"aña", "ana"}, "Unicode"},
	{21, "Emoji", "😊abccba😊", []string{"😊abccba😊"}, "Unicode"},
	{22, "Combining Mark", "e\u0301e", []string{"e\u0301e"}, "Unicode"},
}
