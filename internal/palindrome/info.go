package palindrome

// Info describes an engine for presentation.
type Info struct {
	Algorithm       Algorithm `json:"algorithm"`
	Name            string    `json:"name"`
	TimeComplexity  string    `json:"time_complexity"`
	SpaceComplexity string    `json:"space_complexity"`
	Description     string    `json:"description"`
	PseudoCode      []string  `json:"pseudo_code"`
}

// Describe returns the catalog entry for every engine, in presentation order.
func Describe() []Info {
	out := make([]Info, 0, len(infos))
	for _, a := range Algorithms() {
		out = append(out, infos[a])
	}
	return out
}

var infos = map[Algorithm]Info{
	BruteForce: {
		Algorithm:       BruteForce,
		Name:            "Brute Force",
		TimeComplexity:  "O(N³)",
		SpaceComplexity: "O(1)",
		Description:     "Checks every possible substring to determine if it's a palindrome.",
		PseudoCode: []string{
			"function bruteForce(s):",
			"  n = length(s)",
			"  for i from 0 to n-1:",
			"    for j from i to n-1:",
			"      checkPalindrome(s, i, j)",
			"      if isPalindrome:",
			"        updateMax(i, j)",
		},
	},
	DynamicProgramming: {
		Algorithm:       DynamicProgramming,
		Name:            "Dynamic Programming",
		TimeComplexity:  "O(N²)",
		SpaceComplexity: "O(N²)",
		Description:     "Builds a table of palindrome flags for substrings, reusing inner results.",
		PseudoCode: []string{
			"function dynamicProgramming(s):",
			"  n = length(s)",
			"  dp = table(n, n, false)",
			"  # Length 1",
			"  for i from 0 to n-1: dp[i][i] = true",
			"  # Length 2",
			"  for i from 0 to n-2:",
			"    if s[i] == s[i+1]: dp[i][i+1] = true",
			"  # Length 3+",
			"  for len from 3 to n:",
			"    for i from 0 to n-len:",
			"      j = i + len - 1",
			"      if s[i] == s[j] and dp[i+1][j-1]:",
			"        dp[i][j] = true",
			"        updateMax(i, j)",
		},
	},
	ExpandCenter: {
		Algorithm:       ExpandCenter,
		Name:            "Expand Around Center",
		TimeComplexity:  "O(N²)",
		SpaceComplexity: "O(1)",
		Description:     "Expands around each possible center point to find palindromes.",
		PseudoCode: []string{
			"function expandCenter(s):",
			"  n = length(s)",
			"  for i from 0 to n-1:",
			"    # Odd length",
			"    expand(i, i)",
			"    # Even length",
			"    expand(i, i+1)",
			"",
			"  function expand(l, r):",
			"    while l >= 0 and r < n and s[l] == s[r]:",
			"      updateMax(l, r)",
			"      l--, r++",
		},
	},
	Manacher: {
		Algorithm:       Manacher,
		Name:            "Manacher's Algorithm",
		TimeComplexity:  "O(N)",
		SpaceComplexity: "O(N)",
		Description:     "Reuses mirrored palindrome radii inside the rightmost known palindrome to run in linear time.",
		PseudoCode: []string{
			"function manacher(s):",
			"  T = transform(s) # ^#a#b#a#$",
			"  P = array(length(T), 0)",
			"  C = 0, R = 0",
			"  for i from 1 to length(T)-1:",
			"    mirror = 2*C - i",
			"    if i < R: P[i] = min(R-i, P[mirror])",
			"    while T[i + 1 + P[i]] == T[i - 1 - P[i]]:",
			"      P[i]++",
			"    if i + P[i] > R:",
			"      C = i, R = i + P[i]",
		},
	},
}
