package skip

import (
	"fmt"
	"strings"
	"unicode"
)

// Validate rejects conditions that reach beyond simple arithmetic and
// comparisons over the input size.
func Validate(cond string) error {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil
	}

	illegalChars := []rune{'{', '}', '[', ']', ';', ':', '?', '@', '#', '$', '\\', '"', '\''}
	for _, ch := range illegalChars {
		if strings.ContainsRune(cond, ch) {
			return fmt.Errorf("illegal character %q", ch)
		}
	}

	if strings.Contains(cond, ".") && !isNumericDot(cond) {
		return fmt.Errorf("dot access is not allowed")
	}

	for i := 0; i < len(cond)-1; i++ {
		if cond[i] != '(' {
			continue
		}
		j := i - 1
		for j >= 0 && unicode.IsSpace(rune(cond[j])) {
			j--
		}
		if j >= 0 && (unicode.IsLetter(rune(cond[j])) || cond[j] == '_') {
			k := j
			for k >= 0 && (unicode.IsLetter(rune(cond[k])) || unicode.IsDigit(rune(cond[k])) || cond[k] == '_') {
				k--
			}
			if ident := strings.TrimSpace(cond[k+1 : j+1]); ident != "" {
				return fmt.Errorf("function calls are not allowed (found %q(...))", ident)
			}
		}
	}

	return nil
}

// isNumericDot reports whether every '.' in cond sits between two digits,
// as in a decimal literal.
func isNumericDot(cond string) bool {
	for i := 0; i < len(cond); i++ {
		if cond[i] != '.' {
			continue
		}
		if i == 0 || i == len(cond)-1 || !unicode.IsDigit(rune(cond[i-1])) || !unicode.IsDigit(rune(cond[i+1])) {
			return false
		}
	}
	return true
}
