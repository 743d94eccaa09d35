package palindrome

import "fmt"

// Locale selects the language of step descriptions.
type Locale string

const (
	English    Locale = "en"
	Vietnamese Locale = "vi"
)

// ParseLocale maps a tag to a supported locale, falling back to English.
func ParseLocale(tag string) Locale {
	switch Locale(tag) {
	case Vietnamese:
		return Vietnamese
	default:
		return English
	}
}

type msgID int

const (
	msgInitBruteForce msgID = iota
	msgInitDP
	msgInitExpand
	msgInitManacher
	msgEmptyInput
	msgLoopI
	msgSelect
	msgCheck
	msgCompare
	msgMatch
	msgMismatch
	msgNewMax
	msgFoundShorter
	msgCenterOdd
	msgCenterEven
	msgExpand
	msgDPBase
	msgDPCompare
	msgDPSet
	msgLoopLen
	msgEndsMatch
	msgEndsMismatch
	msgInnerPalindrome
	msgInnerNotPalindrome
	msgTransform
	msgInitVars
	msgSelectCenter
	msgCalcMirror
	msgMirrorSeed
	msgCompareChars
	msgUpdateCenter
)

type catalog map[msgID]string

func (c catalog) format(id msgID, args ...any) string {
	f, ok := c[id]
	if !ok {
		f = catalogs[English][id]
	}
	if len(args) == 0 {
		return f
	}
	return fmt.Sprintf(f, args...)
}

func catalogFor(l Locale) catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[English]
}

var catalogs = map[Locale]catalog{
	English: {
		msgInitBruteForce:     "Start Brute Force",
		msgInitDP:             "Start Dynamic Programming",
		msgInitExpand:         "Start Expand Around Center",
		msgInitManacher:       "Start Manacher",
		msgEmptyInput:         "Empty string: the longest palindrome is the empty string",
		msgLoopI:              "Outer loop i=%d",
		msgSelect:             "Check substring s[%d:%d]",
		msgCheck:              "Checking whether it is a palindrome...",
		msgCompare:            "Compare s[%d] and s[%d]",
		msgMatch:              "Match",
		msgMismatch:           "Mismatch",
		msgNewMax:             "New max length: %d",
		msgFoundShorter:       "Palindrome found, but not longer than the max",
		msgCenterOdd:          "Expand around center %d",
		msgCenterEven:         "Expand around center %d, %d",
		msgExpand:             "Expand outwards",
		msgDPBase:             "Base case: s[%d] is a palindrome",
		msgDPCompare:          "Check s[%d] == s[%d]",
		msgDPSet:              "Set dp[%d][%d] = %t",
		msgLoopLen:            "Check length %d",
		msgEndsMatch:          "Both ends match",
		msgEndsMismatch:       "Ends do not match",
		msgInnerPalindrome:    "Inner substring s[%d..%d] is a palindrome",
		msgInnerNotPalindrome: "Inner substring s[%d..%d] is NOT a palindrome",
		msgTransform:          "Transformed string %s",
		msgInitVars:           "Initialized P, C, R",
		msgSelectCenter:       "Process center %d ('%s')",
		msgCalcMirror:         "Mirror index = %d",
		msgMirrorSeed:         "Seed P[%d] = %d from its mirror",
		msgCompareChars:       "Compare %s and %s",
		msgUpdateCenter:       "Update center to %d, right to %d",
	},
	Vietnamese: {
		msgInitBruteForce:     "Bắt đầu Thuật toán Vét cạn",
		msgInitDP:             "Bắt đầu Thuật toán Quy hoạch Động",
		msgInitExpand:         "Bắt đầu Thuật toán Mở rộng quanh Tâm",
		msgInitManacher:       "Bắt đầu Thuật toán Manacher",
		msgEmptyInput:         "Chuỗi rỗng - chuỗi đối xứng dài nhất là chuỗi rỗng",
		msgLoopI:              "Vòng lặp ngoài i=%d",
		msgSelect:             "Kiểm tra chuỗi con s[%d:%d]",
		msgCheck:              "Kiểm tra có phải chuỗi đối xứng...",
		msgCompare:            "So sánh s[%d] và s[%d]",
		msgMatch:              "Khớp",
		msgMismatch:           "Không khớp",
		msgNewMax:             "Độ dài tối đa mới: %d",
		msgFoundShorter:       "Tìm thấy chuỗi đối xứng, nhưng không dài hơn tối đa",
		msgCenterOdd:          "Mở rộng quanh tâm %d",
		msgCenterEven:         "Mở rộng quanh tâm %d, %d",
		msgExpand:             "Mở rộng ra ngoài",
		msgDPBase:             "Trường hợp cơ bản: s[%d] là chuỗi đối xứng",
		msgDPCompare:          "Kiểm tra s[%d] == s[%d]",
		msgDPSet:              "Đặt dp[%d][%d] = %t",
		msgLoopLen:            "Kiểm tra độ dài %d",
		msgEndsMatch:          "Hai đầu khớp",
		msgEndsMismatch:       "Hai đầu không khớp",
		msgInnerPalindrome:    "Chuỗi con s[%d..%d] là chuỗi đối xứng",
		msgInnerNotPalindrome: "Chuỗi con s[%d..%d] KHÔNG phải chuỗi đối xứng",
		msgTransform:          "Chuỗi đã chuyển đổi %s",
		msgInitVars:           "Đã khởi tạo P, C, R",
		msgSelectCenter:       "Xử lý tâm %d ('%s')",
		msgCalcMirror:         "Chỉ số đối xứng = %d",
		msgMirrorSeed:         "Khởi tạo P[%d] = %d từ đối xứng",
		msgCompareChars:       "So sánh %s và %s",
		msgUpdateCenter:       "Cập nhật Tâm thành %d, Phải thành %d",
	},
}
