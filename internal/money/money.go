// Package money formats and parses VND amounts the way the front-end displays them.
package money

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxCount caps a single denomination's note count so totals stay in int64.
const MaxCount int64 = 1_000_000_000

var printer = message.NewPrinter(language.English)

// Format renders n with comma thousands separators: 1300000 -> "1,300,000".
func Format(n int64) string {
	return printer.Sprintf("%d", n)
}

// DigitsOnly drops every non-digit, so "500.000 đ" becomes "500000".
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatInput formats a raw amount field for display; empty stays empty.
func FormatInput(s string) string {
	digits := strings.TrimLeft(DigitsOnly(s), "0")
	if digits == "" {
		if DigitsOnly(s) == "" {
			return ""
		}
		return "0"
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return Format(n)
}

// ParseCount reads a typed note count. Like a lenient integer parse it takes
// an optional sign and the leading digits, ignoring whatever follows.
// Anything unparseable is 0, negatives become 0 and huge values are capped.
func ParseCount(text string) int64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > MaxCount {
		return MaxCount
	}
	return n
}
