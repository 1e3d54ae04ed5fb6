package util

import (
	"strings"
	"unicode"
)

// Slugify 将标题转换为 URL slug
func Slugify(s string) string {
	var b strings.Builder
	prevDash := true // 抑制开头的 '-'

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
