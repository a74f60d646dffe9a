// Package textclip trims text fields to a caller-specified character budget.
package textclip

import "fmt"

// Clip limits s to maxChars characters, counted in runes rather than bytes
// so multi-byte text is never split mid-character. When the text is longer
// than the budget the clipped remainder count is appended so the caller can
// re-request with a larger budget without re-fetching. A budget of 0 means
// unlimited. The remainder is computed from the original length, never from
// the already-clipped string.
func Clip(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return fmt.Sprintf("%s... (%d more chars)", string(runes[:maxChars]), len(runes)-maxChars)
}
