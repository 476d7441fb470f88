// Package logutil holds helpers for keeping secrets and large values out of logs.
package logutil

import "unicode/utf8"

// TruncateForLog keeps at most maxLen bytes of s, cut on a rune boundary,
// and marks the cut with "...". Webhook signature headers are logged this
// way so a rejected delivery can be correlated without recording the
// whole header.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
