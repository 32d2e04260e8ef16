package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (₹, Devanagari, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// Preview collapses whitespace and cuts s to a one-line summary of at
// most maxLen runes, used for JD snippets in history listings.
func Preview(s string, maxLen int) string {
	flat := strings.Join(strings.Fields(s), " ")
	return TruncateRunes(flat, maxLen, "…")
}
