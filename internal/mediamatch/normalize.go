package mediamatch

import "strings"

// Normalize canonicalizes free text for matching: lowercase, every
// non-alphanumeric rune becomes a space, runs of spaces collapse to one,
// no leading or trailing space. It is total (never fails) and idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}
