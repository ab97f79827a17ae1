// Package slug derives URL-safe identifiers from human-readable labels.
package slug

import "strings"

// Make converts a label into a lowercase hyphenated identifier containing
// only [a-z0-9-]. Whitespace runs become single hyphens, disallowed
// characters are stripped, hyphen runs are collapsed and edge hyphens
// trimmed. An empty or fully-stripped label yields ""; callers are
// expected to fall back to a default base.
func Make(label string) string {
	lowered := strings.ToLower(strings.TrimSpace(label))

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// Strip everything else (punctuation, symbols, non-ASCII).
		}
	}

	return strings.Trim(b.String(), "-")
}
