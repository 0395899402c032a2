// Package slug turns free text into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make normalizes s into a lowercase token containing only [a-z0-9-],
// with no leading or trailing hyphen. Accented letters lose their
// accents rather than being dropped. Make is total and idempotent;
// an empty or all-punctuation input yields "".
//
// The transform chain is built per call: chained transformers carry
// internal buffers and must not be shared across goroutines.
func Make(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	flat, _, err := transform.String(stripAccents, s)
	if err != nil {
		// Removal transforms only fail on malformed input; fall back
		// to the raw string so Make stays total.
		flat = s
	}
	flat = strings.ToLower(flat)

	var b strings.Builder
	b.Grow(len(flat))
	lastHyphen := true // swallow leading separators
	for _, r := range flat {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
