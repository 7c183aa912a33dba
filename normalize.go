package blaze

import "strings"

// ═══════════════════════════════════════════════════════════════════════════════
// NORMALIZER: Canonicalizing Raw Text
// ═══════════════════════════════════════════════════════════════════════════════
// Normalize turns raw document or query text into the canonical form every
// other component agrees on: lowercase, punctuation stripped, whitespace
// collapsed. It is a pure function with no external state, applied to both
// indexed content and incoming queries so that the same word always produces
// the same index key regardless of surrounding punctuation or case.
// ═══════════════════════════════════════════════════════════════════════════════

// asciiPunctuation is the full set of ASCII punctuation runes stripped
// during normalization, mirroring Rust's is_ascii_punctuation().
var asciiPunctuation = map[rune]struct{}{
	'!': {}, '"': {}, '#': {}, '$': {}, '%': {}, '&': {}, '\'': {},
	'(': {}, ')': {}, '*': {}, '+': {}, ',': {}, '-': {}, '.': {},
	'/': {}, ':': {}, ';': {}, '<': {}, '=': {}, '>': {},
	'?': {}, '@': {}, '[': {}, '\\': {}, ']': {}, '^': {},
	'_': {}, '`': {}, '{': {}, '|': {}, '}': {}, '~': {},
}

// Normalize lowercases text, strips ASCII punctuation, and collapses runs of
// whitespace into single spaces, trimming the result. Normalize is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if _, isPunct := asciiPunctuation[r]; isPunct {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
