package blaze

import "sort"

// ═══════════════════════════════════════════════════════════════════════════════
// N-GRAM BUILDER: Prefix Indexing
// ═══════════════════════════════════════════════════════════════════════════════
// FrontNGrams produces the prefixes of a term between minGram and maxGram
// runes long - "search" with minGram=2, maxGram=4 yields "se", "sea",
// "sear". NGramIndex collects these across every indexed term so a partial
// prefix can be resolved to the full terms that start with it, a cheap
// typeahead/prefix-match facility layered on top of the exact-term inverted
// index. This is structurally grounded on the per-term file posting pattern
// in the pack's fsdb inverted index, adapted from fsdb's fixed-size sliding
// n-grams to front (prefix-only) n-grams.
// ═══════════════════════════════════════════════════════════════════════════════

// FrontNGrams returns the prefixes of word with length in [minGram, maxGram]
// runes (clamped to word's own rune length). Lengths longer than the word
// are skipped rather than padded.
func FrontNGrams(word string, minGram, maxGram int) []string {
	runes := []rune(word)

	if minGram < 1 {
		minGram = 1
	}
	if maxGram > len(runes) {
		maxGram = len(runes)
	}
	if maxGram < minGram {
		return nil
	}

	grams := make([]string, 0, maxGram-minGram+1)
	for k := minGram; k <= maxGram; k++ {
		grams = append(grams, string(runes[:k]))
	}
	return grams
}

// NGramIndex maps front n-grams to the full terms that produced them.
type NGramIndex struct {
	minGram, maxGram int
	gramToTerms      map[string]map[string]struct{}
}

// NewNGramIndex returns an empty NGramIndex generating prefixes of length
// [minGram, maxGram].
func NewNGramIndex(minGram, maxGram int) *NGramIndex {
	return &NGramIndex{
		minGram:     minGram,
		maxGram:     maxGram,
		gramToTerms: make(map[string]map[string]struct{}),
	}
}

// Add registers term's front n-grams.
func (n *NGramIndex) Add(term string) {
	for _, gram := range FrontNGrams(term, n.minGram, n.maxGram) {
		set, ok := n.gramToTerms[gram]
		if !ok {
			set = make(map[string]struct{})
			n.gramToTerms[gram] = set
		}
		set[term] = struct{}{}
	}
}

// Lookup returns every term sharing the given prefix, sorted lexically.
// Only prefixes of minGram to maxGram runes are indexed; a prefix outside
// that range returns nil even when indexed terms start with it.
func (n *NGramIndex) Lookup(prefix string) []string {
	set, ok := n.gramToTerms[prefix]
	if !ok {
		return nil
	}

	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
