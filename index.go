package blaze

import (
	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// INVERTED INDEX: Term -> (Document -> Frequency)
// ═══════════════════════════════════════════════════════════════════════════════
// The inverted index maps each normalized term to the set of documents that
// contain it, along with how many times it occurs in each. Documents are
// identified here by an internal integer ordinal (see Engine.ordinalFor);
// the Engine façade translates ordinals to and from URLs at its boundary, so
// the index itself never has to compare strings on the hot path.
//
// Three structures back each term's postings:
//   - an orderedStringSet of every term seen, giving ascending lexicographic
//     iteration for snapshot encoding and debug output
//   - a *SkipList per term, keyed by Position{DocumentID: ordinal, Offset:
//     frequency}, reusing the reference skip list's ordering machinery to
//     keep postings sorted by document ordinal
//   - a roaring bitmap per term, one bit per document ordinal that contains
//     the term, giving O(1) document-frequency cardinality for BM25's idf
//
// There is no internal lock: per the concurrency model, the Engine's caller
// is responsible for serializing access (see httpapi.Service).
// ═══════════════════════════════════════════════════════════════════════════════

// BM25Parameters holds the two tunable BM25 constants.
type BM25Parameters struct {
	K1 float64
	B  float64
}

// DefaultBM25Parameters returns the conventional BM25 defaults (k1=1.5,
// b=0.75), used when a caller does not supply its own.
func DefaultBM25Parameters() BM25Parameters {
	return BM25Parameters{K1: 1.5, B: 0.75}
}

// InvertedIndex maps terms to per-document frequencies.
type InvertedIndex struct {
	terms      *orderedStringSet
	postings   map[string]*SkipList
	docFreq    map[string]*roaring.Bitmap
	totalTerms int64
}

// NewInvertedIndex returns an empty inverted index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		terms:    newOrderedStringSet(newSkipListRand()),
		postings: make(map[string]*SkipList),
		docFreq:  make(map[string]*roaring.Bitmap),
	}
}

// AddPosting records one more occurrence of term in the document identified
// by ordinal, incrementing its stored frequency. Calling it repeatedly for
// the same (term, ordinal) pair accumulates the count; there is no way to
// subtract, matching the engine's no-deletion design.
func (idx *InvertedIndex) AddPosting(term string, ordinal int) {
	idx.terms.Insert(term)

	sl, ok := idx.postings[term]
	if !ok {
		sl = NewSkipList()
		idx.postings[term] = sl
	}
	incrementPosting(sl, ordinal)

	bmp, ok := idx.docFreq[term]
	if !ok {
		bmp = roaring.New()
		idx.docFreq[term] = bmp
	}
	bmp.Add(uint32(ordinal))

	idx.totalTerms++
}

// SetPosting overwrites (or creates) the stored frequency for (term,
// ordinal) directly, used when rebuilding an index from a snapshot where
// frequencies are already known rather than accumulated one token at a time.
func (idx *InvertedIndex) SetPosting(term string, ordinal, freq int) {
	idx.terms.Insert(term)

	sl, ok := idx.postings[term]
	if !ok {
		sl = NewSkipList()
		idx.postings[term] = sl
	}
	for node := sl.Head.Tower[0]; node != nil; node = node.Tower[0] {
		if node.Key.DocumentID == float64(ordinal) {
			idx.totalTerms += int64(freq) - int64(node.Key.Offset)
			node.Key.Offset = float64(freq)
			return
		}
	}
	sl.Insert(Position{DocumentID: float64(ordinal), Offset: float64(freq)})

	bmp, ok := idx.docFreq[term]
	if !ok {
		bmp = roaring.New()
		idx.docFreq[term] = bmp
	}
	bmp.Add(uint32(ordinal))

	idx.totalTerms += int64(freq)
}

// incrementPosting walks the level-0 chain of sl looking for ordinal,
// bumping its frequency if found and inserting a fresh entry (frequency 1)
// otherwise. Postings lists are expected to stay small relative to the
// corpus (one entry per distinct document containing the term), so a linear
// scan at level 0 is adequate; the skip list's own Insert is only reached
// for genuinely new entries.
func incrementPosting(sl *SkipList, ordinal int) {
	target := float64(ordinal)
	for node := sl.Head.Tower[0]; node != nil; node = node.Tower[0] {
		if node.Key.DocumentID == target {
			node.Key.Offset++
			return
		}
		if node.Key.DocumentID > target {
			break
		}
	}
	sl.Insert(Position{DocumentID: target, Offset: 1})
}

// Postings returns the term's frequency map, keyed by document ordinal. It
// returns an empty (non-nil) map for a term the index has never seen.
func (idx *InvertedIndex) Postings(term string) map[int]int {
	result := make(map[int]int)

	sl, ok := idx.postings[term]
	if !ok {
		return result
	}

	for node := sl.Head.Tower[0]; node != nil; node = node.Tower[0] {
		result[node.Key.GetDocumentID()] = node.Key.GetOffset()
	}
	return result
}

// DocFrequency returns the number of distinct documents containing term.
func (idx *InvertedIndex) DocFrequency(term string) int {
	bmp, ok := idx.docFreq[term]
	if !ok {
		return 0
	}
	return int(bmp.GetCardinality())
}

// Terms returns every indexed term in ascending lexicographic order.
func (idx *InvertedIndex) Terms() []string {
	return idx.terms.Keys()
}

// TermCount returns the number of distinct terms in the index.
func (idx *InvertedIndex) TermCount() int {
	return idx.terms.Len()
}

// TotalTerms returns the running sum of all token occurrences indexed,
// across every document and term - a simple corpus-size signal surfaced by
// debug_index().
func (idx *InvertedIndex) TotalTerms() int64 {
	return idx.totalTerms
}
