package blaze

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ENGINE: The Façade Over Index, Store, and Persistence
// ═══════════════════════════════════════════════════════════════════════════════
// Engine is the single entry point a caller uses: index documents, search
// them, and ask basic questions about the corpus. It owns the inverted
// index, the document store, the document-ordinal assignment that bridges
// the two, and the snapshot/stats persistence underneath them.
//
// Engine holds no internal mutex. The concurrency model puts that
// responsibility on the caller - a typical deployment wraps one Engine in a
// single process-wide mutual-exclusion guard (see httpapi.Service) rather
// than have every method defend itself, so read-modify-write sequences
// spanning multiple calls (e.g. search-then-index) stay consistent without
// every internal structure paying for a lock it mostly doesn't need.
// ═══════════════════════════════════════════════════════════════════════════════

// DocumentInput is one (url, content) pair, used by BulkIndex.
type DocumentInput struct {
	URL     string
	Content string
}

// Config configures a new Engine.
type Config struct {
	// DataDir is the directory the engine persists into: snapshot.bin,
	// stats.json, and (if EnableSegments) an index/ subdirectory of segment
	// files.
	DataDir string
	// BM25 holds the scorer's k1/b constants.
	BM25 BM25Parameters
	// Logger receives structured indexing/search/debug events. Defaults to
	// slog.Default() if nil.
	Logger *slog.Logger
	// EnableSegments additionally persists postings through the segmented
	// term dictionary (segment.go) alongside the binary snapshot.
	EnableSegments bool
	// SegmentHashLength is the number of hex characters of a term's MD5
	// digest used to name its segment file.
	SegmentHashLength int
	// NGramMin/NGramMax bound the front-n-gram prefix lengths indexed for
	// every term.
	NGramMin, NGramMax int
}

// DefaultConfig returns sensible defaults for a fresh engine rooted at
// dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:           dataDir,
		BM25:              DefaultBM25Parameters(),
		SegmentHashLength: 6,
		NGramMin:          2,
		NGramMax:          8,
	}
}

// Engine is the full-text search façade.
type Engine struct {
	index        *InvertedIndex
	docs         *DocumentStore
	ngrams       *NGramIndex
	ordinalToURL []string
	urlToOrdinal map[string]int

	bm25         BM25Parameters
	stats        *StatsStore
	segments     *SegmentStore
	snapshotPath string
	logger       *slog.Logger
}

// NewEngine constructs an Engine, loading an existing snapshot from
// cfg.DataDir if one is present. A present but corrupt snapshot is a fatal
// error: the engine never attempts to repair, ignore, or partially load it.
func NewEngine(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("blaze: creating data directory: %w", err)
	}

	e := &Engine{
		bm25:         cfg.BM25,
		stats:        NewStatsStore(cfg.DataDir),
		snapshotPath: filepath.Join(cfg.DataDir, "snapshot.bin"),
		logger:       logger,
		urlToOrdinal: make(map[string]int),
		ngrams:       NewNGramIndex(cfg.NGramMin, cfg.NGramMax),
	}
	if cfg.EnableSegments {
		e.segments = NewSegmentStore(filepath.Join(cfg.DataDir, "index"), cfg.SegmentHashLength)
	}

	data, err := os.ReadFile(e.snapshotPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.index = NewInvertedIndex()
		e.docs = NewDocumentStore()
	case err != nil:
		return nil, fmt.Errorf("blaze: reading snapshot: %w", err)
	default:
		idx, docs, _, decodeErr := DecodeSnapshot(data)
		if decodeErr != nil {
			return nil, fmt.Errorf("blaze: loading snapshot: %w", decodeErr)
		}
		e.index = idx
		e.docs = docs

		// DecodeSnapshot assigns ordinals in the same ascending-URL order
		// docs.URLs() now reports, since EncodeSnapshot wrote documents in
		// that same order. This is the one point where it's safe to derive
		// the ordinal assignment from docs.URLs(); afterwards, ordinals are
		// append-only (see ordinalFor) and must never be recomputed this
		// way, or every postings entry loaded above would silently point
		// at the wrong document.
		e.ordinalToURL = docs.URLs()
		for ordinal, url := range e.ordinalToURL {
			e.urlToOrdinal[url] = ordinal
		}
		for _, term := range idx.Terms() {
			e.ngrams.Add(term)
		}
	}

	logger.Info("engine ready",
		slog.String("data_dir", cfg.DataDir),
		slog.Int("documents", e.docs.Len()),
		slog.Int("terms", e.index.TermCount()),
	)

	return e, nil
}

// ordinalFor returns the stable internal ordinal for url, assigning the
// next free ordinal if url hasn't been seen before. Ordinals are append
// only: once assigned, a URL's ordinal never changes for the lifetime of
// the process, even though DocumentStore's own key ordering is
// lexicographic rather than insertion order.
func (e *Engine) ordinalFor(url string) int {
	if ordinal, ok := e.urlToOrdinal[url]; ok {
		return ordinal
	}
	ordinal := len(e.ordinalToURL)
	e.ordinalToURL = append(e.ordinalToURL, url)
	e.urlToOrdinal[url] = ordinal
	return ordinal
}

// Index adds (or re-indexes) one document. Re-indexing an existing URL
// replaces its stored content but accumulates term frequencies on top of
// whatever was indexed before - there is no deletion API, so the only way
// to change a document's postings is to add to them.
func (e *Engine) Index(url, content string) error {
	positions := e.indexDocument(url, content)
	if err := e.writeSegments(url, positions); err != nil {
		return err
	}
	return e.persist()
}

// BulkIndex indexes every pair in order, persisting once at the end rather
// than after each document.
func (e *Engine) BulkIndex(pairs []DocumentInput) error {
	for _, p := range pairs {
		positions := e.indexDocument(p.URL, p.Content)
		if err := e.writeSegments(p.URL, positions); err != nil {
			return err
		}
	}
	return e.persist()
}

// indexDocument folds content's tokens into the index and n-gram builder,
// and returns, for every distinct term in content, the list of positions
// (0-based token offsets, stringified) at which it occurred - the
// term_info this document contributes to the segmented term dictionary.
func (e *Engine) indexDocument(url, content string) map[string][]string {
	ordinal := e.ordinalFor(url)
	e.docs.Put(url, content)

	tokens := strings.Fields(Normalize(content))
	positions := make(map[string][]string)
	for i, term := range tokens {
		e.index.AddPosting(term, ordinal)
		e.ngrams.Add(term)
		positions[term] = append(positions[term], strconv.Itoa(i))
	}

	e.logger.Info("indexed document",
		slog.String("url", url),
		slog.Int("tokens", len(tokens)),
	)
	return positions
}

// writeSegments upserts url's contribution to every term it contains into
// the segmented term dictionary, if enabled. Each call merges one
// document's positions into whatever the segment file already holds for
// that term - it never rewrites a term's record from scratch, matching the
// segment store's incremental upsert protocol.
func (e *Engine) writeSegments(url string, positions map[string][]string) error {
	if e.segments == nil {
		return nil
	}
	for term, pos := range positions {
		info := termInfo{url: pos}
		if err := e.segments.WriteTerm(term, info); err != nil {
			return fmt.Errorf("blaze: writing segment for %q: %w", term, err)
		}
	}
	return nil
}

// persist writes the snapshot and the stats sidecar. The segmented term
// dictionary, when enabled, is written incrementally by writeSegments
// instead - the two persistence strategies are independent and never share
// state.
func (e *Engine) persist() error {
	// EncodeSnapshot resolves ordinals by position in docs.URLs(), so the
	// append-only ordinals of ordinalFor are re-keyed to that position first.
	rank := make(map[string]int, e.docs.Len())
	for i, url := range e.docs.URLs() {
		rank[url] = i
	}
	snapshotIndex := NewInvertedIndex()
	for _, term := range e.index.Terms() {
		for ordinal, freq := range e.index.Postings(term) {
			snapshotIndex.SetPosting(term, rank[e.ordinalToURL[ordinal]], freq)
		}
	}
	data, err := EncodeSnapshot(snapshotIndex, e.docs, e.bm25)
	if err != nil {
		return fmt.Errorf("blaze: encoding snapshot: %w", err)
	}
	if err := atomicWriteFile(e.snapshotPath, data); err != nil {
		return fmt.Errorf("blaze: writing snapshot: %w", err)
	}

	return e.stats.Write(Stats{Version: currentStatsVersion, TotalDocs: e.docs.Len()})
}

// Search ranks every indexed document against query's normalized,
// whitespace-separated keywords using BM25, returning a URL->score map that
// omits any URL matching none of the keywords. An empty query, or an empty
// corpus, yields an empty (non-nil) map.
func (e *Engine) Search(query string) map[string]float64 {
	keywords := strings.Fields(Normalize(query))

	var avgDocLen float64
	if n := e.docs.Len(); n > 0 {
		avgDocLen = float64(e.docs.TotalContentBytes()) / float64(n)
	}

	return Score(e.index, e.docs, e.ordinalToURL, avgDocLen, e.bm25, keywords)
}

// Posts returns every indexed URL, ascending lexicographically.
func (e *Engine) Posts() []string {
	return e.docs.URLs()
}

// NumberOfDocuments returns the number of distinct URLs indexed.
func (e *Engine) NumberOfDocuments() int {
	return e.docs.Len()
}

// PrefixSearch returns every indexed term starting with prefix, using the
// front-n-gram index rather than scanning every term. A prefix shorter than
// Config.NGramMin or longer than Config.NGramMax runes returns nil.
func (e *Engine) PrefixSearch(prefix string) []string {
	return e.ngrams.Lookup(prefix)
}

// DebugIndex logs a structured snapshot of the engine's internal counters:
// document count, term count, total token occurrences, and average document
// length. It has no return value - it exists purely as an observability
// side effect for operators inspecting a running engine.
func (e *Engine) DebugIndex() {
	var avgDocLen float64
	if n := e.docs.Len(); n > 0 {
		avgDocLen = float64(e.docs.TotalContentBytes()) / float64(n)
	}

	e.logger.Info("debug_index",
		slog.Int("documents", e.docs.Len()),
		slog.Int("terms", e.index.TermCount()),
		slog.Int64("total_term_occurrences", e.index.TotalTerms()),
		slog.Float64("average_document_length_bytes", avgDocLen),
		slog.Float64("bm25_k1", e.bm25.K1),
		slog.Float64("bm25_b", e.bm25.B),
	)
}
