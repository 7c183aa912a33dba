package blaze

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT STORE: URL -> Content
// ═══════════════════════════════════════════════════════════════════════════════
// The document store is the second half of the engine's persisted state: the
// original content behind every indexed URL, kept around so the Scorer can
// compute byte-length document statistics and so callers can retrieve raw
// content by URL. Like the inverted index, it orders its keys (URLs) with an
// orderedStringSet so the binary snapshot has a stable layout.
// ═══════════════════════════════════════════════════════════════════════════════

// DocumentStore holds document content keyed by URL.
type DocumentStore struct {
	urls    *orderedStringSet
	content map[string]string
}

// NewDocumentStore returns an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		urls:    newOrderedStringSet(newSkipListRand()),
		content: make(map[string]string),
	}
}

// Put stores (or replaces) the content for url. Re-indexing an existing URL
// overwrites its content; the engine never merges or appends.
func (ds *DocumentStore) Put(url, content string) {
	ds.urls.Insert(url)
	ds.content[url] = content
}

// Get returns the content stored for url and whether it was present.
func (ds *DocumentStore) Get(url string) (string, bool) {
	content, ok := ds.content[url]
	return content, ok
}

// URLs returns every stored URL in ascending lexicographic order.
func (ds *DocumentStore) URLs() []string {
	return ds.urls.Keys()
}

// Len returns the number of documents stored.
func (ds *DocumentStore) Len() int {
	return ds.urls.Len()
}

// TotalContentBytes sums the byte length of every stored document's content,
// the numerator the Scorer needs for average document length (avdl).
func (ds *DocumentStore) TotalContentBytes() int64 {
	var total int64
	for _, content := range ds.content {
		total += int64(len(content))
	}
	return total
}
