package blaze

import (
	"errors"
	"testing"
)

func TestEncodeDecodeSnapshot_RoundTrip(t *testing.T) {
	idx := NewInvertedIndex()
	docs := NewDocumentStore()

	docs.Put("http://a", "the quick fox")
	docs.Put("http://b", "the lazy dog")
	idx.SetPosting("the", 0, 1)
	idx.SetPosting("the", 1, 1)
	idx.SetPosting("quick", 0, 1)
	idx.SetPosting("fox", 0, 1)
	idx.SetPosting("lazy", 1, 1)
	idx.SetPosting("dog", 1, 1)

	params := BM25Parameters{K1: 1.2, B: 0.8}

	data, err := EncodeSnapshot(idx, docs, params)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	gotIdx, gotDocs, gotParams, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if gotParams != params {
		t.Errorf("params = %+v, want %+v", gotParams, params)
	}
	if gotDocs.Len() != 2 {
		t.Errorf("decoded document count = %d, want 2", gotDocs.Len())
	}
	content, ok := gotDocs.Get("http://a")
	if !ok || content != "the quick fox" {
		t.Errorf("decoded content for http://a = %q, ok=%v", content, ok)
	}

	postings := gotIdx.Postings("the")
	if len(postings) != 2 {
		t.Errorf("decoded postings for \"the\" = %v, want 2 entries", postings)
	}
}

func TestEncodeSnapshot_Deterministic(t *testing.T) {
	build := func() (*InvertedIndex, *DocumentStore) {
		idx := NewInvertedIndex()
		docs := NewDocumentStore()
		docs.Put("z", "zz")
		docs.Put("a", "aa")
		idx.SetPosting("term", 0, 3)
		idx.SetPosting("term", 1, 1)
		return idx, docs
	}

	idx1, docs1 := build()
	idx2, docs2 := build()

	data1, err := EncodeSnapshot(idx1, docs1, DefaultBM25Parameters())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	data2, err := EncodeSnapshot(idx2, docs2, DefaultBM25Parameters())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	if string(data1) != string(data2) {
		t.Error("EncodeSnapshot is not deterministic across equivalent builds")
	}
}

func TestDecodeSnapshot_CorruptVersion(t *testing.T) {
	_, _, _, err := DecodeSnapshot([]byte{0xFF})
	if !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("error = %v, want wrapping ErrCorruptSnapshot", err)
	}
}

func TestDecodeSnapshot_Truncated(t *testing.T) {
	idx := NewInvertedIndex()
	docs := NewDocumentStore()
	docs.Put("a", "b")
	idx.SetPosting("term", 0, 1)

	data, err := EncodeSnapshot(idx, docs, DefaultBM25Parameters())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	truncated := data[:len(data)-3]
	if _, _, _, err := DecodeSnapshot(truncated); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("error = %v, want wrapping ErrCorruptSnapshot", err)
	}
}

func TestDecodeSnapshot_TrailingGarbage(t *testing.T) {
	idx := NewInvertedIndex()
	docs := NewDocumentStore()
	docs.Put("a", "b")

	data, err := EncodeSnapshot(idx, docs, DefaultBM25Parameters())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	withGarbage := append(data, 0x01, 0x02, 0x03)
	if _, _, _, err := DecodeSnapshot(withGarbage); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("error = %v, want wrapping ErrCorruptSnapshot", err)
	}
}
