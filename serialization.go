package blaze

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════════
// BINARY SNAPSHOT PERSISTENCE
// ═══════════════════════════════════════════════════════════════════════════════
// EncodeSnapshot/DecodeSnapshot serialize the engine's entire state - every
// document's content and every term's postings - into one opaque binary
// blob, length-prefixing every string and byte slice exactly as the
// reference skip list encoder did. There is no JSON here: a custom binary
// format keeps snapshot files small and fast to parse, at the cost of being
// only readable by this engine.
//
// FORMAT:
// -------
//
//	[version: 1 byte]
//	[k1: float64][b: float64]
//	[document_count: uint32]
//	  for each document, ascending by URL:
//	    [url: length-prefixed bytes][content: length-prefixed bytes]
//	[term_count: uint32]
//	  for each term, ascending lexicographically:
//	    [term: length-prefixed bytes]
//	    [posting_count: uint32]
//	      for each posting, ascending by document ordinal:
//	        [url: length-prefixed bytes][frequency: uint32]
//
// Postings reference documents by URL, not by the internal ordinal the
// in-memory index uses - ordinals are only ever an artifact of the current
// process's load order and are never persisted. Any error decoding a
// snapshot is wrapped in ErrCorruptSnapshot: per this engine's error policy,
// a corrupt snapshot is fatal and is never silently repaired or partially
// loaded.
// ═══════════════════════════════════════════════════════════════════════════════

const snapshotFormatVersion uint8 = 1

// ErrCorruptSnapshot is returned (wrapped) when a snapshot cannot be decoded.
var ErrCorruptSnapshot = errors.New("blaze: corrupt snapshot")

// EncodeSnapshot serializes idx and docs into the binary snapshot format.
// A posting's ordinal is resolved to the URL at that position in
// docs.URLs(), so idx must be keyed by those positions.
func EncodeSnapshot(idx *InvertedIndex, docs *DocumentStore, params BM25Parameters) ([]byte, error) {
	var buf bytes.Buffer

	if err := buf.WriteByte(snapshotFormatVersion); err != nil {
		return nil, err
	}
	if err := writeFloat64(&buf, params.K1); err != nil {
		return nil, err
	}
	if err := writeFloat64(&buf, params.B); err != nil {
		return nil, err
	}

	urls := docs.URLs()
	if err := writeUint32(&buf, uint32(len(urls))); err != nil {
		return nil, err
	}

	ordinalOf := make(map[string]int, len(urls))
	for ordinal, url := range urls {
		ordinalOf[url] = ordinal

		content, _ := docs.Get(url)
		if err := writeString(&buf, url); err != nil {
			return nil, err
		}
		if err := writeBytesField(&buf, []byte(content)); err != nil {
			return nil, err
		}
	}

	terms := idx.Terms()
	if err := writeUint32(&buf, uint32(len(terms))); err != nil {
		return nil, err
	}

	for _, term := range terms {
		if err := writeString(&buf, term); err != nil {
			return nil, err
		}

		postings := idx.Postings(term)
		ordinals := make([]int, 0, len(postings))
		for ordinal := range postings {
			ordinals = append(ordinals, ordinal)
		}
		sort.Ints(ordinals)

		if err := writeUint32(&buf, uint32(len(ordinals))); err != nil {
			return nil, err
		}
		for _, ordinal := range ordinals {
			if ordinal < 0 || ordinal >= len(urls) {
				return nil, fmt.Errorf("blaze: posting references unknown document ordinal %d", ordinal)
			}
			if err := writeString(&buf, urls[ordinal]); err != nil {
				return nil, err
			}
			if err := writeUint32(&buf, uint32(postings[ordinal])); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

// DecodeSnapshot parses the binary snapshot format, rebuilding both the
// document store and the inverted index. Any structural problem - a
// truncated buffer, an unsupported version byte, a posting referencing a
// URL absent from the document section, trailing bytes after the last
// record - is reported as ErrCorruptSnapshot.
func DecodeSnapshot(data []byte) (*InvertedIndex, *DocumentStore, BM25Parameters, error) {
	var params BM25Parameters
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return nil, nil, params, wrapCorrupt(err)
	}
	if version != snapshotFormatVersion {
		return nil, nil, params, fmt.Errorf("%w: unsupported format version %d", ErrCorruptSnapshot, version)
	}

	if params.K1, err = readFloat64(r); err != nil {
		return nil, nil, params, wrapCorrupt(err)
	}
	if params.B, err = readFloat64(r); err != nil {
		return nil, nil, params, wrapCorrupt(err)
	}

	docCount, err := readUint32(r)
	if err != nil {
		return nil, nil, params, wrapCorrupt(err)
	}

	docs := NewDocumentStore()
	urls := make([]string, 0, docCount)
	urlToOrdinal := make(map[string]int, docCount)

	for i := uint32(0); i < docCount; i++ {
		url, err := readString(r)
		if err != nil {
			return nil, nil, params, wrapCorrupt(err)
		}
		content, err := readBytesField(r)
		if err != nil {
			return nil, nil, params, wrapCorrupt(err)
		}

		docs.Put(url, string(content))
		urlToOrdinal[url] = len(urls)
		urls = append(urls, url)
	}

	termCount, err := readUint32(r)
	if err != nil {
		return nil, nil, params, wrapCorrupt(err)
	}

	idx := NewInvertedIndex()
	for t := uint32(0); t < termCount; t++ {
		term, err := readString(r)
		if err != nil {
			return nil, nil, params, wrapCorrupt(err)
		}
		postingCount, err := readUint32(r)
		if err != nil {
			return nil, nil, params, wrapCorrupt(err)
		}

		for p := uint32(0); p < postingCount; p++ {
			url, err := readString(r)
			if err != nil {
				return nil, nil, params, wrapCorrupt(err)
			}
			freq, err := readUint32(r)
			if err != nil {
				return nil, nil, params, wrapCorrupt(err)
			}

			ordinal, ok := urlToOrdinal[url]
			if !ok {
				return nil, nil, params, fmt.Errorf("%w: posting for term %q references unknown url %q", ErrCorruptSnapshot, term, url)
			}
			idx.SetPosting(term, ordinal, int(freq))
		}
	}

	if r.Len() != 0 {
		return nil, nil, params, fmt.Errorf("%w: %d trailing bytes after last record", ErrCorruptSnapshot, r.Len())
	}

	return idx, docs, params, nil
}

func wrapCorrupt(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
}

// ─── length-prefixed primitive encoding, mirroring the reference skip list
// tower encoder's string/byte-array framing ───────────────────────────────

func writeUint32(buf *bytes.Buffer, v uint32) error {
	return binary.Write(buf, binary.LittleEndian, v)
}

func writeFloat64(buf *bytes.Buffer, v float64) error {
	return binary.Write(buf, binary.LittleEndian, v)
}

func writeBytesField(buf *bytes.Buffer, b []byte) error {
	if err := writeUint32(buf, uint32(len(b))); err != nil {
		return err
	}
	_, err := buf.Write(b)
	return err
}

func writeString(buf *bytes.Buffer, s string) error {
	return writeBytesField(buf, []byte(s))
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readFloat64(r *bytes.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readBytesField(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytesField(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
