package blaze

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SEGMENTED TERM DICTIONARY: The Alternate Persistence Strategy
// ═══════════════════════════════════════════════════════════════════════════════
// Instead of one whole-engine binary snapshot, a SegmentStore persists the
// inverted index one term at a time, hash-sharded across many small text
// files so a single term update only has to rewrite one small file instead
// of the entire index. A segment file holds zero or more records, one per
// line, `term<TAB>json(term_info)\n`, sorted ascending by term; multiple
// terms may share a segment, but each term appears at most once per segment.
//
// term_info maps doc-id -> list of opaque position tokens. Upserting a term
// follows the three-way branch below, streaming the segment line by line
// into a fresh temp file and renaming it over the original:
//  1. insert-at-sort-position: the target term sorts before the current
//     line's term and hasn't been written yet - write the new record, then
//     the current line.
//  2. merge-at-equal-term: the current line's term matches - merge its
//     term_info with the new one via mergeTermInfo (per doc-id, union of
//     position tokens) and write the merged record. The old line is never
//     also emitted.
//  3. copy-through: every other line is copied verbatim.
// If the term was never written by EOF, it's appended.
//
// MakeSegmentName is idempotent and non-destructive: it only ensures the
// segment file exists, never truncating or rewriting one that's already
// there.
// ═══════════════════════════════════════════════════════════════════════════════

// termInfo maps doc-id to a list of opaque position tokens for one term.
type termInfo map[string][]string

// SegmentStore persists inverted-index postings as hash-sharded segment
// files under a directory.
type SegmentStore struct {
	dir        string
	hashLength int
}

// NewSegmentStore returns a SegmentStore rooted at dir, sharding terms by
// the first hashLength hex characters of their MD5 digest.
func NewSegmentStore(dir string, hashLength int) *SegmentStore {
	return &SegmentStore{dir: dir, hashLength: hashLength}
}

// MakeSegmentName ensures the segment file for term exists (creating an
// empty one if missing, without truncating an existing file) and returns
// its path.
func (s *SegmentStore) MakeSegmentName(term string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := s.segmentPath(HashName(term, s.hashLength))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (s *SegmentStore) segmentPath(hash string) string {
	return filepath.Join(s.dir, hash+".index")
}

// WriteTerm merges info into term's record in its segment file, implementing
// the three-way branch documented above. The write is atomic: a crash
// mid-write leaves the previous segment contents intact.
func (s *SegmentStore) WriteTerm(term string, info termInfo) error {
	path, err := s.MakeSegmentName(term)
	if err != nil {
		return err
	}

	existing, err := os.Open(path)
	if err != nil {
		return err
	}
	defer existing.Close()

	var out bytes.Buffer
	written := false

	scanner := bufio.NewScanner(existing)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		lineTerm, rawInfo, parseErr := parseRecord(line)
		if parseErr != nil {
			return fmt.Errorf("blaze: malformed segment record in %s: %w", path, parseErr)
		}

		switch {
		case !written && term < lineTerm:
			if err := writeRecord(&out, term, info); err != nil {
				return err
			}
			written = true
			out.WriteString(line)
			out.WriteByte('\n')
		case lineTerm == term:
			var existingInfo termInfo
			if err := json.Unmarshal([]byte(rawInfo), &existingInfo); err != nil {
				return fmt.Errorf("blaze: malformed term_info in %s: %w", path, err)
			}
			merged := mergeTermInfo(existingInfo, info)
			if err := writeRecord(&out, term, merged); err != nil {
				return err
			}
			written = true
		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("blaze: reading segment %s: %w", path, err)
	}

	if !written {
		if err := writeRecord(&out, term, info); err != nil {
			return err
		}
	}

	return atomicWriteFile(path, out.Bytes())
}

// ReadTerm returns the term_info stored for term, if any.
func (s *SegmentStore) ReadTerm(term string) (termInfo, bool, error) {
	path := s.segmentPath(HashName(term, s.hashLength))

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		lineTerm, rawInfo, err := parseRecord(line)
		if err != nil {
			return nil, false, fmt.Errorf("blaze: malformed segment record in %s: %w", path, err)
		}
		if lineTerm != term {
			continue
		}
		var info termInfo
		if err := json.Unmarshal([]byte(rawInfo), &info); err != nil {
			return nil, false, fmt.Errorf("blaze: malformed term_info in %s: %w", path, err)
		}
		return info, true, nil
	}
	return nil, false, nil
}

// makeRecord renders one segment-file line: term, a tab, the JSON encoding
// of info, and a trailing newline.
func makeRecord(term string, info any) (string, error) {
	encoded, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return term + "\t" + string(encoded) + "\n", nil
}

func writeRecord(buf *bytes.Buffer, term string, info any) error {
	record, err := makeRecord(term, info)
	if err != nil {
		return err
	}
	buf.WriteString(record)
	return nil
}

// parseRecord splits one segment-file line (without its trailing newline)
// into its term and the raw JSON text of its term_info.
func parseRecord(line string) (term string, infoJSON string, err error) {
	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return "", "", fmt.Errorf("record missing tab separator: %q", line)
	}
	return line[:tab], line[tab+1:], nil
}

// mergeTermInfo implements update_term_info: for every doc-id in next, if
// it's absent from orig its positions are copied verbatim; if present, the
// two position lists are unioned (set semantics, sorted for a stable,
// reproducible encoding).
func mergeTermInfo(orig, next termInfo) termInfo {
	merged := make(termInfo, len(orig))
	for docID, positions := range orig {
		merged[docID] = append([]string(nil), positions...)
	}

	for docID, positions := range next {
		if _, ok := merged[docID]; !ok {
			merged[docID] = append([]string(nil), positions...)
			continue
		}
		merged[docID] = unionPositions(merged[docID], positions)
	}

	return merged
}

func unionPositions(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			union = append(union, p)
		}
	}
	sort.Strings(union)
	return union
}
