package blaze

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// HASH NAME: Deterministic Short Names for Terms
// ═══════════════════════════════════════════════════════════════════════════════
// HashName gives every term a short, filesystem-safe, deterministic name used
// to shard the segmented term dictionary (segment.go) across files. It reuses
// the same MD5+hex idiom the reference BM25 matcher used for match keys, just
// applied to terms instead of (docID, positions) tuples.
// ═══════════════════════════════════════════════════════════════════════════════

// HashName returns the first length hex characters of the MD5 digest of the
// lowercased term. length is clamped to [0, 32] (the full digest length).
func HashName(term string, length int) string {
	sum := md5.Sum([]byte(strings.ToLower(term)))
	full := hex.EncodeToString(sum[:])

	if length < 0 {
		length = 0
	}
	if length > len(full) {
		length = len(full)
	}
	return full[:length]
}
