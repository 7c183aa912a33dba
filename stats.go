package blaze

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ═══════════════════════════════════════════════════════════════════════════════
// STATS STORE: A Small JSON Sidecar
// ═══════════════════════════════════════════════════════════════════════════════
// The stats store tracks a single corpus-wide counter (total documents
// indexed) in a small JSON file alongside the snapshot/segments, grounded
// directly on the reference implementation's read_stats/write_stats/
// increment_total_docs trio. Its absence is not an error: a missing file
// means "a fresh engine", exactly as the reference's default {"0.1.0", 0}.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	statsFileName        = "stats.json"
	currentStatsVersion  = "0.1.0"
	defaultStatsTotalDoc = 0
)

// Stats is the persisted shape of the stats sidecar file.
type Stats struct {
	Version   string `json:"version"`
	TotalDocs int    `json:"total_docs"`
}

// StatsStore reads and writes the stats sidecar file under a base directory.
type StatsStore struct {
	path string
}

// NewStatsStore returns a StatsStore backed by <dir>/stats.json.
func NewStatsStore(dir string) *StatsStore {
	return &StatsStore{path: filepath.Join(dir, statsFileName)}
}

// Read loads the stats file, returning the default stats (version "0.1.0",
// total_docs 0) if the file does not yet exist.
func (s *StatsStore) Read() (Stats, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Stats{Version: currentStatsVersion, TotalDocs: defaultStatsTotalDoc}, nil
	}
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Write atomically replaces the stats file with stats.
func (s *StatsStore) Write(stats Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return atomicWriteFile(s.path, data)
}

// IncrementTotalDocs loads the current stats, increments total_docs by one,
// and writes the result back. Engine does not call it: Engine.persist writes
// the current document count directly.
func (s *StatsStore) IncrementTotalDocs() error {
	stats, err := s.Read()
	if err != nil {
		return err
	}
	stats.TotalDocs++
	return s.Write(stats)
}

// TotalDocs is a convenience read-only accessor.
func (s *StatsStore) TotalDocs() (int, error) {
	stats, err := s.Read()
	if err != nil {
		return 0, err
	}
	return stats.TotalDocs, nil
}
