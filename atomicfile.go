package blaze

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ATOMIC FILE WRITES
// ═══════════════════════════════════════════════════════════════════════════════
// Every on-disk artifact this engine owns (snapshot, segment file, stats
// sidecar) is replaced, never edited in place: write the new content to a
// temp file in the same directory, then rename it over the target. Rename is
// atomic on every platform this engine targets, so a reader never observes a
// half-written file and a crash mid-write leaves the previous version intact.
// ═══════════════════════════════════════════════════════════════════════════════

// atomicWriteFile writes data to path by first writing to a uuid-suffixed
// temp file in the same directory and renaming it over path. The temp name
// uses google/uuid so concurrent writers targeting different final paths
// never collide on the temp name.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, tempFileName(path))

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func tempFileName(path string) string {
	return filepath.Base(path) + "." + uuid.NewString() + ".tmp"
}
