// Package httpapi exposes a blaze.Engine over HTTP. It is a thin adapter:
// the engine itself has no internal lock, so Service owns the single
// process-wide mutex the concurrency model calls for and every handler
// acquires it for the whole of its critical section.
package httpapi

import (
	"log/slog"
	"sync"

	"github.com/wizenheimer/blaze"
)

// Service wraps one *blaze.Engine behind a mutex, making it safe to call
// concurrently from multiple HTTP handlers.
type Service struct {
	mu     sync.Mutex
	engine *blaze.Engine
	logger *slog.Logger
}

// NewService wraps engine for concurrent HTTP access.
func NewService(engine *blaze.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, logger: logger}
}

// IndexDocument indexes one (url, content) pair.
func (s *Service) IndexDocument(url, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Index(url, content)
}

// Search runs a query against the engine.
func (s *Service) Search(query string) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Search(query)
}

// NumberOfDocuments returns the number of indexed documents.
func (s *Service) NumberOfDocuments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.NumberOfDocuments()
}

// DebugIndex triggers the engine's structured debug log line.
func (s *Service) DebugIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.DebugIndex()
}
