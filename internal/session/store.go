// Package session owns the durable local session record and the role-based
// route gate. Storage is injected so tests run against an in-memory fs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultPath is used when no storage path is configured.
const DefaultPath = "./data/session.json"

// Store persists one session record as JSON at a fixed path. Every operation
// fails soft: storage trouble is logged and reported as "no session" rather
// than propagated into the UI flow.
type Store struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewStore builds a store over the given filesystem. A nil fs falls back to
// the OS filesystem; an empty path falls back to DefaultPath.
func NewStore(fs afero.Fs, path string, logger *zap.Logger) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fs, path: path, logger: logger}
}

// Save writes the record, creating parent directories as needed.
func (s *Store) Save(rec Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("failed to encode session", zap.Error(err))
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			s.logger.Warn("failed to prepare session dir", zap.String("dir", dir), zap.Error(err))
			return
		}
	}
	if err := afero.WriteFile(s.fs, s.path, payload, 0o600); err != nil {
		s.logger.Warn("failed to save session", zap.Error(err))
	}
}

// Load reads the stored record. The second return is false when no session
// exists or the stored payload is unreadable.
func (s *Store) Load() (Record, bool) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to load session", zap.Error(err))
		}
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("failed to decode session", zap.Error(err))
		return Record{}, false
	}
	return rec, true
}

// Clear removes the stored record. Clearing an absent session is a no-op.
func (s *Store) Clear() {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to clear session", zap.Error(err))
	}
}
