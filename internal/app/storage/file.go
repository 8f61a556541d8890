package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

// FileStore keeps the profile record in a JSON file.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFileStore creates a FileStore backed by the file at path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: logx.Component("FileStore").With().Str("path", path).Logger(),
	}
}

// Load reads the record. A missing, unreadable, or malformed file yields the empty record.
func (s *FileStore) Load(ctx context.Context) profile.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Msg("No stored profile found.")
		return profile.UserProfile{}
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read stored profile. Falling back to empty profile.")
		return profile.UserProfile{}
	}

	return decodeProfile(data, s.logger)
}

// Save overwrites the file with p. The write goes to a temporary file that is renamed into place.
func (s *FileStore) Save(ctx context.Context, p profile.UserProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.logger.Debug().Str("username", p.Username).Msg("Profile saved.")
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
