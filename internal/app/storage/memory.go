package storage

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

// MemoryStore keeps the encoded record in process memory.
// It goes through the same encoding as the durable backends, so it behaves like them in tests.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	logger zerolog.Logger
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logger: logx.Component("MemoryStore")}
}

// Load decodes the stored bytes. Nothing stored, or bytes that do not decode, yield the empty record.
func (s *MemoryStore) Load(ctx context.Context) profile.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeProfile(s.data, s.logger)
}

// Save encodes p and replaces the stored bytes.
func (s *MemoryStore) Save(ctx context.Context, p profile.UserProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Raw returns the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// SetRaw replaces the stored bytes, bypassing encoding.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
