package out

import (
	"context"
	"fmt"
	"sync"

	apperrors "attend/internal/platform/errors"
)

// MemoryStateStore keeps the blob in memory. ReadErr and WriteErr, when set,
// are returned instead of touching the payload.
type MemoryStateStore struct {
	mu       sync.Mutex
	payload  []byte
	found    bool
	Writes   int
	ReadErr  error
	WriteErr error
}

func NewMemoryStateStore(seed []byte) *MemoryStateStore {
	s := &MemoryStateStore{}
	if seed != nil {
		s.payload = append([]byte(nil), seed...)
		s.found = true
	}
	return s
}

func (s *MemoryStateStore) Read(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, false, fmt.Errorf("read state: %w: %w", apperrors.ErrPersistence, s.ReadErr)
	}
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.payload...), true, nil
}

func (s *MemoryStateStore) Write(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return fmt.Errorf("write state: %w: %w", apperrors.ErrPersistence, s.WriteErr)
	}
	s.payload = append([]byte(nil), payload...)
	s.found = true
	s.Writes++
	return nil
}

// Payload returns the last written blob.
func (s *MemoryStateStore) Payload() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.payload...)
}
