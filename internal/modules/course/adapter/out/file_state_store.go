package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	courseout "attend/internal/modules/course/port/out"
	apperrors "attend/internal/platform/errors"
)

type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) courseout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Read(_ context.Context) ([]byte, bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read state: %w: %w", apperrors.ErrPersistence, err)
	}
	return payload, true, nil
}

// Write replaces the state file atomically via a temp file in the same dir.
func (s *FileStateStore) Write(_ context.Context, payload []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w: %w", apperrors.ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(dir, ".attendanceData-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w: %w", apperrors.ErrPersistence, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write state: %w: %w", apperrors.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w: %w", apperrors.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace state: %w: %w", apperrors.ErrPersistence, err)
	}
	return nil
}
