package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoArchive signals that no persisted archive exists yet. Callers treat it
// as an empty collection, never as a failure.
var ErrNoArchive = errors.New("no archive present")

// Persistence is the key-value capability the edition store writes through.
// The whole archive is serialized as a single blob on every mutation.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FilePersistence keeps the archive in a single JSON file on disk.
type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) (*FilePersistence, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FilePersistence{path: path}, nil
}

func (f *FilePersistence) Load(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoArchive
		}
		return nil, fmt.Errorf("failed to read archive file: %w", err)
	}
	return data, nil
}

func (f *FilePersistence) Save(ctx context.Context, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	return nil
}

// MemoryPersistence holds the archive in memory. Used in tests and as a
// fallback when no durable backend is configured.
type MemoryPersistence struct {
	data []byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, ErrNoArchive
	}
	return m.data, nil
}

func (m *MemoryPersistence) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}
