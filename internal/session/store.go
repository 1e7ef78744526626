// Package session owns the current authenticated session: its durable slot,
// the in-memory publish/subscribe cell, and the login/logout flows.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a single named durable slot holding a serialized session.
// Read reports ok=false when the slot is empty.
type Store interface {
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// FileStore keeps the slot in a file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed slot at path. The parent directory is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file backing the slot.
func (f *FileStore) Path() string {
	return f.path
}

// Read implements Store.
func (f *FileStore) Read(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read session file: %w", err)
	}
	return data, true, nil
}

// Write implements Store. The file is replaced atomically.
func (f *FileStore) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to restrict session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Delete implements Store.
func (f *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemoryStore is a volatile Store, used by tests and one-shot invocations.
type MemoryStore struct {
	data []byte
	mu   sync.Mutex
	set  bool
}

// NewMemoryStore creates an empty in-memory slot.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read implements Store.
func (m *MemoryStore) Read(_ context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Write implements Store.
func (m *MemoryStore) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
