package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FilePreviewStore materializes draft previews as files under a
// per-session directory. Release unlinks the file; Close removes the
// whole directory, which covers teardown before every draft was
// released individually.
type FilePreviewStore struct {
	dir string

	mu   sync.Mutex
	live map[string]struct{}
}

// NewFilePreviewStore creates the preview directory under baseDir (the
// OS temp dir when empty).
func NewFilePreviewStore(baseDir string) (*FilePreviewStore, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir, err := os.MkdirTemp(baseDir, "tiller-previews-")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}
	return &FilePreviewStore{dir: dir, live: make(map[string]struct{})}, nil
}

// Create writes the preview for one accepted draft and returns its
// path. The path stays live until Release.
func (s *FilePreviewStore) Create(ref, name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.dir, ref+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	s.mu.Lock()
	s.live[path] = struct{}{}
	s.mu.Unlock()
	return path, nil
}

// Release unlinks one preview. Releasing an unknown or already released
// path is a no-op.
func (s *FilePreviewStore) Release(path string) error {
	s.mu.Lock()
	_, ok := s.live[path]
	delete(s.live, path)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LiveCount returns the number of unreleased previews.
func (s *FilePreviewStore) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Close removes the preview directory and everything still in it.
func (s *FilePreviewStore) Close() error {
	s.mu.Lock()
	s.live = make(map[string]struct{})
	s.mu.Unlock()
	return os.RemoveAll(s.dir)
}
