package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the catalog document from the local filesystem.
// Used in development and tests.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the whole file.
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	return data, nil
}

// Describe identifies the source for logs and errors.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

var _ Source = (*FileSource)(nil)
