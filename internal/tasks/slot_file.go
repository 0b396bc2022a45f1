package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSlot stores the blob as a single JSON file on disk. Writes go through a
// temp file plus rename so the slot never holds a torn blob.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) (*FileSlot, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("file slot path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create slot directory: %w", err)
		}
	}
	return &FileSlot{path: path}, nil
}

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return blob, nil
}

func (s *FileSlot) Write(_ context.Context, blob []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp slot file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}

func (s *FileSlot) Mode() string {
	return "file"
}

func (s *FileSlot) Close() error {
	return nil
}
