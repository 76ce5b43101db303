package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// fileExtension is appended to every key to build its file name.
	fileExtension = ".json"
	// filePermissions restricts stored documents to the current user.
	filePermissions = 0o600
	// dirPermissions is used when the data directory has to be created.
	dirPermissions = 0o700
)

// FileStore persists each key as <dir>/<key>.json.
type FileStore struct {
	// dir is the directory holding one file per key.
	dir string
	// mu serializes writers within this process.
	mu sync.Mutex
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: filepath.Clean(dir),
	}
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file that backs key.
func (s *FileStore) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(s.dir, key+fileExtension), nil
}

// Get reads the document stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("read %s: %w", key, err)
	}

	return string(contents), nil
}

// Set writes value to a temporary file in the same directory and renames it over the key's file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = os.MkdirAll(s.dir, dirPermissions); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	tmpName := tmp.Name()

	// Removing a renamed file fails harmlessly.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.WriteString(value); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write %s: %w", key, err)
	}

	if err = tmp.Chmod(filePermissions); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("chmod %s: %w", key, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}

	return nil
}
