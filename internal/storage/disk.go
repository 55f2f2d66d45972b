// Package storage owns the bytes of uploaded media files under a single
// configured root. The database never owns media bytes; posts only carry weak
// references into this store.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the minimal surface the media resolver and services need.
type Store interface {
	// Exists reports whether a file with the given bare name is present.
	// Missing files are an expected condition, never an error.
	Exists(name string) bool
	Read(name string) ([]byte, error)
	// Save writes content under a name derived from the original filename
	// and returns the stored bare name.
	Save(originalName string, content []byte) (string, error)
	Remove(name string) error
	FullPath(name string) string
}

// DiskStore is a Store over a local directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns a DiskStore.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %q: %w", root, err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the configured storage root.
func (s *DiskStore) Root() string {
	return s.root
}

// FullPath returns the on-disk path for a bare filename.
func (s *DiskStore) FullPath(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

// Exists reports whether the named file is present under the root.
func (s *DiskStore) Exists(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	info, err := os.Stat(s.FullPath(name))
	return err == nil && !info.IsDir()
}

// Read returns the file's content.
func (s *DiskStore) Read(name string) ([]byte, error) {
	return os.ReadFile(s.FullPath(name))
}

// Save stores content under a collision-free name keeping the original
// extension, and returns that name.
func (s *DiskStore) Save(originalName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	if err := os.WriteFile(s.FullPath(name), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return name, nil
}

// Remove deletes the named file.
func (s *DiskStore) Remove(name string) error {
	return os.Remove(s.FullPath(name))
}
