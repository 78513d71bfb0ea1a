package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// URLBase is the public prefix under which stored artifacts are served.
const URLBase = "/uploads"

// Store persists drawing artifacts on local disk. Records hold the public
// URL path (/uploads/<name>); Store maps between that and the absolute
// location under its base directory.
type Store struct {
	baseDir string
}

func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the base directory, used by the boundary to serve /uploads
// statically.
func (s *Store) Dir() string {
	return s.baseDir
}

// Save writes data under name and returns the public URL path for it.
// Callers generate collision-resistant names, so no existence check is
// made before the write.
func (s *Store) Save(name string, data []byte) (string, error) {
	absPath := filepath.Join(s.baseDir, filepath.Base(name))
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return URLBase + "/" + filepath.Base(name), nil
}

// Read returns the artifact bytes for a stored URL path.
func (s *Store) Read(urlPath string) ([]byte, error) {
	return os.ReadFile(s.Abs(urlPath))
}

// Exists reports whether the artifact behind urlPath is still on disk.
func (s *Store) Exists(urlPath string) bool {
	_, err := os.Stat(s.Abs(urlPath))
	return err == nil
}

// Remove deletes the artifact behind urlPath. A missing file is treated as
// already removed: deletion is best-effort during drawing removal and the
// database flag is the authoritative signal.
func (s *Store) Remove(urlPath string) {
	if urlPath == "" {
		return
	}
	if err := os.Remove(s.Abs(urlPath)); err != nil && !os.IsNotExist(err) {
		log.Printf("artifact_remove_failed path=%s err=%v", urlPath, err)
	}
}

// Abs resolves a stored URL path to the absolute file location.
func (s *Store) Abs(urlPath string) string {
	name := strings.TrimPrefix(urlPath, URLBase+"/")
	return filepath.Join(s.baseDir, filepath.Base(name))
}
