package artifact_manager

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dtnitsch/worksheet-kit/pkg/storage"
)

const (
	DefaultBaseDir = "wsk-exports"
	DefaultPrefix  = "worksheet"
)

var invalidFilenameChar = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of characters outside
// [a-z0-9] into a single dash.
func Slug(s string) string {
	slug := invalidFilenameChar.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// FileName builds "<prefix>-<tag>-<tag>.<ext>". Tags are slugged; empty and
// repeated tags are skipped.
func FileName(prefix string, tags []string, ext string) string {
	parts := []string{Slug(prefix)}
	if parts[0] == "" {
		parts[0] = DefaultPrefix
	}

	seen := map[string]bool{parts[0]: true}
	for _, tag := range tags {
		t := Slug(tag)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		parts = append(parts, t)
	}

	name := strings.Join(parts, "-")
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return name
}

// ShortHash returns a 12-character hex digest of data.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:6])
}

// Manager writes named artifacts into an output directory.
type Manager struct {
	baseDir string
	store   *storage.Storage
}

// NewManager creates a Manager, making sure the output directory exists.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{baseDir: baseDir, store: &storage.Storage{}}, nil
}

// BaseDir returns the output directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Path returns where an artifact with this file name is stored.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.baseDir, filepath.Base(name))
}

// Save writes data under name, overwriting any previous export, and returns the path.
func (m *Manager) Save(name string, data []byte) (string, error) {
	path := m.Path(name)
	if err := m.store.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return path, nil
}
