package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skiff-web/skiff/http/status"
)

// Entry describes a single stored file.
type Entry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Store is a flat directory of files keyed by their base name. There is no
// index and no metadata: listing is computed by scanning the directory at
// request time. Writes are single bulk calls and are not serialized, so
// concurrent uploads under the same name are last-writer-wins.
type Store struct {
	dir string
}

// New creates the storage directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the content under the given name, overwriting an existing
// file. The name must already be sanitized.
func (s *Store) Save(name string, content []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return status.ErrStorageFailure
	}

	return nil
}

// Read returns the full content of a stored file. Missing files, as well as
// anything that isn't a regular file, report status.ErrNotFound.
func (s *Store) Read(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, status.ErrNotFound
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, status.ErrStorageFailure
	}

	return content, nil
}

// Remove deletes a stored file. A missing path reports status.ErrNotFound.
func (s *Store) Remove(name string) error {
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err != nil {
		return status.ErrNotFound
	}

	if err := os.Remove(path); err != nil {
		return status.ErrStorageFailure
	}

	return nil
}

// List reports every regular file directly inside the storage directory.
func (s *Store) List() ([]Entry, error) {
	items, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, status.ErrStorageFailure
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		info, err := item.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		entries = append(entries, Entry{
			Name: item.Name(),
			Size: info.Size(),
		})
	}

	return entries, nil
}

// Sanitize reduces an upload filename to a safe base name: the final path
// segment only, never empty and never dot-prefixed. Names that don't survive
// the reduction are replaced with a timestamped one.
func Sanitize(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i != -1 {
		name = name[i+1:]
	}

	if name == "" || strings.HasPrefix(name, ".") {
		return fmt.Sprintf("file_%d", time.Now().Unix())
	}

	return name
}
