package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
)

// CategoryMapStore keeps the category to offset-account map in a flat JSON
// file. It backs deployments whose database has no category_offset_map table.
// Every Set rewrites the file; the map is small enough that this is fine.
type CategoryMapStore struct {
	mu       sync.RWMutex
	path     string
	mappings map[string]string
}

// NewCategoryMapStore loads the mapping from path, starting empty when the
// file does not exist yet.
func NewCategoryMapStore(path string) (*CategoryMapStore, error) {
	store := &CategoryMapStore{
		path:     path,
		mappings: make(map[string]string),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read category map file %s: %w", path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &store.mappings); err != nil {
			return nil, fmt.Errorf("failed to parse category map file %s: %w", path, err)
		}
	}
	return store, nil
}

var _ portsrepo.KeyValueStore = (*CategoryMapStore)(nil)

func (s *CategoryMapStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.mappings[key]
	if !ok {
		return "", apperrors.NewAppError(404, fmt.Sprintf("no mapping for category %s", key), apperrors.ErrNotFound)
	}
	return value, nil
}

func (s *CategoryMapStore) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.mappings))
	for k, v := range s.mappings {
		out[k] = v
	}
	return out, nil
}

func (s *CategoryMapStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[key] = value
	return s.persist()
}

// persist writes to a temp file then renames, so a crash mid-write never
// leaves a truncated map behind. Caller holds the write lock.
func (s *CategoryMapStore) persist() error {
	data, err := json.MarshalIndent(s.mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode category map: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create category map directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write category map file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace category map file: %w", err)
	}
	return nil
}
