package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache persists intermediate pipeline artifacts (normalized corpus,
// per-document token lists) as JSON blobs so repeated runs can skip
// recomputation. A Cache with an empty directory is disabled.
type Cache struct {
	Dir string
}

// NewCache creates a cache rooted at dir. An empty dir disables caching.
func NewCache(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Enabled reports whether artifacts will be stored.
func (c *Cache) Enabled() bool { return c != nil && c.Dir != "" }

// Has reports whether a named artifact exists.
func (c *Cache) Has(name string) bool {
	if !c.Enabled() {
		return false
	}
	_, err := os.Stat(c.path(name))
	return err == nil
}

// Save writes an artifact. A disabled cache silently accepts writes.
func (c *Cache) Save(name string, v any) error {
	if !c.Enabled() {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("dataset: cache dir: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("dataset: cache %s: %w", name, err)
	}
	if err := os.WriteFile(c.path(name), data, 0644); err != nil {
		return fmt.Errorf("dataset: cache %s: %w", name, err)
	}
	return nil
}

// Load reads an artifact into v.
func (c *Cache) Load(name string, v any) error {
	if !c.Enabled() {
		return fmt.Errorf("dataset: cache disabled")
	}
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		return fmt.Errorf("dataset: cache %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dataset: cache %s: %w", name, err)
	}
	return nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.Dir, name+".json")
}
