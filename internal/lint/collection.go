package lint

import (
	"sort"
	"sync"
)

// Collection holds the published diagnostics of every document. Publishing
// replaces a document's whole set; nothing is ever appended.
type Collection struct {
	mu    sync.RWMutex
	byDoc map[string][]Diagnostic
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byDoc: make(map[string][]Diagnostic)}
}

// Set replaces the diagnostics for path.
func (c *Collection) Set(path string, diags []Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]Diagnostic, len(diags))
	copy(stored, diags)
	c.byDoc[path] = stored
}

// Get returns the diagnostics published for path.
func (c *Collection) Get(path string) ([]Diagnostic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	diags, ok := c.byDoc[path]
	if !ok {
		return nil, false
	}
	out := make([]Diagnostic, len(diags))
	copy(out, diags)
	return out, true
}

// Delete removes the diagnostics for path.
func (c *Collection) Delete(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byDoc, path)
}

// Clear removes every document's diagnostics.
func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byDoc = make(map[string][]Diagnostic)
}

// Documents returns the paths with published diagnostics, sorted.
func (c *Collection) Documents() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.byDoc))
	for p := range c.byDoc {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
