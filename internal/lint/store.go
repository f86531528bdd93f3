package lint

import (
	"path/filepath"

	"github.com/patrickmn/go-cache"

	"github.com/crewlint/crewlint/internal/schema"
)

// AgentsStore remembers the most recently parsed agents document per directory.
// Put overwrites; tasks linting only reads.
type AgentsStore interface {
	Put(dir string, agents *schema.Record)
	Get(dir string) (*schema.Record, bool)
}

// MemoryStore is an in-process AgentsStore. Entries never expire.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

// Put stores agents for dir, replacing any previous entry.
func (s *MemoryStore) Put(dir string, agents *schema.Record) {
	s.c.Set(filepath.Clean(dir), agents, cache.NoExpiration)
}

// Get returns the agents document last stored for dir.
func (s *MemoryStore) Get(dir string) (*schema.Record, bool) {
	v, ok := s.c.Get(filepath.Clean(dir))
	if !ok {
		return nil, false
	}
	rec, ok := v.(*schema.Record)
	return rec, ok
}
