package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store. It backs the "memory" database driver
// for local development and the fakes used throughout the tests. Documents
// are round-tripped through JSON on the way in and out so callers observe
// the same value types as with the SQL-backed stores.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, unavailable("get document", err)
	}
	if _, _, err := splitPath(path); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[path]
	if !ok {
		return nil, false, nil
	}
	return cloneDoc(doc), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, doc Document, merge bool) error {
	if err := ctx.Err(); err != nil {
		return unavailable("set document", err)
	}
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if merge {
		s.docs[path] = Merge(cloneDoc(s.docs[path]), cloneDoc(doc))
		return nil
	}
	s.docs[path] = cloneDoc(doc)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return unavailable("delete document", err)
	}
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list documents", err)
	}
	collection = strings.Trim(collection, "/")
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []Entry
	for path, doc := range s.docs {
		coll, id, err := splitPath(path)
		if err != nil || coll != collection {
			continue
		}
		entries = append(entries, Entry{ID: id, Data: cloneDoc(doc)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// cloneDoc deep-copies via JSON so stored values cannot alias caller memory
// and read values match what the SQL stores would return.
func cloneDoc(doc Document) Document {
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		// Documents are built from JSON-compatible values; an unmarshalable
		// one is a programming error surfaced loudly in tests.
		panic("docstore: unmarshalable document: " + err.Error())
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("docstore: clone round trip failed: " + err.Error())
	}
	return out
}
