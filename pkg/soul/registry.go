// Package soul indexes artifacts by their semantic hash.
//
// A soul is the equivalence class of artifacts sharing one semantic hash;
// the paths in a class are soul siblings. The Registry is in-memory, grows
// monotonically for its lifetime and is never persisted or purged.
//
// There is no shared global instance: whoever constructs a Registry owns it.
// A Registry is safe for concurrent use.
package soul

import (
	"sort"
	"sync"
)

// Registry maps semantic hashes to the paths registered under them.
type Registry struct {
	mu    sync.RWMutex
	souls map[string][]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{souls: make(map[string][]string)}
}

// Register appends path to the list kept for hash. Duplicates are kept:
// registering the same path twice yields two entries.
func (r *Registry) Register(hash, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.souls == nil {
		r.souls = make(map[string][]string)
	}
	r.souls[hash] = append(r.souls[hash], path)
}

// FindBySoul returns the paths registered under hash in registration order.
// Unknown hashes yield an empty, non-nil slice. The result is a copy.
func (r *Registry) FindBySoul(hash string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := r.souls[hash]
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Len returns the number of distinct souls.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.souls)
}

// Souls returns every registered hash in sorted order.
func (r *Registry) Souls() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.souls))
	for h := range r.souls {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Group is one soul together with its siblings.
type Group struct {
	Soul  string
	Paths []string
}

// Groups returns the souls with at least minSize registered paths, sorted by
// descending size and then by hash.
func (r *Registry) Groups(minSize int) []Group {
	r.mu.RLock()
	groups := make([]Group, 0, len(r.souls))
	for h, paths := range r.souls {
		if len(paths) < minSize {
			continue
		}
		groups = append(groups, Group{Soul: h, Paths: append([]string(nil), paths...)})
	}
	r.mu.RUnlock()

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Paths) != len(groups[j].Paths) {
			return len(groups[i].Paths) > len(groups[j].Paths)
		}
		return groups[i].Soul < groups[j].Soul
	})
	return groups
}

// FindSiblings returns the paths sharing hash in r.
func FindSiblings(r *Registry, hash string) []string {
	return r.FindBySoul(hash)
}
