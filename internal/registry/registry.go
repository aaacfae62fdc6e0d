// Package registry implements the process-wide table registry (§4.4),
// guarded by a single RWMutex in the same shape as the teacher's dialect
// registry (a mutex-guarded map keyed by name).
package registry

import (
	"sync"

	"tabular/internal/core"
)

// Registry is the sole owner of the tables it holds.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*core.Table
	order  []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tables: make(map[string]*core.Table)}
}

// Table returns the table named name. It satisfies eval.TableLookup so the
// expression engine can resolve cross-table functions like TOTAL.
func (r *Registry) Table(name string) (*core.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// Get is an alias for Table, returning a *core.Error on miss for callers
// that want the command-layer error kind directly.
func (r *Registry) Get(name string) (*core.Table, error) {
	t, ok := r.Table(name)
	if !ok {
		return nil, core.Newf(core.NotFound, "table %q does not exist", name)
	}
	return t, nil
}

// Insert adds table under name. It fails if the name already exists.
func (r *Registry) Insert(name string, table *core.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[name]; ok {
		return core.Newf(core.Exists, "table %q already exists", name)
	}
	r.tables[name] = table
	r.order = append(r.order, name)
	return nil
}

// Remove deletes table name from the registry. The on-disk file, if any,
// is left untouched.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[name]; !ok {
		return core.Newf(core.NotFound, "table %q does not exist", name)
	}
	delete(r.tables, name)
	r.order = removeName(r.order, name)
	return nil
}

// Rename moves table old to new, updating its SourceFile to "<new>.CSV".
func (r *Registry) Rename(old, new string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[old]
	if !ok {
		return core.Newf(core.NotFound, "table %q does not exist", old)
	}
	if _, ok := r.tables[new]; ok {
		return core.Newf(core.Exists, "table %q already exists", new)
	}

	delete(r.tables, old)
	t.Name = new
	t.SourceFile = new + ".CSV"
	r.tables[new] = t

	for i, n := range r.order {
		if n == old {
			r.order[i] = new
			break
		}
	}
	return nil
}

// List returns table names in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func removeName(names []string, target string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}
