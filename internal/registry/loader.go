package registry

import (
	"os"
	"path/filepath"
	"strings"

	"tabular/internal/core"
	"tabular/internal/csvcodec"
)

// LoadDir (re)loads every *.CSV file in dataDir into the registry. Tables
// whose SourceFile resolves to a file on disk are cleared and replaced by
// the freshly loaded version; tables with no resolvable SourceFile (i.e.
// in-memory-only tables created by commands such as COPY_TABLE) are left
// untouched, per §4.4.
func (r *Registry) LoadDir(dataDir string) error {
	r.dropFileBackedTables()

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return core.Wrap(core.IoError, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		table, err := csvcodec.LoadFile(path)
		if err != nil {
			return err
		}
		r.put(table)
	}
	return nil
}

func (r *Registry) dropFileBackedTables() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, t := range r.tables {
		if t.SourceFile != "" && resolvesOnDisk(t.SourceFile) {
			delete(r.tables, name)
			r.order = removeName(r.order, name)
		}
	}
}

func (r *Registry) put(t *core.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tables[t.Name] = t
}

func resolvesOnDisk(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
