package command

import (
	"os"
	"testing"

	"tabular/internal/core"
	"tabular/internal/registry"
	"tabular/internal/rules"
)

func newDispatcher(t *testing.T) (*Dispatcher, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	return New(reg, t.TempDir(), rules.NewCache()), reg
}

func mustInsert(t *testing.T, reg *registry.Registry, table *core.Table) {
	t.Helper()
	if err := reg.Insert(table.Name, table); err != nil {
		t.Fatalf("insert %q: %v", table.Name, err)
	}
}

func writeTestFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
