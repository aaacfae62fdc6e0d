package command

import (
	"strings"

	"tabular/internal/core"
	"tabular/internal/registry"
	"tabular/internal/rules"
)

// Result is the payload every command returns on success: the affected
// table and, for commands that create one, its name (§4.5).
type Result struct {
	Table   *core.Table
	NewName string
}

// Dispatcher is the single entry point `execute(command_name, params)` of
// §6, bound to one registry, one data directory, and one rule cache.
type Dispatcher struct {
	Registry *registry.Registry
	DataDir  string
	Rules    *rules.Cache
}

// New returns a dispatcher over reg, persisting tables to dataDir and
// caching rule files with ruleCache.
func New(reg *registry.Registry, dataDir string, ruleCache *rules.Cache) *Dispatcher {
	return &Dispatcher{Registry: reg, DataDir: dataDir, Rules: ruleCache}
}

// Execute decodes params for the named command and runs it. Commands never
// recover internally: every failure is a *core.Error of one of §7's kinds.
func (d *Dispatcher) Execute(name string, params map[string]any) (Result, error) {
	switch strings.ToUpper(name) {
	case "ADD_ROW":
		return d.addRow(params)
	case "UPDATE_ROW":
		return d.updateRow(params)
	case "SAVE_TABLE":
		return d.saveTable(params)
	case "DROP_COLUMNS":
		return d.dropColumns(params)
	case "RENAME_COLUMN":
		return d.renameColumn(params)
	case "RENAME_TABLE":
		return d.renameTable(params)
	case "DELETE_ROWS":
		return d.deleteRows(params)
	case "COLLAPSE_TABLE":
		return d.collapseTable(params)
	case "REPLACE_TEXT":
		return d.replaceText(params)
	case "ADD_COLUMN":
		return d.addColumn(params)
	case "SET_VALUE":
		return d.setValue(params)
	case "JOIN_TABLE":
		return d.joinTable(params)
	case "COPY_TABLE":
		return d.copyTable(params)
	case "SORT_TABLE":
		return d.sortTable(params)
	case "DELETE_TABLE":
		return d.deleteTable(params)
	case "GROUP_TABLE":
		return d.groupTable(params)
	case "REORDER_COLUMNS":
		return d.reorderColumns(params)
	case "CONVERT_COLUMN":
		return d.convertColumn(params)
	case "SPLICE_TABLES":
		return d.spliceTables(params)
	case "EXPORT_TABLE":
		return d.exportTable(params)
	default:
		return Result{}, core.Newf(core.BadParameter, "unknown command %q", name)
	}
}

func (d *Dispatcher) table(name string) (*core.Table, error) {
	return d.Registry.Get(stripCSVSuffix(name))
}
