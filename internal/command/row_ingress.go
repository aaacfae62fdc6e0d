package command

import (
	"tabular/internal/rules"
)

// addRowParams carries the new row's raw field values (§4.3's "accept
// user-supplied fields"), keyed by column name; values are strings because
// they arrive as strings from the CLI / HTTP transport and are coerced to
// each column's declared type by the rules engine.
type addRowParams struct {
	TableName string            `mapstructure:"tableName"`
	Fields    map[string]string `mapstructure:"fields"`
}

// addRow runs the INIT/FIXUP/CHECK pipeline (§4.3, §4.5.x) for a new row.
func (d *Dispatcher) addRow(params map[string]any) (Result, error) {
	var p addRowParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	if err := requireNonEmpty("tableName", p.TableName); err != nil {
		return Result{}, err
	}

	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	set, err := d.ruleSetFor(table.Name)
	if err != nil {
		return Result{}, err
	}

	if err := rules.Add(table, set, p.Fields, d.Registry); err != nil {
		return Result{}, err
	}
	return Result{Table: table}, nil
}

type updateRowParams struct {
	TableName string            `mapstructure:"tableName"`
	RowIndex  int               `mapstructure:"rowIndex"`
	Fields    map[string]string `mapstructure:"fields"`
}

// updateRow runs the FIXUP/CHECK pipeline (no INIT) against an existing row.
func (d *Dispatcher) updateRow(params map[string]any) (Result, error) {
	var p updateRowParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	if err := requireNonEmpty("tableName", p.TableName); err != nil {
		return Result{}, err
	}

	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	set, err := d.ruleSetFor(table.Name)
	if err != nil {
		return Result{}, err
	}

	if err := rules.Update(table, set, p.RowIndex, p.Fields, d.Registry); err != nil {
		return Result{}, err
	}
	return Result{Table: table}, nil
}

// ruleSetFor loads the cached rule set for a table, tolerating tables with
// no sibling .RUL/.rul file (rules.Cache.ForTable returns a nil Set, not an
// error, in that case).
func (d *Dispatcher) ruleSetFor(tableName string) (*rules.Set, error) {
	return d.Rules.ForTable(d.DataDir, tableName)
}
