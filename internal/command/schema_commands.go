package command

import (
	"strconv"
	"strings"

	"tabular/internal/core"
	"tabular/internal/expr/eval"
)

type dropColumnsParams struct {
	TableName string   `mapstructure:"tableName"`
	Columns   []string `mapstructure:"columns"`
}

func (d *Dispatcher) dropColumns(params map[string]any) (Result, error) {
	var p dropColumnsParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	if err := table.DropColumns(p.Columns); err != nil {
		return Result{}, err
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}

type renameColumnParams struct {
	TableName string `mapstructure:"tableName"`
	Old       string `mapstructure:"old"`
	New       string `mapstructure:"new"`
}

func (d *Dispatcher) renameColumn(params map[string]any) (Result, error) {
	var p renameColumnParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	if err := table.RenameColumn(p.Old, p.New); err != nil {
		return Result{}, err
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}

type reorderColumnsParams struct {
	TableName string   `mapstructure:"tableName"`
	Columns   []string `mapstructure:"columns"`
}

func (d *Dispatcher) reorderColumns(params map[string]any) (Result, error) {
	var p reorderColumnsParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	if err := table.ReorderColumns(p.Columns); err != nil {
		return Result{}, err
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}

type convertColumnParams struct {
	TableName  string `mapstructure:"tableName"`
	ColumnName string `mapstructure:"columnName"`
}

// convertColumn converts a TEXT column to REAL in place. A cell that fails
// to parse is left unchanged even though the column's declared type moves
// to REAL, per §4.5's explicit carve-out from invariant 1.
func (d *Dispatcher) convertColumn(params map[string]any) (Result, error) {
	var p convertColumnParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	idx, ok := table.ColumnIndex(p.ColumnName)
	if !ok {
		return Result{}, core.Newf(core.NotFound, "column %q does not exist", p.ColumnName)
	}
	if table.Columns[idx].Type != core.TEXT {
		return Result{}, core.Newf(core.TypeMismatch, "column %q is not TEXT", p.ColumnName)
	}

	cleaner := strings.NewReplacer("$", "", ",", "")
	for i, row := range table.Rows {
		raw := strings.TrimSpace(cleaner.Replace(row[idx].Text))
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			table.Rows[i][idx] = core.Real(f)
		}
	}
	table.Columns[idx].Type = core.REAL
	table.MarkDirty()
	return Result{Table: table}, nil
}

type addColumnParams struct {
	TableName  string `mapstructure:"tableName"`
	ColumnName string `mapstructure:"columnName"`
	Expression string `mapstructure:"expression"`
	ColumnType string `mapstructure:"columnType"`
}

func (d *Dispatcher) addColumn(params map[string]any) (Result, error) {
	var p addColumnParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	ev, err := eval.Compile(p.Expression)
	if err != nil {
		return Result{}, core.Wrap(core.ExpressionError, err)
	}

	values := make([]core.Value, len(table.Rows))
	for i, row := range table.Rows {
		ctx := &eval.Context{Table: table, Row: row, Index: i, Lookup: d.Registry}
		v, err := ev.Eval(ctx)
		if err != nil {
			return Result{}, core.Wrap(core.ExpressionError, err)
		}
		values[i] = v
	}

	if err := table.AppendColumn(core.Column{Name: p.ColumnName, Type: core.ParseKind(p.ColumnType)}, values); err != nil {
		return Result{}, err
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}
