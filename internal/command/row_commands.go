package command

import (
	"regexp"

	"tabular/internal/core"
	"tabular/internal/expr/eval"
)

type deleteRowsParams struct {
	TableName  string `mapstructure:"tableName"`
	Expression string `mapstructure:"expression"`
}

// deleteRows keeps a row iff its expression numerically evaluates to 0; an
// evaluator error or a TEXT (non-numeric) result is a safe default that
// keeps the row rather than raising (§7).
func (d *Dispatcher) deleteRows(params map[string]any) (Result, error) {
	var p deleteRowsParams
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

	kept := make([]core.Row, 0, len(table.Rows))
	for i, row := range table.Rows {
		ctx := &eval.Context{Table: table, Row: row, Index: i, Lookup: d.Registry}
		v, err := ev.Eval(ctx)
		if err != nil || v.Kind == core.TEXT {
			kept = append(kept, row)
			continue
		}
		if f, _ := v.AsFloat(); f == 0 {
			kept = append(kept, row)
		}
	}

	table.Rows = kept
	table.MarkDirty()
	return Result{Table: table}, nil
}

type setValueParams struct {
	TableName  string `mapstructure:"tableName"`
	ColumnName string `mapstructure:"columnName"`
	Expression string `mapstructure:"expression"`
}

func (d *Dispatcher) setValue(params map[string]any) (Result, error) {
	var p setValueParams
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

	ev, err := eval.Compile(p.Expression)
	if err != nil {
		return Result{}, core.Wrap(core.ExpressionError, err)
	}

	for i, row := range table.Rows {
		ctx := &eval.Context{Table: table, Row: row, Index: i, Lookup: d.Registry}
		v, err := ev.Eval(ctx)
		if err != nil {
			return Result{}, core.Wrap(core.ExpressionError, err)
		}
		table.Rows[i][idx] = v
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}

type replaceTextParams struct {
	TableName   string `mapstructure:"tableName"`
	ColumnName  string `mapstructure:"columnName"`
	Regex       string `mapstructure:"regex"`
	Replacement string `mapstructure:"replacement"`
}

func (d *Dispatcher) replaceText(params map[string]any) (Result, error) {
	var p replaceTextParams
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

	re, err := regexp.Compile(p.Regex)
	if err != nil {
		return Result{}, core.Wrap(core.BadParameter, err)
	}

	for i, row := range table.Rows {
		table.Rows[i][idx] = core.Text(re.ReplaceAllString(row[idx].Text, p.Replacement))
	}
	table.MarkDirty()
	return Result{Table: table}, nil
}
