package command

import "tabular/internal/core"

type collapseTableParams struct {
	TableName  string `mapstructure:"tableName"`
	ColumnName string `mapstructure:"columnName"`
	NewName    string `mapstructure:"newName"`
}

// collapseTable groups rows by a TEXT column (or collapses to one
// aggregate row when columnName is omitted), emitting the group column
// followed by every INT/REAL column summed (§4.5).
func (d *Dispatcher) collapseTable(params map[string]any) (Result, error) {
	var p collapseTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	grouping := p.ColumnName != ""
	var groupIdx int
	if grouping {
		idx, ok := table.ColumnIndex(p.ColumnName)
		if !ok {
			return Result{}, core.Newf(core.NotFound, "column %q does not exist", p.ColumnName)
		}
		if table.Columns[idx].Type != core.TEXT {
			return Result{}, core.Newf(core.TypeMismatch, "column %q is not TEXT", p.ColumnName)
		}
		groupIdx = idx
	}

	var numericIdx []int
	newCols := []core.Column{}
	if grouping {
		newCols = append(newCols, table.Columns[groupIdx])
	}
	for i, c := range table.Columns {
		if grouping && i == groupIdx {
			continue
		}
		if c.Type == core.INT || c.Type == core.REAL {
			numericIdx = append(numericIdx, i)
			newCols = append(newCols, c)
		}
	}

	var keyOrder []string
	sums := map[string][]float64{}
	for _, row := range table.Rows {
		key := ""
		if grouping {
			key = row[groupIdx].Text
		}
		if _, seen := sums[key]; !seen {
			keyOrder = append(keyOrder, key)
			sums[key] = make([]float64, len(numericIdx))
		}
		for j, ci := range numericIdx {
			f, _ := row[ci].AsFloat()
			sums[key][j] += f
		}
	}

	newName := stripCSVSuffix(p.NewName)
	result := core.NewTable(newName, newCols)
	for _, key := range keyOrder {
		row := core.Row{}
		if grouping {
			row = append(row, core.Text(key))
		}
		for j, ci := range numericIdx {
			if table.Columns[ci].Type == core.INT {
				row = append(row, core.Int(int64(sums[key][j])))
			} else {
				row = append(row, core.Real(sums[key][j]))
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := d.Registry.Insert(newName, result); err != nil {
		return Result{}, err
	}
	return Result{Table: result, NewName: newName}, nil
}

type groupTableParams struct {
	TableName   string   `mapstructure:"tableName"`
	GroupColumn string   `mapstructure:"groupColumn"`
	Columns     []string `mapstructure:"columns"`
	NewName     string   `mapstructure:"newName"`
}

// groupTable groups by an arbitrary-typed column and sums an explicit list
// of INT/REAL columns (§4.5) — unlike collapseTable, the group column need
// not be TEXT and the summed columns are named explicitly.
func (d *Dispatcher) groupTable(params map[string]any) (Result, error) {
	var p groupTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	groupIdx, ok := table.ColumnIndex(p.GroupColumn)
	if !ok {
		return Result{}, core.Newf(core.NotFound, "column %q does not exist", p.GroupColumn)
	}

	sumIdx := make([]int, len(p.Columns))
	for i, name := range p.Columns {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			return Result{}, core.Newf(core.NotFound, "column %q does not exist", name)
		}
		if table.Columns[idx].Type != core.INT && table.Columns[idx].Type != core.REAL {
			return Result{}, core.Newf(core.TypeMismatch, "column %q is not numeric", name)
		}
		sumIdx[i] = idx
	}

	newCols := append([]core.Column{table.Columns[groupIdx]}, columnsAt(table.Columns, sumIdx)...)

	var keyOrder []core.Value
	sums := map[core.Value][]float64{}
	for _, row := range table.Rows {
		key := row[groupIdx]
		if _, seen := sums[key]; !seen {
			keyOrder = append(keyOrder, key)
			sums[key] = make([]float64, len(sumIdx))
		}
		for j, ci := range sumIdx {
			f, _ := row[ci].AsFloat()
			sums[key][j] += f
		}
	}

	newName := stripCSVSuffix(p.NewName)
	result := core.NewTable(newName, newCols)
	for _, key := range keyOrder {
		row := core.Row{key}
		for j, ci := range sumIdx {
			if table.Columns[ci].Type == core.INT {
				row = append(row, core.Int(int64(sums[key][j])))
			} else {
				row = append(row, core.Real(sums[key][j]))
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := d.Registry.Insert(newName, result); err != nil {
		return Result{}, err
	}
	return Result{Table: result, NewName: newName}, nil
}

func columnsAt(cols []core.Column, idx []int) []core.Column {
	out := make([]core.Column, len(idx))
	for i, ci := range idx {
		out[i] = cols[ci]
	}
	return out
}
