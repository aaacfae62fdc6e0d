package command

import "tabular/internal/core"

type joinTableParams struct {
	TableName  string `mapstructure:"tableName"`
	TableName1 string `mapstructure:"tableName1"`
	JoinColumn string `mapstructure:"joinColumn"`
	NewName    string `mapstructure:"newName"`
}

// joinTable joins on equality of joinColumn (§4.5) as a left outer join:
// every left row is kept, filled with type-default right-side values when
// unmatched;
// duplicate keys on the right resolve first-match-wins.
func (d *Dispatcher) joinTable(params map[string]any) (Result, error) {
	var p joinTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}

	left, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	right, err := d.table(p.TableName1)
	if err != nil {
		return Result{}, err
	}

	leftJoinIdx, ok := left.ColumnIndex(p.JoinColumn)
	if !ok {
		return Result{}, core.Newf(core.NotFound, "column %q does not exist in %q", p.JoinColumn, left.Name)
	}
	rightJoinIdx, ok := right.ColumnIndex(p.JoinColumn)
	if !ok {
		return Result{}, core.Newf(core.NotFound, "column %q does not exist in %q", p.JoinColumn, right.Name)
	}

	var rightCols []int
	for i, c := range right.Columns {
		if i == rightJoinIdx || left.HasColumn(c.Name) {
			continue
		}
		rightCols = append(rightCols, i)
	}

	rightIndex := map[core.Value]int{}
	for i, row := range right.Rows {
		key := row[rightJoinIdx]
		if _, seen := rightIndex[key]; !seen {
			rightIndex[key] = i
		}
	}

	newCols := append(append([]core.Column{}, left.Columns...), columnsAt(right.Columns, rightCols)...)
	newName := stripCSVSuffix(p.NewName)
	result := core.NewTable(newName, newCols)

	for _, lrow := range left.Rows {
		newRow := lrow.Clone()
		if ri, ok := rightIndex[lrow[leftJoinIdx]]; ok {
			rrow := right.Rows[ri]
			for _, ci := range rightCols {
				newRow = append(newRow, rrow[ci])
			}
		} else {
			for _, ci := range rightCols {
				newRow = append(newRow, core.Zero(right.Columns[ci].Type))
			}
		}
		result.Rows = append(result.Rows, newRow)
	}

	if err := d.Registry.Insert(newName, result); err != nil {
		return Result{}, err
	}
	return Result{Table: result, NewName: newName}, nil
}
