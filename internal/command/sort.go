package command

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tabular/internal/core"
)

// textCollator orders TEXT cells for SORT_TABLE. The root locale is a
// fixed, deterministic choice (§9 open question) — not configurable by
// the caller in this version.
var textCollator = collate.New(language.Und)

type sortTableParams struct {
	TableName  string `mapstructure:"tableName"`
	ColumnName string `mapstructure:"columnName"`
	Order      string `mapstructure:"order"`
}

func (d *Dispatcher) sortTable(params map[string]any) (Result, error) {
	var p sortTableParams
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

	desc := strings.EqualFold(p.Order, "desc")
	col := table.Columns[idx]

	sort.SliceStable(table.Rows, func(i, j int) bool {
		cmp := compareCells(table.Rows[i][idx], table.Rows[j][idx], col.Type)
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})

	table.MarkDirty()
	return Result{Table: table}, nil
}

func compareCells(a, b core.Value, kind core.Kind) int {
	if kind == core.TEXT {
		return textCollator.CompareString(a.Text, b.Text)
	}
	af, _ := a.AsFloat()
	bf, _ := b.AsFloat()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
