package command

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"tabular/internal/core"
)

type exportTableParams struct {
	TableName string `mapstructure:"tableName"`
	Format    string `mapstructure:"format"`
	Path      string `mapstructure:"path"`
}

// exportTable is an additive command beyond spec.md's catalog (§4.5
// [DOMAIN]): serializes a table's current contents to an interchange
// format outside the core CSV codec. There is no inverse import.
func (d *Dispatcher) exportTable(params map[string]any) (Result, error) {
	var p exportTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}
	if err := requireNonEmpty("path", p.Path); err != nil {
		return Result{}, err
	}

	switch strings.ToLower(p.Format) {
	case "xlsx":
		if err := exportXLSX(table, p.Path); err != nil {
			return Result{}, err
		}
	case "sqlite":
		if err := exportSQLite(table, p.Path); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, core.Newf(core.BadParameter, "unsupported export format %q", p.Format)
	}

	return Result{Table: table}, nil
}

func exportXLSX(table *core.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Name
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return core.Wrap(core.IoError, err)
		}
		if err := f.SetCellValue(sheet, cell, col.Name+":"+col.Type.String()); err != nil {
			return core.Wrap(core.IoError, err)
		}
	}

	for r, row := range table.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return core.Wrap(core.IoError, err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return core.Wrap(core.IoError, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return core.Wrap(core.IoError, err)
	}
	return nil
}

func cellValue(v core.Value) any {
	switch v.Kind {
	case core.INT:
		return v.Int
	case core.REAL:
		return v.Real
	default:
		return v.Text
	}
}

func exportSQLite(table *core.Table, path string) error {
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return core.Wrap(core.IoError, err)
	}
	defer db.Close()

	var cols []string
	for _, c := range table.Columns {
		cols = append(cols, fmt.Sprintf("%q %s", c.Name, sqliteType(c.Type)))
	}
	createStmt := fmt.Sprintf("DROP TABLE IF EXISTS %q; CREATE TABLE %q (%s)", table.Name, table.Name, strings.Join(cols, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return core.Wrap(core.IoError, err)
	}

	placeholders := strings.Repeat("?,", len(table.Columns))
	placeholders = strings.TrimSuffix(placeholders, ",")
	insertStmt := fmt.Sprintf("INSERT INTO %q VALUES (%s)", table.Name, placeholders)

	for _, row := range table.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = cellValue(v)
		}
		if _, err := db.Exec(insertStmt, args...); err != nil {
			return core.Wrap(core.IoError, err)
		}
	}
	return nil
}

func sqliteType(k core.Kind) string {
	switch k {
	case core.INT:
		return "INTEGER"
	case core.REAL:
		return "REAL"
	default:
		return "TEXT"
	}
}
