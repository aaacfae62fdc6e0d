package command

import (
	"path/filepath"

	"tabular/internal/csvcodec"
)

type saveTableParams struct {
	TableName string `mapstructure:"tableName"`
}

// SAVE_TABLE writes the table to <dataDir>/<tableName>.CSV (§4.5). CSV I/O
// happens only here and at load time.
func (d *Dispatcher) saveTable(params map[string]any) (Result, error) {
	var p saveTableParams
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

	path := filepath.Join(d.DataDir, table.Name+".CSV")
	if err := csvcodec.SaveFile(path, table); err != nil {
		return Result{}, err
	}

	table.SourceFile = path
	table.ClearDirty()
	return Result{Table: table}, nil
}
