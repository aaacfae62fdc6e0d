package command

import "tabular/internal/core"

type renameTableParams struct {
	TableName string `mapstructure:"tableName"`
	NewName   string `mapstructure:"newName"`
}

func (d *Dispatcher) renameTable(params map[string]any) (Result, error) {
	var p renameTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	oldName, newName := stripCSVSuffix(p.TableName), stripCSVSuffix(p.NewName)
	if err := d.Registry.Rename(oldName, newName); err != nil {
		return Result{}, err
	}
	table, err := d.table(newName)
	if err != nil {
		return Result{}, err
	}
	return Result{Table: table, NewName: newName}, nil
}

type copyTableParams struct {
	TableName string `mapstructure:"tableName"`
	NewName   string `mapstructure:"newName"`
}

func (d *Dispatcher) copyTable(params map[string]any) (Result, error) {
	var p copyTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	table, err := d.table(p.TableName)
	if err != nil {
		return Result{}, err
	}

	newName := stripCSVSuffix(p.NewName)
	clone := table.Clone()
	clone.Name = newName
	clone.SourceFile = ""

	if err := d.Registry.Insert(newName, clone); err != nil {
		return Result{}, err
	}
	return Result{Table: clone, NewName: newName}, nil
}

type deleteTableParams struct {
	TableName string `mapstructure:"tableName"`
}

func (d *Dispatcher) deleteTable(params map[string]any) (Result, error) {
	var p deleteTableParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	if err := d.Registry.Remove(stripCSVSuffix(p.TableName)); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

type spliceTablesParams struct {
	NewName        string   `mapstructure:"newName"`
	SelectedTables []string `mapstructure:"selectedTables"`
}

func (d *Dispatcher) spliceTables(params map[string]any) (Result, error) {
	var p spliceTablesParams
	if err := decode(params, &p); err != nil {
		return Result{}, err
	}
	if len(p.SelectedTables) == 0 {
		return Result{}, core.Newf(core.BadParameter, "selectedTables must not be empty")
	}

	tables := make([]*core.Table, len(p.SelectedTables))
	for i, name := range p.SelectedTables {
		t, err := d.table(name)
		if err != nil {
			return Result{}, err
		}
		tables[i] = t
	}

	first := tables[0]
	for _, t := range tables[1:] {
		if !first.SameSchema(t) {
			return Result{}, core.Newf(core.TypeMismatch, "tables %q and %q do not share a schema", first.Name, t.Name)
		}
	}

	newName := stripCSVSuffix(p.NewName)
	spliced := core.NewTable(newName, first.Columns)
	for _, t := range tables {
		for _, row := range t.Rows {
			spliced.Rows = append(spliced.Rows, row.Clone())
		}
	}

	if err := d.Registry.Insert(newName, spliced); err != nil {
		return Result{}, err
	}
	return Result{Table: spliced, NewName: newName}, nil
}
