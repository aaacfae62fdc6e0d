package main

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

// describeSample is the shape pp pretty-prints: enough of a table's
// identity and contents to eyeball from a terminal, not a command result.
type describeSample struct {
	Name       string
	SourceFile string
	Dirty      bool
	Columns    []string
	RowCount   int
	SampleRows [][]string
}

const describeSampleRows = 5

func describeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Pretty-print a table's schema, row count, and a row sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDescribe(*configPath, args[0])
		},
	}
}

func runDescribe(configPath, tableName string) error {
	e, err := newEnv(configPath)
	if err != nil {
		return err
	}
	if err := e.registry.LoadDir(e.cfg.DataDir); err != nil {
		return err
	}

	table, err := e.registry.Get(tableName)
	if err != nil {
		return err
	}

	columns := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = fmt.Sprintf("%s:%s", c.Name, c.Type)
	}

	n := len(table.Rows)
	if n > describeSampleRows {
		n = describeSampleRows
	}
	sample := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(table.Rows[i]))
		for j, v := range table.Rows[i] {
			row[j] = v.String()
		}
		sample[i] = row
	}

	pp.Println(describeSample{
		Name:       table.Name,
		SourceFile: table.SourceFile,
		Dirty:      table.Dirty(),
		Columns:    columns,
		RowCount:   len(table.Rows),
		SampleRows: sample,
	})
	return nil
}
