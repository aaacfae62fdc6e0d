package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loadCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load <dataDir>",
		Short: "Load every .CSV table from a directory and print the table names",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLoad(*configPath, args[0])
		},
	}
}

func runLoad(configPath, dataDir string) error {
	e, err := newEnv(configPath)
	if err != nil {
		return err
	}
	e.cfg.DataDir = dataDir

	if err := e.registry.LoadDir(dataDir); err != nil {
		return err
	}

	names := e.registry.List()
	e.logger.Info("loaded data directory", "dir", dataDir, "tables", len(names))
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
