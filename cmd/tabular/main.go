// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tabular/internal/command"
	"tabular/internal/config"
	"tabular/internal/logging"
	"tabular/internal/registry"
	"tabular/internal/rules"
)

// env bundles the process-wide collaborators every subcommand needs:
// configuration, the logger, and a freshly built registry/dispatcher pair.
// Every subcommand builds its own env from the shared --config flag rather
// than sharing process-global state, since each CLI invocation is one
// command (§6: "no implicit save").
type env struct {
	cfg        config.Config
	logger     *slog.Logger
	registry   *registry.Registry
	dispatcher *command.Dispatcher
}

func newEnv(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogFile, cfg.LogLevel)
	reg := registry.New()
	dispatcher := command.New(reg, cfg.DataDir, rules.NewCache())
	return &env{cfg: cfg, logger: logger, registry: reg, dispatcher: dispatcher}, nil
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tabular",
		Short: "In-memory tabular data engine",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tabular.toml", "Path to tabular.toml")

	rootCmd.AddCommand(loadCmd(&configPath))
	rootCmd.AddCommand(execCmd(&configPath))
	rootCmd.AddCommand(describeCmd(&configPath))
	rootCmd.AddCommand(tagsCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
