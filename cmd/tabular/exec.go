package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tabular/internal/logging"
)

func execCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [key=value ...]",
		Short: "Decode key=value pairs into a command's params and execute it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExec(*configPath, args[0], args[1:])
		},
	}
}

func runExec(configPath, commandName string, kvArgs []string) error {
	e, err := newEnv(configPath)
	if err != nil {
		return err
	}
	if err := e.registry.LoadDir(e.cfg.DataDir); err != nil {
		return err
	}

	params := parseParams(kvArgs)
	tableName, _ := params["tableName"].(string)

	start := time.Now()
	result, err := e.dispatcher.Execute(commandName, params)
	logging.LogCommand(e.logger, commandName, tableName, start, err)
	if err != nil {
		return err
	}

	if result.Table != nil {
		fmt.Printf("ok: %s (%d rows)\n", result.Table.Name, len(result.Table.Rows))
	} else {
		fmt.Println("ok")
	}
	return nil
}

// parseParams decodes a flat "key=value" argument list into a params map
// suitable for command.Dispatcher.Execute. A key containing a "." addresses
// a nested field (e.g. "fields.Amount=12.5" sets params["fields"]["Amount"]
// = "12.5"), covering commands like ADD_ROW whose params aren't flat. A
// value of an undotted key containing a comma is split into a string slice,
// covering commands like DROP_COLUMNS whose params are lists; values of
// dotted keys are never split.
func parseParams(args []string) map[string]any {
	params := map[string]any{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}

		if top, sub, isNested := strings.Cut(key, "."); isNested {
			nested, ok := params[top].(map[string]any)
			if !ok {
				nested = map[string]any{}
				params[top] = nested
			}
			nested[sub] = value
			continue
		}

		if strings.Contains(value, ",") {
			params[key] = strings.Split(value, ",")
			continue
		}
		params[key] = value
	}
	return params
}
