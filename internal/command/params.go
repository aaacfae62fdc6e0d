// Package command implements the command algebra of §4.5: one dispatcher,
// keyed by command name, over the table registry.
package command

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"tabular/internal/core"
)

// decode converts the dispatcher's loosely-typed params map into a typed
// params struct, the same "map to struct" step the CLI's key=value parsing
// and the (out-of-scope) HTTP transport both need. WeaklyTypedInput is on
// because the CLI hands every value through as a string.
func decode(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return core.Wrap(core.BadParameter, err)
	}
	if err := decoder.Decode(params); err != nil {
		return core.Wrap(core.BadParameter, err)
	}
	return nil
}

// stripCSVSuffix removes a trailing, case-insensitive ".csv" from a table
// name. Callers of execute must not pass one, but the core tolerates it
// per §6.
func stripCSVSuffix(name string) string {
	if len(name) >= 4 && strings.EqualFold(name[len(name)-4:], ".csv") {
		return name[:len(name)-4]
	}
	return name
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return core.Newf(core.BadParameter, "%s must not be empty", field)
	}
	return nil
}
