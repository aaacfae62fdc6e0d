// Package tags reads the read-only commands.tag file referenced by §6: a
// plain text list of tag names, one per line.
package tags

import (
	"bufio"
	"os"
	"strings"

	"tabular/internal/core"
)

// Load reads path and returns its non-blank lines, trimmed, in file order.
// A missing file yields an empty list, not an error — the tags file is
// optional in the same way tabular.toml is (§6).
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, core.Wrap(core.IoError, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.Wrap(core.IoError, err)
	}
	return out, nil
}
