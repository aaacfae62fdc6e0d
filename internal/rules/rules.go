// Package rules loads per-table ".RUL" rule files and runs the
// INIT/FIXUP/CHECK pipeline around row ingress (§4.3).
package rules

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tabular/internal/core"
	"tabular/internal/expr/eval"
)

// Op is one of the three rule operations, in the order they can fire.
type Op string

const (
	Init  Op = "INIT"
	Fixup Op = "FIXUP"
	Check Op = "CHECK"
)

// Rule is one "OPERATION column_name expression" line, pre-compiled.
type Rule struct {
	Op     Op
	Column string
	Source string
	expr   *eval.Evaluator
}

// Set is a table's rule file, in file order.
type Set struct {
	Rules []Rule
}

// Parse reads a rule file body: each non-blank line is
// "OPERATION column_name expression", where expression extends to end of
// line; file order is preserved.
func Parse(r io.Reader) (*Set, error) {
	set := &Set{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		op, column, exprSrc, err := splitRuleLine(line)
		if err != nil {
			return nil, core.Wrap(core.ExpressionError, err)
		}

		ev, err := eval.Compile(exprSrc)
		if err != nil {
			return nil, core.Wrap(core.ExpressionError, err)
		}

		set.Rules = append(set.Rules, Rule{Op: op, Column: column, Source: exprSrc, expr: ev})
	}
	if err := scanner.Err(); err != nil {
		return nil, core.Wrap(core.IoError, err)
	}
	return set, nil
}

func splitRuleLine(line string) (Op, string, string, error) {
	firstSpace := strings.IndexAny(line, " \t")
	if firstSpace < 0 {
		return "", "", "", malformedRuleLine(line)
	}
	opText := strings.ToUpper(line[:firstSpace])
	rest := strings.TrimLeft(line[firstSpace+1:], " \t")

	secondSpace := strings.IndexAny(rest, " \t")
	if secondSpace < 0 {
		return "", "", "", malformedRuleLine(line)
	}
	column := rest[:secondSpace]
	exprSrc := strings.TrimLeft(rest[secondSpace+1:], " \t")

	var op Op
	switch opText {
	case string(Init):
		op = Init
	case string(Fixup):
		op = Fixup
	case string(Check):
		op = Check
	default:
		return "", "", "", malformedRuleLine(line)
	}
	return op, column, exprSrc, nil
}

func malformedRuleLine(line string) error {
	return core.Newf(core.ExpressionError, "malformed rule line: %q", line)
}

// PathFor returns the rule file path for tableBaseName under dataDir,
// trying ".RUL" then ".rul"; "" if neither exists.
func PathFor(dataDir, tableBaseName string) string {
	for _, ext := range []string{".RUL", ".rul"} {
		p := filepath.Join(dataDir, tableBaseName+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile parses the rule file at path. It returns (nil, nil) if path is
// empty (no rule file for this table).
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.IoError, err)
	}
	defer f.Close()
	return Parse(f)
}
