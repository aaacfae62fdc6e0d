// Package csvcodec implements the schema-header-aware CSV format used to
// load and save tables (§4.1). It is a small hand-written scanner rather
// than encoding/csv, because the quoting, short-row padding, and
// defaulting-on-parse-failure rules here diverge from RFC 4180.
package csvcodec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tabular/internal/core"
)

// Load parses r into a Table named tableName, applying the schema header
// and row rules of §4.1.
func Load(r io.Reader, tableName string) (*core.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.Wrap(core.IoError, err)
	}

	records := nonBlankRecords(parseRecords(string(data)))
	if len(records) == 0 {
		return core.NewTable(tableName, nil), nil
	}

	columns, err := parseHeader(records[0])
	if err != nil {
		return nil, err
	}

	table := core.NewTable(tableName, columns)
	table.Rows = make([]core.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		table.Rows = append(table.Rows, parseDataRow(rec, columns))
	}
	return table, nil
}

// LoadFile loads a table from path; the table name is derived by stripping
// a case-insensitive ".csv" suffix from the base filename.
func LoadFile(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.IoError, err)
	}
	defer f.Close()

	table, err := Load(f, TableNameFromPath(path))
	if err != nil {
		return nil, err
	}
	table.SourceFile = path
	return table, nil
}

// TableNameFromPath strips a case-insensitive ".csv" suffix from the base
// name of path.
func TableNameFromPath(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".csv") {
		return base[:len(base)-len(ext)]
	}
	return base
}

func parseHeader(fields []string) ([]core.Column, error) {
	columns := make([]core.Column, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		name, kind := splitHeaderField(f)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, core.Newf(core.ValidationFailure, "duplicate column name %q in schema header", name)
		}
		seen[name] = true
		columns = append(columns, core.Column{Name: name, Type: kind})
	}
	return columns, nil
}

func splitHeaderField(f string) (string, core.Kind) {
	f = strings.TrimSpace(f)
	if f == "" {
		return "", core.TEXT
	}
	if i := strings.IndexByte(f, ':'); i >= 0 {
		return strings.TrimSpace(f[:i]), core.ParseKind(f[i+1:])
	}
	return f, core.TEXT
}

// parseDataRow applies §4.1's row rules: short rows pad with the
// type-default, extra fields are dropped, and numeric parse failures
// default to the zero value rather than erroring.
func parseDataRow(fields []string, columns []core.Column) core.Row {
	row := make(core.Row, len(columns))
	for i, col := range columns {
		if i < len(fields) {
			row[i] = core.CoerceTo(fields[i], col.Type)
		} else {
			row[i] = core.Zero(col.Type)
		}
	}
	return row
}

// Save writes t to w using the schema header + one-row-per-line format.
func Save(w io.Writer, t *core.Table) error {
	bw := newBufWriter(w)

	headerFields := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headerFields[i] = fmt.Sprintf("%s:%s", c.Name, c.Type)
	}
	if err := bw.writeRecord(headerFields); err != nil {
		return core.Wrap(core.IoError, err)
	}

	for _, row := range t.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = v.String()
		}
		if err := bw.writeRecord(fields); err != nil {
			return core.Wrap(core.IoError, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return core.Wrap(core.IoError, err)
	}
	return nil
}

// SaveFile writes t to path, creating or truncating it.
func SaveFile(path string, t *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Wrap(core.IoError, err)
	}
	defer f.Close()
	return Save(f, t)
}
