package core

// Row is an ordered tuple of cells, one per column of its table, in schema
// order.
type Row []Value

// Clone returns a deep copy of the row. Value is a value type, so a slice
// copy is sufficient to avoid aliasing between tables.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table is an in-memory, schema-typed collection of rows. Row order is
// meaningful and is preserved by every command except those that explicitly
// reorder (SORT_TABLE, COLLAPSE_TABLE, GROUP_TABLE, SPLICE_TABLES).
type Table struct {
	Name       string
	Columns    []Column
	Rows       []Row
	SourceFile string

	// dirty is an optimization hint for the CLI's describe output; it is
	// never part of a command's observable result.
	dirty bool
}

// NewTable builds an empty table with the given name and schema.
func NewTable(name string, columns []Column) *Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// ColumnIndex returns the position of the named column, or (-1, false) if
// it is not present. Column names are case-sensitive.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// HasColumn reports whether the table's schema contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Column returns the column descriptor for name, if present.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.ColumnIndex(name)
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// ZeroRow returns a row of type-default cells matching the current schema.
func (t *Table) ZeroRow() Row {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = Zero(c.Type)
	}
	return row
}

// Get returns the value of column name in row at rowIndex. ok is false if
// either the row index or the column name is invalid.
func (t *Table) Get(rowIndex int, name string) (Value, bool) {
	if rowIndex < 0 || rowIndex >= len(t.Rows) {
		return Value{}, false
	}
	i, ok := t.ColumnIndex(name)
	if !ok {
		return Value{}, false
	}
	return t.Rows[rowIndex][i], true
}

// Clone returns a deep copy of the table: a freshly owned schema and row
// set sharing no substructure with t, per §3 invariant 6.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)

	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}

	return &Table{
		Name:       t.Name,
		Columns:    cols,
		Rows:       rows,
		SourceFile: t.SourceFile,
	}
}

// MarkDirty flips the optimization hint consulted only by the CLI's
// describe output.
func (t *Table) MarkDirty() { t.dirty = true }

// ClearDirty resets the optimization hint; called after SAVE_TABLE.
// Freshly loaded tables start with the hint unset.
func (t *Table) ClearDirty() { t.dirty = false }

// Dirty reports the optimization hint; never part of a command's result.
func (t *Table) Dirty() bool { return t.dirty }

// SameSchema reports whether t and other declare identical columns, in the
// same order, with the same names and types — the precondition for
// SPLICE_TABLES.
func (t *Table) SameSchema(other *Table) bool {
	if len(t.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range t.Columns {
		if c.Name != other.Columns[i].Name || c.Type != other.Columns[i].Type {
			return false
		}
	}
	return true
}

// DropColumns removes the named columns from the schema and from every row,
// atomically: either all names are present and the removal succeeds, or the
// table is left unchanged and an error is returned (§3 invariant 5).
func (t *Table) DropColumns(names []string) error {
	indexes := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := t.ColumnIndex(n)
		if !ok {
			return Newf(NotFound, "column %q does not exist", n)
		}
		indexes = append(indexes, i)
	}

	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}

	newCols := make([]Column, 0, len(t.Columns)-len(drop))
	for i, c := range t.Columns {
		if !drop[i] {
			newCols = append(newCols, c)
		}
	}

	newRows := make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		newRow := make(Row, 0, len(newCols))
		for i, v := range row {
			if !drop[i] {
				newRow = append(newRow, v)
			}
		}
		newRows[r] = newRow
	}

	t.Columns = newCols
	t.Rows = newRows
	return nil
}

// RenameColumn renames old to new, rewriting the schema. Rows are untouched
// since they are positional, not keyed by name.
func (t *Table) RenameColumn(old, new string) error {
	i, ok := t.ColumnIndex(old)
	if !ok {
		return Newf(NotFound, "column %q does not exist", old)
	}
	if t.HasColumn(new) {
		return Newf(Exists, "column %q already exists", new)
	}
	t.Columns[i].Name = new
	return nil
}

// ReorderColumns moves the listed columns to the front, in the given order;
// the remaining columns keep their original relative order.
func (t *Table) ReorderColumns(names []string) error {
	seen := make(map[string]bool, len(names))
	newOrder := make([]int, 0, len(t.Columns))

	for _, n := range names {
		i, ok := t.ColumnIndex(n)
		if !ok {
			return Newf(NotFound, "column %q does not exist", n)
		}
		if seen[n] {
			return Newf(BadParameter, "column %q listed more than once", n)
		}
		seen[n] = true
		newOrder = append(newOrder, i)
	}
	for i := range t.Columns {
		if !seen[t.Columns[i].Name] {
			newOrder = append(newOrder, i)
		}
	}

	newCols := make([]Column, len(t.Columns))
	for dest, src := range newOrder {
		newCols[dest] = t.Columns[src]
	}

	newRows := make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		newRow := make(Row, len(row))
		for dest, src := range newOrder {
			newRow[dest] = row[src]
		}
		newRows[r] = newRow
	}

	t.Columns = newCols
	t.Rows = newRows
	return nil
}

// AppendColumn appends a new column to the schema and values (one per
// existing row, in order) to every row.
func (t *Table) AppendColumn(col Column, values []Value) error {
	if t.HasColumn(col.Name) {
		return Newf(Exists, "column %q already exists", col.Name)
	}
	if len(values) != len(t.Rows) {
		return Newf(BadParameter, "expected %d values, got %d", len(t.Rows), len(values))
	}
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}
