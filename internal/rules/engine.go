package rules

import (
	"sort"

	"tabular/internal/core"
	"tabular/internal/expr/eval"
)

// Add runs the INIT/FIXUP/CHECK pipeline for a new row (§4.3): build a
// type-default row, apply INIT rules, layer in the caller's raw field
// values, apply FIXUP rules, then run CHECK rules. The row is appended to
// table only if every column passes; otherwise table is left unchanged and
// a ValidationFailure naming every offending column is returned.
func Add(table *core.Table, set *Set, userFields map[string]string, lookup eval.TableLookup) error {
	row := table.ZeroRow()
	ctx := &eval.Context{Table: table, Row: row, Index: len(table.Rows), Lookup: lookup}

	failed := map[string]bool{}
	applyOps(ctx, row, table, set, Init, failed)
	applyUserFields(row, table, userFields, failed)
	applyOps(ctx, row, table, set, Fixup, failed)
	runChecks(ctx, table, set, failed)

	if len(failed) > 0 {
		return rejectionError(failed)
	}

	table.Rows = append(table.Rows, row)
	table.MarkDirty()
	return nil
}

// Update runs the same pipeline for an existing row, minus INIT: it starts
// from the row's current values, layers in the caller's raw field values,
// applies FIXUP, then CHECK. The row is replaced in place only if every
// column passes.
func Update(table *core.Table, set *Set, rowIndex int, userFields map[string]string, lookup eval.TableLookup) error {
	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return core.Newf(core.BadParameter, "row index %d out of range", rowIndex)
	}

	row := table.Rows[rowIndex].Clone()
	ctx := &eval.Context{Table: table, Row: row, Index: rowIndex, Lookup: lookup}

	failed := map[string]bool{}
	applyUserFields(row, table, userFields, failed)
	applyOps(ctx, row, table, set, Fixup, failed)
	runChecks(ctx, table, set, failed)

	if len(failed) > 0 {
		return rejectionError(failed)
	}

	table.Rows[rowIndex] = row
	table.MarkDirty()
	return nil
}

// applyOps evaluates every rule of the given op against ctx, writing the
// (schema-coerced) result into row. A rule whose column doesn't exist or
// whose expression errors marks that column failed rather than aborting
// the rest of the pipeline, so the caller sees the complete error set.
func applyOps(ctx *eval.Context, row core.Row, table *core.Table, set *Set, op Op, failed map[string]bool) {
	if set == nil {
		return
	}
	for _, rule := range set.Rules {
		if rule.Op != op {
			continue
		}
		idx, ok := table.ColumnIndex(rule.Column)
		if !ok {
			failed[rule.Column] = true
			continue
		}
		v, err := rule.expr.Eval(ctx)
		if err != nil {
			failed[rule.Column] = true
			continue
		}
		row[idx] = coerceToColumn(table.Columns[idx], v)
	}
}

// runChecks evaluates every CHECK rule; a rule fails the row iff its
// expression errors or evaluates to its type's zero value (§4.3).
func runChecks(ctx *eval.Context, table *core.Table, set *Set, failed map[string]bool) {
	if set == nil {
		return
	}
	for _, rule := range set.Rules {
		if rule.Op != Check {
			continue
		}
		v, err := rule.expr.Eval(ctx)
		if err != nil || v.IsZero() {
			failed[rule.Column] = true
		}
	}
}

// applyUserFields converts the caller's raw, per-column string values into
// the table's declared types, strictly: an unparsable INT/REAL value marks
// that column failed instead of silently defaulting to zero.
func applyUserFields(row core.Row, table *core.Table, userFields map[string]string, failed map[string]bool) {
	for name, raw := range userFields {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			failed[name] = true
			continue
		}
		v, err := core.StrictCoerceTo(raw, table.Columns[idx].Type)
		if err != nil {
			failed[name] = true
			continue
		}
		row[idx] = v
	}
}

func coerceToColumn(col core.Column, v core.Value) core.Value {
	if v.Kind == col.Type {
		return v
	}
	return core.CoerceTo(v.String(), col.Type)
}

func rejectionError(failed map[string]bool) error {
	cols := make([]string, 0, len(failed))
	for c := range failed {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return core.Newf(core.ValidationFailure, "row rejected: %d column(s) failed validation", len(cols)).WithColumns(cols)
}
