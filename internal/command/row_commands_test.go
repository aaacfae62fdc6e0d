package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/core"
)

func salesTable() *core.Table {
	table := core.NewTable("sales", []core.Column{
		{Name: "Date", Type: core.TEXT},
		{Name: "Amount", Type: core.REAL},
	})
	table.Rows = []core.Row{
		{core.Text("2024-01-01"), core.Real(100.5)},
		{core.Text("2024-01-02"), core.Real(200.0)},
	}
	return table
}

func TestDeleteRowsIdentityOnZeroExpression(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("DELETE_ROWS", map[string]any{"tableName": "sales", "expression": "0"})
	require.NoError(t, err)
	assert.Len(t, res.Table.Rows, 2)
}

func TestDeleteRowsEmptiesOnOneExpression(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("DELETE_ROWS", map[string]any{"tableName": "sales", "expression": "1"})
	require.NoError(t, err)
	assert.Empty(t, res.Table.Rows)
	assert.Len(t, res.Table.Columns, 2)
}

func TestDeleteRowsByPredicate(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("DELETE_ROWS", map[string]any{"tableName": "sales", "expression": "Amount < 150"})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, core.Real(200.0), res.Table.Rows[0][1])
}

func TestDeleteRowsKeepsOnEvaluatorError(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("DELETE_ROWS", map[string]any{"tableName": "sales", "expression": "Amount / 0"})
	require.NoError(t, err)
	assert.Len(t, res.Table.Rows, 2)
}

func TestDeleteRowsKeepsOnNonNumericResult(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("DELETE_ROWS", map[string]any{"tableName": "sales", "expression": "Date"})
	require.NoError(t, err)
	assert.Len(t, res.Table.Rows, 2)
}

func TestSetValueOverwritesColumn(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("SET_VALUE", map[string]any{"tableName": "sales", "columnName": "Amount", "expression": "Amount * 2"})
	require.NoError(t, err)
	assert.Equal(t, core.Real(201.0), res.Table.Rows[0][1])
	assert.Equal(t, core.Real(400.0), res.Table.Rows[1][1])
}

func TestSetValueUnknownColumn(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	_, err := d.Execute("SET_VALUE", map[string]any{"tableName": "sales", "columnName": "Bogus", "expression": "1"})
	require.Error(t, err)
	kind, _ := core.KindOf(err)
	assert.Equal(t, core.NotFound, kind)
}

func TestReplaceTextGlobalRegexReplace(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	res, err := d.Execute("REPLACE_TEXT", map[string]any{
		"tableName": "sales", "columnName": "Date", "regex": "-", "replacement": "/",
	})
	require.NoError(t, err)
	assert.Equal(t, core.Text("2024/01/01"), res.Table.Rows[0][0])
}

func TestReplaceTextRejectsNonTextColumn(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, salesTable())

	_, err := d.Execute("REPLACE_TEXT", map[string]any{
		"tableName": "sales", "columnName": "Amount", "regex": "0", "replacement": "x",
	})
	require.Error(t, err)
	kind, _ := core.KindOf(err)
	assert.Equal(t, core.TypeMismatch, kind)
}
