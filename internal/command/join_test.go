package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/core"
)

func TestJoinTableFillsTypeDefaultForUnmatchedLeftRows(t *testing.T) {
	d, reg := newDispatcher(t)
	orders := core.NewTable("orders", []core.Column{
		{Name: "CustId", Type: core.INT},
		{Name: "Item", Type: core.TEXT},
	})
	orders.Rows = []core.Row{
		{core.Int(1), core.Text("widget")},
		{core.Int(2), core.Text("gadget")},
		{core.Int(9), core.Text("gizmo")},
	}
	customers := core.NewTable("customers", []core.Column{
		{Name: "CustId", Type: core.INT},
		{Name: "Name", Type: core.TEXT},
	})
	customers.Rows = []core.Row{
		{core.Int(1), core.Text("Alice")},
		{core.Int(2), core.Text("Bob")},
	}
	mustInsert(t, reg, orders)
	mustInsert(t, reg, customers)

	res, err := d.Execute("JOIN_TABLE", map[string]any{
		"tableName": "orders", "tableName1": "customers", "joinColumn": "CustId", "newName": "joined",
	})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 3)

	idx, ok := res.Table.ColumnIndex("Name")
	require.True(t, ok)
	assert.Equal(t, core.Text("Alice"), res.Table.Rows[0][idx])
	assert.Equal(t, core.Text("Bob"), res.Table.Rows[1][idx])
	assert.Equal(t, core.Text(""), res.Table.Rows[2][idx])
}

func TestJoinTableFirstMatchWinsOnDuplicateRightKeys(t *testing.T) {
	d, reg := newDispatcher(t)
	left := core.NewTable("left", []core.Column{{Name: "K", Type: core.INT}})
	left.Rows = []core.Row{{core.Int(1)}}
	right := core.NewTable("right", []core.Column{
		{Name: "K", Type: core.INT},
		{Name: "V", Type: core.TEXT},
	})
	right.Rows = []core.Row{
		{core.Int(1), core.Text("first")},
		{core.Int(1), core.Text("second")},
	}
	mustInsert(t, reg, left)
	mustInsert(t, reg, right)

	res, err := d.Execute("JOIN_TABLE", map[string]any{
		"tableName": "left", "tableName1": "right", "joinColumn": "K", "newName": "joined",
	})
	require.NoError(t, err)
	idx, _ := res.Table.ColumnIndex("V")
	assert.Equal(t, core.Text("first"), res.Table.Rows[0][idx])
}

func TestJoinTableDropsDuplicateColumnNamesFromRight(t *testing.T) {
	d, reg := newDispatcher(t)
	left := core.NewTable("left", []core.Column{
		{Name: "K", Type: core.INT},
		{Name: "Note", Type: core.TEXT},
	})
	left.Rows = []core.Row{{core.Int(1), core.Text("l")}}
	right := core.NewTable("right", []core.Column{
		{Name: "K", Type: core.INT},
		{Name: "Note", Type: core.TEXT},
	})
	right.Rows = []core.Row{{core.Int(1), core.Text("r")}}
	mustInsert(t, reg, left)
	mustInsert(t, reg, right)

	res, err := d.Execute("JOIN_TABLE", map[string]any{
		"tableName": "left", "tableName1": "right", "joinColumn": "K", "newName": "joined",
	})
	require.NoError(t, err)
	assert.Len(t, res.Table.Columns, 2)
	idx, _ := res.Table.ColumnIndex("Note")
	assert.Equal(t, core.Text("l"), res.Table.Rows[0][idx])
}
