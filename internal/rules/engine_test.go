package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/core"
)

func newOrdersTable() *core.Table {
	return core.NewTable("orders", []core.Column{
		{Name: "id", Type: core.INT},
		{Name: "qty", Type: core.INT},
		{Name: "price", Type: core.REAL},
		{Name: "total", Type: core.REAL},
		{Name: "customer", Type: core.TEXT},
	})
}

func TestAddRunsInitThenFixupThenCheck(t *testing.T) {
	table := newOrdersTable()
	set, err := Parse(strings.NewReader(strings.Join([]string{
		"INIT id NUM_ROWS() + 1",
		"FIXUP total qty * price",
		"CHECK total total > 0",
	}, "\n")))
	require.NoError(t, err)

	err = Add(table, set, map[string]string{"qty": "3", "price": "2.5", "customer": "ACME"}, nil)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, core.Int(1), row[0])
	assert.Equal(t, core.Int(3), row[1])
	assert.Equal(t, core.Real(2.5), row[2])
	assert.Equal(t, core.Real(7.5), row[3])
	assert.Equal(t, core.Text("ACME"), row[4])
}

func TestAddRejectsRowFailingCheckAndLeavesTableUnchanged(t *testing.T) {
	table := newOrdersTable()
	set, err := Parse(strings.NewReader("CHECK total total > 0"))
	require.NoError(t, err)

	err = Add(table, set, map[string]string{"qty": "1"}, nil)
	require.Error(t, err)
	assert.Empty(t, table.Rows)

	kind, ok := core.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, core.ValidationFailure, kind)

	var coreErr *core.Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, []string{"total"}, coreErr.Columns)
}

func TestAddRejectsUnparsableUserField(t *testing.T) {
	table := newOrdersTable()
	err := Add(table, nil, map[string]string{"qty": "not-a-number"}, nil)
	require.Error(t, err)
	assert.Empty(t, table.Rows)

	var coreErr *core.Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, []string{"qty"}, coreErr.Columns)
}

func TestAddAggregatesAllFailingColumns(t *testing.T) {
	table := newOrdersTable()
	set, err := Parse(strings.NewReader(strings.Join([]string{
		"CHECK total total > 0",
		"CHECK customer customer != ''",
	}, "\n")))
	require.NoError(t, err)

	err = Add(table, set, nil, nil)
	require.Error(t, err)

	var coreErr *core.Error
	require.ErrorAs(t, err, &coreErr)
	assert.ElementsMatch(t, []string{"total", "customer"}, coreErr.Columns)
}

func TestUpdateSkipsInitButRunsFixupAndCheck(t *testing.T) {
	table := newOrdersTable()
	table.Rows = []core.Row{{core.Int(99), core.Int(1), core.Real(1), core.Real(1), core.Text("OLD")}}

	set, err := Parse(strings.NewReader(strings.Join([]string{
		"INIT id 777",
		"FIXUP total qty * price",
		"CHECK total total > 0",
	}, "\n")))
	require.NoError(t, err)

	err = Update(table, set, 0, map[string]string{"qty": "4", "price": "2.0", "customer": "NEW"}, nil)
	require.NoError(t, err)

	row := table.Rows[0]
	assert.Equal(t, core.Int(99), row[0], "INIT rules must not run on update")
	assert.Equal(t, core.Real(8.0), row[3])
	assert.Equal(t, core.Text("NEW"), row[4])
}

func TestUpdateRejectsOutOfRangeIndex(t *testing.T) {
	table := newOrdersTable()
	err := Update(table, nil, 0, nil, nil)
	require.Error(t, err)

	kind, ok := core.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, core.BadParameter, kind)
}

func TestUpdateLeavesRowUnchangedOnCheckFailure(t *testing.T) {
	table := newOrdersTable()
	original := core.Row{core.Int(1), core.Int(1), core.Real(1), core.Real(1), core.Text("ACME")}
	table.Rows = []core.Row{original.Clone()}

	set, err := Parse(strings.NewReader("CHECK total total > 100"))
	require.NoError(t, err)

	err = Update(table, set, 0, map[string]string{"qty": "2"}, nil)
	require.Error(t, err)
	assert.Equal(t, original, table.Rows[0])
}
