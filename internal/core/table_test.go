package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleTable() *Table {
	t := NewTable("people", []Column{
		{Name: "Name", Type: TEXT},
		{Name: "Age", Type: INT},
	})
	t.Rows = []Row{
		{Text("Alice"), Int(30)},
		{Text("Bob"), Int(40)},
	}
	return t
}

func TestZeroRowMatchesSchemaTypes(t *testing.T) {
	table := peopleTable()
	row := table.ZeroRow()
	assert.Equal(t, Row{Text(""), Int(0)}, row)
}

func TestCloneIsDeepAndUnaliased(t *testing.T) {
	table := peopleTable()
	clone := table.Clone()

	clone.Rows[0][0] = Text("Changed")
	clone.Columns[0].Name = "Renamed"

	assert.Equal(t, "Alice", table.Rows[0][0].Text)
	assert.Equal(t, "Name", table.Columns[0].Name)
}

func TestSameSchema(t *testing.T) {
	a := peopleTable()
	b := peopleTable()
	assert.True(t, a.SameSchema(b))

	b.Columns[1].Type = REAL
	assert.False(t, a.SameSchema(b))
}

func TestDropColumnsIsAtomic(t *testing.T) {
	table := peopleTable()
	err := table.DropColumns([]string{"Age", "Bogus"})
	require.Error(t, err)
	assert.True(t, table.HasColumn("Age"), "table must be unchanged after a failed drop")

	err = table.DropColumns([]string{"Age"})
	require.NoError(t, err)
	assert.False(t, table.HasColumn("Age"))
	assert.Len(t, table.Rows[0], 1)
}

func TestRenameColumnRewritesSchemaOnly(t *testing.T) {
	table := peopleTable()
	require.NoError(t, table.RenameColumn("Age", "Years"))
	assert.True(t, table.HasColumn("Years"))
	assert.Equal(t, Int(30), table.Rows[0][1])
}

func TestRenameColumnErrors(t *testing.T) {
	table := peopleTable()
	assert.Error(t, table.RenameColumn("Bogus", "X"))
	assert.Error(t, table.RenameColumn("Age", "Name"))
}

func TestReorderColumnsMovesToFrontKeepingRelativeOrder(t *testing.T) {
	table := NewTable("t", []Column{
		{Name: "A", Type: INT}, {Name: "B", Type: INT}, {Name: "C", Type: INT}, {Name: "D", Type: INT},
	})
	table.Rows = []Row{{Int(1), Int(2), Int(3), Int(4)}}

	require.NoError(t, table.ReorderColumns([]string{"C", "A"}))
	names := []string{table.Columns[0].Name, table.Columns[1].Name, table.Columns[2].Name, table.Columns[3].Name}
	assert.Equal(t, []string{"C", "A", "B", "D"}, names)
	assert.Equal(t, Row{Int(3), Int(1), Int(2), Int(4)}, table.Rows[0])
}

func TestAppendColumnRequiresExactRowCount(t *testing.T) {
	table := peopleTable()
	err := table.AppendColumn(Column{Name: "Score", Type: INT}, []Value{Int(1)})
	require.Error(t, err)

	err = table.AppendColumn(Column{Name: "Score", Type: INT}, []Value{Int(1), Int(2)})
	require.NoError(t, err)
	assert.Equal(t, Int(1), table.Rows[0][2])
}
