package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/core"
)

func TestExecuteUnknownCommand(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Execute("FLY_TO_THE_MOON", nil)
	require.Error(t, err)
	kind, ok := core.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, core.BadParameter, kind)
}

func TestExecuteStripsCSVSuffixFromTableNames(t *testing.T) {
	d, reg := newDispatcher(t)
	mustInsert(t, reg, ordersTable())

	_, err := d.Execute("DELETE_TABLE", map[string]any{"tableName": "orders.csv"})
	require.NoError(t, err)
	_, err = reg.Get("orders")
	require.Error(t, err)
}
