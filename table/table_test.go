package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
)

func TestNewColumn_TypeMismatch(t *testing.T) {
	_, err := table.NewColumn("x", format.LogicalInt64, []int32{1, 2}, nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestNewColumn_NullMaskShapeMismatch(t *testing.T) {
	_, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 2, 3}, []bool{true, false})
	require.ErrorIs(t, err, errs.ErrShapeError)
}

func TestNewColumn_NameTooLong(t *testing.T) {
	longName := make([]byte, 256)
	_, err := table.NewColumn(string(longName), format.LogicalInt64, []int64{1}, nil)
	require.ErrorIs(t, err, errs.ErrNameTooLong)
}

func TestColumn_ValueWithNulls(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 0, 3}, []bool{false, true, false})
	require.NoError(t, err)

	v, ok := col.Value(0)
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = col.Value(1)
	assert.False(t, ok)
	assert.Equal(t, int64(0), v)

	assert.True(t, col.IsNull(1))
	assert.False(t, col.IsNull(0))
	assert.Equal(t, 3, col.Len())
}

func TestNewTable_ShapeMismatch(t *testing.T) {
	a, err := table.NewColumn("a", format.LogicalInt64, []int64{1, 2}, nil)
	require.NoError(t, err)
	b, err := table.NewColumn("b", format.LogicalInt64, []int64{1, 2, 3}, nil)
	require.NoError(t, err)

	_, err = table.NewTable([]*table.MaterializedColumn{a, b})
	require.ErrorIs(t, err, errs.ErrShapeError)
}

func TestNewTable_DuplicateNames(t *testing.T) {
	a, err := table.NewColumn("a", format.LogicalInt64, []int64{1}, nil)
	require.NoError(t, err)
	dup, err := table.NewColumn("a", format.LogicalInt64, []int64{2}, nil)
	require.NoError(t, err)

	_, err = table.NewTable([]*table.MaterializedColumn{a, dup})
	require.ErrorIs(t, err, errs.ErrDuplicateColumnName)
}

func TestTable_ColumnByName(t *testing.T) {
	a, err := table.NewColumn("a", format.LogicalString, []string{"x", "y"}, nil)
	require.NoError(t, err)
	tbl, err := table.NewTable([]*table.MaterializedColumn{a})
	require.NoError(t, err)

	col, ok := tbl.ColumnByName("a")
	require.True(t, ok)
	assert.Equal(t, "a", col.Name())

	_, ok = tbl.ColumnByName("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, tbl.NumColumns())
	assert.Equal(t, 2, tbl.NumRows())
}
