package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

func TestCountRuns(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 1, 1, 2, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, encoding.CountRuns(col))
}

func TestCountRuns_NullBreaksRun(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 0, 1}, []bool{false, true, false})
	require.NoError(t, err)
	// 1, null, 1 -> three runs since null and non-null never merge.
	assert.Equal(t, 3, encoding.CountRuns(col))
}

func roundTripRLE(t *testing.T, col *table.MaterializedColumn) *table.MaterializedColumn {
	t.Helper()
	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeRLE(w, col))
	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeRLE(r, col.Name(), col.LogicalType(), col.Len())
	require.NoError(t, err)
	return got
}

func TestEncodeDecodeRLE_NumericWithNulls(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{7, 7, 7, 0, 9, 9}, []bool{false, false, false, true, false, false})
	require.NoError(t, err)

	got := roundTripRLE(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, wantOK := col.Value(row)
		gotV, gotOK := got.Value(row)
		assert.Equal(t, wantOK, gotOK)
		if wantOK {
			assert.Equal(t, wantV, gotV)
		}
	}
}

func TestEncodeDecodeRLE_Boolean(t *testing.T) {
	col, err := table.NewColumn("b", format.LogicalBoolean, []bool{true, true, false, false, false}, nil)
	require.NoError(t, err)
	got := roundTripRLE(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, _ := col.Value(row)
		gotV, _ := got.Value(row)
		assert.Equal(t, wantV, gotV)
	}
}

func TestEncodeDecodeRLE_String(t *testing.T) {
	col, err := table.NewColumn("s", format.LogicalString, []string{"a", "a", "b"}, nil)
	require.NoError(t, err)
	got := roundTripRLE(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, _ := col.Value(row)
		gotV, _ := got.Value(row)
		assert.Equal(t, wantV, gotV)
	}
}
