package encoding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/typeinfer"
	"github.com/coldbrewdata/hybf/wire"
)

func roundTripRaw(t *testing.T, col *table.MaterializedColumn) *table.MaterializedColumn {
	t.Helper()
	st, _ := typeinfer.Analyze(col)
	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeRaw(w, col, st))
	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeRaw(r, col.Name(), col.LogicalType(), col.Len())
	require.NoError(t, err)
	return got
}

func TestEncodeDecodeRaw_IntegerWithNulls(t *testing.T) {
	col, err := table.NewColumn("ints", format.LogicalInt64, []int64{1, 0, -300, math.MaxInt64}, []bool{false, true, false, false})
	require.NoError(t, err)

	got := roundTripRaw(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, wantOK := col.Value(row)
		gotV, gotOK := got.Value(row)
		assert.Equal(t, wantOK, gotOK)
		if wantOK {
			assert.Equal(t, wantV, gotV)
		}
	}
}

func TestEncodeDecodeRaw_Float32Narrowing(t *testing.T) {
	col, err := table.NewColumn("f", format.LogicalFloat64, []float64{1.5, -2.25, 0}, nil)
	require.NoError(t, err)

	got := roundTripRaw(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, _ := col.Value(row)
		gotV, _ := got.Value(row)
		assert.InDelta(t, wantV, gotV, 1e-6)
	}
}

func TestEncodeDecodeRaw_Boolean(t *testing.T) {
	col, err := table.NewColumn("b", format.LogicalBoolean, []bool{true, false, true}, nil)
	require.NoError(t, err)

	got := roundTripRaw(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, _ := col.Value(row)
		gotV, _ := got.Value(row)
		assert.Equal(t, wantV, gotV)
	}
}

func TestEncodeDecodeRaw_StringDistinguishesEmptyFromNull(t *testing.T) {
	// Unlike the minimal container, RAW's explicit null bitmap lets a
	// non-null empty string round-trip distinctly from a null.
	col, err := table.NewColumn("s", format.LogicalString, []string{"", "héllo", "日本語", ""}, []bool{true, false, false, false})
	require.NoError(t, err)

	got := roundTripRaw(t, col)
	for row := 0; row < col.Len(); row++ {
		wantV, wantOK := col.Value(row)
		gotV, gotOK := got.Value(row)
		assert.Equal(t, wantOK, gotOK)
		if wantOK {
			assert.Equal(t, wantV, gotV)
		}
	}
	_, ok := got.Value(3)
	assert.True(t, ok, "non-null empty string must not decode as null")
	v, _ := got.Value(3)
	assert.Equal(t, "", v)
}
