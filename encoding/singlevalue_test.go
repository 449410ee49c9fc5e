package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

func TestEncodeDecodeSingleValue_RoundTrip(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalFloat64, []float64{9.5, 9.5, 9.5}, nil)
	require.NoError(t, err)

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeSingleValue(w, col))

	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeSingleValue(r, "x", col.LogicalType(), col.Len())
	require.NoError(t, err)
	for row := 0; row < col.Len(); row++ {
		v, ok := got.Value(row)
		assert.True(t, ok)
		assert.Equal(t, 9.5, v)
	}
}

func TestEncodeSingleValue_RejectsNull(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{0, 0}, []bool{true, false})
	require.NoError(t, err)
	w := wire.NewWriter()
	defer w.Release()
	err = encoding.EncodeSingleValue(w, col)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestDecodeSingleValue_LengthMismatch(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 1}, nil)
	require.NoError(t, err)
	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeSingleValue(w, col))

	r := wire.NewReader(w.Bytes())
	_, err = encoding.DecodeSingleValue(r, "x", col.LogicalType(), 5)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}
