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

func TestEncodeDecodeDictionary_RoundTrip(t *testing.T) {
	col, err := table.NewColumn("s", format.LogicalString, []string{"a", "b", "a", "c", "a"}, []bool{false, false, false, false, true})
	require.NoError(t, err)

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeDictionary(w, col))

	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeDictionary(r, "s", col.Len())
	require.NoError(t, err)

	for row := 0; row < col.Len(); row++ {
		wantV, wantOK := col.Value(row)
		gotV, gotOK := got.Value(row)
		assert.Equal(t, wantOK, gotOK)
		if wantOK {
			assert.Equal(t, wantV, gotV)
		}
	}
}

func TestEncodeDictionary_RejectsNonString(t *testing.T) {
	col, err := table.NewColumn("x", format.LogicalInt64, []int64{1, 2}, nil)
	require.NoError(t, err)
	w := wire.NewWriter()
	defer w.Release()
	err = encoding.EncodeDictionary(w, col)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestEncodeDecodeDictionary_AllNullColumn(t *testing.T) {
	col, err := table.NewColumn("s", format.LogicalString, []string{"", ""}, []bool{true, true})
	require.NoError(t, err)
	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, encoding.EncodeDictionary(w, col))

	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeDictionary(r, "s", col.Len())
	require.NoError(t, err)
	for row := 0; row < col.Len(); row++ {
		_, ok := got.Value(row)
		assert.False(t, ok)
	}
}
