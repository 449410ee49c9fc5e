package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/wire"
)

func TestEncodeDecodeNull_RoundTrip(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	encoding.EncodeNull(w, 4)

	r := wire.NewReader(w.Bytes())
	got, err := encoding.DecodeNull(r, "x", format.LogicalFloat64, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())
	for row := 0; row < 4; row++ {
		_, ok := got.Value(row)
		assert.False(t, ok)
	}
}

func TestDecodeNull_LengthMismatch(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	encoding.EncodeNull(w, 3)

	r := wire.NewReader(w.Bytes())
	_, err := encoding.DecodeNull(r, "x", format.LogicalInt64, 4)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}
