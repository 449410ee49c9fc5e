package encoding_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/wire"
)

func TestTaggedValue_RoundTrip(t *testing.T) {
	cases := []struct {
		v  any
		ok bool
	}{
		{nil, false},
		{int64(-7), true},
		{float64(3.25), true},
		{"hello", true},
		{"", true},
	}
	for _, c := range cases {
		w := wire.NewWriter()
		require.NoError(t, encoding.WriteTaggedValue(w, c.v, c.ok))
		r := wire.NewReader(w.Bytes())
		v, ok, err := encoding.ReadTaggedValue(r)
		w.Release()
		require.NoError(t, err)
		assert.Equal(t, c.ok, ok)
		if c.ok {
			assert.Equal(t, c.v, v)
		}
	}
}

func TestWriteTaggedValue_StringTooLong(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	err := encoding.WriteTaggedValue(w, strings.Repeat("x", 256), true)
	require.ErrorIs(t, err, errs.ErrStringTooLong)
}

func TestReadTaggedValue_UnknownTag(t *testing.T) {
	r := wire.NewReader([]byte{0xFF})
	_, _, err := encoding.ReadTaggedValue(r)
	require.ErrorIs(t, err, errs.ErrUnknownValueTag)
}
