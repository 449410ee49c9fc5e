package section_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/section"
	"github.com/coldbrewdata/hybf/wire"
)

func TestMinimalEntry_RoundTrip(t *testing.T) {
	e := section.MinimalEntry{LogicalType: format.LogicalFloat64, Name: "price", Nullable: true}
	b, err := e.Bytes()
	require.NoError(t, err)

	got, err := section.ParseMinimalEntry(wire.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestMinimalEntry_NameTooLong(t *testing.T) {
	e := section.MinimalEntry{LogicalType: format.LogicalInt64, Name: strings.Repeat("x", 256)}
	_, err := e.Bytes()
	require.ErrorIs(t, err, errs.ErrNameTooLong)
}

func TestCompressedEntry_RoundTrip(t *testing.T) {
	e := section.CompressedEntry{LogicalType: format.LogicalString, Name: "label"}
	b, err := e.Bytes()
	require.NoError(t, err)

	got, err := section.ParseCompressedEntry(wire.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestCompressedEntry_NameTooLong(t *testing.T) {
	e := section.CompressedEntry{LogicalType: format.LogicalInt64, Name: strings.Repeat("y", 300)}
	_, err := e.Bytes()
	require.ErrorIs(t, err, errs.ErrNameTooLong)
}
