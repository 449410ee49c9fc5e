package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coldbrewdata/hybf/format"
)

func TestLogicalType_String(t *testing.T) {
	assert.Equal(t, "Int64", format.LogicalInt64.String())
	assert.Equal(t, "String", format.LogicalString.String())
	assert.Equal(t, "Unknown", format.LogicalType(0xFF).String())
}

func TestStorageType_String(t *testing.T) {
	assert.Equal(t, "Uint8", format.StorageUint8.String())
	assert.Equal(t, "Float64", format.StorageFloat64.String())
	assert.Equal(t, "Unknown", format.StorageType(0xFF).String())
}

func TestEncodingTag_String(t *testing.T) {
	assert.Equal(t, "RLE", format.EncodingRLE.String())
	assert.Equal(t, "Unknown", format.EncodingTag(0xFF).String())
}

func TestNumericDtypeCode_RoundTrip(t *testing.T) {
	for _, st := range []format.StorageType{
		format.StorageUint8, format.StorageUint16, format.StorageUint32,
		format.StorageInt8, format.StorageInt16, format.StorageInt32, format.StorageInt64,
		format.StorageFloat32, format.StorageFloat64,
	} {
		code := format.NumericDtypeCode(st)
		assert.NotZero(t, code)
		back, ok := format.StorageTypeFromDtypeCode(code)
		assert.True(t, ok)
		assert.Equal(t, st, back)
	}
}

func TestNumericDtypeCode_NonNumeric(t *testing.T) {
	assert.Equal(t, uint8(0), format.NumericDtypeCode(format.StorageString))
}

func TestStorageTypeFromDtypeCode_Unknown(t *testing.T) {
	_, ok := format.StorageTypeFromDtypeCode(0xFF)
	assert.False(t, ok)
}
