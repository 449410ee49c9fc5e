package typeinfer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/typeinfer"
)

func mustColumn(t *testing.T, lt format.LogicalType, values any, nullMask []bool) table.Column {
	t.Helper()
	col, err := table.NewColumn("c", lt, values, nullMask)
	require.NoError(t, err)
	return col
}

func TestAnalyze_IntegerLadder(t *testing.T) {
	cases := []struct {
		name string
		vals []int64
		want format.StorageType
	}{
		{"uint8", []int64{0, 255}, format.StorageUint8},
		{"uint16", []int64{0, 65535}, format.StorageUint16},
		{"uint32", []int64{0, math.MaxUint32}, format.StorageUint32},
		{"int8", []int64{-128, 127}, format.StorageInt8},
		{"int16", []int64{-32768, 32767}, format.StorageInt16},
		{"int32", []int64{math.MinInt32, math.MaxInt32}, format.StorageInt32},
		{"int64", []int64{math.MinInt64, math.MaxInt64}, format.StorageInt64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col := mustColumn(t, format.LogicalInt64, c.vals, nil)
			st, nullable := typeinfer.Analyze(col)
			assert.Equal(t, c.want, st)
			assert.False(t, nullable)
		})
	}
}

func TestAnalyze_IntegerMixedSignUsesSigned(t *testing.T) {
	col := mustColumn(t, format.LogicalInt64, []int64{-1, 300}, nil)
	st, _ := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageInt16, st)
}

func TestAnalyze_FloatNarrowsWhenLossless(t *testing.T) {
	col := mustColumn(t, format.LogicalFloat64, []float64{1.5, 2.25, -3.0}, nil)
	st, _ := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageFloat32, st)
}

func TestAnalyze_FloatStaysWideOnPrecisionLoss(t *testing.T) {
	col := mustColumn(t, format.LogicalFloat64, []float64{0.1 + 1e-10, 1.0000000001}, nil)
	st, _ := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageFloat64, st)
}

func TestAnalyze_FloatNaNBlocksNarrowing(t *testing.T) {
	col := mustColumn(t, format.LogicalFloat64, []float64{math.NaN(), 1.5}, nil)
	st, _ := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageFloat64, st)
}

func TestAnalyze_FloatInfAloneDoesNotBlockNarrowing(t *testing.T) {
	col := mustColumn(t, format.LogicalFloat64, []float64{math.Inf(1), math.Inf(-1), 1.5}, nil)
	st, _ := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageFloat32, st)
}

func TestAnalyze_NullableReported(t *testing.T) {
	col := mustColumn(t, format.LogicalInt64, []int64{1, 0, 3}, []bool{false, true, false})
	_, nullable := typeinfer.Analyze(col)
	assert.True(t, nullable)
}

func TestAnalyze_AllNullColumn(t *testing.T) {
	col := mustColumn(t, format.LogicalInt64, []int64{0, 0}, []bool{true, true})
	st, nullable := typeinfer.Analyze(col)
	assert.Equal(t, format.StorageString, st)
	assert.True(t, nullable)
}

func TestAnalyze_BooleanAndString(t *testing.T) {
	bcol := mustColumn(t, format.LogicalBoolean, []bool{true, false}, nil)
	st, _ := typeinfer.Analyze(bcol)
	assert.Equal(t, format.StorageBool, st)

	scol := mustColumn(t, format.LogicalString, []string{"a", "b"}, nil)
	st, _ = typeinfer.Analyze(scol)
	assert.Equal(t, format.StorageString, st)
}
