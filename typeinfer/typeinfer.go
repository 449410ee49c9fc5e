// Package typeinfer implements the per-column storage-width analyzer: given
// a column's logical type and values, it infers the narrowest storage type
// that round-trips every non-null value exactly (integers) or within the
// documented relative-error bound (float32).
package typeinfer

import (
	"math"

	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
)

// float32RelativeErrorBound is the maximum allowed |x - float64(float32(x))| / |x|
// for a float column to narrow to FLOAT32.
const float32RelativeErrorBound = 1e-6

// Analyze infers the storage type for col and reports whether any of its
// rows are null. It is a pure function: calling it twice on the same column
// yields the same answer.
func Analyze(col table.Column) (format.StorageType, bool) {
	n := col.Len()
	nullable := false
	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); !ok {
			nullable = true
			break
		}
	}

	if allNull(col) {
		return format.StorageString, true
	}

	switch col.LogicalType() {
	case format.LogicalInt32, format.LogicalInt64:
		return analyzeInteger(col), nullable
	case format.LogicalFloat32, format.LogicalFloat64:
		return analyzeFloat(col), nullable
	case format.LogicalBoolean:
		return format.StorageBool, nullable
	case format.LogicalString:
		return format.StorageString, nullable
	default:
		return format.StorageString, nullable
	}
}

func allNull(col table.Column) bool {
	n := col.Len()
	if n == 0 {
		return false
	}
	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); ok {
			return false
		}
	}
	return true
}

func analyzeInteger(col table.Column) format.StorageType {
	n := col.Len()
	haveAny := false
	var min, max int64
	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			continue
		}
		var x int64
		switch t := v.(type) {
		case int32:
			x = int64(t)
		case int64:
			x = t
		}
		if !haveAny {
			min, max = x, x
			haveAny = true
			continue
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	if !haveAny {
		return format.StorageInt32
	}

	switch {
	case min >= 0 && max <= 255:
		return format.StorageUint8
	case min >= 0 && max <= 65535:
		return format.StorageUint16
	case min >= 0 && max <= math.MaxUint32:
		return format.StorageUint32
	case min >= -128 && max <= 127:
		return format.StorageInt8
	case min >= -32768 && max <= 32767:
		return format.StorageInt16
	case min >= math.MinInt32 && max <= math.MaxInt32:
		return format.StorageInt32
	default:
		return format.StorageInt64
	}
}

func analyzeFloat(col table.Column) format.StorageType {
	n := col.Len()
	haveAny := false
	narrowable := true
	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			continue
		}
		haveAny = true
		var x float64
		switch t := v.(type) {
		case float32:
			x = float64(t)
		case float64:
			x = t
		}
		if !narrowable {
			continue
		}
		if math.IsNaN(x) {
			narrowable = false
			continue
		}
		if math.IsInf(x, 0) {
			continue
		}
		narrowed := float64(float32(x))
		var relErr float64
		if x == 0 {
			relErr = math.Abs(narrowed - x)
		} else {
			relErr = math.Abs(narrowed-x) / math.Abs(x)
		}
		if relErr > float32RelativeErrorBound {
			narrowable = false
		}
	}
	if !haveAny {
		return format.StorageFloat64
	}
	if narrowable {
		return format.StorageFloat32
	}

	return format.StorageFloat64
}
