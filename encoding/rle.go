package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

type run struct {
	value  any
	ok     bool
	length uint32
}

// taggedValue converts a column's native Go row value into the tagged
// representation (int64, float64, or string) that WriteTaggedValue expects.
func taggedValue(lt format.LogicalType, v any) any {
	switch lt {
	case format.LogicalInt32, format.LogicalInt64, format.LogicalBoolean:
		return asInt64(v)
	case format.LogicalFloat32, format.LogicalFloat64:
		return asFloat64(v)
	case format.LogicalString:
		return v
	default:
		return v
	}
}

// buildRuns groups col's values in row order into maximal contiguous spans
// of equal value (null equals null).
func buildRuns(col table.Column) []run {
	n := col.Len()
	if n == 0 {
		return nil
	}

	runs := make([]run, 0, n)
	lt := col.LogicalType()

	v0, ok0 := col.Value(0)
	cur := run{value: taggedValue(lt, v0), ok: ok0, length: 1}

	for row := 1; row < n; row++ {
		v, ok := col.Value(row)
		tv := taggedValue(lt, v)
		if ok == cur.ok && (!ok || tv == cur.value) {
			cur.length++
			continue
		}
		runs = append(runs, cur)
		cur = run{value: tv, ok: ok, length: 1}
	}
	runs = append(runs, cur)

	return runs
}

// CountRuns returns the number of runs EncodeRLE would write for col — used
// by the selector to compute redundancy. It builds the runs to count them.
func CountRuns(col table.Column) int {
	return len(buildRuns(col))
}

// EncodeRLE writes a column's RLE payload (unframed).
func EncodeRLE(w *wire.Writer, col table.Column) error {
	runs := buildRuns(col)
	w.PutU32(uint32(len(runs)))

	for _, r := range runs {
		if err := WriteTaggedValue(w, r.value, r.ok); err != nil {
			return err
		}
		w.PutU32(r.length)
	}

	return nil
}

// DecodeRLE reads an RLE payload and produces a MaterializedColumn of
// rowCount rows.
func DecodeRLE(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	runCount, err := r.U32()
	if err != nil {
		return nil, err
	}

	values, nullMaskSlice, anyNull, total, err := decodeRunsInto(r, lt, int(runCount), rowCount)
	if err != nil {
		return nil, err
	}
	if total != rowCount {
		return nil, fmt.Errorf("%w: RLE runs sum to %d, want %d", errs.ErrLengthMismatch, total, rowCount)
	}

	return buildColumn(name, lt, values, nullMaskSlice, anyNull)
}

func decodeRunsInto(r *wire.Reader, lt format.LogicalType, runCount, rowCount int) (any, []bool, bool, int, error) {
	nullMask := make([]bool, rowCount)
	anyNull := false
	pos := 0

	switch lt {
	case format.LogicalInt32:
		out := make([]int32, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillInt32Run(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	case format.LogicalInt64:
		out := make([]int64, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillInt64Run(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	case format.LogicalFloat32:
		out := make([]float32, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillFloat32Run(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	case format.LogicalFloat64:
		out := make([]float64, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillFloat64Run(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	case format.LogicalBoolean:
		out := make([]bool, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillBoolRun(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	case format.LogicalString:
		out := make([]string, rowCount)
		for i := 0; i < runCount; i++ {
			v, ok, length, err := readRun(r)
			if err != nil {
				return nil, nil, false, 0, err
			}
			pos, anyNull = fillStringRun(out, nullMask, pos, v, ok, length, anyNull)
		}
		return out, nullMask, anyNull, pos, nil
	default:
		return nil, nil, false, 0, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, lt)
	}
}

func readRun(r *wire.Reader) (any, bool, int, error) {
	v, ok, err := ReadTaggedValue(r)
	if err != nil {
		return nil, false, 0, err
	}
	length, err := r.U32()
	if err != nil {
		return nil, false, 0, err
	}

	return v, ok, int(length), nil
}

func fillInt32Run(out []int32, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = int32(v.(int64))
		}
		pos++
	}
	return pos, anyNull
}

func fillInt64Run(out []int64, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = v.(int64)
		}
		pos++
	}
	return pos, anyNull
}

func fillFloat32Run(out []float32, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = float32(v.(float64))
		}
		pos++
	}
	return pos, anyNull
}

func fillFloat64Run(out []float64, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = v.(float64)
		}
		pos++
	}
	return pos, anyNull
}

func fillBoolRun(out []bool, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = v.(int64) != 0
		}
		pos++
	}
	return pos, anyNull
}

func fillStringRun(out []string, nullMask []bool, pos int, v any, ok bool, length int, anyNull bool) (int, bool) {
	for i := 0; i < length && pos < len(out); i++ {
		if !ok {
			nullMask[pos] = true
			anyNull = true
		} else {
			out[pos] = v.(string)
		}
		pos++
	}
	return pos, anyNull
}
