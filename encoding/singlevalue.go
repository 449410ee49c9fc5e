package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// EncodeSingleValue writes a column whose non-null rows (there must be no
// nulls) all share one value: {value_tag, value}, then length: u32 = R.
func EncodeSingleValue(w *wire.Writer, col table.Column) error {
	n := col.Len()
	if n == 0 {
		if err := WriteTaggedValue(w, nil, false); err != nil {
			return err
		}
		w.PutU32(0)

		return nil
	}

	v, ok := col.Value(0)
	if !ok {
		return fmt.Errorf("%w: single-value encoding requires a non-null value", errs.ErrUnsupportedType)
	}
	tv := taggedValue(col.LogicalType(), v)
	if err := WriteTaggedValue(w, tv, true); err != nil {
		return err
	}
	w.PutU32(uint32(n))

	return nil
}

// DecodeSingleValue reads a single-value payload and materializes rowCount
// copies of the stored value.
func DecodeSingleValue(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	v, ok, err := ReadTaggedValue(r)
	if err != nil {
		return nil, err
	}
	length, err := r.U32()
	if err != nil {
		return nil, err
	}
	if int(length) != rowCount {
		return nil, fmt.Errorf("%w: single-value length %d, want %d", errs.ErrLengthMismatch, length, rowCount)
	}

	values, nullMask, anyNull := fillConstant(lt, v, ok, rowCount)

	return buildColumn(name, lt, values, nullMask, anyNull)
}

func fillConstant(lt format.LogicalType, v any, ok bool, rowCount int) (any, []bool, bool) {
	nullMask := make([]bool, rowCount)
	if !ok {
		for i := range nullMask {
			nullMask[i] = true
		}
		return zeroSlice(lt, rowCount), nullMask, rowCount > 0
	}

	switch lt {
	case format.LogicalInt32:
		out := make([]int32, rowCount)
		x := int32(v.(int64))
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	case format.LogicalInt64:
		out := make([]int64, rowCount)
		x := v.(int64)
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	case format.LogicalFloat32:
		out := make([]float32, rowCount)
		x := float32(v.(float64))
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	case format.LogicalFloat64:
		out := make([]float64, rowCount)
		x := v.(float64)
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	case format.LogicalBoolean:
		out := make([]bool, rowCount)
		x := v.(int64) != 0
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	case format.LogicalString:
		out := make([]string, rowCount)
		x := v.(string)
		for i := range out {
			out[i] = x
		}
		return out, nullMask, false
	default:
		return nil, nullMask, false
	}
}

func zeroSlice(lt format.LogicalType, n int) any {
	switch lt {
	case format.LogicalInt32:
		return make([]int32, n)
	case format.LogicalInt64:
		return make([]int64, n)
	case format.LogicalFloat32:
		return make([]float32, n)
	case format.LogicalFloat64:
		return make([]float64, n)
	case format.LogicalBoolean:
		return make([]bool, n)
	case format.LogicalString:
		return make([]string, n)
	default:
		return nil
	}
}
