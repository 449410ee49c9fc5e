package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// EncodeNull writes an all-null column's payload: length: u32 = R.
func EncodeNull(w *wire.Writer, rowCount int) {
	w.PutU32(uint32(rowCount))
}

// DecodeNull reads a null-column payload and materializes rowCount null
// values.
func DecodeNull(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	length, err := r.U32()
	if err != nil {
		return nil, err
	}
	if int(length) != rowCount {
		return nil, fmt.Errorf("%w: null column length %d, want %d", errs.ErrLengthMismatch, length, rowCount)
	}

	values := zeroSlice(lt, rowCount)
	nullMask := make([]bool, rowCount)
	for i := range nullMask {
		nullMask[i] = true
	}

	return buildColumn(name, lt, values, nullMask, rowCount > 0)
}
