// Package container implements the two HYBF container layouts: the
// low-overhead minimal form for small tables and the per-column-encoded
// compressed form for larger ones.
package container

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/section"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// WriteMinimal writes t in the minimal container layout (§4.5). A
// zero-length string in the minimal container is indistinguishable from
// null and is always decoded as null — an accepted limitation documented in
// DESIGN.md's Open Question resolution; it does not apply to the
// compressed container.
func WriteMinimal(t table.Table) ([]byte, error) {
	numColumns := t.NumColumns()
	if numColumns > 65535 {
		return nil, fmt.Errorf("%w: %d columns exceeds u16 directory", errs.ErrShapeError, numColumns)
	}

	header := section.Header{
		Version:    section.Version,
		FormatType: section.FormatMinimal,
		NumColumns: uint16(numColumns),
	}

	w := wire.NewWriter()
	defer w.Release()

	w.PutBytes(header.Bytes())

	rowCount := t.NumRows()
	nullableFlags := make([]bool, numColumns)
	for i := 0; i < numColumns; i++ {
		col := t.ColumnAt(i)
		nullable := columnHasNull(col)
		nullableFlags[i] = nullable
		entryBytes, err := section.MinimalEntry{
			LogicalType: col.LogicalType(),
			Name:        col.Name(),
			Nullable:    nullable,
		}.Bytes()
		if err != nil {
			return nil, err
		}
		w.PutBytes(entryBytes)
	}

	w.PutU32(uint32(rowCount))

	for i := 0; i < numColumns; i++ {
		col := t.ColumnAt(i)
		if err := writeMinimalPayload(w, col, nullableFlags[i]); err != nil {
			return nil, err
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

func columnHasNull(col table.Column) bool {
	n := col.Len()
	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); !ok {
			return true
		}
	}
	return false
}

func writeMinimalPayload(w *wire.Writer, col table.Column, nullable bool) error {
	if col.LogicalType() == format.LogicalString {
		return writeMinimalString(w, col)
	}

	return writeMinimalNumeric(w, col, nullable)
}

func writeMinimalString(w *wire.Writer, col table.Column) error {
	n := col.Len()
	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			w.PutU8(0)
			continue
		}
		s := v.(string)
		if len(s) > 255 {
			return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(s))
		}
		w.PutU8(uint8(len(s)))
		w.PutString(s)
	}

	return nil
}

func writeMinimalNumeric(w *wire.Writer, col table.Column, nullable bool) error {
	n := col.Len()
	if nullable {
		bitmap := make([]byte, (n+7)/8)
		for row := 0; row < n; row++ {
			if _, ok := col.Value(row); !ok {
				bitmap[row/8] |= 1 << uint(row%8)
			}
		}
		w.PutBytes(bitmap)
	}

	switch col.LogicalType() {
	case format.LogicalInt32:
		vals := make([]int32, 0, n)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, v.(int32))
			}
		}
		w.PutInt32Slice(vals)
	case format.LogicalInt64:
		vals := make([]int64, 0, n)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, v.(int64))
			}
		}
		w.PutInt64Slice(vals)
	case format.LogicalFloat32:
		vals := make([]float32, 0, n)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, v.(float32))
			}
		}
		w.PutFloat32Slice(vals)
	case format.LogicalFloat64:
		vals := make([]float64, 0, n)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, v.(float64))
			}
		}
		w.PutFloat64Slice(vals)
	case format.LogicalBoolean:
		vals := make([]uint8, 0, n)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				if v.(bool) {
					vals = append(vals, 1)
				} else {
					vals = append(vals, 0)
				}
			}
		}
		w.PutUint8Slice(vals)
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedType, col.LogicalType())
	}

	return nil
}

// ReadMinimal reads a minimal-container byte stream and materializes a
// Table.
func ReadMinimal(data []byte) (table.Table, error) {
	hdr, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.FormatType != section.FormatMinimal {
		return nil, errs.ErrWrongContainer
	}

	r := wire.NewReader(data)
	r.Seek(section.HeaderSize)

	entries := make([]section.MinimalEntry, hdr.NumColumns)
	for i := range entries {
		e, err := section.ParseMinimalEntry(r)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	rowCount32, err := r.U32()
	if err != nil {
		return nil, err
	}
	rowCount := int(rowCount32)

	columns := make([]*table.MaterializedColumn, hdr.NumColumns)
	for i, e := range entries {
		col, err := readMinimalPayload(r, e, rowCount)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	return table.NewTable(columns)
}

func readMinimalPayload(r *wire.Reader, e section.MinimalEntry, rowCount int) (*table.MaterializedColumn, error) {
	if e.LogicalType == format.LogicalString {
		return readMinimalString(r, e.Name, rowCount)
	}

	return readMinimalNumeric(r, e, rowCount)
}

func readMinimalString(r *wire.Reader, name string, rowCount int) (*table.MaterializedColumn, error) {
	out := make([]string, rowCount)
	nullMask := make([]bool, rowCount)
	anyNull := false
	for row := 0; row < rowCount; row++ {
		length, err := r.U8()
		if err != nil {
			return nil, err
		}
		if length == 0 {
			nullMask[row] = true
			anyNull = true
			continue
		}
		s, err := r.String(int(length))
		if err != nil {
			return nil, err
		}
		out[row] = s
	}

	return finishColumn(name, format.LogicalString, out, nullMask, anyNull)
}

func readMinimalNumeric(r *wire.Reader, e section.MinimalEntry, rowCount int) (*table.MaterializedColumn, error) {
	nullMask := make([]bool, rowCount)
	anyNull := false
	nonNullCount := rowCount
	if e.Nullable {
		bitmap, err := r.Bytes((rowCount + 7) / 8)
		if err != nil {
			return nil, err
		}
		nonNullCount = 0
		for row := 0; row < rowCount; row++ {
			if bitmap[row/8]&(1<<uint(row%8)) != 0 {
				nullMask[row] = true
				anyNull = true
			} else {
				nonNullCount++
			}
		}
	}

	switch e.LogicalType {
	case format.LogicalInt32:
		vals, err := r.Int32Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]int32, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = vals[idx]
				idx++
			}
		}
		return finishColumn(e.Name, e.LogicalType, out, nullMask, anyNull)
	case format.LogicalInt64:
		vals, err := r.Int64Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]int64, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = vals[idx]
				idx++
			}
		}
		return finishColumn(e.Name, e.LogicalType, out, nullMask, anyNull)
	case format.LogicalFloat32:
		vals, err := r.Float32Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]float32, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = vals[idx]
				idx++
			}
		}
		return finishColumn(e.Name, e.LogicalType, out, nullMask, anyNull)
	case format.LogicalFloat64:
		vals, err := r.Float64Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]float64, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = vals[idx]
				idx++
			}
		}
		return finishColumn(e.Name, e.LogicalType, out, nullMask, anyNull)
	case format.LogicalBoolean:
		vals, err := r.Uint8Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]bool, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = vals[idx] != 0
				idx++
			}
		}
		return finishColumn(e.Name, e.LogicalType, out, nullMask, anyNull)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, e.LogicalType)
	}
}

func finishColumn(name string, lt format.LogicalType, values any, nullMask []bool, anyNull bool) (*table.MaterializedColumn, error) {
	var mask []bool
	if anyNull {
		mask = nullMask
	}
	return table.NewColumn(name, lt, values, mask)
}
