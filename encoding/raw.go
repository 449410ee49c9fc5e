package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/internal/pool"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// nullBitmapSize returns ⌈n/8⌉, the byte length of a null bitmap for n rows.
func nullBitmapSize(n int) int {
	return (n + 7) / 8
}

// buildNullBitmap sets bit i (LSB-first within each byte) iff row i is null.
func buildNullBitmap(col table.Column) []byte {
	n := col.Len()
	bitmap := make([]byte, nullBitmapSize(n))
	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); !ok {
			bitmap[row/8] |= 1 << uint(row%8)
		}
	}

	return bitmap
}

func bitmapIsNull(bitmap []byte, row int) bool {
	return bitmap[row/8]&(1<<uint(row%8)) != 0
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

// EncodeRaw writes a column's RAW payload (unframed — the caller is
// responsible for the [tag][length] frame in the compressed container).
func EncodeRaw(w *wire.Writer, col table.Column, st format.StorageType) error {
	if st == format.StorageString {
		return encodeRawString(w, col)
	}

	return encodeRawNumeric(w, col, st)
}

func encodeRawNumeric(w *wire.Writer, col table.Column, st format.StorageType) error {
	n := col.Len()
	dtypeCode := format.NumericDtypeCode(st)
	if dtypeCode == 0 {
		return fmt.Errorf("%w: storage type %v has no RAW dtype code", errs.ErrUnsupportedType, st)
	}

	w.PutU8(dtypeCode)
	w.PutBytes(buildNullBitmap(col))

	nonNullCount := 0
	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); ok {
			nonNullCount++
		}
	}

	if st == format.StorageFloat32 || st == format.StorageFloat64 {
		return encodeRawFloatValues(w, col, st, nonNullCount)
	}

	return encodeRawIntValues(w, col, st, nonNullCount)
}

func encodeRawFloatValues(w *wire.Writer, col table.Column, st format.StorageType, nonNullCount int) error {
	n := col.Len()
	if st == format.StorageFloat32 {
		vals := make([]float32, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, float32(asFloat64(v)))
			}
		}
		w.PutFloat32Slice(vals)
		return nil
	}

	vals := make([]float64, 0, nonNullCount)
	for row := 0; row < n; row++ {
		if v, ok := col.Value(row); ok {
			vals = append(vals, asFloat64(v))
		}
	}
	w.PutFloat64Slice(vals)

	return nil
}

func encodeRawIntValues(w *wire.Writer, col table.Column, st format.StorageType, nonNullCount int) error {
	n := col.Len()
	switch st {
	case format.StorageBool:
		vals := make([]uint8, 0, nonNullCount)
		for row := 0; row < n; row++ {
			v, ok := col.Value(row)
			if !ok {
				continue
			}
			if v.(bool) {
				vals = append(vals, 1)
			} else {
				vals = append(vals, 0)
			}
		}
		w.PutUint8Slice(vals)
	case format.StorageUint8:
		vals := make([]uint8, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, uint8(asInt64(v)))
			}
		}
		w.PutUint8Slice(vals)
	case format.StorageUint16:
		vals := make([]uint16, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, uint16(asInt64(v)))
			}
		}
		w.PutUint16Slice(vals)
	case format.StorageUint32:
		vals := make([]uint32, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, uint32(asInt64(v)))
			}
		}
		w.PutUint32Slice(vals)
	case format.StorageInt8:
		vals := make([]int8, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, int8(asInt64(v)))
			}
		}
		w.PutInt8Slice(vals)
	case format.StorageInt16:
		vals := make([]int16, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, int16(asInt64(v)))
			}
		}
		w.PutInt16Slice(vals)
	case format.StorageInt32:
		vals := make([]int32, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, int32(asInt64(v)))
			}
		}
		w.PutInt32Slice(vals)
	case format.StorageInt64:
		vals := make([]int64, 0, nonNullCount)
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				vals = append(vals, asInt64(v))
			}
		}
		w.PutInt64Slice(vals)
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedType, st)
	}

	return nil
}

func encodeRawString(w *wire.Writer, col table.Column) error {
	n := col.Len()
	w.PutBytes(buildNullBitmap(col))

	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			continue
		}
		s := v.(string)
		w.PutU16(uint16(len(s)))
		w.PutString(s)
	}

	return nil
}

// DecodeRaw reads a RAW payload of rowCount rows and produces a
// MaterializedColumn of the given name/logical type.
func DecodeRaw(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	if lt == format.LogicalString {
		return decodeRawString(r, name, rowCount)
	}

	return decodeRawNumeric(r, name, lt, rowCount)
}

func decodeRawNumeric(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	dtypeCode, err := r.U8()
	if err != nil {
		return nil, err
	}
	st, ok := format.StorageTypeFromDtypeCode(dtypeCode)
	if !ok {
		return nil, fmt.Errorf("%w: dtype code %d", errs.ErrUnsupportedType, dtypeCode)
	}

	bitmap, err := r.Bytes(nullBitmapSize(rowCount))
	if err != nil {
		return nil, err
	}

	nullMask := make([]bool, rowCount)
	anyNull := false
	nonNullCount := 0
	for row := 0; row < rowCount; row++ {
		if bitmapIsNull(bitmap, row) {
			nullMask[row] = true
			anyNull = true
		} else {
			nonNullCount++
		}
	}

	if lt == format.LogicalBoolean {
		raw, err := r.Uint8Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		out := make([]bool, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = raw[idx] != 0
				idx++
			}
		}
		return buildColumn(name, lt, out, nullMask, anyNull)
	}

	if st == format.StorageFloat32 || st == format.StorageFloat64 {
		return decodeRawFloat(r, name, lt, rowCount, st, nullMask, anyNull, nonNullCount)
	}

	widened, cleanup, err := readIntWidened(r, st, nonNullCount)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	switch lt {
	case format.LogicalInt32:
		out := make([]int32, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = int32(widened[idx])
				idx++
			}
		}
		return buildColumn(name, lt, out, nullMask, anyNull)
	case format.LogicalInt64:
		out := make([]int64, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = widened[idx]
				idx++
			}
		}
		return buildColumn(name, lt, out, nullMask, anyNull)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, lt)
	}
}

func decodeRawFloat(r *wire.Reader, name string, lt format.LogicalType, rowCount int, st format.StorageType, nullMask []bool, anyNull bool, nonNullCount int) (*table.MaterializedColumn, error) {
	var widened []float64
	if st == format.StorageFloat32 {
		v, err := r.Float32Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		scratch, cleanup := pool.GetFloat64Slice(len(v))
		defer cleanup()
		for i, x := range v {
			scratch[i] = float64(x)
		}
		widened = scratch
	} else {
		v, err := r.Float64Slice(nonNullCount)
		if err != nil {
			return nil, err
		}
		widened = v
	}

	switch lt {
	case format.LogicalFloat32:
		out := make([]float32, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = float32(widened[idx])
				idx++
			}
		}
		return buildColumn(name, lt, out, nullMask, anyNull)
	case format.LogicalFloat64:
		out := make([]float64, rowCount)
		idx := 0
		for row := 0; row < rowCount; row++ {
			if !nullMask[row] {
				out[row] = widened[idx]
				idx++
			}
		}
		return buildColumn(name, lt, out, nullMask, anyNull)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, lt)
	}
}

// readIntWidened reads nonNullCount values of integer storage type st and
// widens them to int64 in a pooled scratch slice; the caller must invoke the
// returned cleanup once it has finished consuming the slice.
func readIntWidened(r *wire.Reader, st format.StorageType, n int) ([]int64, func(), error) {
	if st == format.StorageInt64 {
		v, err := r.Int64Slice(n)
		return v, func() {}, err
	}

	dest, cleanup := pool.GetInt64Slice(n)

	switch st {
	case format.StorageUint8:
		v, err := r.Uint8Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	case format.StorageUint16:
		v, err := r.Uint16Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	case format.StorageUint32:
		v, err := r.Uint32Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	case format.StorageInt8:
		v, err := r.Int8Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	case format.StorageInt16:
		v, err := r.Int16Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	case format.StorageInt32:
		v, err := r.Int32Slice(n)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		for i, x := range v {
			dest[i] = int64(x)
		}
	default:
		cleanup()
		return nil, func() {}, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, st)
	}

	return dest, cleanup, nil
}

func buildColumn(name string, lt format.LogicalType, values any, nullMask []bool, anyNull bool) (*table.MaterializedColumn, error) {
	var mask []bool
	if anyNull {
		mask = nullMask
	}
	return table.NewColumn(name, lt, values, mask)
}

func decodeRawString(r *wire.Reader, name string, rowCount int) (*table.MaterializedColumn, error) {
	bitmap, err := r.Bytes(nullBitmapSize(rowCount))
	if err != nil {
		return nil, err
	}

	out := make([]string, rowCount)
	nullMask := make([]bool, rowCount)
	anyNull := false
	for row := 0; row < rowCount; row++ {
		if bitmapIsNull(bitmap, row) {
			nullMask[row] = true
			anyNull = true
			continue
		}
		n, err := r.U16()
		if err != nil {
			return nil, err
		}
		s, err := r.String(int(n))
		if err != nil {
			return nil, err
		}
		out[row] = s
	}

	return buildColumn(name, format.LogicalString, out, nullMask, anyNull)
}
