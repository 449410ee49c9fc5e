package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/bitpack"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/internal/pool"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// EncodeDictionary writes a string column's dictionary payload (unframed).
// Dictionary encoding is reserved for string columns in this version.
func EncodeDictionary(w *wire.Writer, col table.Column) error {
	if col.LogicalType() != format.LogicalString {
		return fmt.Errorf("%w: dictionary encoding is only defined for string columns", errs.ErrUnsupportedType)
	}

	n := col.Len()
	order := make([]string, 0, n)
	index := make(map[string]uint32, n)
	indices := make([]uint32, n)

	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			indices[row] = 0 // placeholder, fixed up once bitsPerIndex is known
			continue
		}
		s := v.(string)
		idx, seen := index[s]
		if !seen {
			idx = uint32(len(order))
			index[s] = idx
			order = append(order, s)
		}
		indices[row] = idx
	}

	if len(order) > 65535 {
		return fmt.Errorf("%w: %d distinct values", errs.ErrDictionaryTooLarge, len(order))
	}

	bits := bitpack.BitsForCardinality(len(order))
	nullSentinel := uint32(1)<<uint(bits) - 1

	for row := 0; row < n; row++ {
		if _, ok := col.Value(row); !ok {
			indices[row] = nullSentinel
		}
	}

	w.PutU16(uint16(len(order)))
	w.PutU8(bits)
	for _, s := range order {
		if len(s) > 255 {
			return fmt.Errorf("%w: dictionary entry of %d bytes", errs.ErrStringTooLong, len(s))
		}
		w.PutU8(uint8(len(s)))
		w.PutString(s)
	}
	w.PutBytes(bitpack.PackIndices(indices, bits))

	return nil
}

// DecodeDictionary reads a dictionary payload of rowCount rows.
func DecodeDictionary(r *wire.Reader, name string, rowCount int) (*table.MaterializedColumn, error) {
	dictSize, err := r.U16()
	if err != nil {
		return nil, err
	}
	bits, err := r.U8()
	if err != nil {
		return nil, err
	}

	entries, cleanup := pool.GetStringSlice(int(dictSize))
	defer cleanup()
	for i := range entries {
		length, err := r.U8()
		if err != nil {
			return nil, err
		}
		s, err := r.String(int(length))
		if err != nil {
			return nil, err
		}
		entries[i] = s
	}

	packedLen := (rowCount*int(bits) + 7) / 8
	packed, err := r.Bytes(packedLen)
	if err != nil {
		return nil, err
	}
	indices := bitpack.UnpackIndices(packed, bits, rowCount)

	nullSentinel := uint32(1)<<uint(bits) - 1
	out := make([]string, rowCount)
	nullMask := make([]bool, rowCount)
	anyNull := false
	for row, idx := range indices {
		if idx == nullSentinel {
			nullMask[row] = true
			anyNull = true
			continue
		}
		if int(idx) >= len(entries) {
			return nil, fmt.Errorf("%w: dictionary index %d out of range", errs.ErrLengthMismatch, idx)
		}
		out[row] = entries[idx]
	}

	return buildColumn(name, format.LogicalString, out, nullMask, anyNull)
}
