// Package hybf is the format factory: it estimates how large a table would
// be on disk, picks between the minimal and compressed container layouts,
// and dispatches a reader by the header's format_type byte.
//
// The package mirrors the teacher's top-level wrapper style: thin
// convenience functions over the container package, so callers who don't
// need container-level control can just call Encode/Decode.
package hybf

import (
	"fmt"

	"github.com/coldbrewdata/hybf/container"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/section"
	"github.com/coldbrewdata/hybf/selector"
	"github.com/coldbrewdata/hybf/table"
)

// MinimalContainerThreshold is the estimated-size cutoff (inclusive) below
// which EstimateSize's caller should choose the minimal container.
const MinimalContainerThreshold = 4096

// directoryOverheadPerColumn is the §4.6 estimator's fixed 2-byte allowance
// per column beyond name bytes. A minimal-container directory entry actually
// spends 3 bytes beside the name (logical_type, name_length, nullable).
const directoryOverheadPerColumn = 2

// EstimateSize implements the §4.6 estimator: the sum of each column's
// in-memory byte size, plus name lengths, plus the 8-byte header, plus 2
// bytes of directory overhead per column.
func EstimateSize(t table.Table) int {
	total := section.HeaderSize
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		total += len(col.Name())
		total += directoryOverheadPerColumn
		total += columnInMemorySize(col)
	}

	return total
}

func columnInMemorySize(col table.Column) int {
	n := col.Len()
	switch col.LogicalType() {
	case format.LogicalInt32, format.LogicalFloat32:
		return n * 4
	case format.LogicalInt64, format.LogicalFloat64:
		return n * 8
	case format.LogicalBoolean:
		return n
	case format.LogicalString:
		total := 0
		for row := 0; row < n; row++ {
			if v, ok := col.Value(row); ok {
				total += len(v.(string))
			}
		}
		return total
	default:
		return 0
	}
}

// Encode chooses a container layout by EstimateSize and writes t using the
// default Selector configuration.
func Encode(t table.Table) ([]byte, error) {
	if EstimateSize(t) <= MinimalContainerThreshold {
		return container.WriteMinimal(t)
	}

	return container.WriteCompressed(t, selector.New())
}

// EncodeWithSelector behaves like Encode but uses sel to choose per-column
// encodings when the compressed container is selected.
func EncodeWithSelector(t table.Table, sel *selector.Selector) ([]byte, error) {
	if EstimateSize(t) <= MinimalContainerThreshold {
		return container.WriteMinimal(t)
	}

	return container.WriteCompressed(t, sel)
}

// Decode dispatches to the minimal or compressed reader by sniffing the
// format_type byte at offset 5, per §4.6.
func Decode(data []byte) (table.Table, error) {
	if len(data) <= section.FormatTypeOffset {
		return nil, errs.ErrTruncated
	}

	switch data[section.FormatTypeOffset] {
	case section.FormatMinimal:
		return container.ReadMinimal(data)
	case section.FormatCompressed:
		return container.ReadCompressed(data)
	default:
		return nil, fmt.Errorf("%w: format_type %d", errs.ErrUnsupportedFormat, data[section.FormatTypeOffset])
	}
}
