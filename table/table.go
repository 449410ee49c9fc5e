// Package table defines the abstract tabular type the codec reads from and
// produces: ordered, named, equal-length columns. A concrete
// MaterializedTable backs both the values encoded in tests and the values a
// decoder hands back to its caller.
package table

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
)

// Table is an ordered collection of columns sharing a common row count.
type Table interface {
	NumColumns() int
	NumRows() int
	ColumnAt(i int) Column
	ColumnByName(name string) (Column, bool)
}

// Column is a single named, typed, ordered sequence of values.
type Column interface {
	Name() string
	LogicalType() format.LogicalType
	Len() int
	// Value returns the row value. ok is false iff the row is null; in that
	// case the returned value is the zero value of the column's native Go
	// type.
	Value(row int) (value any, ok bool)
}

// MaterializedColumn is a concrete, in-memory Column backed by a typed
// slice plus an optional null mask.
type MaterializedColumn struct {
	name     string
	logical  format.LogicalType
	values   any // one of []int32, []int64, []float32, []float64, []string, []bool
	nullMask []bool
}

// NewColumn validates values against logicalType and builds a
// MaterializedColumn. nullMask may be nil (no nulls); if non-nil its length
// must equal len(values).
func NewColumn(name string, logicalType format.LogicalType, values any, nullMask []bool) (*MaterializedColumn, error) {
	n, err := valueCount(logicalType, values)
	if err != nil {
		return nil, err
	}
	if nullMask != nil && len(nullMask) != n {
		return nil, fmt.Errorf("%w: column %q has %d values but %d-entry null mask", errs.ErrShapeError, name, n, len(nullMask))
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("%w: %q", errs.ErrNameTooLong, name)
	}

	return &MaterializedColumn{name: name, logical: logicalType, values: values, nullMask: nullMask}, nil
}

func valueCount(lt format.LogicalType, values any) (int, error) {
	switch lt {
	case format.LogicalInt32:
		v, ok := values.([]int32)
		if !ok {
			return 0, fmt.Errorf("%w: expected []int32 for Int32 column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	case format.LogicalInt64:
		v, ok := values.([]int64)
		if !ok {
			return 0, fmt.Errorf("%w: expected []int64 for Int64 column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	case format.LogicalFloat32:
		v, ok := values.([]float32)
		if !ok {
			return 0, fmt.Errorf("%w: expected []float32 for Float32 column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	case format.LogicalFloat64:
		v, ok := values.([]float64)
		if !ok {
			return 0, fmt.Errorf("%w: expected []float64 for Float64 column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	case format.LogicalString:
		v, ok := values.([]string)
		if !ok {
			return 0, fmt.Errorf("%w: expected []string for String column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	case format.LogicalBoolean:
		v, ok := values.([]bool)
		if !ok {
			return 0, fmt.Errorf("%w: expected []bool for Boolean column", errs.ErrUnsupportedType)
		}
		return len(v), nil
	default:
		return 0, fmt.Errorf("%w: logical type %v", errs.ErrUnsupportedType, lt)
	}
}

func (c *MaterializedColumn) Name() string                    { return c.name }
func (c *MaterializedColumn) LogicalType() format.LogicalType { return c.logical }

func (c *MaterializedColumn) Len() int {
	switch v := c.values.(type) {
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	case []string:
		return len(v)
	case []bool:
		return len(v)
	default:
		return 0
	}
}

// IsNull reports whether row is null.
func (c *MaterializedColumn) IsNull(row int) bool {
	return c.nullMask != nil && row < len(c.nullMask) && c.nullMask[row]
}

func (c *MaterializedColumn) Value(row int) (any, bool) {
	if c.IsNull(row) {
		return zeroValue(c.logical), false
	}
	switch v := c.values.(type) {
	case []int32:
		return v[row], true
	case []int64:
		return v[row], true
	case []float32:
		return v[row], true
	case []float64:
		return v[row], true
	case []string:
		return v[row], true
	case []bool:
		return v[row], true
	default:
		return nil, false
	}
}

func zeroValue(lt format.LogicalType) any {
	switch lt {
	case format.LogicalInt32:
		return int32(0)
	case format.LogicalInt64:
		return int64(0)
	case format.LogicalFloat32:
		return float32(0)
	case format.LogicalFloat64:
		return float64(0)
	case format.LogicalString:
		return ""
	case format.LogicalBoolean:
		return false
	default:
		return nil
	}
}

// Int32Values returns the raw backing slice for an Int32 column, or nil.
func (c *MaterializedColumn) Int32Values() ([]int32, bool) { v, ok := c.values.([]int32); return v, ok }

// Int64Values returns the raw backing slice for an Int64 column, or nil.
func (c *MaterializedColumn) Int64Values() ([]int64, bool) { v, ok := c.values.([]int64); return v, ok }

// Float32Values returns the raw backing slice for a Float32 column, or nil.
func (c *MaterializedColumn) Float32Values() ([]float32, bool) {
	v, ok := c.values.([]float32)
	return v, ok
}

// Float64Values returns the raw backing slice for a Float64 column, or nil.
func (c *MaterializedColumn) Float64Values() ([]float64, bool) {
	v, ok := c.values.([]float64)
	return v, ok
}

// StringValues returns the raw backing slice for a String column, or nil.
func (c *MaterializedColumn) StringValues() ([]string, bool) { v, ok := c.values.([]string); return v, ok }

// BoolValues returns the raw backing slice for a Boolean column, or nil.
func (c *MaterializedColumn) BoolValues() ([]bool, bool) { v, ok := c.values.([]bool); return v, ok }

// NullMask returns the column's null mask, or nil if it has no nulls.
func (c *MaterializedColumn) NullMask() []bool { return c.nullMask }

// MaterializedTable is a concrete, in-memory Table.
type MaterializedTable struct {
	columns []*MaterializedColumn
	byName  map[string]int
	numRows int
}

// NewTable validates that every column shares the same row count and that
// names are unique, then builds a MaterializedTable.
func NewTable(columns []*MaterializedColumn) (*MaterializedTable, error) {
	byName := make(map[string]int, len(columns))
	numRows := 0
	if len(columns) > 0 {
		numRows = columns[0].Len()
	}
	for i, c := range columns {
		if c.Len() != numRows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", errs.ErrShapeError, c.Name(), c.Len(), numRows)
		}
		if _, dup := byName[c.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumnName, c.Name())
		}
		byName[c.Name()] = i
	}

	return &MaterializedTable{columns: columns, byName: byName, numRows: numRows}, nil
}

func (t *MaterializedTable) NumColumns() int { return len(t.columns) }
func (t *MaterializedTable) NumRows() int    { return t.numRows }

func (t *MaterializedTable) ColumnAt(i int) Column { return t.columns[i] }

func (t *MaterializedTable) ColumnByName(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}
