// Package selector implements the compression-strategy decision: given a
// column and its inferred storage type, pick the cheapest encoding tag the
// compressed container's column codecs support.
package selector

import (
	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/internal/options"
	"github.com/coldbrewdata/hybf/table"
)

const (
	defaultUniquenessThreshold = 0.10
	defaultRedundancyThreshold = 0.50
)

// Option configures a Selector.
type Option = options.Option[*Selector]

// Selector picks an encoding tag per column using configurable thresholds.
type Selector struct {
	uniquenessThreshold float64
	redundancyThreshold float64
}

// New creates a Selector with the default thresholds (0.10 uniqueness,
// 0.50 redundancy), applying any overrides in opts.
func New(opts ...Option) *Selector {
	s := &Selector{
		uniquenessThreshold: defaultUniquenessThreshold,
		redundancyThreshold: defaultRedundancyThreshold,
	}
	_ = options.Apply(s, opts...)

	return s
}

// WithUniquenessThreshold overrides the string-dictionary selection
// threshold: a string column is dictionary-encoded when
// distinct_non_null/R <= threshold.
func WithUniquenessThreshold(f float64) Option {
	return options.NoError(func(s *Selector) { s.uniquenessThreshold = f })
}

// WithRedundancyThreshold overrides the numeric-RLE selection threshold: a
// numeric or boolean column is RLE-encoded when runs/R <= threshold.
func WithRedundancyThreshold(f float64) Option {
	return options.NoError(func(s *Selector) { s.redundancyThreshold = f })
}

// Select implements the decision order of spec §4.3: NULL → SINGLE_VALUE →
// DICTIONARY (strings only) → RLE (numeric/bool only) → RAW.
func (s *Selector) Select(col table.Column, st format.StorageType) format.EncodingTag {
	n := col.Len()
	if n == 0 {
		return format.EncodingNull
	}

	allNull := true
	distinct := map[any]struct{}{}
	hasNull := false

	for row := 0; row < n; row++ {
		v, ok := col.Value(row)
		if !ok {
			hasNull = true
			continue
		}
		allNull = false
		distinct[canonicalKey(col.LogicalType(), v)] = struct{}{}
	}

	if allNull {
		return format.EncodingNull
	}
	if len(distinct) == 1 && !hasNull {
		return format.EncodingSingleValue
	}

	isString := col.LogicalType() == format.LogicalString
	if isString {
		uniqueness := float64(len(distinct)) / float64(n)
		if uniqueness <= s.uniquenessThreshold {
			return format.EncodingDictionary
		}
		// RLE is never chosen for string columns, even if they compress well.
		return format.EncodingRaw
	}

	runs := encoding.CountRuns(col)
	redundancy := float64(runs) / float64(n)
	if redundancy <= s.redundancyThreshold {
		return format.EncodingRLE
	}

	return format.EncodingRaw
}

func canonicalKey(lt format.LogicalType, v any) any {
	switch lt {
	case format.LogicalInt32:
		return int64(v.(int32))
	case format.LogicalFloat32:
		return float64(v.(float32))
	case format.LogicalBoolean:
		return v.(bool)
	default:
		return v
	}
}
