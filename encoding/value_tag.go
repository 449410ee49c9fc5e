// Package encoding implements the five column encodings the compressed
// container can choose from (raw, RLE, dictionary, single-value, null) plus
// the tagged-value format RLE run values and single-value payloads share.
package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/wire"
)

// Value tags for the shared tagged-value format used by RLE runs and
// single-value payloads.
const (
	valueTagNull   = 0
	valueTagInt    = 1
	valueTagFloat  = 2
	valueTagString = 3
)

// MaxTaggedStringLength is the longest string a tagged value (RLE run,
// single-value payload, or dictionary entry) may carry — the u8 length
// prefix caps it at 255 bytes.
const MaxTaggedStringLength = 255

// WriteTaggedValue writes a {value_tag, value} pair. v is nil when ok is
// false; otherwise v is one of int64, float64, or string (callers convert
// their native Go numeric types beforehand).
func WriteTaggedValue(w *wire.Writer, v any, ok bool) error {
	if !ok {
		w.PutU8(valueTagNull)
		return nil
	}

	switch x := v.(type) {
	case int64:
		w.PutU8(valueTagInt)
		w.PutI64(x)
	case float64:
		w.PutU8(valueTagFloat)
		w.PutF64(x)
	case string:
		if len(x) > MaxTaggedStringLength {
			return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(x))
		}
		w.PutU8(valueTagString)
		w.PutU8(uint8(len(x)))
		w.PutString(x)
	default:
		return fmt.Errorf("%w: tagged value of type %T", errs.ErrUnsupportedType, v)
	}

	return nil
}

// ReadTaggedValue reads a {value_tag, value} pair, returning (value, ok).
// ok is false for a null tag; value is nil in that case.
func ReadTaggedValue(r *wire.Reader) (any, bool, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, false, err
	}

	switch tag {
	case valueTagNull:
		return nil, false, nil
	case valueTagInt:
		v, err := r.I64()
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case valueTagFloat:
		v, err := r.F64()
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case valueTagString:
		n, err := r.U8()
		if err != nil {
			return nil, false, err
		}
		s, err := r.String(int(n))
		if err != nil {
			return nil, false, err
		}
		return s, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %d", errs.ErrUnknownValueTag, tag)
	}
}
