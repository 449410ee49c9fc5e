// Package errs declares the sentinel errors returned by the codec. Callers
// compare against these with errors.Is after an encode/decode call fails;
// wrapping call sites attach detail with fmt.Errorf("%w: ...", errs.ErrX).
package errs

import "errors"

var (
	// ErrInvalidMagic is returned when a stream does not begin with the
	// expected magic bytes.
	ErrInvalidMagic = errors.New("hybf: invalid magic")
	// ErrUnsupportedVersion is returned when the header version byte is not
	// one this package knows how to read.
	ErrUnsupportedVersion = errors.New("hybf: unsupported version")
	// ErrWrongContainer is returned when a reader for one container variant
	// is pointed at a stream encoded with the other variant.
	ErrWrongContainer = errors.New("hybf: wrong container for reader")
	// ErrUnknownEncoding is returned when a column's encoding tag does not
	// match any of the five known encodings.
	ErrUnknownEncoding = errors.New("hybf: unknown column encoding")
	// ErrUnknownValueTag is returned when a tagged value's type byte does
	// not match any of the known value tags.
	ErrUnknownValueTag = errors.New("hybf: unknown tagged value type")
	// ErrTruncated is returned when fewer bytes remain in the input than a
	// read operation requires.
	ErrTruncated = errors.New("hybf: truncated input")
	// ErrLengthMismatch is returned when a declared length field does not
	// match the row count recorded elsewhere in the stream.
	ErrLengthMismatch = errors.New("hybf: declared length mismatch")
	// ErrNameTooLong is returned when a column name exceeds 255 UTF-8 bytes.
	ErrNameTooLong = errors.New("hybf: column name too long")
	// ErrDictionaryTooLarge is returned when a dictionary column's distinct
	// value count exceeds 65535.
	ErrDictionaryTooLarge = errors.New("hybf: dictionary too large")
	// ErrShapeError is returned when a table's columns do not share a
	// common row count.
	ErrShapeError = errors.New("hybf: column length mismatch")
	// ErrUnsupportedType is returned for a logical type the codec does not
	// recognize.
	ErrUnsupportedType = errors.New("hybf: unsupported logical type")
	// ErrStringTooLong is returned when a string value exceeds the 255-byte
	// limit imposed by a tagged-value or dictionary-entry encoding.
	ErrStringTooLong = errors.New("hybf: string value too long for this encoding")
	// ErrDuplicateColumnName is returned when two columns in a table share
	// the same name.
	ErrDuplicateColumnName = errors.New("hybf: duplicate column name")
	// ErrUnsupportedFormat is returned when a stream's header names a
	// format_type byte this package does not know how to read.
	ErrUnsupportedFormat = errors.New("hybf: unsupported format type")
)
