package section

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/wire"
)

// MinimalEntry is one column-directory record in the minimal container:
// {logical_type, name_length, name, nullable}.
type MinimalEntry struct {
	LogicalType format.LogicalType
	Name        string
	Nullable    bool
}

// Bytes serializes the entry.
func (e MinimalEntry) Bytes() ([]byte, error) {
	if len(e.Name) > 255 {
		return nil, fmt.Errorf("%w: %q", errs.ErrNameTooLong, e.Name)
	}
	b := make([]byte, 0, 3+len(e.Name))
	b = append(b, byte(e.LogicalType), byte(len(e.Name)))
	b = append(b, e.Name...)
	if e.Nullable {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}

	return b, nil
}

// ParseMinimalEntry reads one minimal-container column-directory record
// from r.
func ParseMinimalEntry(r *wire.Reader) (MinimalEntry, error) {
	ltByte, err := r.U8()
	if err != nil {
		return MinimalEntry{}, err
	}
	nameLen, err := r.U8()
	if err != nil {
		return MinimalEntry{}, err
	}
	name, err := r.String(int(nameLen))
	if err != nil {
		return MinimalEntry{}, err
	}
	nullableByte, err := r.U8()
	if err != nil {
		return MinimalEntry{}, err
	}

	return MinimalEntry{
		LogicalType: format.LogicalType(ltByte),
		Name:        name,
		Nullable:    nullableByte != 0,
	}, nil
}

// CompressedEntry is one column-directory record in the compressed
// container: {logical_type, name_length, name}. Nullability is implicit in
// the column's encoding, so no flag is stored here.
type CompressedEntry struct {
	LogicalType format.LogicalType
	Name        string
}

// Bytes serializes the entry.
func (e CompressedEntry) Bytes() ([]byte, error) {
	if len(e.Name) > 255 {
		return nil, fmt.Errorf("%w: %q", errs.ErrNameTooLong, e.Name)
	}
	b := make([]byte, 0, 2+len(e.Name))
	b = append(b, byte(e.LogicalType), byte(len(e.Name)))
	b = append(b, e.Name...)

	return b, nil
}

// ParseCompressedEntry reads one compressed-container column-directory
// record from r.
func ParseCompressedEntry(r *wire.Reader) (CompressedEntry, error) {
	ltByte, err := r.U8()
	if err != nil {
		return CompressedEntry{}, err
	}
	nameLen, err := r.U8()
	if err != nil {
		return CompressedEntry{}, err
	}
	name, err := r.String(int(nameLen))
	if err != nil {
		return CompressedEntry{}, err
	}

	return CompressedEntry{LogicalType: format.LogicalType(ltByte), Name: name}, nil
}
