// Package section implements the fixed 8-byte file header and the two
// column-directory record shapes (minimal, compressed) shared by both
// container layouts.
package section

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
)

// Magic identifies a HYBF file. Implementations only need to agree with
// themselves; this is an ASCII-like 4-byte tag.
var Magic = [4]byte{'H', 'Y', 'B', 'F'}

// Version is the only header version this package emits or accepts.
const Version = 1

// FormatType byte values (header offset 5).
const (
	FormatMinimal    = 1
	FormatCompressed = 2
)

// HeaderSize is the fixed byte length of the common file header.
const HeaderSize = 8

// Header is the 8-byte common header shared by both container layouts.
type Header struct {
	Version     uint8
	FormatType  uint8
	NumColumns  uint16
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], Magic[:])
	b[4] = h.Version
	b[5] = h.FormatType
	b[6] = byte(h.NumColumns >> 8)
	b[7] = byte(h.NumColumns)

	return b
}

// ParseHeader parses the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrTruncated
	}
	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return Header{}, errs.ErrInvalidMagic
	}
	if data[4] != Version {
		return Header{}, fmt.Errorf("%w: version %d", errs.ErrUnsupportedVersion, data[4])
	}

	return Header{
		Version:    data[4],
		FormatType: data[5],
		NumColumns: uint16(data[6])<<8 | uint16(data[7]),
	}, nil
}

// FormatTypeOffset is the byte offset of the format_type field, used by the
// format factory's header-sniffing dispatch (§4.6).
const FormatTypeOffset = 5
