// Package wire provides the byte-level I/O primitives the codec builds on:
// big-endian fixed-width framing integers, raw byte slices, and
// little-endian bulk numeric array reads/writes. The endianness split is
// fixed by the wire format, not configurable — unlike the teacher's
// selectable endian engine, HYBF never needs to read a big-endian host's
// bulk array as anything but little-endian.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/coldbrewdata/hybf/errs"
)

// Reader is a forward-only cursor over a byte slice. Every read method
// returns errs.ErrTruncated the moment fewer bytes remain than requested.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data, starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Seek repositions the cursor to an absolute offset.
func (r *Reader) Seek(offset int) {
	r.pos = offset
}

func (r *Reader) need(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, errs.ErrTruncated
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// U8 reads one byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.need(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// U16 reads a big-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.need(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

// U32 reads a big-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.need(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// U64 reads a big-endian uint64.
func (r *Reader) U64() (uint64, error) {
	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// I64 reads a big-endian int64.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// F64 reads a big-endian IEEE-754 float64.
func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// Bytes reads a raw byte slice of length n. The returned slice aliases the
// reader's backing array; callers that retain it beyond the reader's
// lifetime must copy it.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.need(n)
}

// String reads n raw bytes and returns them as a string (copying, since
// Go strings must not alias a mutable backing array the caller may reuse).
func (r *Reader) String(n int) (string, error) {
	b, err := r.need(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Int32Slice reads n little-endian int32 values.
func (r *Reader) Int32Slice(n int) ([]int32, error) {
	b, err := r.need(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}

	return out, nil
}

// Int64Slice reads n little-endian int64 values.
func (r *Reader) Int64Slice(n int) ([]int64, error) {
	b, err := r.need(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(b[i*8:]))
	}

	return out, nil
}

// Float32Slice reads n little-endian float32 values.
func (r *Reader) Float32Slice(n int) ([]float32, error) {
	b, err := r.need(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}

	return out, nil
}

// Float64Slice reads n little-endian float64 values.
func (r *Reader) Float64Slice(n int) ([]float64, error) {
	b, err := r.need(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}

	return out, nil
}

// Uint8Slice reads n bytes as a uint8 slice (endianness-agnostic).
func (r *Reader) Uint8Slice(n int) ([]uint8, error) {
	b, err := r.need(n)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, b)

	return out, nil
}

// Uint16Slice reads n little-endian uint16 values.
func (r *Reader) Uint16Slice(n int) ([]uint16, error) {
	b, err := r.need(n * 2)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}

	return out, nil
}

// Uint32Slice reads n little-endian uint32 values.
func (r *Reader) Uint32Slice(n int) ([]uint32, error) {
	b, err := r.need(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return out, nil
}

// Int8Slice reads n bytes as an int8 slice.
func (r *Reader) Int8Slice(n int) ([]int8, error) {
	b, err := r.need(n)
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(b[i])
	}

	return out, nil
}

// Int16Slice reads n little-endian int16 values.
func (r *Reader) Int16Slice(n int) ([]int16, error) {
	b, err := r.need(n * 2)
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	return out, nil
}
