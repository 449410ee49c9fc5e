package wire

import (
	"encoding/binary"
	"math"

	"github.com/coldbrewdata/hybf/internal/pool"
)

// Writer accumulates output bytes into a pooled buffer. Framing integers are
// written big-endian; bulk typed-array methods write little-endian.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a freshly pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetColumnBuffer()}
}

// Release returns the writer's backing buffer to the pool. Call only after
// Bytes() has been copied elsewhere; the returned slice is invalidated.
func (w *Writer) Release() {
	pool.PutColumnBuffer(w.buf)
	w.buf = nil
}

// Bytes returns the accumulated output. The slice aliases the writer's
// pooled buffer and is only valid until Release is called.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// PutU8 appends one byte.
func (w *Writer) PutU8(v uint8) { w.buf.MustWrite([]byte{v}) }

// PutU16 appends a big-endian uint16.
func (w *Writer) PutU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutU32 appends a big-endian uint32.
func (w *Writer) PutU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutU64 appends a big-endian uint64.
func (w *Writer) PutU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutI64 appends a big-endian int64.
func (w *Writer) PutI64(v int64) { w.PutU64(uint64(v)) }

// PutF64 appends a big-endian IEEE-754 float64.
func (w *Writer) PutF64(v float64) { w.PutU64(math.Float64bits(v)) }

// PutBytes appends a raw byte slice verbatim.
func (w *Writer) PutBytes(b []byte) { w.buf.MustWrite(b) }

// PutString appends the UTF-8 bytes of s verbatim (no length prefix; callers
// that need one write it separately).
func (w *Writer) PutString(s string) { w.buf.MustWrite([]byte(s)) }

// PutInt32Slice appends n little-endian int32 values, tightly packed.
func (w *Writer) PutInt32Slice(v []int32) {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(x))
	}
	w.buf.MustWrite(b)
}

// PutInt64Slice appends n little-endian int64 values, tightly packed.
func (w *Writer) PutInt64Slice(v []int64) {
	b := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[i*8:], uint64(x))
	}
	w.buf.MustWrite(b)
}

// PutFloat32Slice appends n little-endian float32 values, tightly packed.
func (w *Writer) PutFloat32Slice(v []float32) {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(x))
	}
	w.buf.MustWrite(b)
}

// PutFloat64Slice appends n little-endian float64 values, tightly packed.
func (w *Writer) PutFloat64Slice(v []float64) {
	b := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(x))
	}
	w.buf.MustWrite(b)
}

// PutUint8Slice appends a uint8 slice verbatim.
func (w *Writer) PutUint8Slice(v []uint8) { w.buf.MustWrite(v) }

// PutUint16Slice appends n little-endian uint16 values, tightly packed.
func (w *Writer) PutUint16Slice(v []uint16) {
	b := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[i*2:], x)
	}
	w.buf.MustWrite(b)
}

// PutUint32Slice appends n little-endian uint32 values, tightly packed.
func (w *Writer) PutUint32Slice(v []uint32) {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], x)
	}
	w.buf.MustWrite(b)
}

// PutInt8Slice appends an int8 slice verbatim (one byte per element).
func (w *Writer) PutInt8Slice(v []int8) {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
	w.buf.MustWrite(b)
}

// PutInt16Slice appends n little-endian int16 values, tightly packed.
func (w *Writer) PutInt16Slice(v []int16) {
	b := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(x))
	}
	w.buf.MustWrite(b)
}
