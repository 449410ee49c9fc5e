package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coldbrewdata/hybf/wire"
)

func TestWriter_PutBytesAndString(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.PutBytes([]byte{1, 2, 3})
	w.PutString("abc")
	assert.Equal(t, []byte{1, 2, 3, 'a', 'b', 'c'}, w.Bytes())
	assert.Equal(t, 6, w.Len())
}

func TestWriter_BigEndianFraming(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.PutU16(0x0102)
	w.PutU32(0x01020304)
	assert.Equal(t, []byte{0x01, 0x02, 0x01, 0x02, 0x03, 0x04}, w.Bytes())
}

func TestWriter_LittleEndianBulkSlice(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.PutInt32Slice([]int32{1})
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, w.Bytes())
}
