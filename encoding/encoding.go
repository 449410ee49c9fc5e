package encoding

import (
	"fmt"

	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/internal/pool"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/wire"
)

// EncodeColumn encodes col with the given encoding tag and storage type,
// returning the framed [tag: u8][payload_length: u32][payload] bytes the
// compressed container writes for one column.
func EncodeColumn(tag format.EncodingTag, col table.Column, st format.StorageType) ([]byte, error) {
	payload := wire.NewWriter()
	defer payload.Release()

	var err error
	switch tag {
	case format.EncodingRaw:
		err = EncodeRaw(payload, col, st)
	case format.EncodingRLE:
		err = EncodeRLE(payload, col)
	case format.EncodingDictionary:
		err = EncodeDictionary(payload, col)
	case format.EncodingSingleValue:
		err = EncodeSingleValue(payload, col)
	case format.EncodingNull:
		EncodeNull(payload, col.Len())
	default:
		err = fmt.Errorf("%w: %v", errs.ErrUnknownEncoding, tag)
	}
	if err != nil {
		return nil, err
	}

	frame := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(frame)

	frame.MustWrite([]byte{byte(tag)})
	var lenBuf [4]byte
	length := uint32(payload.Len())
	lenBuf[0] = byte(length >> 24)
	lenBuf[1] = byte(length >> 16)
	lenBuf[2] = byte(length >> 8)
	lenBuf[3] = byte(length)
	frame.MustWrite(lenBuf[:])
	frame.MustWrite(payload.Bytes())

	out := make([]byte, frame.Len())
	copy(out, frame.Bytes())

	return out, nil
}

// DecodeColumn reads one framed column record ([tag][length][payload]) from
// r and produces a MaterializedColumn of rowCount rows.
func DecodeColumn(r *wire.Reader, name string, lt format.LogicalType, rowCount int) (*table.MaterializedColumn, error) {
	tagByte, err := r.U8()
	if err != nil {
		return nil, err
	}
	length, err := r.U32()
	if err != nil {
		return nil, err
	}
	payloadBytes, err := r.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	payload := wire.NewReader(payloadBytes)

	tag := format.EncodingTag(tagByte)
	switch tag {
	case format.EncodingRaw:
		return DecodeRaw(payload, name, lt, rowCount)
	case format.EncodingRLE:
		return DecodeRLE(payload, name, lt, rowCount)
	case format.EncodingDictionary:
		return DecodeDictionary(payload, name, rowCount)
	case format.EncodingSingleValue:
		return DecodeSingleValue(payload, name, lt, rowCount)
	case format.EncodingNull:
		return DecodeNull(payload, name, lt, rowCount)
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownEncoding, tagByte)
	}
}
