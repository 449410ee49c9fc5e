// Package format defines the type and encoding enumerations shared across
// the codec: the logical type a caller sees, the narrower storage type
// actually written to the stream, and the per-column encoding tag used by
// the compressed container.
package format

type (
	LogicalType uint8
	StorageType uint8
	EncodingTag uint8
)

const (
	LogicalInt32   LogicalType = 0x1
	LogicalInt64   LogicalType = 0x2
	LogicalFloat32 LogicalType = 0x3
	LogicalFloat64 LogicalType = 0x4
	LogicalString  LogicalType = 0x5
	LogicalBoolean LogicalType = 0x6
)

const (
	StorageUint8   StorageType = 0x1
	StorageUint16  StorageType = 0x2
	StorageUint32  StorageType = 0x3
	StorageInt8    StorageType = 0x4
	StorageInt16   StorageType = 0x5
	StorageInt32   StorageType = 0x6
	StorageInt64   StorageType = 0x7
	StorageFloat32 StorageType = 0x8
	StorageFloat64 StorageType = 0x9
	StorageBool    StorageType = 0xA
	StorageString  StorageType = 0xB
)

const (
	EncodingRaw         EncodingTag = 0x1
	EncodingRLE         EncodingTag = 0x2
	EncodingDictionary  EncodingTag = 0x3
	EncodingSingleValue EncodingTag = 0x4
	EncodingNull        EncodingTag = 0x5
)

func (t LogicalType) String() string {
	switch t {
	case LogicalInt32:
		return "Int32"
	case LogicalInt64:
		return "Int64"
	case LogicalFloat32:
		return "Float32"
	case LogicalFloat64:
		return "Float64"
	case LogicalString:
		return "String"
	case LogicalBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

func (t StorageType) String() string {
	switch t {
	case StorageUint8:
		return "Uint8"
	case StorageUint16:
		return "Uint16"
	case StorageUint32:
		return "Uint32"
	case StorageInt8:
		return "Int8"
	case StorageInt16:
		return "Int16"
	case StorageInt32:
		return "Int32"
	case StorageInt64:
		return "Int64"
	case StorageFloat32:
		return "Float32"
	case StorageFloat64:
		return "Float64"
	case StorageBool:
		return "Bool"
	case StorageString:
		return "String"
	default:
		return "Unknown"
	}
}

func (e EncodingTag) String() string {
	switch e {
	case EncodingRaw:
		return "Raw"
	case EncodingRLE:
		return "RLE"
	case EncodingDictionary:
		return "Dictionary"
	case EncodingSingleValue:
		return "SingleValue"
	case EncodingNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// NumericDtypeCode returns the RAW encoder's optimized-numeric dtype byte
// for a storage type, or 0 if the storage type has no dtype code (STRING).
func NumericDtypeCode(st StorageType) uint8 {
	switch st {
	case StorageUint8:
		return 1
	case StorageUint16:
		return 2
	case StorageUint32:
		return 3
	case StorageInt8:
		return 4
	case StorageInt16:
		return 5
	case StorageInt32:
		return 6
	case StorageInt64:
		return 7
	case StorageFloat32:
		return 8
	case StorageFloat64:
		return 9
	case StorageBool:
		return 10
	default:
		return 0
	}
}

// StorageTypeFromDtypeCode is the inverse of NumericDtypeCode.
func StorageTypeFromDtypeCode(code uint8) (StorageType, bool) {
	switch code {
	case 1:
		return StorageUint8, true
	case 2:
		return StorageUint16, true
	case 3:
		return StorageUint32, true
	case 4:
		return StorageInt8, true
	case 5:
		return StorageInt16, true
	case 6:
		return StorageInt32, true
	case 7:
		return StorageInt64, true
	case 8:
		return StorageFloat32, true
	case 9:
		return StorageFloat64, true
	case 10:
		return StorageBool, true
	default:
		return 0, false
	}
}
