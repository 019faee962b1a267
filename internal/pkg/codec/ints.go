package codec

import "encoding/binary"

// AppendUint8 appends v to b.
func AppendUint8(b []byte, v uint8) []byte {
	return append(b, v)
}

// AppendInt8 appends v to b in two's complement.
func AppendInt8(b []byte, v int8) []byte {
	return append(b, byte(v))
}

// AppendUint32 appends v to b in network byte order.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendInt32 appends v to b in network byte order.
func AppendInt32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

// AppendUint64 appends v to b in network byte order.
func AppendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

// AppendInt64 appends v to b in network byte order.
func AppendInt64(b []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(v))
}

// Uint8 decodes the first byte of b.
func Uint8(b []byte) uint8 {
	return b[0]
}

// Int8 decodes the first byte of b as a signed value.
func Int8(b []byte) int8 {
	return int8(b[0])
}

// Uint32 decodes the first 4 bytes of b.
func Uint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// Int32 decodes the first 4 bytes of b as a signed value.
func Int32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

// Uint64 decodes the first 8 bytes of b.
func Uint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// Int64 decodes the first 8 bytes of b as a signed value.
func Int64(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
