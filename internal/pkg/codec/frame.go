package codec

import (
	"kurve/internal/pkg/checksum"
)

const (
	// LengthSize is the size of a frame's length field.
	LengthSize = 4
	// EventNoSize is the size of a frame's event_no field.
	EventNoSize = 4
	// FrameOverhead is the number of bytes a frame adds around its payload.
	FrameOverhead = LengthSize + EventNoSize + checksum.Size
)

// Frame is one decoded event frame. Payload aliases the decoded buffer.
type Frame struct {
	EventNo uint32
	Payload []byte
	// Size is the number of bytes the frame occupies, trailer included.
	Size int
}

// EncodeFrame serializes payload as event number eventNo.
func EncodeFrame(eventNo uint32, payload []byte) []byte {
	b := make([]byte, 0, FrameOverhead+len(payload))
	b = AppendUint32(b, uint32(EventNoSize+len(payload)))
	b = AppendUint32(b, eventNo)
	b = append(b, payload...)
	return AppendUint32(b, checksum.Sum(b))
}

// DecodeFrame decodes the frame starting at offset in buf.
func DecodeFrame(buf []byte, offset int) (Frame, error) {
	if offset < 0 || len(buf)-offset < LengthSize {
		return Frame{}, ErrShortFrame
	}
	length := int64(Uint32(buf[offset:]))
	if length < EventNoSize || int64(len(buf)-offset) < LengthSize+length+checksum.Size {
		return Frame{}, ErrFrameOverrun
	}
	end := offset + LengthSize + int(length)
	if err := checksum.Verify(buf[offset:end], Uint32(buf[end:])); err != nil {
		return Frame{}, err
	}
	return Frame{
		EventNo: Uint32(buf[offset+LengthSize:]),
		Payload: buf[offset+LengthSize+EventNoSize : end],
		Size:    end + checksum.Size - offset,
	}, nil
}
