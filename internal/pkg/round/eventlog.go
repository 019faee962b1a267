package round

import (
	"kurve/internal/pkg/codec"
)

// EventLog is an append-only sequence of encoded frames.
type EventLog struct {
	buf     []byte
	offsets []int
}

// Append frames payload as the next event and returns its event number.
func (l *EventLog) Append(payload []byte) uint32 {
	no := uint32(len(l.offsets))
	l.offsets = append(l.offsets, len(l.buf))
	l.buf = append(l.buf, codec.EncodeFrame(no, payload)...)
	return no
}

// Len returns the number of events in the log.
func (l *EventLog) Len() int {
	return len(l.offsets)
}

// Size returns the number of bytes in the log.
func (l *EventLog) Size() int {
	return len(l.buf)
}

// Offset returns the byte offset at which event n starts. Offset(Len()) is Size().
func (l *EventLog) Offset(n int) int {
	if n >= len(l.offsets) {
		return len(l.buf)
	}
	return l.offsets[n]
}

// Frame returns the encoded frame of event n.
func (l *EventLog) Frame(n int) []byte {
	return l.buf[l.Offset(n):l.Offset(n+1)]
}

// Slice returns the encoded frames of events [from, to).
func (l *EventLog) Slice(from, to int) []byte {
	return l.buf[l.Offset(from):l.Offset(to)]
}

// Bytes returns the whole log. Callers must not modify it.
func (l *EventLog) Bytes() []byte {
	return l.buf
}
