package codec

const (
	// ClientHeaderSize is the fixed part of a client datagram.
	ClientHeaderSize = 13
	// MaxPlayerNameLength bounds the name carried by a client datagram.
	MaxPlayerNameLength = 64
	// MaxClientDatagramSize bounds a whole client datagram.
	MaxClientDatagramSize = ClientHeaderSize + MaxPlayerNameLength
)

// ClientMessage is the datagram every client sends periodically.
type ClientMessage struct {
	SessionID           uint64
	TurnDirection       int8
	NextExpectedEventNo uint32
	// PlayerName is empty for lurkers.
	PlayerName string
}

// ValidName reports whether every byte of name is printable ASCII other than space.
func ValidName(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] < 33 || name[i] > 126 {
			return false
		}
	}
	return true
}

// ParseClientMessage decodes and validates a client datagram.
func ParseClientMessage(b []byte) (ClientMessage, error) {
	if len(b) < ClientHeaderSize || len(b) > MaxClientDatagramSize {
		return ClientMessage{}, ErrMessageSize
	}
	msg := ClientMessage{
		SessionID:           Uint64(b),
		TurnDirection:       Int8(b[8:]),
		NextExpectedEventNo: Uint32(b[9:]),
		PlayerName:          string(b[ClientHeaderSize:]),
	}
	if msg.TurnDirection < -1 || msg.TurnDirection > 1 {
		return ClientMessage{}, ErrTurnDirection
	}
	if !ValidName(msg.PlayerName) {
		return ClientMessage{}, ErrPlayerName
	}
	return msg, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m ClientMessage) MarshalBinary() ([]byte, error) {
	if m.TurnDirection < -1 || m.TurnDirection > 1 {
		return nil, ErrTurnDirection
	}
	if len(m.PlayerName) > MaxPlayerNameLength || !ValidName(m.PlayerName) {
		return nil, ErrPlayerName
	}
	b := make([]byte, 0, ClientHeaderSize+len(m.PlayerName))
	b = AppendUint64(b, m.SessionID)
	b = AppendInt8(b, m.TurnDirection)
	b = AppendUint32(b, m.NextExpectedEventNo)
	return append(b, m.PlayerName...), nil
}
