package codec

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// EventType identifies the kind of event carried by a frame.
type EventType uint8

// Event types.
const (
	EventNewGame EventType = iota
	EventPixel
	EventPlayerEliminated
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventNewGame:
		return "NEW_GAME"
	case EventPixel:
		return "PIXEL"
	case EventPlayerEliminated:
		return "PLAYER_ELIMINATED"
	case EventGameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// NameSeparator follows every name in a NEW_GAME roster.
const NameSeparator = ' '

// Event is a domain event that serializes to a frame payload.
type Event interface {
	encoding.BinaryMarshaler
	Type() EventType
}

// NewGame announces a round: the board dimensions and the roster in snake index order.
type NewGame struct {
	MaxX, MaxY uint32
	Names      []string
}

// Pixel reports that a snake occupied the cell (X, Y).
type Pixel struct {
	Player uint8
	X, Y   uint32
}

// PlayerEliminated reports that a snake was eliminated.
type PlayerEliminated struct {
	Player uint8
}

// GameOver closes a round.
type GameOver struct{}

var (
	_ Event = NewGame{}
	_ Event = Pixel{}
	_ Event = PlayerEliminated{}
	_ Event = GameOver{}
)

func (NewGame) Type() EventType          { return EventNewGame }
func (Pixel) Type() EventType            { return EventPixel }
func (PlayerEliminated) Type() EventType { return EventPlayerEliminated }
func (GameOver) Type() EventType         { return EventGameOver }

// RosterSize is the number of bytes names take inside a NEW_GAME payload.
func RosterSize(names []string) int {
	size := 0
	for _, name := range names {
		size += len(name) + 1
	}
	return size
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e NewGame) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 9+RosterSize(e.Names))
	b = AppendUint8(b, uint8(EventNewGame))
	b = AppendUint32(b, e.MaxX)
	b = AppendUint32(b, e.MaxY)
	for _, name := range e.Names {
		b = append(b, name...)
		b = append(b, NameSeparator)
	}
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e Pixel) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 10)
	b = AppendUint8(b, uint8(EventPixel))
	b = AppendUint8(b, e.Player)
	b = AppendUint32(b, e.X)
	return AppendUint32(b, e.Y), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e PlayerEliminated) MarshalBinary() ([]byte, error) {
	return []byte{uint8(EventPlayerEliminated), e.Player}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (GameOver) MarshalBinary() ([]byte, error) {
	return []byte{uint8(EventGameOver)}, nil
}

// ParseEvent decodes a frame payload.
func ParseEvent(payload []byte) (Event, error) {
	if len(payload) == 0 {
		return nil, ErrEventSize
	}
	data := payload[1:]
	switch t := EventType(payload[0]); t {
	case EventNewGame:
		if len(data) < 8 {
			return nil, errors.Wrap(ErrEventSize, t.String())
		}
		e := NewGame{MaxX: Uint32(data), MaxY: Uint32(data[4:])}
		for _, name := range strings.Split(string(data[8:]), string(NameSeparator)) {
			if name != "" {
				e.Names = append(e.Names, name)
			}
		}
		return e, nil
	case EventPixel:
		if len(data) != 9 {
			return nil, errors.Wrap(ErrEventSize, t.String())
		}
		return Pixel{Player: Uint8(data), X: Uint32(data[1:]), Y: Uint32(data[5:])}, nil
	case EventPlayerEliminated:
		if len(data) != 1 {
			return nil, errors.Wrap(ErrEventSize, t.String())
		}
		return PlayerEliminated{Player: Uint8(data)}, nil
	case EventGameOver:
		if len(data) != 0 {
			return nil, errors.Wrap(ErrEventSize, t.String())
		}
		return GameOver{}, nil
	default:
		return nil, errors.Wrap(ErrUnknownEvent, t.String())
	}
}
