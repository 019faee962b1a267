package codec

import "github.com/pkg/errors"

// ErrShortFrame indicates fewer than 4 bytes remain for a frame's length field.
var ErrShortFrame = errors.New("short frame")

// ErrFrameOverrun indicates a frame's declared length reaches past the buffer end.
var ErrFrameOverrun = errors.New("frame overruns buffer")

// ErrMessageSize indicates a client datagram outside the accepted size range.
var ErrMessageSize = errors.New("invalid message size")

// ErrTurnDirection indicates a turn direction other than -1, 0 or 1.
var ErrTurnDirection = errors.New("invalid turn direction")

// ErrPlayerName indicates a player name with a byte outside the printable range.
var ErrPlayerName = errors.New("invalid player name")

// ErrUnknownEvent indicates an event type this codec does not know.
var ErrUnknownEvent = errors.New("unknown event type")

// ErrEventSize indicates an event payload whose size does not match its type.
var ErrEventSize = errors.New("invalid event size")
