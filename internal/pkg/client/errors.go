package client

import "github.com/pkg/errors"

// ErrNotConnected indicates that the client has no connection to the server.
var ErrNotConnected = errors.New("not connected")

// ErrInvalidPlayerName indicates that the player name cannot be sent to the server.
var ErrInvalidPlayerName = errors.New("invalid player name")

// ErrInvalidTurnDirection indicates a turn direction outside -1..1.
var ErrInvalidTurnDirection = errors.New("invalid turn direction")
