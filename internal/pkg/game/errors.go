package game

import "errors"

// ErrInvalidBoard indicates a board the simulation cannot run on.
var ErrInvalidBoard = errors.New("invalid board")
