package session

import "errors"

// ErrCapacityExhausted indicates every player slot is in use.
var ErrCapacityExhausted = errors.New("player capacity exhausted")

// ErrNameTaken indicates the requested name is reserved by another player.
var ErrNameTaken = errors.New("player name taken")

// ErrStaleSession indicates a message from an older session than the registered one.
var ErrStaleSession = errors.New("stale session")

// ErrInvalidCapacity indicates a capacity that does not fit the wire format.
var ErrInvalidCapacity = errors.New("invalid capacity")
