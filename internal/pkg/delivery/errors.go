package delivery

import "errors"

// ErrFrameTooLarge indicates a logged frame that cannot fit in any datagram.
var ErrFrameTooLarge = errors.New("frame exceeds datagram budget")
