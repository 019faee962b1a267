package codec

const (
	// MaxServerDatagramSize bounds every datagram the server sends.
	MaxServerDatagramSize = 512
	// GameIDSize is the size of the header of a server datagram.
	GameIDSize = 4
	// NewGameOverhead is the space reserved for a NEW_GAME datagram besides its roster.
	NewGameOverhead = 28
)

// ParseServerDatagram splits a server datagram into its game id and frames.
// Decoding stops at the first invalid frame, whose error is returned along with
// the frames decoded before it.
func ParseServerDatagram(b []byte) (uint32, []Frame, error) {
	if len(b) < GameIDSize {
		return 0, nil, ErrShortFrame
	}
	gameID := Uint32(b)
	var frames []Frame
	for offset := GameIDSize; offset < len(b); {
		f, err := DecodeFrame(b, offset)
		if err != nil {
			return gameID, frames, err
		}
		frames = append(frames, f)
		offset += f.Size
	}
	return gameID, frames, nil
}
