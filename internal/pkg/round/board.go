package round

// Board is the template every round is played on.
type Board struct {
	Width, Height uint32
	// GameSpeed is the number of ticks per second.
	GameSpeed uint32
	// TurningSpeed is the number of degrees a snake turns per tick.
	TurningSpeed uint32
}

// Cell is an integer board coordinate.
type Cell struct {
	X, Y int64
}

// Contains reports whether c lies on the board.
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < int64(b.Width) && c.Y < int64(b.Height)
}
