package round

import "math"

// Snake is a trail on the board. Eliminated snakes keep their index in the roster.
type Snake struct {
	Name       string
	X, Y       float64
	Heading    uint32
	Turn       int8
	Eliminated bool
}

func spawn(name string, b Board, src Source) Snake {
	s := Snake{Name: name}
	s.X = float64(src.Next()%b.Width) + 0.5
	s.Y = float64(src.Next()%b.Height) + 0.5
	s.Heading = src.Next() % 360
	return s
}

// Cell returns the cell the snake's head is in.
func (s *Snake) Cell() Cell {
	return Cell{X: int64(math.Floor(s.X)), Y: int64(math.Floor(s.Y))}
}

func (s *Snake) steer(turningSpeed uint32) {
	h := int64(s.Heading) + 360 + int64(s.Turn)*int64(turningSpeed)
	s.Heading = uint32(h % 360)
}

func (s *Snake) advance() {
	rad := float64(s.Heading) * math.Pi / 180
	s.X += math.Cos(rad)
	s.Y += math.Sin(rad)
}
