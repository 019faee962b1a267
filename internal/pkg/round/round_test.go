package round

import (
	"testing"

	"kurve/internal/pkg/codec"

	"github.com/stretchr/testify/require"
)

// sequence replays fixed spawn values: x, y, heading per snake.
type sequence []uint32

func (s *sequence) Next() uint32 {
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

func spawns(values ...uint32) *sequence {
	s := sequence(values)
	return &s
}

func events(t *testing.T, r *Round) []codec.Event {
	t.Helper()
	var out []codec.Event
	buf := r.Log().Bytes()
	for offset, no := 0, 0; offset < len(buf); no++ {
		f, err := codec.DecodeFrame(buf, offset)
		require.NoError(t, err)
		require.Equal(t, uint32(no), f.EventNo)
		require.Equal(t, offset, r.Log().Offset(no))
		e, err := codec.ParseEvent(f.Payload)
		require.NoError(t, err)
		out = append(out, e)
		offset += f.Size
	}
	require.Len(t, out, r.Log().Len())
	return out
}

var board = Board{Width: 800, Height: 600, GameSpeed: 50, TurningSpeed: 6}

func TestNewLogsOpeningEvents(t *testing.T) {
	r := New(7, board, []string{"A", "B"}, spawns(100, 100, 0, 200, 200, 90))

	require.Equal(t, uint32(7), r.ID())
	require.True(t, r.Active())
	require.False(t, r.Finished())
	require.True(t, r.TakeRecent())
	require.False(t, r.TakeRecent())
	require.Equal(t, []codec.Event{
		codec.NewGame{MaxX: 800, MaxY: 600, Names: []string{"A", "B"}},
		codec.Pixel{Player: 0, X: 100, Y: 100},
		codec.Pixel{Player: 1, X: 200, Y: 200},
	}, events(t, r))
	require.Equal(t, uint32(90), r.Snakes()[1].Heading)
}

func TestNewEliminatesOnSharedSpawn(t *testing.T) {
	r := New(1, board, []string{"A", "B"}, spawns(3, 3, 0, 3, 3, 180))

	require.True(t, r.Finished())
	require.False(t, r.Active())
	require.Equal(t, []codec.Event{
		codec.NewGame{MaxX: 800, MaxY: 600, Names: []string{"A", "B"}},
		codec.Pixel{Player: 0, X: 3, Y: 3},
		codec.PlayerEliminated{Player: 1},
		codec.GameOver{},
	}, events(t, r))
}

func TestTickMovesAndLogsPixels(t *testing.T) {
	r := New(1, board, []string{"A", "B"}, spawns(100, 100, 0, 200, 200, 90))
	r.TakeRecent()

	r.Tick()

	require.True(t, r.TakeRecent())
	got := events(t, r)
	require.Equal(t, []codec.Event{
		codec.Pixel{Player: 0, X: 101, Y: 100},
		codec.Pixel{Player: 1, X: 200, Y: 201},
	}, got[3:])
}

func TestTickWithinCellLogsNothing(t *testing.T) {
	b := board
	b.TurningSpeed = 0
	r := New(1, b, []string{"A", "B"}, spawns(10, 10, 60, 50, 50, 0))
	r.TakeRecent()
	r.snakes[0].X, r.snakes[0].Y = 10.2, 10.1
	r.snakes[1].X = 50.0

	r.Tick()

	// A stays in (10, 10); B crosses into (51, 50).
	got := events(t, r)
	require.Len(t, got, 4)
	require.Equal(t, codec.Pixel{Player: 1, X: 51, Y: 50}, got[3])
	require.Equal(t, Cell{X: 10, Y: 10}, r.snakes[0].Cell())
}

func TestTickEliminatesOffBoardAndEndsRound(t *testing.T) {
	b := Board{Width: 10, Height: 10, TurningSpeed: 6}
	r := New(1, b, []string{"A", "B"}, spawns(9, 5, 0, 2, 2, 90))
	before := r.snakes[1]

	r.Tick()

	require.True(t, r.Finished())
	require.False(t, r.Active())
	got := events(t, r)
	require.Equal(t, []codec.Event{
		codec.PlayerEliminated{Player: 0},
		codec.GameOver{},
	}, got[3:])
	// B did not move once the round finished.
	require.Equal(t, before, r.snakes[1])

	size := r.Log().Size()
	r.Tick()
	require.Equal(t, size, r.Log().Size())
}

func TestTickEliminatesOnTakenCell(t *testing.T) {
	r := New(1, board, []string{"A", "B"}, spawns(5, 5, 0, 7, 5, 180))

	r.Tick()

	got := events(t, r)
	require.Equal(t, []codec.Event{
		codec.Pixel{Player: 0, X: 6, Y: 5},
		codec.PlayerEliminated{Player: 1},
		codec.GameOver{},
	}, got[3:])
	require.True(t, r.snakes[1].Eliminated)
	require.False(t, r.snakes[0].Eliminated)
}

func TestEliminationKeepsRoundWithTwoLeft(t *testing.T) {
	b := Board{Width: 10, Height: 10}
	r := New(1, b, []string{"A", "B", "C"}, spawns(9, 1, 0, 1, 5, 90, 5, 5, 90))

	r.Tick()

	require.False(t, r.Finished())
	require.True(t, r.Active())
	got := events(t, r)
	require.Equal(t, []codec.Event{
		codec.PlayerEliminated{Player: 0},
		codec.Pixel{Player: 1, X: 1, Y: 6},
		codec.Pixel{Player: 2, X: 5, Y: 6},
	}, got[4:])

	// the eliminated snake no longer moves
	x := r.snakes[0].X
	r.Tick()
	require.Equal(t, x, r.snakes[0].X)
}

func TestSetTurn(t *testing.T) {
	r := New(1, board, []string{"A", "B"}, spawns(100, 100, 0, 200, 200, 0))
	r.SetTurn(1, -1)
	r.SetTurn(5, 1)
	r.SetTurn(-1, 1)
	require.Equal(t, int8(-1), r.snakes[1].Turn)
	require.Equal(t, int8(0), r.snakes[0].Turn)

	r.Tick()
	require.Equal(t, uint32(354), r.snakes[1].Heading)
	require.Equal(t, uint32(0), r.snakes[0].Heading)
}

func TestSteerWrapsEverySixtyTicks(t *testing.T) {
	s := Snake{Heading: 17, Turn: 1}
	for i := 1; i <= 180; i++ {
		s.steer(6)
		if i%60 == 0 {
			require.Equal(t, uint32(17), s.Heading)
		} else {
			require.NotEqual(t, uint32(17), s.Heading)
		}
		require.Less(t, s.Heading, uint32(360))
	}
}

func TestEventLogIsAppendOnly(t *testing.T) {
	var l EventLog
	require.Equal(t, uint32(0), l.Append([]byte{uint8(codec.EventGameOver)}))
	first := append([]byte{}, l.Bytes()...)
	require.Equal(t, uint32(1), l.Append([]byte{uint8(codec.EventPlayerEliminated), 1}))

	require.Equal(t, 2, l.Len())
	require.Equal(t, first, l.Bytes()[:len(first)])
	require.Equal(t, first, l.Frame(0))
	require.Equal(t, l.Bytes(), l.Slice(0, 2))
	require.Equal(t, l.Size(), l.Offset(2))
	require.Equal(t, l.Size(), l.Offset(10))
}
