package round

import (
	"kurve/internal/pkg/codec"

	"github.com/pkg/errors"
)

// Source supplies the pseudo-random values snakes are spawned from.
type Source interface {
	Next() uint32
}

// Round is one play from NEW_GAME to GAME_OVER.
type Round struct {
	id         uint32
	board      Board
	occupied   map[Cell]struct{}
	snakes     []Snake
	eliminated int
	finished   bool
	recent     bool
	log        EventLog
}

// New creates round id for the given roster, in snake index order, and logs its
// opening events.
func New(id uint32, board Board, names []string, src Source) *Round {
	r := &Round{
		id:       id,
		board:    board,
		occupied: make(map[Cell]struct{}),
		snakes:   make([]Snake, 0, len(names)),
	}
	for _, name := range names {
		r.snakes = append(r.snakes, spawn(name, board, src))
	}
	r.emit(codec.NewGame{MaxX: board.Width, MaxY: board.Height, Names: names})
	for i := range r.snakes {
		if r.finished {
			break
		}
		r.enter(i)
	}
	return r
}

// ID returns the round's game id.
func (r *Round) ID() uint32 {
	return r.id
}

// Board returns the board the round is played on.
func (r *Round) Board() Board {
	return r.board
}

// Log returns the round's event log.
func (r *Round) Log() *EventLog {
	return &r.log
}

// Snakes returns the roster. Callers must not modify it.
func (r *Round) Snakes() []Snake {
	return r.snakes
}

// Finished reports whether GAME_OVER has been logged.
func (r *Round) Finished() bool {
	return r.finished
}

// Active reports whether the round still has a live snake and is not finished.
func (r *Round) Active() bool {
	return !r.finished && r.eliminated < len(r.snakes)
}

// TakeRecent reports whether events were logged since the last call.
func (r *Round) TakeRecent() bool {
	recent := r.recent
	r.recent = false
	return recent
}

// SetTurn records the last turn intent submitted for snake index.
func (r *Round) SetTurn(index int, turn int8) {
	if index < 0 || index >= len(r.snakes) {
		return
	}
	r.snakes[index].Turn = turn
}

// Tick advances every live snake by one step.
func (r *Round) Tick() {
	for i := range r.snakes {
		if r.finished {
			return
		}
		s := &r.snakes[i]
		if s.Eliminated {
			continue
		}
		old := s.Cell()
		s.steer(r.board.TurningSpeed)
		s.advance()
		if s.Cell() == old {
			continue
		}
		r.enter(i)
	}
}

// enter moves snake i into its current cell, eliminating it on collision.
func (r *Round) enter(i int) {
	s := &r.snakes[i]
	c := s.Cell()
	if _, taken := r.occupied[c]; taken || !r.board.Contains(c) {
		r.emit(codec.PlayerEliminated{Player: uint8(i)})
		s.Eliminated = true
		r.eliminated++
		if len(r.snakes)-r.eliminated <= 1 {
			r.emit(codec.GameOver{})
			r.finished = true
		}
		return
	}
	r.occupied[c] = struct{}{}
	r.emit(codec.Pixel{Player: uint8(i), X: uint32(c.X), Y: uint32(c.Y)})
}

func (r *Round) emit(e codec.Event) {
	payload, err := e.MarshalBinary()
	if err != nil {
		panic(errors.Wrapf(err, "marshal %s failed", e.Type()))
	}
	r.log.Append(payload)
	r.recent = true
}
