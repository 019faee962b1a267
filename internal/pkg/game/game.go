package game

import (
	"net/netip"
	"sort"
	"time"

	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/delivery"
	"kurve/internal/pkg/log"
	"kurve/internal/pkg/metrics"
	"kurve/internal/pkg/rng"
	"kurve/internal/pkg/round"
	"kurve/internal/pkg/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// DefaultBoard is the board used when none is configured.
var DefaultBoard = round.Board{Width: 800, Height: 600, GameSpeed: 50, TurningSpeed: 6}

// Observer is told about every batch of frames appended to a round's log.
// Observe must not retain frames after it returns.
type Observer interface {
	Observe(gameID uint32, frames []byte)
}

// Game is the authoritative game state.
type Game struct {
	board    round.Board
	rng      *rng.Generator
	registry *session.Registry
	queue    *delivery.Queue
	round    *round.Round
	observed int
	observer Observer
	counters *metrics.Counters
}

// Cfg configures a Game.
type Cfg func(*Game) error

// WithBoard sets the board every round is played on.
func WithBoard(b round.Board) Cfg {
	return func(g *Game) error {
		if b.Width == 0 || b.Height == 0 || b.TurningSpeed >= 360 {
			return ErrInvalidBoard
		}
		g.board = b
		return nil
	}
}

// WithSeed seeds the generator that names rounds and spawns snakes.
func WithSeed(seed uint32) Cfg {
	return func(g *Game) error {
		g.rng = rng.New(seed)
		return nil
	}
}

// WithRegistry sets the player registry.
func WithRegistry(r *session.Registry) Cfg {
	return func(g *Game) error {
		g.registry = r
		return nil
	}
}

// WithObserver sets the observer of appended frames.
func WithObserver(o Observer) Cfg {
	return func(g *Game) error {
		g.observer = o
		return nil
	}
}

// WithCounters sets the counters the game reports to.
func WithCounters(c *metrics.Counters) Cfg {
	return func(g *Game) error {
		g.counters = c
		return nil
	}
}

// New creates a new Game with the given configuration.
func New(cfgs ...Cfg) (*Game, error) {
	g := &Game{
		board:    DefaultBoard,
		queue:    delivery.NewQueue(),
		counters: &metrics.Counters{},
	}
	for _, cfg := range cfgs {
		if err := cfg(g); err != nil {
			return nil, errors.Wrap(err, "apply Game cfg failed")
		}
	}
	if g.rng == nil {
		g.rng = rng.New(uint32(uint64(time.Now().Unix()) % rng.Modulus))
	}
	if g.registry == nil {
		r, err := session.New()
		if err != nil {
			return nil, errors.Wrap(err, "new registry failed")
		}
		g.registry = r
	}
	return g, nil
}

// Board returns the board rounds are played on.
func (g *Game) Board() round.Board {
	return g.board
}

// Round returns the current or last round, nil before the first one.
func (g *Game) Round() *round.Round {
	return g.round
}

// Registry returns the player registry.
func (g *Game) Registry() *session.Registry {
	return g.registry
}

// Active reports whether a round is in progress and ticks are needed.
func (g *Game) Active() bool {
	return g.round != nil && g.round.Active()
}

// HandleDatagram processes a datagram received from addr at time at.
func (g *Game) HandleDatagram(b []byte, addr netip.AddrPort, at time.Time) {
	g.counters.DatagramsIn.Add(1)
	msg, err := codec.ParseClientMessage(b)
	if err != nil {
		g.counters.DatagramsDropped.Add(1)
		logger.WithError(err).WithField("addr", addr.String()).Debug("dropping malformed datagram")
		return
	}
	for _, p := range g.registry.EvictInactive(at) {
		logger.WithFields(log.PlayerToFields(p)).Info("player timed out")
	}
	p, outcome, err := g.registry.AdmitOrUpdate(msg, addr, at)
	switch {
	case err != nil:
		g.counters.DatagramsDropped.Add(1)
		logger.WithError(err).WithFields(log.ClientMessageToFields(msg)).WithField("addr", addr.String()).Debug("ignoring datagram")
	case outcome == session.Updated:
		if !p.Lurking && g.Active() {
			g.round.SetTurn(p.SnakeIndex, msg.TurnDirection)
		}
		g.queue.Notify(p.Token)
	default:
		logger.WithFields(log.PlayerToFields(p)).Infof("player %s", outcome)
		g.queue.Notify(p.Token)
	}
	g.counters.Players.Store(int64(g.registry.Len()))
	g.maybeStartRound()
}

// Tick advances the active round by one step.
func (g *Game) Tick() {
	if !g.Active() {
		return
	}
	g.counters.Ticks.Add(1)
	g.round.Tick()
	g.publish()
	g.endIfFinished()
}

// endIfFinished opens a new pre-round phase once the round is over, so the finished
// round stays in place for trailing deliveries until every player presses again.
func (g *Game) endIfFinished() {
	if !g.round.Finished() {
		return
	}
	for _, p := range g.registry.Players() {
		p.PressedArrow = false
	}
	logger.WithFields(logrus.Fields{
		"game_id": g.round.ID(),
		"events":  g.round.Log().Len(),
	}).Info("round finished")
}

// WantToWrite reports whether a player is waiting for events.
func (g *Game) WantToWrite() bool {
	return g.round != nil && g.queue.Len() > 0
}

// NextDatagram assembles the next datagram to send. It reports false when there is none.
func (g *Game) NextDatagram() (delivery.Datagram, bool, error) {
	if g.round == nil {
		return delivery.Datagram{}, false, nil
	}
	dg, ok, err := g.queue.Next(g.registry, g.round.ID(), g.round.Log())
	if err != nil {
		return delivery.Datagram{}, false, errors.Wrap(err, "assemble datagram failed")
	}
	return dg, ok, nil
}

// MarkSent records that the last datagram, holding count events, was sent.
func (g *Game) MarkSent(count int) {
	if g.round == nil {
		return
	}
	g.counters.DatagramsOut.Add(1)
	g.queue.MarkSent(count, g.round.Log().Len())
}

func (g *Game) maybeStartRound() {
	if g.Active() {
		return
	}
	eager, ready := 0, 0
	for _, p := range g.registry.Players() {
		if p.Name == "" {
			continue
		}
		eager++
		if p.PressedArrow {
			ready++
		}
	}
	if ready >= 2 && eager == ready {
		g.startRound()
	}
}

func (g *Game) startRound() {
	var ready []*session.Player
	for _, p := range g.registry.Players() {
		p.Lurking = true
		if p.Name != "" && p.PressedArrow {
			ready = append(ready, p)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].Name < ready[j].Name })

	size := codec.NewGameOverhead
	names := make([]string, 0, len(ready))
	for i, p := range ready {
		size += len(p.Name) + 1
		if size > codec.MaxServerDatagramSize {
			logger.WithFields(logrus.Fields{
				"ready":  len(ready),
				"seated": i,
			}).Warn("roster does not fit a datagram, truncating")
			break
		}
		p.Lurking = false
		p.SnakeIndex = i
		names = append(names, p.Name)
	}

	id := g.rng.Next()
	g.round = round.New(id, g.board, names, g.rng)
	for _, p := range ready[:len(names)] {
		g.round.SetTurn(p.SnakeIndex, p.Turn)
	}
	g.queue.Reset()
	g.observed = 0
	g.counters.RoundsStarted.Add(1)
	logger.WithFields(logrus.Fields{
		"game_id": id,
		"players": names,
	}).Info("round started")
	g.publish()
	g.endIfFinished()
}

// publish hands newly logged frames to the observer and queues every player.
func (g *Game) publish() {
	if !g.round.TakeRecent() {
		return
	}
	l := g.round.Log()
	if g.observer != nil {
		g.observer.Observe(g.round.ID(), l.Slice(g.observed, l.Len()))
	}
	g.counters.EventsEmitted.Add(int64(l.Len() - g.observed))
	g.observed = l.Len()
	for _, p := range g.registry.Players() {
		g.queue.Notify(p.Token)
	}
}
