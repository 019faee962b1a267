package session

import (
	"net/netip"
	"time"

	"kurve/internal/pkg/codec"

	"github.com/pkg/errors"
)

const (
	// MaxPlayers is the default number of player slots.
	MaxPlayers = 42
	// DefaultInactivityTolerance is how long a silent player stays registered.
	DefaultInactivityTolerance = 2 * time.Second
)

// Player is a client known by its address.
type Player struct {
	// Token identifies the player for as long as it is registered and is never reused.
	Token     uint64
	Addr      netip.AddrPort
	SessionID uint64
	// Name is empty for lurkers.
	Name         string
	LastContact  time.Time
	ExpectedNo   uint32
	Turn         int8
	PressedArrow bool
	// Lurking is false while the player owns snake SnakeIndex in the current round.
	Lurking    bool
	SnakeIndex int
}

// Outcome tells how AdmitOrUpdate changed the registry.
type Outcome int

// AdmitOrUpdate outcomes.
const (
	Ignored Outcome = iota
	Created
	Replaced
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Replaced:
		return "replaced"
	case Updated:
		return "updated"
	default:
		return "ignored"
	}
}

// Registry holds the connected players. It is not safe for concurrent use.
type Registry struct {
	capacity  int
	tolerance time.Duration
	players   []*Player
	names     map[string]uint64
	lastToken uint64
}

// Cfg configures a Registry.
type Cfg func(*Registry) error

// WithCapacity sets the number of player slots.
func WithCapacity(n int) Cfg {
	return func(r *Registry) error {
		// snake indices travel as a single byte
		if n < 1 || n > 256 {
			return ErrInvalidCapacity
		}
		r.capacity = n
		return nil
	}
}

// WithInactivityTolerance sets how long a player may stay silent before eviction.
func WithInactivityTolerance(d time.Duration) Cfg {
	return func(r *Registry) error {
		if d <= 0 {
			return errors.New("inactivity tolerance must be positive")
		}
		r.tolerance = d
		return nil
	}
}

// New creates a new Registry with the given configuration.
func New(cfgs ...Cfg) (*Registry, error) {
	r := &Registry{
		capacity:  MaxPlayers,
		tolerance: DefaultInactivityTolerance,
		names:     make(map[string]uint64),
	}
	for _, cfg := range cfgs {
		if err := cfg(r); err != nil {
			return nil, errors.Wrap(err, "apply Registry cfg failed")
		}
	}
	return r, nil
}

// AdmitOrUpdate applies a message received from addr at time at.
//
// An unknown address creates a player. A known address with a newer session id replaces
// its player with a fresh one, an equal session id updates it, and an older one is
// rejected with ErrStaleSession. A newer session asking for a name held by another
// player is rejected with ErrNameTaken and the old player stays registered.
// Rejections leave the registry unchanged.
func (r *Registry) AdmitOrUpdate(msg codec.ClientMessage, addr netip.AddrPort, at time.Time) (*Player, Outcome, error) {
	i := r.index(addr)
	if i < 0 {
		p, err := r.admit(msg, addr, at)
		if err != nil {
			return nil, Ignored, err
		}
		return p, Created, nil
	}
	p := r.players[i]
	switch {
	case msg.SessionID < p.SessionID:
		return nil, Ignored, ErrStaleSession
	case msg.SessionID > p.SessionID:
		if owner, taken := r.names[msg.PlayerName]; taken && owner != p.Token {
			return nil, Ignored, ErrNameTaken
		}
		r.remove(i)
		np, err := r.admit(msg, addr, at)
		if err != nil {
			return nil, Ignored, err
		}
		return np, Replaced, nil
	}
	p.LastContact = at
	p.ExpectedNo = msg.NextExpectedEventNo
	p.Turn = msg.TurnDirection
	p.PressedArrow = p.PressedArrow || msg.TurnDirection != 0
	return p, Updated, nil
}

// EvictInactive removes every player silent for at least the inactivity tolerance before now.
func (r *Registry) EvictInactive(now time.Time) []*Player {
	var evicted []*Player
	for i := 0; i < len(r.players); {
		p := r.players[i]
		if now.Sub(p.LastContact) < r.tolerance {
			i++
			continue
		}
		evicted = append(evicted, p)
		r.remove(i)
	}
	return evicted
}

// Get returns the player with the given token.
func (r *Registry) Get(token uint64) (*Player, bool) {
	for _, p := range r.players {
		if p.Token == token {
			return p, true
		}
	}
	return nil, false
}

// Players returns the registered players in connection order. Callers must not modify the slice.
func (r *Registry) Players() []*Player {
	return r.players
}

// Len returns the number of registered players.
func (r *Registry) Len() int {
	return len(r.players)
}

// Capacity returns the number of player slots.
func (r *Registry) Capacity() int {
	return r.capacity
}

func (r *Registry) index(addr netip.AddrPort) int {
	for i, p := range r.players {
		if p.Addr == addr {
			return i
		}
	}
	return -1
}

func (r *Registry) admit(msg codec.ClientMessage, addr netip.AddrPort, at time.Time) (*Player, error) {
	if len(r.players) >= r.capacity {
		return nil, ErrCapacityExhausted
	}
	if msg.PlayerName != "" {
		if _, taken := r.names[msg.PlayerName]; taken {
			return nil, ErrNameTaken
		}
	}
	r.lastToken++
	p := &Player{
		Token:        r.lastToken,
		Addr:         addr,
		SessionID:    msg.SessionID,
		Name:         msg.PlayerName,
		LastContact:  at,
		ExpectedNo:   msg.NextExpectedEventNo,
		Turn:         msg.TurnDirection,
		PressedArrow: msg.TurnDirection != 0,
		Lurking:      true,
	}
	if p.Name != "" {
		r.names[p.Name] = p.Token
	}
	r.players = append(r.players, p)
	return p, nil
}

func (r *Registry) remove(i int) {
	p := r.players[i]
	if p.Name != "" && r.names[p.Name] == p.Token {
		delete(r.names, p.Name)
	}
	r.players = append(r.players[:i], r.players[i+1:]...)
}
