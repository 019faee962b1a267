package cfg

import (
	"math"
	"time"

	"kurve/internal"
	"kurve/internal/app/apps"

	"github.com/pkg/errors"
)

// SessionCfg is configuration for admitting players and seeding rounds.
type SessionCfg struct {
	capacity   int
	inactivity time.Duration
	seed       *uint32
	err        error
}

// NewSessionCfg creates a new SessionCfg. A nil seed seeds from the clock.
func NewSessionCfg(capacity int, inactivity time.Duration, seed *uint32) *SessionCfg {
	return &SessionCfg{capacity: capacity, inactivity: inactivity, seed: seed}
}

// SessionFromEnv creates a new SessionCfg from the current environment.
func SessionFromEnv() *SessionCfg {
	cfg := &SessionCfg{
		capacity:   internal.PlayerCapacity,
		inactivity: time.Duration(internal.InactivityMS) * time.Millisecond,
	}
	switch {
	case internal.Seed > math.MaxUint32:
		cfg.err = errors.Errorf("seed %d out of range", internal.Seed)
	case internal.Seed >= 0:
		seed := uint32(internal.Seed)
		cfg.seed = &seed
	}
	return cfg
}

// ApplyServerApp applies the SessionCfg to a ServerApp.
func (cfg SessionCfg) ApplyServerApp(app *apps.ServerApp) error {
	if cfg.err != nil {
		return cfg.err
	}
	app.Capacity = cfg.capacity
	app.Inactivity = cfg.inactivity
	app.Seed = cfg.seed
	return nil
}
