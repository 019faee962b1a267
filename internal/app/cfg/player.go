package cfg

import (
	"time"

	"kurve/internal"
	"kurve/internal/app/apps"

	"github.com/pkg/errors"
)

// PlayerCfg is configuration for the player a client plays as.
type PlayerCfg struct {
	host     string
	name     string
	turn     int
	interval time.Duration
	rounds   int
}

// NewPlayerCfg creates a new PlayerCfg from the given config.
func NewPlayerCfg(host, name string, turn int, interval time.Duration, rounds int) *PlayerCfg {
	return &PlayerCfg{host: host, name: name, turn: turn, interval: interval, rounds: rounds}
}

// PlayerFromEnv creates a new PlayerCfg from the current environment.
func PlayerFromEnv() *PlayerCfg {
	return &PlayerCfg{
		host:     internal.ServerHost,
		name:     internal.PlayerName,
		turn:     internal.TurnDirection,
		interval: time.Duration(internal.ClientIntervalMS) * time.Millisecond,
		rounds:   internal.ClientRounds,
	}
}

// ApplyClientApp applies the PlayerCfg to a ClientApp.
func (cfg PlayerCfg) ApplyClientApp(app *apps.ClientApp) error {
	if cfg.turn < -1 || cfg.turn > 1 {
		return errors.Errorf("turn direction %d out of range", cfg.turn)
	}
	app.Host = cfg.host
	app.PlayerName = cfg.name
	app.TurnDirection = int8(cfg.turn)
	app.Interval = cfg.interval
	app.Rounds = cfg.rounds
	return nil
}
