package apps

import (
	"context"
	"time"

	"kurve/internal"
	"kurve/internal/pkg/game"
	"kurve/internal/pkg/health"
	"kurve/internal/pkg/metrics"
	"kurve/internal/pkg/round"
	"kurve/internal/pkg/server"
	"kurve/internal/pkg/session"
	"kurve/internal/pkg/spectate"
	"kurve/internal/pkg/validate"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp is the kurve game server application.
type ServerApp struct {
	Port         uint16 `validate:"required"`
	HealthPort   uint16
	Width        uint32 `validate:"min=1,max=65535"`
	Height       uint32 `validate:"min=1,max=65535"`
	GameSpeed    uint32 `validate:"min=1,max=1000"`
	TurningSpeed uint32 `validate:"max=359"`
	// Seed is nil when the generator should be seeded from the clock.
	Seed       *uint32
	Capacity   int           `validate:"min=1,max=256"`
	Inactivity time.Duration `validate:"gt=0"`
}

// NewServerApp creates a new ServerApp. Settings no cfg provides come from the environment.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if app.Port == 0 {
		app.Port = uint16(internal.Port)
	}
	if app.Width == 0 && app.Height == 0 {
		app.Width, app.Height = uint32(internal.Width), uint32(internal.Height)
	}
	if app.GameSpeed == 0 {
		app.GameSpeed = uint32(internal.GameSpeed)
	}
	if app.Capacity == 0 {
		app.Capacity = internal.PlayerCapacity
	}
	if app.Inactivity == 0 {
		app.Inactivity = time.Duration(internal.InactivityMS) * time.Millisecond
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Board returns the board the app plays on.
func (app *ServerApp) Board() round.Board {
	return round.Board{
		Width:        app.Width,
		Height:       app.Height,
		GameSpeed:    app.GameSpeed,
		TurningSpeed: app.TurningSpeed,
	}
}

// Run serves the game, and the health server when a health port is set, until ctx is done.
func (app *ServerApp) Run(ctx context.Context, _ []string) error {
	counters := &metrics.Counters{}
	hub := spectate.NewHub(spectate.DefaultBacklog)
	registry, err := session.New(
		session.WithCapacity(app.Capacity),
		session.WithInactivityTolerance(app.Inactivity),
	)
	if err != nil {
		return errors.Wrap(err, "new registry failed")
	}
	gameCfgs := []game.Cfg{
		game.WithBoard(app.Board()),
		game.WithRegistry(registry),
		game.WithObserver(hub),
		game.WithCounters(counters),
	}
	if app.Seed != nil {
		gameCfgs = append(gameCfgs, game.WithSeed(*app.Seed))
	}
	g, err := game.New(gameCfgs...)
	if err != nil {
		return errors.Wrap(err, "new game failed")
	}
	srv, err := server.NewServer(
		server.WithPort(app.Port),
		server.WithGame(g),
		server.WithCounters(counters),
	)
	if err != nil {
		return errors.Wrap(err, "new server failed")
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return errors.Wrap(srv.Run(ctx), "run server failed")
	})
	if app.HealthPort != 0 {
		hs := health.NewServer(app.HealthPort, counters, hub)
		eg.Go(func() error {
			return errors.Wrap(hs.Run(ctx), "run health server failed")
		})
	}
	return eg.Wait()
}
