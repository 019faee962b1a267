package apps

import (
	"context"
	"net"
	"strconv"
	"time"

	"kurve/internal"
	"kurve/internal/pkg/client"
	"kurve/internal/pkg/validate"

	"github.com/pkg/errors"
)

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp is the headless kurve client application.
type ClientApp struct {
	Host          string        `validate:"required,hostname|ip"`
	Port          uint16        `validate:"required"`
	PlayerName    string        `validate:"max=64,printascii"`
	TurnDirection int8          `validate:"min=-1,max=1"`
	Interval      time.Duration `validate:"gt=0"`
	Rounds        int           `validate:"min=0"`
}

// NewClientApp creates a new ClientApp. Settings no cfg provides come from the environment.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if app.Host == "" {
		app.Host = internal.ServerHost
	}
	if app.Port == 0 {
		app.Port = uint16(internal.Port)
	}
	if app.Interval == 0 {
		app.Interval = time.Duration(internal.ClientIntervalMS) * time.Millisecond
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// Run plays until ctx is done or the configured number of rounds ended.
// A positional argument overrides the player name.
func (app *ClientApp) Run(ctx context.Context, args []string) error {
	name := app.PlayerName
	if len(args) > 1 {
		name = args[1]
	}
	c, err := client.NewClient(
		client.WithServerAddr(net.JoinHostPort(app.Host, strconv.Itoa(int(app.Port)))),
		client.WithPlayerName(name),
		client.WithTurnDirection(app.TurnDirection),
		client.WithInterval(app.Interval),
		client.WithRounds(app.Rounds),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	if err := c.Connect(ctx); err != nil {
		return errors.Wrap(err, "connect client failed")
	}
	return errors.Wrap(c.Run(ctx), "run client failed")
}
