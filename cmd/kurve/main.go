// Package main is the kurve application entrypoint.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"kurve/internal"
	"kurve/internal/app/apps"
	"kurve/internal/app/cfg"
	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/log"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI command definitions.
var (
	logger logrus.FieldLogger = logrus.StandardLogger()

	rootCmd = &cobra.Command{
		Use:          "kurve",
		Short:        "A multiplayer snake arena played over UDP.",
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			return nil
		},
	}

	clientCmd = &cobra.Command{
		Use:   "client [player_name]",
		Short: "Starts a headless kurve client.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one player name expected")
			}
			if len(args) == 1 && (len(args[0]) > codec.MaxPlayerNameLength || !codec.ValidName(args[0])) {
				return errors.Errorf("invalid player name %q", args[0])
			}
			return nil
		},
		RunE: runCmd,
	}

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Starts a kurve game server.",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}
)

func newApp(_ context.Context, cmd *cobra.Command, args []string) (apps.App, []string, error) {
	var err error
	var app apps.App
	switch cmd.Name() {
	case "client":
		app, err = apps.NewClientApp(cfg.PortFromEnv(), cfg.PlayerFromEnv())
		if err != nil {
			return nil, nil, errors.Wrap(err, "new client app failed")
		}
		args = append([]string{cmd.Name()}, args...)
		return app, args, nil
	case "server":
		app, err = apps.NewServerApp(
			cfg.PortFromEnv(),
			cfg.HealthPortFromEnv(),
			cfg.BoardFromEnv(),
			cfg.SessionFromEnv(),
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "new server app failed")
		}
		args = append([]string{cmd.Name()}, args...)
		return app, args, nil
	default:
		return nil, nil, fmt.Errorf("unknown command: %s", cmd.Name())
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := chainedCheck(
		ctx,
		envCheck,
	); err != nil {
		return errors.Wrap(err, "chained check failed")
	}
	logs := log.SetOutput(internal.LogFile)
	defer func() {
		if err := logs.Close(); err != nil {
			logger.WithError(err).Warn("close log file failed")
		}
	}()
	app, args, err := newApp(ctx, cmd, args)
	if err != nil {
		return errors.Wrapf(err, "new %s app failed", cmd.Name())
	}
	return errors.Wrap(app.Run(ctx, args), "run app failed")
}

func envCheck(_ context.Context) error {
	err := internal.ValidateEnv()
	if err != nil {
		return errors.Wrap(err, "validate env failed")
	}
	log.SetLogger(internal.LogLevel)
	return nil
}

func chainedCheck(ctx context.Context, checks ...func(context.Context) error) error {
	for _, check := range checks {
		err := check(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	err := internal.RegisterCommandFlags(rootCmd, []*internal.Flag{
		&internal.EnvFlag,
		&internal.LogLevelFlag,
		&internal.LogFileFlag,

		&internal.PortFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(clientCmd, []*internal.Flag{
		&internal.ServerHostFlag,
		&internal.PlayerNameFlag,
		&internal.TurnDirectionFlag,
		&internal.ClientIntervalMSFlag,
		&internal.ClientRoundsFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(serverCmd, []*internal.Flag{
		&internal.HealthPortFlag,
		&internal.WidthFlag,
		&internal.HeightFlag,
		&internal.GameSpeedFlag,
		&internal.TurningSpeedFlag,
		&internal.SeedFlag,
		&internal.PlayerCapacityFlag,
		&internal.InactivityMSFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	rootCmd.AddCommand(
		clientCmd,
		serverCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(errors.Wrap(err, "execute root command failed"))
	}
}
