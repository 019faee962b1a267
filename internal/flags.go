// Package internal holds the process-wide configuration shared by every command.
//
// Every setting is a Flag: a command line flag that falls back to an environment variable,
// which in turn falls back to a default. Environment variables may also come from a .env file
// in the working directory.
package internal

import (
	"os"
	"strconv"

	"kurve/internal/pkg/validate"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Settings, populated once the command line is parsed and ValidateEnv ran.
var (
	Env      string
	LogLevel string
	LogFile  string

	Port       int
	HealthPort int

	Width          int
	Height         int
	GameSpeed      int
	TurningSpeed   int
	Seed           int64
	PlayerCapacity int
	InactivityMS   int

	ServerHost       string
	PlayerName       string
	TurnDirection    int
	ClientIntervalMS int
	ClientRounds     int
)

// Flag is a setting exposed on the command line and in the environment.
type Flag struct {
	Name  string
	Env   string
	Usage string
	// Value points at the setting: *string, *int or *int64.
	Value   any
	Default string
}

// Flags.
var (
	EnvFlag      = Flag{Name: "env", Env: "KURVE_ENV", Value: &Env, Default: "dev", Usage: "deployment environment (dev, test, prod)"}
	LogLevelFlag = Flag{Name: "log-level", Env: "KURVE_LOG_LEVEL", Value: &LogLevel, Default: "info", Usage: "log level (trace, debug, info, warn, error)"}
	LogFileFlag  = Flag{Name: "log-file", Env: "KURVE_LOG_FILE", Value: &LogFile, Usage: "rotate logs into this file instead of stderr"}

	PortFlag       = Flag{Name: "port", Env: "KURVE_PORT", Value: &Port, Default: "12345", Usage: "UDP port of the game server"}
	HealthPortFlag = Flag{Name: "health-port", Env: "KURVE_HEALTH_PORT", Value: &HealthPort, Default: "8080", Usage: "HTTP port for health, metrics and spectators, 0 disables it"}

	WidthFlag          = Flag{Name: "width", Env: "KURVE_WIDTH", Value: &Width, Default: "800", Usage: "board width in pixels"}
	HeightFlag         = Flag{Name: "height", Env: "KURVE_HEIGHT", Value: &Height, Default: "600", Usage: "board height in pixels"}
	GameSpeedFlag      = Flag{Name: "game-speed", Env: "KURVE_GAME_SPEED", Value: &GameSpeed, Default: "50", Usage: "ticks per second"}
	TurningSpeedFlag   = Flag{Name: "turning-speed", Env: "KURVE_TURNING_SPEED", Value: &TurningSpeed, Default: "6", Usage: "degrees turned per tick"}
	SeedFlag           = Flag{Name: "seed", Env: "KURVE_SEED", Value: &Seed, Default: "-1", Usage: "random seed, -1 seeds from the clock"}
	PlayerCapacityFlag = Flag{Name: "capacity", Env: "KURVE_CAPACITY", Value: &PlayerCapacity, Default: "42", Usage: "maximum number of connected clients"}
	InactivityMSFlag   = Flag{Name: "inactivity-ms", Env: "KURVE_INACTIVITY_MS", Value: &InactivityMS, Default: "2000", Usage: "silence after which a client is dropped"}

	ServerHostFlag       = Flag{Name: "host", Env: "KURVE_HOST", Value: &ServerHost, Default: "localhost", Usage: "host of the game server"}
	PlayerNameFlag       = Flag{Name: "name", Env: "KURVE_NAME", Value: &PlayerName, Usage: "player name, empty to watch only"}
	TurnDirectionFlag    = Flag{Name: "turn", Env: "KURVE_TURN", Value: &TurnDirection, Default: "1", Usage: "turn direction reported every interval (-1, 0, 1)"}
	ClientIntervalMSFlag = Flag{Name: "interval-ms", Env: "KURVE_INTERVAL_MS", Value: &ClientIntervalMS, Default: "30", Usage: "interval between client messages"}
	ClientRoundsFlag     = Flag{Name: "rounds", Env: "KURVE_ROUNDS", Value: &ClientRounds, Usage: "exit after this many rounds, 0 runs forever"}
)

type registration struct {
	cmd  *cobra.Command
	flag *Flag
}

var registered []registration

// RegisterCommandFlags registers flags as persistent flags of cmd.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	set := cmd.PersistentFlags()
	for _, f := range flags {
		switch v := f.Value.(type) {
		case *string:
			set.StringVar(v, f.Name, f.Default, f.Usage)
		case *int:
			def, err := parseDefault(f, 0)
			if err != nil {
				return err
			}
			set.IntVar(v, f.Name, int(def), f.Usage)
		case *int64:
			def, err := parseDefault(f, 64)
			if err != nil {
				return err
			}
			set.Int64Var(v, f.Name, def, f.Usage)
		default:
			return errors.Errorf("flag %s has unsupported type %T", f.Name, f.Value)
		}
		registered = append(registered, registration{cmd: cmd, flag: f})
	}
	return nil
}

func parseDefault(f *Flag, bits int) (int64, error) {
	if f.Default == "" {
		return 0, nil
	}
	def, err := strconv.ParseInt(f.Default, 10, bits)
	return def, errors.Wrapf(err, "parse default of flag %s failed", f.Name)
}

type env struct {
	Env      string `validate:"oneof=dev test prod"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
}

// ValidateEnv loads .env, applies environment variables to every flag not set on the
// command line and validates the shared settings.
func ValidateEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "load .env failed")
	}
	for _, r := range registered {
		pf := r.cmd.PersistentFlags().Lookup(r.flag.Name)
		if pf == nil || pf.Changed {
			continue
		}
		v, ok := os.LookupEnv(r.flag.Env)
		if !ok {
			continue
		}
		if err := pf.Value.Set(v); err != nil {
			return errors.Wrapf(err, "parse %s failed", r.flag.Env)
		}
	}
	err := validate.Validate().Struct(env{Env: Env, LogLevel: LogLevel})
	return errors.Wrap(err, "validate env failed")
}
