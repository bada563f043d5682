// Package config loads fairdiv settings from defaults, an optional config
// file, FAIRDIV_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fairdiv/envyfree"
)

// ErrInvalid indicates a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// EnvPrefix prefixes every environment variable, e.g. FAIRDIV_SOLVER_URL.
const EnvPrefix = "FAIRDIV"

// Keys.
const (
	KeyTolerance     = "tolerance"
	KeySolverURL     = "solver.url"
	KeySolverTimeout = "solver.timeout"
	KeyServerAddr    = "server.addr"
	KeyLogLevel      = "log.level"
)

// Config is the resolved configuration.
type Config struct {
	Tolerance float64      `mapstructure:"tolerance"`
	Solver    SolverConfig `mapstructure:"solver"`
	Server    ServerConfig `mapstructure:"server"`
	Log       LogConfig    `mapstructure:"log"`
}

// SolverConfig locates the remote approximate-division service. An empty
// URL disables the remote algorithms.
type SolverConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTolerance, envyfree.DefaultTolerance)
	v.SetDefault(KeySolverURL, "")
	v.SetDefault(KeySolverTimeout, 30*time.Second)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
}

// RegisterFlags adds the flags that override configuration keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64("tolerance", envyfree.DefaultTolerance, "equality tolerance for slice values")
	fs.String("solver-url", "", "base URL of the remote approximate-division service")
	fs.Duration("solver-timeout", 30*time.Second, "timeout of a single remote solver call")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

// BindFlags binds the flags added by RegisterFlags, and the server's addr
// flag when present, to their keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyTolerance:     "tolerance",
		KeySolverURL:     "solver-url",
		KeySolverTimeout: "solver-timeout",
		KeyLogLevel:      "log-level",
		KeyServerAddr:    "addr",
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration held by v. When file is not empty it is
// read first; YAML, JSON and TOML are recognised by extension.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if math.IsNaN(c.Tolerance) || c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %g must be >= 0", ErrInvalid, c.Tolerance)
	}
	if c.Solver.Timeout <= 0 {
		return fmt.Errorf("%w: solver timeout %s must be positive", ErrInvalid, c.Solver.Timeout)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is empty", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
