package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/internal/config"
	"github.com/katalvlaran/fairdiv/oracle"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "fairdiv",
		Short: "Envy-free division of a one-dimensional resource",
		Long: `fairdiv divides a resource such as a cake, a time line or a strip of land
among agents whose valuations are piecewise-linear densities.

Selfridge–Conway and cut-and-choose run locally and are exactly envy-free.
The approximate algorithms are delegated to a remote solver (--solver-url).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	config.RegisterFlags(pf)

	root.AddCommand(a.divideCmd(), a.algorithmsCmd(), a.serveCmd(), versionCmd())
	return root
}

// setup resolves configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level())
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// runner builds a Runner, wiring the remote solver when one is configured.
func (a *app) runner() (*divide.Runner, error) {
	opts := []divide.Option{
		divide.WithTolerance(a.cfg.Tolerance),
		divide.WithLogger(a.logger),
	}
	if a.cfg.Solver.URL != "" {
		client, err := oracle.NewClient(a.cfg.Solver.URL,
			oracle.WithHTTPClient(&http.Client{Timeout: a.cfg.Solver.Timeout}),
			oracle.WithLogger(a.logger.Named("oracle")))
		if err != nil {
			return nil, err
		}
		opts = append(opts, divide.WithSolver(client))
	}
	return divide.NewRunner(opts...), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fairdiv", version)
		},
	}
}
