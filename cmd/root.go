// Package cmd implements the hypershape command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chazu/hypershape/internal/app"
	"github.com/chazu/hypershape/internal/config"
	"github.com/chazu/hypershape/pkg/engine"
	"github.com/chazu/hypershape/pkg/kernel/sdfx"
	"github.com/chazu/hypershape/pkg/shape"
	"github.com/chazu/hypershape/pkg/tessellate"
)

var rootCmd = &cobra.Command{
	Use:   "hypershape",
	Short: "N-dimensional solid modeling by recursive cuts",
	Long: "Hypershape builds arenas of shapes by cutting space with hyperplanes and hyperspheres.\n" +
		"Cuts come from a script (.zy) or a cut list (.toml); 3D results can be meshed.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default .hypershape.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

var (
	cfg    config.Config
	logger = shape.NoopLogger()
)

// loadConfig reads the config file and environment before every command.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.Init(cfgFile); err != nil {
		return err
	}
	c, err := config.Load()
	if err != nil {
		return err
	}
	l, err := c.Log.Logger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

// newApp wires the pipeline from the loaded config.
func newApp() *app.App {
	e := engine.NewEngine(engine.WithTimeout(cfg.Eval.Timeout), engine.WithLogger(logger))
	k := sdfx.New(sdfx.WithMeshCells(cfg.Mesh.Cells))
	return app.New(e, k,
		app.WithLogger(logger),
		app.WithMeshOptions(tessellate.Options{
			Workers: cfg.Mesh.Workers,
			Explode: cfg.Mesh.Explode,
		}),
	)
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
