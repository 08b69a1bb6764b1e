// Package main provides the depscope CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/depscope/depscope/internal/pipeline"
	"github.com/depscope/depscope/internal/source"
	"github.com/depscope/depscope/pkg/config"
	"github.com/depscope/depscope/pkg/surface"
)

var version = "dev"

// errFindings is returned when --fail-on-findings is set and smells were found.
var errFindings = errors.New("findings reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "depscope",
		Short: "Structural analysis for dependency injection graphs",
		Long: `Depscope loads exported dependency-injection graphs, computes structural
metrics, detects design smells, and compares snapshots.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to config file (default: search for .depscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newAnalyzeCmd(g),
		newCompareCmd(g),
		newPathCmd(g),
		newSmellsCmd(g),
	)
	return rootCmd
}

// env holds what every command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	mux    *source.Mux
	svc    *pipeline.Service
}

// newEnv loads config, applies command-line overrides, and wires the
// source mux, logger and pipeline service.
func newEnv(cmd *cobra.Command, g *globalOpts, overrides ...func(*config.Config)) (*env, error) {
	cfg, err := loadConfig(cmd.ErrOrStderr(), g.configPath)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	mux := source.NewMux(cfg.Sources, logger)
	return &env{
		cfg:    cfg,
		logger: logger,
		mux:    mux,
		svc:    pipeline.NewService(mux, pipeline.OptionsFromConfig(cfg.Analysis), logger),
	}, nil
}

func (e *env) Close() error {
	return e.mux.Close()
}

func (e *env) renderer(output string) (surface.Renderer, error) {
	return surface.New(firstNonEmpty(output, e.cfg.Output.Format), e.cfg.Output.Color && !color.NoColor)
}

// loadConfig reads an explicit config file, or searches upward from the
// working directory and falls back to defaults.
func loadConfig(stderr io.Writer, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	cfgFile := config.FindConfigFile(wd)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
