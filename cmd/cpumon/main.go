package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/cpumon/internal/config"
	"github.com/Dicklesworthstone/cpumon/internal/export"
	"github.com/Dicklesworthstone/cpumon/internal/logging"
	"github.com/Dicklesworthstone/cpumon/internal/sampler"
	"github.com/Dicklesworthstone/cpumon/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "cpumon: reading .env:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:          "cpumon",
		Short:        "cpumon shows per-core and average CPU utilization",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			config.ApplyEnv(&cfg, os.Getenv)
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	log := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	opts := cfg.SamplerOptions()
	opts.Logger = log
	cpu, err := sampler.New(opts)
	if err != nil {
		return fmt.Errorf("creating cpu sampler: %w", err)
	}
	log.Debug("cpu sampler ready", "source", cfg.Source, "average", cfg.ShowAverage, "interval", cfg.Interval)

	h := sampler.NewHarvester(cfg.Interval, cpu, log)

	switch {
	case cfg.JSON:
		samp, err := h.Sample(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("sampling cpu: %w", err)
		}
		return export.WriteJSON(stdout, samp)
	case cfg.JSONStream:
		return export.Stream(ctx, stdout, h.Stream(ctx))
	default:
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		return ui.RunTUI(h.Stream(ctx), cancel)
	}
}
