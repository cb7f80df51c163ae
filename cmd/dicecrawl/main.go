// Package main is the entry point for DiceCrawl.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dicecrawl/internal/config"
	"github.com/samdwyer/dicecrawl/internal/rng"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds the settings and resources shared by every subcommand.
type cli struct {
	cfg config.Config

	seed       int64
	class      string
	cryptoDice bool

	// Set by bootstrap, released by teardown.
	shutdownTelemetry func(context.Context) error
	logCloser         io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, c := newRootCmd()
	if err := c.execute(ctx, root, os.Args[1:]); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:   "dicecrawl",
		Short: "A 64-cell dice-board dungeon crawl",
		Long: `DiceCrawl is a single-player dungeon crawl on a 64-cell board. Roll to move,
loot treasure, survive traps, fight monsters and defeat the Dragon on the last cell.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.bootstrap,
	}

	root.PersistentFlags().Int64Var(&c.seed, "seed", 0, "RNG seed (0 picks a random seed)")
	root.PersistentFlags().StringVar(&c.class, "class", "", "character class id")
	root.PersistentFlags().BoolVar(&c.cryptoDice, "crypto-dice", false, "roll movement with crypto/rand instead of the seeded RNG")

	root.AddCommand(c.playCmd())
	root.AddCommand(c.simulateCmd())
	return root, c
}

// execute runs the command tree and always releases what bootstrap
// acquired, whether or not the command failed.
func (c *cli) execute(ctx context.Context, root *cobra.Command, args []string) error {
	defer c.teardown()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// bootstrap loads configuration, applies flag overrides and starts
// telemetry when enabled.
func (c *cli) bootstrap(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = c.seed
	}
	if cmd.Flags().Changed("class") {
		cfg.Class = c.class
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	if !cfg.TelemetryEnabled {
		return nil
	}
	shutdown, err := telemetry.Setup(cmd.Context(), cfg.TelemetryOptions(version))
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		return nil
	}
	c.shutdownTelemetry = shutdown
	return nil
}

func (c *cli) teardown() {
	if c.shutdownTelemetry != nil {
		if err := c.shutdownTelemetry(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
		c.shutdownTelemetry = nil
	}
	if c.logCloser != nil {
		if err := c.logCloser.Close(); err != nil {
			log.Printf("Error closing log file: %v", err)
		}
		c.logCloser = nil
	}
}

// newLogger builds the slog logger for a command and makes it the default.
func (c *cli) newLogger(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.cfg.Level()}))
	slog.SetDefault(logger)
	return logger
}

// playLogWriter opens the configured log file. Without one, play mode
// discards logs since the terminal belongs to the UI.
func (c *cli) playLogWriter() (io.Writer, error) {
	if c.cfg.LogFile == "" {
		return io.Discard, nil
	}
	f, err := os.OpenFile(c.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.logCloser = f
	return f, nil
}

func (c *cli) resolveSeed() (int64, error) {
	if c.cfg.Seed != 0 {
		return c.cfg.Seed, nil
	}
	return rng.NewSeed()
}
