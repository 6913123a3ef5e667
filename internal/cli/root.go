// Package cli holds the recebimento command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/config"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recebimento",
		Short: "Receiving dock scheduler",
		Long: `Schedules truck deliveries against per-day capacity limits for each
truck type, serves the availability calendar and records the conference
of received goods.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the YAML config file (default "+config.DefaultConfigFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewLimitsCommand(opts))
	cmd.AddCommand(NewBlockedCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the configuration and builds the logger from it.
// Logs go to stderr so JSON output on stdout stays clean.
func loadConfig(opts *RootOptions, errOut io.Writer) (config.Config, *slog.Logger, error) {
	bootLevel := slog.LevelWarn
	if opts.Verbose {
		bootLevel = slog.LevelDebug
	}
	boot := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: bootLevel}))

	cfg, err := config.Load(opts.ConfigPath, boot)
	if err != nil {
		return config.Config{}, nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	logger, err := cfg.NewLogger(errOut)
	if err != nil {
		return config.Config{}, nil, WrapExitError(ExitCommandError, "build logger", err)
	}
	return cfg, logger, nil
}

// openStore opens and migrates the configured backend, then seeds the
// configured truck types. Callers must Close the returned backend.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*storage.Backend, error) {
	backend, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open storage", err)
	}
	applied, err := backend.Migrate(ctx)
	if err != nil {
		_ = backend.Close()
		return nil, WrapExitError(ExitCommandError, "apply migrations", err)
	}
	for _, name := range applied {
		logger.Info("migration applied", "name", name)
	}

	admin := app.NewAdminService(backend.Admin, logger)
	if err := admin.SeedLimits(ctx, cfg.SeedLimits()); err != nil {
		_ = backend.Close()
		return nil, WrapExitError(ExitCommandError, "seed truck types", err)
	}
	return backend, nil
}
