package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/storage"
)

type migrateResult struct {
	Driver  string   `json:"driver"`
	Applied []string `json:"applied"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply pending migrations to the configured store. Postgres runs the
embedded SQL files, DynamoDB creates the table when missing and SQLite
upgrades its file on open.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, rootOpts)
		},
	}
	return cmd
}

func runMigrate(cmd *cobra.Command, opts *RootOptions) error {
	cfg, logger, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	backend, err := storage.Open(cmd.Context(), cfg.Storage, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "open storage", err)
	}
	defer backend.Close()

	applied, err := backend.Migrate(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "apply migrations", err)
	}
	if applied == nil {
		applied = []string{}
	}

	rows := make([][]string, 0, len(applied)+1)
	for _, name := range applied {
		rows = append(rows, []string{"applied", name})
	}
	if len(applied) == 0 {
		rows = append(rows, []string{"up to date"})
	}
	p := printer{format: opts.Format, w: cmd.OutOrStdout()}
	return p.emit(migrateResult{Driver: backend.Driver, Applied: applied}, rows)
}
