package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
)

type limitRow struct {
	TruckType string `json:"truck_type"`
	MaxPerDay int    `json:"max_per_day"`
}

// NewLimitsCommand creates the limits command group.
func NewLimitsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Manage per-day capacity limits per truck type",
	}
	cmd.AddCommand(newLimitsListCommand(rootOpts))
	cmd.AddCommand(newLimitsSetCommand(rootOpts))
	return cmd
}

func newLimitsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List capacity limits",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd, rootOpts, func(admin *app.AdminService, p printer) error {
				limits, err := admin.ListLimits(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "list limits", err)
				}
				out := make([]limitRow, 0, len(limits))
				rows := make([][]string, 0, len(limits))
				for _, l := range limits {
					out = append(out, limitRow{TruckType: l.TruckType.String(), MaxPerDay: l.MaxPerDay})
					rows = append(rows, []string{l.TruckType.String(), strconv.Itoa(l.MaxPerDay)})
				}
				return p.emit(out, rows)
			})
		},
	}
}

func newLimitsSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <truck-type> <max-per-day>",
		Short: "Create or replace the limit of a truck type",
		Long: `Create or replace the per-day limit of a truck type. A limit of 0 keeps
the type known but refuses every booking for it.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			perDay, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "max-per-day must be an integer", err)
			}
			return withAdmin(cmd, rootOpts, func(admin *app.AdminService, p printer) error {
				limit, err := admin.SetLimit(cmd.Context(), app.SetLimitInput{TruckType: args[0], MaxPerDay: perDay})
				if err != nil {
					return WrapExitError(ExitFailure, "set limit", err)
				}
				row := limitRow{TruckType: limit.TruckType.String(), MaxPerDay: limit.MaxPerDay}
				return p.emit(row, [][]string{{row.TruckType, strconv.Itoa(row.MaxPerDay)}})
			})
		},
	}
}

// withAdmin opens the configured store for the duration of fn.
func withAdmin(cmd *cobra.Command, opts *RootOptions, fn func(*app.AdminService, printer) error) error {
	cfg, logger, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	backend, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	return fn(app.NewAdminService(backend.Admin, logger), printer{format: opts.Format, w: cmd.OutOrStdout()})
}
