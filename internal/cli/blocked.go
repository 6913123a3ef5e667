package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type blockedRow struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// NewBlockedCommand creates the blocked command group.
func NewBlockedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocked",
		Short: "Manage manually blocked days",
	}
	cmd.AddCommand(newBlockedAddCommand(rootOpts))
	cmd.AddCommand(newBlockedRemoveCommand(rootOpts))
	cmd.AddCommand(newBlockedListCommand(rootOpts))
	return cmd
}

func newBlockedAddCommand(rootOpts *RootOptions) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:           "add <YYYY-MM-DD>",
		Short:         "Block a day for bookings",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			return withAdmin(cmd, rootOpts, func(admin *app.AdminService, p printer) error {
				b, err := admin.BlockDate(cmd.Context(), app.BlockDateInput{Date: day, Reason: reason})
				if err != nil {
					return WrapExitError(ExitFailure, "block date", err)
				}
				row := blockedRow{Date: b.Date.String(), Reason: b.Reason}
				return p.emit(row, [][]string{{row.Date, row.Reason}})
			})
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "why the day is blocked")

	return cmd
}

func newBlockedRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <YYYY-MM-DD>",
		Short:         "Unblock a day",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			return withAdmin(cmd, rootOpts, func(admin *app.AdminService, p printer) error {
				if err := admin.UnblockDate(cmd.Context(), day); err != nil {
					return WrapExitError(ExitFailure, "unblock date", err)
				}
				return p.emit(blockedRow{Date: day.String()}, [][]string{{"unblocked", day.String()}})
			})
		},
	}
}

func newBlockedListCommand(rootOpts *RootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List blocked days in a range",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDay, err := parseDateArg("from", from)
			if err != nil {
				return err
			}
			toDay, err := parseDateArg("to", to)
			if err != nil {
				return err
			}
			return withAdmin(cmd, rootOpts, func(admin *app.AdminService, p printer) error {
				days, err := admin.ListBlocked(cmd.Context(), fromDay, toDay)
				if err != nil {
					return WrapExitError(ExitFailure, "list blocked dates", err)
				}
				out := make([]blockedRow, 0, len(days))
				rows := make([][]string, 0, len(days))
				for _, b := range days {
					out = append(out, blockedRow{Date: b.Date.String(), Reason: b.Reason})
					rows = append(rows, []string{b.Date.String(), b.Reason})
				}
				return p.emit(out, rows)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func parseDateArg(name, raw string) (domain.Date, error) {
	day, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, WrapExitError(ExitCommandError, name+" must be YYYY-MM-DD", err)
	}
	return day, nil
}
