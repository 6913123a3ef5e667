package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
)

const defaultTokenTTL = 12 * time.Hour

type tokenOptions struct {
	User   string
	Name   string
	Manage bool
	TTL    time.Duration
}

type tokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		Long: `Issue an HS256 bearer token signed with the configured secret. Use
--manage for users allowed to change limits and blocked days.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.User, "user", "u", "", "user id (sub claim)")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "display name")
	cmd.Flags().BoolVar(&opts.Manage, "manage", false, "allow managing limits and blocked days")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", defaultTokenTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runToken(cmd *cobra.Command, rootOpts *RootOptions, opts *tokenOptions) error {
	if opts.TTL <= 0 {
		return NewExitError(ExitCommandError, "ttl must be positive")
	}
	cfg, _, err := loadConfig(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	authenticator, err := auth.NewAuthenticator(cfg.Auth.JWTSecret)
	if err != nil {
		return WrapExitError(ExitCommandError, "auth", err)
	}

	expires := time.Now().Add(opts.TTL)
	token, err := authenticator.Issue(auth.Identity{
		UserID:          opts.User,
		Name:            opts.Name,
		CanManageLimits: opts.Manage,
	}, opts.TTL)
	if err != nil {
		return WrapExitError(ExitFailure, "issue token", err)
	}

	p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
	return p.emit(tokenResult{Token: token, ExpiresAt: expires.UTC().Truncate(time.Second)}, [][]string{{token}})
}
