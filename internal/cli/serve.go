package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	transporthttp "github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/transport/http"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Open the configured store, apply pending migrations, seed the configured
truck types and serve the API until SIGINT or SIGTERM.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *RootOptions, port string) error {
	cfg, logger, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	authenticator, err := auth.NewAuthenticator(cfg.Auth.JWTSecret)
	if err != nil {
		return WrapExitError(ExitCommandError, "auth", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return WrapExitError(ExitCommandError, "timezone", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	clk := clock.NewSystem(loc)
	handler := transporthttp.NewHandler(transporthttp.HandlerDeps{
		Availability: app.NewAvailabilityService(backend.Availability, clk, logger),
		Reservations: app.NewReservationService(backend.Reservations, clk, app.WithReservationLogger(logger)),
		Conferences:  app.NewConferenceService(backend.Conferences, clk, logger),
		Admin:        app.NewAdminService(backend.Admin, logger),
		Clock:        clk,
		Logger:       logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Handler:     handler,
		Auth:        authenticator,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return WrapExitError(ExitCommandError, "listen", err)
	}
	logger.Info("api listening", "addr", ln.Addr().String(), "driver", backend.Driver, "timezone", loc.String())

	return serveUntilDone(ctx, &http.Server{Handler: router}, ln, cfg.Server.ShutdownTimeout, logger)
}

// serveUntilDone serves on ln until ctx is done or the server fails, then
// shuts down gracefully within timeout.
func serveUntilDone(ctx context.Context, server *http.Server, ln net.Listener, timeout time.Duration, logger *slog.Logger) error {
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.Serve(ln)
	}()

	var runErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")

	if runErr != nil {
		return WrapExitError(ExitFailure, "server error", runErr)
	}
	return nil
}
