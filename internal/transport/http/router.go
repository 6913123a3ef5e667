package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
)

// Handler serves the scheduling API.
type Handler struct {
	availability AvailabilityService
	reservations ReservationService
	conferences  ConferenceService
	admin        AdminService
	clock        clock.Clock
	logger       *slog.Logger
}

type HandlerDeps struct {
	Availability AvailabilityService
	Reservations ReservationService
	Conferences  ConferenceService
	Admin        AdminService
	// Clock supplies the default year and month of the calendar query.
	Clock  clock.Clock
	Logger *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	return &Handler{
		availability: deps.Availability,
		reservations: deps.Reservations,
		conferences:  deps.Conferences,
		admin:        deps.Admin,
		clock:        clk,
		logger:       logger,
	}
}

type RouterConfig struct {
	Handler     *Handler
	Auth        *auth.Authenticator
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter wires every route. Everything under /api requires a bearer
// token; /api/admin additionally requires the manage flag.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), CORS(cfg.CORSOrigins))
	r.NoRoute(NotFoundHandler)

	r.GET("/health", HealthHandler)

	h := cfg.Handler
	api := r.Group("/api", cfg.Auth.Middleware())
	{
		api.GET("/dias", h.Month)
		api.GET("/disponibilidade", h.ForDate)

		api.POST("/agendamentos", h.CreateReservation)
		api.GET("/agendamentos", h.ListReservations)
		api.GET("/agendamentos/:id", h.GetReservation)
		api.POST("/agendamentos/:id/chegada", h.RecordArrival)

		api.POST("/conferencias", h.RecordConference)
	}

	admin := api.Group("/admin", auth.RequireManager())
	{
		admin.GET("/limites", h.ListLimits)
		admin.PUT("/limites/:tipo", h.SetLimit)

		admin.GET("/bloqueios", h.ListBlocked)
		admin.POST("/bloqueios", h.BlockDate)
		admin.DELETE("/bloqueios/:data", h.UnblockDate)
	}

	return r
}
