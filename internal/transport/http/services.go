package http

import (
	"context"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/availability"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// AvailabilityService answers calendar queries.
type AvailabilityService interface {
	Month(ctx context.Context, year int, month time.Month) (availability.Month, error)
	ForDate(ctx context.Context, day domain.Date) (map[domain.TruckType]int, error)
}

// ReservationService admits and reads reservations.
type ReservationService interface {
	Admit(ctx context.Context, in app.AdmitInput) (domain.Reservation, error)
	Get(ctx context.Context, id string) (domain.Reservation, error)
	ListByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error)
}

// ConferenceService records arrivals and conferences.
type ConferenceService interface {
	Record(ctx context.Context, in app.RecordConferenceInput) (domain.ConferenceRecord, error)
	RecordArrival(ctx context.Context, reservationID string) (domain.Reservation, error)
}

// AdminService manages capacity limits and blocked dates.
type AdminService interface {
	SetLimit(ctx context.Context, in app.SetLimitInput) (domain.CapacityLimit, error)
	ListLimits(ctx context.Context) ([]domain.CapacityLimit, error)
	BlockDate(ctx context.Context, in app.BlockDateInput) (domain.BlockedDate, error)
	UnblockDate(ctx context.Context, day domain.Date) error
	ListBlocked(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error)
}
