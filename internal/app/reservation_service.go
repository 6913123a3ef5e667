package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockSlot serializes admissions for (day, truckType) until the
	// surrounding transaction ends.
	LockSlot(ctx context.Context, day domain.Date, truckType domain.TruckType) error
	GetLimit(ctx context.Context, truckType domain.TruckType) (domain.CapacityLimit, error)
	CountReservations(ctx context.Context, day domain.Date, truckType domain.TruckType) (int, error)
	// CreateReservation returns domain.ErrSlotTaken when the store-side guard
	// finds the slot already at limit.
	CreateReservation(ctx context.Context, r domain.Reservation, limit int) error
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	ListReservationsByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error)
}

// ReservationService is the only path that creates reservations.
type ReservationService struct {
	repo          ReservationRepository
	clock         clock.Clock
	logger        *slog.Logger
	newID         func() string
	newAccessCode func() string
}

type ReservationServiceOption func(*ReservationService)

// WithReservationLogger overrides slog.Default.
func WithReservationLogger(logger *slog.Logger) ReservationServiceOption {
	return func(s *ReservationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerators overrides id and access code generation.
func WithIDGenerators(id, accessCode func() string) ReservationServiceOption {
	return func(s *ReservationService) {
		if id != nil {
			s.newID = id
		}
		if accessCode != nil {
			s.newAccessCode = accessCode
		}
	}
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:          repo,
		clock:         clk,
		logger:        slog.Default(),
		newID:         newID,
		newAccessCode: newAccessCode,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AdmitInput struct {
	Date        domain.Date
	TruckType   string
	RequestedBy string
	Payload     domain.ReservationPayload
}

// Admit re-derives the slot count inside a transaction and creates the
// reservation only while the count is below the truck type's limit.
func (s *ReservationService) Admit(ctx context.Context, in AdmitInput) (domain.Reservation, error) {
	if in.Date.IsZero() {
		return domain.Reservation{}, domain.NewValidationError("date", "required")
	}
	truckType := domain.NormalizeTruckType(in.TruckType)
	if truckType == "" {
		return domain.Reservation{}, domain.NewValidationError("truck_type", "required")
	}
	if in.RequestedBy == "" {
		return domain.Reservation{}, domain.NewValidationError("requested_by", "required")
	}

	var result domain.Reservation
	var limit int
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockSlot(txCtx, in.Date, truckType); err != nil {
			return err
		}

		l, err := s.repo.GetLimit(txCtx, truckType)
		if err != nil {
			if errors.Is(err, domain.ErrLimitNotConfigured) {
				return &domain.ConfigError{TruckType: truckType}
			}
			return err
		}
		limit = l.MaxPerDay

		count, err := s.repo.CountReservations(txCtx, in.Date, truckType)
		if err != nil {
			return err
		}
		if count >= limit {
			return &domain.CapacityError{TruckType: truckType, Date: in.Date, Limit: limit}
		}

		r := domain.Reservation{
			ID:         s.newID(),
			Date:       in.Date,
			TruckType:  truckType,
			SlotIndex:  count,
			AccessCode: s.newAccessCode(),
			Status:     domain.ReservationStatusPending,
			CreatedBy:  in.RequestedBy,
			CreatedAt:  s.clock.Now(),
			Payload:    in.Payload,
		}
		if err := s.repo.CreateReservation(txCtx, r, limit); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		// Stores that validate on commit report the guard through WithTx.
		if errors.Is(err, domain.ErrSlotTaken) {
			return domain.Reservation{}, &domain.CapacityError{TruckType: truckType, Date: in.Date, Limit: limit}
		}
		return domain.Reservation{}, err
	}

	s.logger.Info("reservation admitted",
		"id", result.ID,
		"date", result.Date.String(),
		"truck_type", result.TruckType.String(),
		"slot", result.SlotIndex,
		"created_by", result.CreatedBy,
	)
	return result, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (domain.Reservation, error) {
	if id == "" {
		return domain.Reservation{}, domain.NewValidationError("id", "required")
	}
	return s.repo.GetReservation(ctx, id)
}

func (s *ReservationService) ListByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error) {
	if day.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}
	return s.repo.ListReservationsByDate(ctx, day)
}
