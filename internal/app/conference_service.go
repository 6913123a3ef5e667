package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type ConferenceRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	// CreateConference returns domain.ErrAlreadyReceived when the reservation
	// already has a record.
	CreateConference(ctx context.Context, rec domain.ConferenceRecord) error
	// MarkReceived moves a pending reservation to received. An empty
	// handlingTime leaves the stored value untouched.
	MarkReceived(ctx context.Context, id string, at time.Time, handlingTime string) error
	SetArrival(ctx context.Context, id string, at time.Time) error
}

// ConferenceService closes reservations out once goods are counted.
type ConferenceService struct {
	repo   ConferenceRepository
	clock  clock.Clock
	logger *slog.Logger
	newID  func() string
}

func NewConferenceService(repo ConferenceRepository, clk clock.Clock, logger *slog.Logger) *ConferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConferenceService{
		repo:   repo,
		clock:  clk,
		logger: logger,
		newID:  newID,
	}
}

type RecordConferenceInput struct {
	ReservationID   string
	PalletsReceived int
	VolumesReceived int
	Observations    string
	RecorderName    string
}

func (in RecordConferenceInput) validate() error {
	if strings.TrimSpace(in.ReservationID) == "" {
		return domain.NewValidationError("reservation_id", "required")
	}
	if in.PalletsReceived < 0 {
		return domain.NewValidationError("pallets_received", "must not be negative")
	}
	if in.VolumesReceived < 0 {
		return domain.NewValidationError("volumes_received", "must not be negative")
	}
	if strings.TrimSpace(in.RecorderName) == "" {
		return domain.NewValidationError("recorder_name", "required")
	}
	return nil
}

// Record stores the conference and flips the reservation to received in one
// transaction. A second call for the same reservation returns
// domain.ErrAlreadyReceived.
func (s *ConferenceService) Record(ctx context.Context, in RecordConferenceInput) (domain.ConferenceRecord, error) {
	if err := in.validate(); err != nil {
		return domain.ConferenceRecord{}, err
	}

	now := s.clock.Now()
	var result domain.ConferenceRecord

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		r, err := s.repo.GetReservationForUpdate(txCtx, in.ReservationID)
		if err != nil {
			return err
		}
		if r.Status == domain.ReservationStatusReceived {
			return domain.ErrAlreadyReceived
		}

		rec := domain.ConferenceRecord{
			ID:              s.newID(),
			ReservationID:   r.ID,
			AccessCode:      r.AccessCode,
			PalletsReceived: in.PalletsReceived,
			VolumesReceived: in.VolumesReceived,
			Observations:    in.Observations,
			RecorderName:    strings.TrimSpace(in.RecorderName),
			RecordedAt:      now,
		}
		if err := s.repo.CreateConference(txCtx, rec); err != nil {
			return err
		}

		handling := ""
		if r.ArrivalAt != nil {
			if formatted, ok := domain.FormatElapsed(now.Sub(*r.ArrivalAt)); ok {
				handling = formatted
			}
		}
		if err := s.repo.MarkReceived(txCtx, r.ID, now, handling); err != nil {
			return &domain.StorageInconsistencyError{ReservationID: r.ID, Err: err}
		}

		result = rec
		return nil
	})
	if err != nil {
		var inc *domain.StorageInconsistencyError
		if errors.As(err, &inc) {
			s.logger.Error("conference recorded without status update",
				"reservation_id", inc.ReservationID,
				"error", inc.Err,
			)
		}
		return domain.ConferenceRecord{}, err
	}

	s.logger.Info("conference recorded",
		"reservation_id", result.ReservationID,
		"recorder", result.RecorderName,
	)
	return result, nil
}

// RecordArrival stamps the invoice arrival time used to measure handling time.
func (s *ConferenceService) RecordArrival(ctx context.Context, reservationID string) (domain.Reservation, error) {
	if strings.TrimSpace(reservationID) == "" {
		return domain.Reservation{}, domain.NewValidationError("reservation_id", "required")
	}

	now := s.clock.Now()
	var result domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		r, err := s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if r.Status == domain.ReservationStatusReceived {
			return domain.ErrAlreadyReceived
		}
		if err := s.repo.SetArrival(txCtx, r.ID, now); err != nil {
			return err
		}
		r.ArrivalAt = &now
		result = r
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}
