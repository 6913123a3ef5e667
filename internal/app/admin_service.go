package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type AdminRepository interface {
	UpsertLimit(ctx context.Context, limit domain.CapacityLimit) error
	ListLimits(ctx context.Context) ([]domain.CapacityLimit, error)
	BlockDate(ctx context.Context, b domain.BlockedDate) error
	// UnblockDate returns domain.ErrBlockedDateNotFound for unknown days.
	UnblockDate(ctx context.Context, day domain.Date) error
	ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error)
}

// AdminService manages capacity limits and manually blocked days.
type AdminService struct {
	repo   AdminRepository
	logger *slog.Logger
}

func NewAdminService(repo AdminRepository, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		repo:   repo,
		logger: logger,
	}
}

type SetLimitInput struct {
	TruckType string
	MaxPerDay int
}

func (s *AdminService) SetLimit(ctx context.Context, in SetLimitInput) (domain.CapacityLimit, error) {
	truckType := domain.NormalizeTruckType(in.TruckType)
	if truckType == "" {
		return domain.CapacityLimit{}, domain.NewValidationError("truck_type", "required")
	}
	if in.MaxPerDay < 0 {
		return domain.CapacityLimit{}, domain.NewValidationError("max_per_day", "must not be negative")
	}

	limit := domain.CapacityLimit{TruckType: truckType, MaxPerDay: in.MaxPerDay}
	if err := s.repo.UpsertLimit(ctx, limit); err != nil {
		return domain.CapacityLimit{}, err
	}
	s.logger.Info("capacity limit set", "truck_type", truckType.String(), "max_per_day", limit.MaxPerDay)
	return limit, nil
}

func (s *AdminService) ListLimits(ctx context.Context) ([]domain.CapacityLimit, error) {
	return s.repo.ListLimits(ctx)
}

// SeedLimits inserts the given limits for truck types that have none yet.
// Existing rows are left alone so changes made at runtime survive restarts.
func (s *AdminService) SeedLimits(ctx context.Context, limits []domain.CapacityLimit) error {
	existing, err := s.repo.ListLimits(ctx)
	if err != nil {
		return err
	}
	known := make(map[domain.TruckType]struct{}, len(existing))
	for _, l := range existing {
		known[l.TruckType] = struct{}{}
	}

	for _, l := range limits {
		truckType := domain.NormalizeTruckType(string(l.TruckType))
		if _, ok := known[truckType]; ok {
			continue
		}
		if _, err := s.SetLimit(ctx, SetLimitInput{TruckType: string(truckType), MaxPerDay: l.MaxPerDay}); err != nil {
			return err
		}
		known[truckType] = struct{}{}
	}
	return nil
}

type BlockDateInput struct {
	Date   domain.Date
	Reason string
}

func (s *AdminService) BlockDate(ctx context.Context, in BlockDateInput) (domain.BlockedDate, error) {
	if in.Date.IsZero() {
		return domain.BlockedDate{}, domain.NewValidationError("date", "required")
	}
	b := domain.BlockedDate{Date: in.Date, Reason: strings.TrimSpace(in.Reason)}
	if err := s.repo.BlockDate(ctx, b); err != nil {
		return domain.BlockedDate{}, err
	}
	s.logger.Info("date blocked", "date", b.Date.String())
	return b, nil
}

func (s *AdminService) UnblockDate(ctx context.Context, day domain.Date) error {
	if day.IsZero() {
		return domain.NewValidationError("date", "required")
	}
	if err := s.repo.UnblockDate(ctx, day); err != nil {
		return err
	}
	s.logger.Info("date unblocked", "date", day.String())
	return nil
}

func (s *AdminService) ListBlocked(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	if from.IsZero() || to.IsZero() {
		return nil, domain.NewValidationError("range", "from and to are required")
	}
	if to.Before(from) {
		return nil, domain.NewValidationError("range", "to must not be before from")
	}
	return s.repo.ListBlockedDates(ctx, from, to)
}
