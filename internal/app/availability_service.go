package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/availability"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type AvailabilityRepository interface {
	ListLimits(ctx context.Context) ([]domain.CapacityLimit, error)
	ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error)
	CountByDateRange(ctx context.Context, from, to domain.Date) ([]domain.SlotCount, error)
	HasReservationsBefore(ctx context.Context, day domain.Date) (bool, error)
}

// AvailabilityService feeds stored data to the availability engine. Its
// answers are hints for the calendar; admission re-checks capacity itself.
type AvailabilityService struct {
	repo   AvailabilityRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewAvailabilityService(repo AvailabilityRepository, clk clock.Clock, logger *slog.Logger) *AvailabilityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// Month classifies every day of year/month relative to the clock's today.
func (s *AvailabilityService) Month(ctx context.Context, year int, month time.Month) (availability.Month, error) {
	first, last, err := availability.MonthRange(year, month)
	if err != nil {
		return availability.Month{}, err
	}

	blocked, err := s.repo.ListBlockedDates(ctx, first, last)
	if err != nil {
		return availability.Month{}, err
	}
	limits, err := s.limitsByType(ctx)
	if err != nil {
		return availability.Month{}, err
	}
	counts, err := s.repo.CountByDateRange(ctx, first, last)
	if err != nil {
		return availability.Month{}, err
	}
	hasPrior, err := s.repo.HasReservationsBefore(ctx, first)
	if err != nil {
		return availability.Month{}, err
	}

	days := make([]domain.Date, 0, len(blocked))
	for _, b := range blocked {
		days = append(days, b.Date)
	}

	result, err := availability.ClassifyMonth(availability.Input{
		Year:     year,
		Month:    month,
		Today:    domain.DateOf(s.clock.Now()),
		Blocked:  days,
		Limits:   limits,
		Counts:   counts,
		HasPrior: hasPrior,
	})
	if err != nil {
		return availability.Month{}, err
	}

	for _, c := range result.Unconfigured {
		s.logger.Warn("reservations for truck type without capacity limit",
			"date", c.Date.String(),
			"truck_type", c.TruckType.String(),
			"count", c.Count,
		)
	}
	return result, nil
}

// ForDate returns the remaining capacity per configured truck type.
func (s *AvailabilityService) ForDate(ctx context.Context, day domain.Date) (map[domain.TruckType]int, error) {
	if day.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	limits, err := s.limitsByType(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CountByDateRange(ctx, day, day)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.TruckType]int, len(rows))
	for _, row := range rows {
		counts[row.TruckType] += row.Count
	}
	return availability.Remaining(limits, counts), nil
}

func (s *AvailabilityService) limitsByType(ctx context.Context) (map[domain.TruckType]int, error) {
	rows, err := s.repo.ListLimits(ctx)
	if err != nil {
		return nil, err
	}
	limits := make(map[domain.TruckType]int, len(rows))
	for _, l := range rows {
		limits[l.TruckType] = l.MaxPerDay
	}
	return limits, nil
}
