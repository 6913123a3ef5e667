package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

// AvailabilityRepository serves the read side of the calendar. It never
// locks; the counts may be stale by the time a reservation is admitted.
type AvailabilityRepository struct {
	db
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: db{pool: pool}}
}

func (r *AvailabilityRepository) ListLimits(ctx context.Context) ([]domain.CapacityLimit, error) {
	return listLimits(ctx, r.db)
}

func (r *AvailabilityRepository) ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	return listBlockedDates(ctx, r.db, from, to)
}

func (r *AvailabilityRepository) CountByDateRange(ctx context.Context, from, to domain.Date) ([]domain.SlotCount, error) {
	const query = `
SELECT reservation_date, truck_type, COUNT(*)
FROM reservations
WHERE reservation_date BETWEEN $1 AND $2
GROUP BY reservation_date, truck_type
ORDER BY reservation_date, truck_type`
	rows, err := r.query(ctx, query, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("count reservations by date: %w", err)
	}
	defer rows.Close()

	var out []domain.SlotCount
	for rows.Next() {
		var (
			day       time.Time
			truckType string
			count     int
		)
		if err := rows.Scan(&day, &truckType, &count); err != nil {
			return nil, fmt.Errorf("scan slot count: %w", err)
		}
		out = append(out, domain.SlotCount{
			Date:      domain.DateOf(day),
			TruckType: domain.TruckType(truckType),
			Count:     count,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slot counts: %w", rows.Err())
	}
	return out, nil
}

func (r *AvailabilityRepository) HasReservationsBefore(ctx context.Context, day domain.Date) (bool, error) {
	var exists bool
	err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE reservation_date < $1)`, day.Time()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check prior reservations: %w", err)
	}
	return exists, nil
}
