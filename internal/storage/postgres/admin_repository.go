package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type AdminRepository struct {
	db
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db{pool: pool}}
}

func (r *AdminRepository) UpsertLimit(ctx context.Context, limit domain.CapacityLimit) error {
	const stmt = `
INSERT INTO capacity_limits (truck_type, max_per_day, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (truck_type) DO UPDATE
SET max_per_day = EXCLUDED.max_per_day, updated_at = NOW()`
	if _, err := r.exec(ctx, stmt, string(limit.TruckType), limit.MaxPerDay); err != nil {
		return fmt.Errorf("upsert limit: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListLimits(ctx context.Context) ([]domain.CapacityLimit, error) {
	return listLimits(ctx, r.db)
}

func (r *AdminRepository) BlockDate(ctx context.Context, b domain.BlockedDate) error {
	const stmt = `
INSERT INTO blocked_dates (blocked_date, reason)
VALUES ($1, $2)
ON CONFLICT (blocked_date) DO UPDATE SET reason = EXCLUDED.reason`
	if _, err := r.exec(ctx, stmt, b.Date.Time(), b.Reason); err != nil {
		return fmt.Errorf("block date: %w", err)
	}
	return nil
}

func (r *AdminRepository) UnblockDate(ctx context.Context, day domain.Date) error {
	tag, err := r.exec(ctx, `DELETE FROM blocked_dates WHERE blocked_date = $1`, day.Time())
	if err != nil {
		return fmt.Errorf("unblock date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBlockedDateNotFound
	}
	return nil
}

func (r *AdminRepository) ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	return listBlockedDates(ctx, r.db, from, to)
}

func listLimits(ctx context.Context, d db) ([]domain.CapacityLimit, error) {
	rows, err := d.query(ctx, `SELECT truck_type, max_per_day FROM capacity_limits ORDER BY truck_type`)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	defer rows.Close()

	var limits []domain.CapacityLimit
	for rows.Next() {
		var (
			truckType string
			l         domain.CapacityLimit
		)
		if err := rows.Scan(&truckType, &l.MaxPerDay); err != nil {
			return nil, fmt.Errorf("scan limit: %w", err)
		}
		l.TruckType = domain.TruckType(truckType)
		limits = append(limits, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate limits: %w", rows.Err())
	}
	return limits, nil
}

func listBlockedDates(ctx context.Context, d db, from, to domain.Date) ([]domain.BlockedDate, error) {
	const query = `
SELECT blocked_date, reason
FROM blocked_dates
WHERE blocked_date BETWEEN $1 AND $2
ORDER BY blocked_date`
	rows, err := d.query(ctx, query, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()

	var out []domain.BlockedDate
	for rows.Next() {
		var (
			day time.Time
			b   domain.BlockedDate
		)
		if err := rows.Scan(&day, &b.Reason); err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		b.Date = domain.DateOf(day)
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate blocked dates: %w", rows.Err())
	}
	return out, nil
}
