package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

func (s *Store) UpsertLimit(ctx context.Context, limit domain.CapacityLimit) error {
	const stmt = `
INSERT INTO capacity_limits (truck_type, max_per_day, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (truck_type) DO UPDATE
SET max_per_day = excluded.max_per_day, updated_at = excluded.updated_at`
	if _, err := s.exec(ctx, stmt, string(limit.TruckType), limit.MaxPerDay, formatTime(time.Now())); err != nil {
		return fmt.Errorf("upsert limit: %w", err)
	}
	return nil
}

func (s *Store) ListLimits(ctx context.Context) ([]domain.CapacityLimit, error) {
	rows, err := s.query(ctx, `SELECT truck_type, max_per_day FROM capacity_limits ORDER BY truck_type`)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate limits: %w", err)
	}
	return limits, nil
}

func (s *Store) BlockDate(ctx context.Context, b domain.BlockedDate) error {
	const stmt = `
INSERT INTO blocked_dates (blocked_date, reason) VALUES (?, ?)
ON CONFLICT (blocked_date) DO UPDATE SET reason = excluded.reason`
	if _, err := s.exec(ctx, stmt, b.Date.String(), b.Reason); err != nil {
		return fmt.Errorf("block date: %w", err)
	}
	return nil
}

func (s *Store) UnblockDate(ctx context.Context, day domain.Date) error {
	result, err := s.exec(ctx, `DELETE FROM blocked_dates WHERE blocked_date = ?`, day.String())
	if err != nil {
		return fmt.Errorf("unblock date: %w", err)
	}
	if rowsAffected(result) == 0 {
		return domain.ErrBlockedDateNotFound
	}
	return nil
}

// ListBlockedDates relies on YYYY-MM-DD sorting lexically like the dates.
func (s *Store) ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	rows, err := s.query(ctx, `
SELECT blocked_date, reason
FROM blocked_dates
WHERE blocked_date BETWEEN ? AND ?
ORDER BY blocked_date`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()

	var out []domain.BlockedDate
	for rows.Next() {
		var (
			day string
			b   domain.BlockedDate
		)
		if err := rows.Scan(&day, &b.Reason); err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		if b.Date, err = domain.ParseDate(day); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked dates: %w", err)
	}
	return out, nil
}

func (s *Store) CountByDateRange(ctx context.Context, from, to domain.Date) ([]domain.SlotCount, error) {
	rows, err := s.query(ctx, `
SELECT reservation_date, truck_type, COUNT(*)
FROM reservations
WHERE reservation_date BETWEEN ? AND ?
GROUP BY reservation_date, truck_type
ORDER BY reservation_date, truck_type`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("count reservations by date: %w", err)
	}
	defer rows.Close()

	var out []domain.SlotCount
	for rows.Next() {
		var (
			day       string
			truckType string
			c         domain.SlotCount
		)
		if err := rows.Scan(&day, &truckType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan slot count: %w", err)
		}
		if c.Date, err = domain.ParseDate(day); err != nil {
			return nil, err
		}
		c.TruckType = domain.TruckType(truckType)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot counts: %w", err)
	}
	return out, nil
}

func (s *Store) HasReservationsBefore(ctx context.Context, day domain.Date) (bool, error) {
	var exists bool
	if err := s.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE reservation_date < ?)`, day.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check prior reservations: %w", err)
	}
	return exists, nil
}
