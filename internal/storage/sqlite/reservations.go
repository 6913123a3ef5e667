package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const reservationColumns = `
id, reservation_date, truck_type, slot_index, access_code, status, created_by, created_at,
cargo_type, merchandise_type, supplier, responsible_name, pallet_quantity, volume_quantity,
plate, driver_name, driver_cpf, contact_number, receiving_type,
arrival_at, conference_at, handling_time`

// LockSlot is a no-op: the single connection already serializes writers.
func (s *Store) LockSlot(ctx context.Context, _ domain.Date, _ domain.TruckType) error {
	if txFromContext(ctx) == nil {
		return errors.New("sqlite: LockSlot requires a transaction")
	}
	return nil
}

func (s *Store) GetLimit(ctx context.Context, truckType domain.TruckType) (domain.CapacityLimit, error) {
	limit := domain.CapacityLimit{TruckType: truckType}
	err := s.queryRow(ctx, `SELECT max_per_day FROM capacity_limits WHERE truck_type = ?`, string(truckType)).
		Scan(&limit.MaxPerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CapacityLimit{}, domain.ErrLimitNotConfigured
		}
		return domain.CapacityLimit{}, fmt.Errorf("get limit: %w", err)
	}
	return limit, nil
}

func (s *Store) CountReservations(ctx context.Context, day domain.Date, truckType domain.TruckType) (int, error) {
	var count int
	err := s.queryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE reservation_date = ? AND truck_type = ?`,
		day.String(), string(truckType),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}

// CreateReservation inserts res while fewer than limit rows exist for its day
// and truck type, returning domain.ErrSlotTaken otherwise.
func (s *Store) CreateReservation(ctx context.Context, res domain.Reservation, limit int) error {
	const stmt = `
INSERT INTO reservations (
    id, reservation_date, truck_type, slot_index, access_code, status, created_by, created_at,
    cargo_type, merchandise_type, supplier, responsible_name, pallet_quantity, volume_quantity,
    plate, driver_name, driver_cpf, contact_number, receiving_type
)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
WHERE (SELECT COUNT(*) FROM reservations WHERE reservation_date = ? AND truck_type = ?) < ?`

	p := res.Payload
	day := res.Date.String()
	result, err := s.exec(ctx, stmt,
		res.ID, day, string(res.TruckType), res.SlotIndex, res.AccessCode, string(res.Status), res.CreatedBy, formatTime(res.CreatedAt),
		p.CargoType, p.MerchandiseType, p.Supplier, p.ResponsibleName, p.PalletQuantity, p.VolumeQuantity,
		p.Plate, p.DriverName, p.DriverCPF, p.ContactNumber, p.ReceivingType,
		day, string(res.TruckType), limit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	if rowsAffected(result) == 0 {
		return domain.ErrSlotTaken
	}
	return nil
}

func (s *Store) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	res, err := scanReservation(s.queryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// GetReservationForUpdate reads inside the caller's transaction; the single
// connection makes the row lock implicit.
func (s *Store) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return s.GetReservation(ctx, id)
}

func (s *Store) ListReservationsByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error) {
	rows, err := s.query(ctx, `SELECT `+reservationColumns+`
FROM reservations
WHERE reservation_date = ?
ORDER BY truck_type, slot_index`, day.String())
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (domain.Reservation, error) {
	var (
		res          domain.Reservation
		day          string
		truckType    string
		status       string
		createdAt    string
		arrivalAt    sql.NullString
		conferenceAt sql.NullString
	)
	p := &res.Payload
	err := row.Scan(
		&res.ID, &day, &truckType, &res.SlotIndex, &res.AccessCode, &status, &res.CreatedBy, &createdAt,
		&p.CargoType, &p.MerchandiseType, &p.Supplier, &p.ResponsibleName, &p.PalletQuantity, &p.VolumeQuantity,
		&p.Plate, &p.DriverName, &p.DriverCPF, &p.ContactNumber, &p.ReceivingType,
		&arrivalAt, &conferenceAt, &res.HandlingTime,
	)
	if err != nil {
		return domain.Reservation{}, err
	}

	if res.Date, err = domain.ParseDate(day); err != nil {
		return domain.Reservation{}, err
	}
	if res.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Reservation{}, fmt.Errorf("parse created_at: %w", err)
	}
	if res.ArrivalAt, err = parseNullTime(arrivalAt); err != nil {
		return domain.Reservation{}, fmt.Errorf("parse arrival_at: %w", err)
	}
	if res.ConferenceAt, err = parseNullTime(conferenceAt); err != nil {
		return domain.Reservation{}, fmt.Errorf("parse conference_at: %w", err)
	}
	res.TruckType = domain.TruckType(truckType)
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := parseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
