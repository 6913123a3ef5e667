package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const reservationColumns = `
id, reservation_date, truck_type, slot_index, access_code, status, created_by, created_at,
cargo_type, merchandise_type, supplier, responsible_name, pallet_quantity, volume_quantity,
plate, driver_name, driver_cpf, contact_number, receiving_type,
arrival_at, conference_at, handling_time`

type ReservationRepository struct {
	db
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db{pool: pool}}
}

// LockSlot takes a transaction-scoped advisory lock keyed on the day and
// truck type. It must run inside WithTx.
func (r *ReservationRepository) LockSlot(ctx context.Context, day domain.Date, truckType domain.TruckType) error {
	tx := txFromContext(ctx)
	if tx == nil {
		return errNoTx
	}
	key := day.String() + ":" + string(truckType)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetLimit(ctx context.Context, truckType domain.TruckType) (domain.CapacityLimit, error) {
	var limit domain.CapacityLimit
	err := r.queryRow(ctx, `SELECT max_per_day FROM capacity_limits WHERE truck_type = $1`, string(truckType)).
		Scan(&limit.MaxPerDay)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CapacityLimit{}, domain.ErrLimitNotConfigured
		}
		return domain.CapacityLimit{}, fmt.Errorf("get limit: %w", err)
	}
	limit.TruckType = truckType
	return limit, nil
}

func (r *ReservationRepository) CountReservations(ctx context.Context, day domain.Date, truckType domain.TruckType) (int, error) {
	const query = `SELECT COUNT(*) FROM reservations WHERE reservation_date = $1 AND truck_type = $2`
	var count int
	if err := r.queryRow(ctx, query, day.Time(), string(truckType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}

// CreateReservation inserts res only while fewer than limit rows exist for its
// day and truck type. A losing insert, or a clash on the slot index, returns
// domain.ErrSlotTaken.
func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation, limit int) error {
	const stmt = `
INSERT INTO reservations (
	id, reservation_date, truck_type, slot_index, access_code, status, created_by, created_at,
	cargo_type, merchandise_type, supplier, responsible_name, pallet_quantity, volume_quantity,
	plate, driver_name, driver_cpf, contact_number, receiving_type
)
SELECT $1::uuid, $2::date, $3::text, $4::int, $5::text, $6::text, $7::text, $8::timestamptz,
	$9::text, $10::text, $11::text, $12::text, $13::int, $14::int,
	$15::text, $16::text, $17::text, $18::text, $19::text
WHERE (
	SELECT COUNT(*) FROM reservations WHERE reservation_date = $2::date AND truck_type = $3::text
) < $20::int`

	p := res.Payload
	tag, err := r.exec(ctx, stmt,
		res.ID,
		res.Date.Time(),
		string(res.TruckType),
		res.SlotIndex,
		res.AccessCode,
		string(res.Status),
		res.CreatedBy,
		res.CreatedAt,
		p.CargoType,
		p.MerchandiseType,
		p.Supplier,
		p.ResponsibleName,
		p.PalletQuantity,
		p.VolumeQuantity,
		p.Plate,
		p.DriverName,
		p.DriverCPF,
		p.ContactNumber,
		p.ReceivingType,
		limit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotTaken
	}
	return nil
}

func (r *ReservationRepository) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	return getReservation(ctx, r.db, id, false)
}

func (r *ReservationRepository) ListReservationsByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
FROM reservations
WHERE reservation_date = $1
ORDER BY truck_type, slot_index`
	rows, err := r.query(ctx, query, day.Time())
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
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservations: %w", rows.Err())
	}
	return out, nil
}

func getReservation(ctx context.Context, d db, id string, forUpdate bool) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	res, err := scanReservation(d.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidText(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var (
		res       domain.Reservation
		day       time.Time
		truckType string
		status    string
	)
	p := &res.Payload
	err := row.Scan(
		&res.ID, &day, &truckType, &res.SlotIndex, &res.AccessCode, &status, &res.CreatedBy, &res.CreatedAt,
		&p.CargoType, &p.MerchandiseType, &p.Supplier, &p.ResponsibleName, &p.PalletQuantity, &p.VolumeQuantity,
		&p.Plate, &p.DriverName, &p.DriverCPF, &p.ContactNumber, &p.ReceivingType,
		&res.ArrivalAt, &res.ConferenceAt, &res.HandlingTime,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Date = domain.DateOf(day)
	res.TruckType = domain.TruckType(truckType)
	res.Status = domain.ReservationStatus(status)
	return res, nil
}
