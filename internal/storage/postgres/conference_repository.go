package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type ConferenceRepository struct {
	db
}

func NewConferenceRepository(pool *pgxpool.Pool) *ConferenceRepository {
	return &ConferenceRepository{db: db{pool: pool}}
}

func (r *ConferenceRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return getReservation(ctx, r.db, id, true)
}

func (r *ConferenceRepository) CreateConference(ctx context.Context, rec domain.ConferenceRecord) error {
	const stmt = `
INSERT INTO conferences (id, reservation_id, access_code, pallets_received, volumes_received, observations, recorder_name, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.exec(ctx, stmt,
		rec.ID,
		rec.ReservationID,
		rec.AccessCode,
		rec.PalletsReceived,
		rec.VolumesReceived,
		rec.Observations,
		rec.RecorderName,
		rec.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReceived
		}
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("create conference: %w", err)
	}
	return nil
}

func (r *ConferenceRepository) MarkReceived(ctx context.Context, id string, at time.Time, handlingTime string) error {
	const stmt = `
UPDATE reservations
SET status = 'recebido',
	conference_at = $2,
	handling_time = CASE WHEN $3::text = '' THEN handling_time ELSE $3::text END
WHERE id = $1 AND status = 'pendente'`
	tag, err := r.exec(ctx, stmt, id, at, handlingTime)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ConferenceRepository) SetArrival(ctx context.Context, id string, at time.Time) error {
	tag, err := r.exec(ctx, `UPDATE reservations SET arrival_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("set arrival: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}
