package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

func (s *Store) CreateConference(ctx context.Context, rec domain.ConferenceRecord) error {
	const stmt = `
INSERT INTO conferences (id, reservation_id, access_code, pallets_received, volumes_received, observations, recorder_name, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, stmt,
		rec.ID, rec.ReservationID, rec.AccessCode,
		rec.PalletsReceived, rec.VolumesReceived,
		rec.Observations, rec.RecorderName, formatTime(rec.RecordedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReservationNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReceived
		}
		return fmt.Errorf("create conference: %w", err)
	}
	return nil
}

func (s *Store) MarkReceived(ctx context.Context, id string, at time.Time, handlingTime string) error {
	const stmt = `
UPDATE reservations
SET status = 'recebido',
    conference_at = ?,
    handling_time = CASE WHEN ? = '' THEN handling_time ELSE ? END
WHERE id = ? AND status = 'pendente'`
	result, err := s.exec(ctx, stmt, formatTime(at), handlingTime, handlingTime, id)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if rowsAffected(result) == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (s *Store) SetArrival(ctx context.Context, id string, at time.Time) error {
	result, err := s.exec(ctx, `UPDATE reservations SET arrival_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("set arrival: %w", err)
	}
	if rowsAffected(result) == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}
