package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

var conferenceNow = time.Date(2024, time.June, 12, 14, 30, 0, 0, time.UTC)

func newConferenceFixture(t *testing.T) (*fakeStore, *ConferenceService) {
	t.Helper()
	store := newFakeStore(map[domain.TruckType]int{"truck": 3})
	store.reservations = append(store.reservations, domain.Reservation{
		ID:         "res-1",
		Date:       testDay,
		TruckType:  "truck",
		AccessCode: "ABCD2345",
		Status:     domain.ReservationStatusPending,
	})
	svc := NewConferenceService(store, clock.NewFixed(conferenceNow), nil)
	return store, svc
}

func TestConferenceService_RecordZeroQuantities(t *testing.T) {
	store, svc := newConferenceFixture(t)

	rec, err := svc.Record(context.Background(), RecordConferenceInput{
		ReservationID: "res-1",
		RecorderName:  " Ana ",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rec.AccessCode != "ABCD2345" {
		t.Fatalf("expected access code copied, got %q", rec.AccessCode)
	}
	if rec.RecorderName != "Ana" {
		t.Fatalf("expected trimmed recorder, got %q", rec.RecorderName)
	}
	if !rec.RecordedAt.Equal(conferenceNow) {
		t.Fatalf("unexpected recorded at %v", rec.RecordedAt)
	}

	r, _ := store.GetReservation(context.Background(), "res-1")
	if r.Status != domain.ReservationStatusReceived {
		t.Fatalf("expected received, got %q", r.Status)
	}
	if r.ConferenceAt == nil || !r.ConferenceAt.Equal(conferenceNow) {
		t.Fatalf("expected conference timestamp, got %v", r.ConferenceAt)
	}
	if r.HandlingTime != "" {
		t.Fatalf("expected no handling time without arrival, got %q", r.HandlingTime)
	}
}

func TestConferenceService_RecordHandlingTime(t *testing.T) {
	store, svc := newConferenceFixture(t)
	arrival := conferenceNow.Add(-(2*time.Hour + 15*time.Minute))
	store.reservations[0].ArrivalAt = &arrival

	if _, err := svc.Record(context.Background(), RecordConferenceInput{
		ReservationID:   "res-1",
		PalletsReceived: 10,
		VolumesReceived: 120,
		RecorderName:    "Ana",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	r, _ := store.GetReservation(context.Background(), "res-1")
	if r.HandlingTime != "02:15" {
		t.Fatalf("expected 02:15, got %q", r.HandlingTime)
	}
}

func TestConferenceService_RecordNegativeElapsedLeavesHandling(t *testing.T) {
	store, svc := newConferenceFixture(t)
	arrival := conferenceNow.Add(time.Hour)
	store.reservations[0].ArrivalAt = &arrival
	store.reservations[0].HandlingTime = "00:45"

	if _, err := svc.Record(context.Background(), RecordConferenceInput{ReservationID: "res-1", RecorderName: "Ana"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	r, _ := store.GetReservation(context.Background(), "res-1")
	if r.HandlingTime != "00:45" {
		t.Fatalf("expected untouched handling time, got %q", r.HandlingTime)
	}
	if r.Status != domain.ReservationStatusReceived {
		t.Fatalf("expected received, got %q", r.Status)
	}
}

func TestConferenceService_RecordTwice(t *testing.T) {
	store, svc := newConferenceFixture(t)
	in := RecordConferenceInput{ReservationID: "res-1", RecorderName: "Ana"}

	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := svc.Record(context.Background(), in); !errors.Is(err, domain.ErrAlreadyReceived) {
		t.Fatalf("expected ErrAlreadyReceived, got %v", err)
	}
	if len(store.conferences) != 1 {
		t.Fatalf("expected 1 conference, got %d", len(store.conferences))
	}
}

func TestConferenceService_RecordNotFound(t *testing.T) {
	_, svc := newConferenceFixture(t)

	_, err := svc.Record(context.Background(), RecordConferenceInput{ReservationID: "nope", RecorderName: "Ana"})
	if !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestConferenceService_RecordStatusUpdateFails(t *testing.T) {
	store, svc := newConferenceFixture(t)
	boom := errors.New("update failed")
	store.markReceivedErr = boom

	_, err := svc.Record(context.Background(), RecordConferenceInput{ReservationID: "res-1", RecorderName: "Ana"})
	var inc *domain.StorageInconsistencyError
	if !errors.As(err, &inc) {
		t.Fatalf("expected StorageInconsistencyError, got %v", err)
	}
	if inc.ReservationID != "res-1" {
		t.Fatalf("unexpected reservation id %q", inc.ReservationID)
	}
	if !errors.Is(err, boom) || !errors.Is(err, domain.ErrStorageInconsistency) {
		t.Fatalf("expected both causes in chain, got %v", err)
	}
}

func TestConferenceService_RecordValidation(t *testing.T) {
	_, svc := newConferenceFixture(t)

	cases := []struct {
		name  string
		in    RecordConferenceInput
		field string
	}{
		{"missing reservation", RecordConferenceInput{RecorderName: "Ana"}, "reservation_id"},
		{"negative pallets", RecordConferenceInput{ReservationID: "res-1", PalletsReceived: -1, RecorderName: "Ana"}, "pallets_received"},
		{"negative volumes", RecordConferenceInput{ReservationID: "res-1", VolumesReceived: -2, RecorderName: "Ana"}, "volumes_received"},
		{"missing recorder", RecordConferenceInput{ReservationID: "res-1"}, "recorder_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.in)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestConferenceService_RecordArrival(t *testing.T) {
	store, svc := newConferenceFixture(t)

	r, err := svc.RecordArrival(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if r.ArrivalAt == nil || !r.ArrivalAt.Equal(conferenceNow) {
		t.Fatalf("expected arrival at %v, got %v", conferenceNow, r.ArrivalAt)
	}

	stored, _ := store.GetReservation(context.Background(), "res-1")
	if stored.ArrivalAt == nil {
		t.Fatalf("expected arrival stored")
	}

	if _, err := svc.RecordArrival(context.Background(), "nope"); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestConferenceService_RecordArrivalAfterReceipt(t *testing.T) {
	store, svc := newConferenceFixture(t)
	store.reservations[0].Status = domain.ReservationStatusReceived

	if _, err := svc.RecordArrival(context.Background(), "res-1"); !errors.Is(err, domain.ErrAlreadyReceived) {
		t.Fatalf("expected ErrAlreadyReceived, got %v", err)
	}
}
