package domain

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pendente"
	ReservationStatusReceived ReservationStatus = "recebido"
)

// Reservation is one truck's booked delivery day.
type Reservation struct {
	ID        string
	Date      Date
	TruckType TruckType
	// SlotIndex is the 0-based admission order within (Date, TruckType).
	SlotIndex  int
	AccessCode string
	Status     ReservationStatus
	CreatedBy  string
	CreatedAt  time.Time
	Payload    ReservationPayload

	ArrivalAt    *time.Time
	ConferenceAt *time.Time
	// HandlingTime is the HH:MM between arrival and conference.
	HandlingTime string
}

// ReservationPayload holds the descriptive fields of the booking form. They
// are stored as supplied.
type ReservationPayload struct {
	CargoType       string
	MerchandiseType string
	Supplier        string
	ResponsibleName string
	PalletQuantity  int
	VolumeQuantity  int
	Plate           string
	DriverName      string
	DriverCPF       string
	ContactNumber   string
	ReceivingType   string
}

// ConferenceRecord stores what was physically received for a reservation.
type ConferenceRecord struct {
	ID              string
	ReservationID   string
	AccessCode      string
	PalletsReceived int
	VolumesReceived int
	Observations    string
	RecorderName    string
	RecordedAt      time.Time
}

// FormatElapsed renders d as zero-padded hours and minutes. ok is false when
// d is negative.
func FormatElapsed(d time.Duration) (string, bool) {
	if d < 0 {
		return "", false
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60), true
}
