package dynamo

import (
	"fmt"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const (
	pkLimit   = "LIMIT"
	pkBlocked = "BLOCKED"
	pkSlot    = "SLOT"
	skRes     = "RES"
	skConf    = "CONF"
)

func reservationPK(id string) string { return "RES#" + id }

func slotSK(day domain.Date, truckType domain.TruckType) string {
	return day.String() + "#" + string(truckType)
}

func dayGSI(day domain.Date) string { return "DAY#" + day.String() }

type limitItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	MaxPerDay int    `dynamodbav:"max_per_day"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type blockedItem struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	Reason string `dynamodbav:"reason"`
}

type slotItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Date      string `dynamodbav:"date"`
	TruckType string `dynamodbav:"truck_type"`
	Count     int    `dynamodbav:"count"`
}

type reservationItem struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`

	ID              string `dynamodbav:"id"`
	Date            string `dynamodbav:"reservation_date"`
	TruckType       string `dynamodbav:"truck_type"`
	SlotIndex       int    `dynamodbav:"slot_index"`
	AccessCode      string `dynamodbav:"access_code"`
	Status          string `dynamodbav:"status"`
	CreatedBy       string `dynamodbav:"created_by"`
	CreatedAt       string `dynamodbav:"created_at"`
	CargoType       string `dynamodbav:"cargo_type"`
	MerchandiseType string `dynamodbav:"merchandise_type"`
	Supplier        string `dynamodbav:"supplier"`
	ResponsibleName string `dynamodbav:"responsible_name"`
	PalletQuantity  int    `dynamodbav:"pallet_quantity"`
	VolumeQuantity  int    `dynamodbav:"volume_quantity"`
	Plate           string `dynamodbav:"plate"`
	DriverName      string `dynamodbav:"driver_name"`
	DriverCPF       string `dynamodbav:"driver_cpf"`
	ContactNumber   string `dynamodbav:"contact_number"`
	ReceivingType   string `dynamodbav:"receiving_type"`
	ArrivalAt       string `dynamodbav:"arrival_at,omitempty"`
	ConferenceAt    string `dynamodbav:"conference_at,omitempty"`
	HandlingTime    string `dynamodbav:"handling_time"`
}

type conferenceItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	ID              string `dynamodbav:"id"`
	ReservationID   string `dynamodbav:"reservation_id"`
	AccessCode      string `dynamodbav:"access_code"`
	PalletsReceived int    `dynamodbav:"pallets_received"`
	VolumesReceived int    `dynamodbav:"volumes_received"`
	Observations    string `dynamodbav:"observations"`
	RecorderName    string `dynamodbav:"recorder_name"`
	RecordedAt      string `dynamodbav:"recorded_at"`
}

func toReservationItem(r domain.Reservation) reservationItem {
	p := r.Payload
	it := reservationItem{
		PK:              reservationPK(r.ID),
		SK:              skRes,
		GSI1PK:          dayGSI(r.Date),
		GSI1SK:          fmt.Sprintf("%s#%06d", r.TruckType, r.SlotIndex),
		ID:              r.ID,
		Date:            r.Date.String(),
		TruckType:       string(r.TruckType),
		SlotIndex:       r.SlotIndex,
		AccessCode:      r.AccessCode,
		Status:          string(r.Status),
		CreatedBy:       r.CreatedBy,
		CreatedAt:       formatTime(r.CreatedAt),
		CargoType:       p.CargoType,
		MerchandiseType: p.MerchandiseType,
		Supplier:        p.Supplier,
		ResponsibleName: p.ResponsibleName,
		PalletQuantity:  p.PalletQuantity,
		VolumeQuantity:  p.VolumeQuantity,
		Plate:           p.Plate,
		DriverName:      p.DriverName,
		DriverCPF:       p.DriverCPF,
		ContactNumber:   p.ContactNumber,
		ReceivingType:   p.ReceivingType,
		HandlingTime:    r.HandlingTime,
	}
	if r.ArrivalAt != nil {
		it.ArrivalAt = formatTime(*r.ArrivalAt)
	}
	if r.ConferenceAt != nil {
		it.ConferenceAt = formatTime(*r.ConferenceAt)
	}
	return it
}

func fromReservationItem(it reservationItem) (domain.Reservation, error) {
	day, err := domain.ParseDate(it.Date)
	if err != nil {
		return domain.Reservation{}, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("parse created_at: %w", err)
	}
	r := domain.Reservation{
		ID:           it.ID,
		Date:         day,
		TruckType:    domain.TruckType(it.TruckType),
		SlotIndex:    it.SlotIndex,
		AccessCode:   it.AccessCode,
		Status:       domain.ReservationStatus(it.Status),
		CreatedBy:    it.CreatedBy,
		CreatedAt:    createdAt,
		HandlingTime: it.HandlingTime,
		Payload: domain.ReservationPayload{
			CargoType:       it.CargoType,
			MerchandiseType: it.MerchandiseType,
			Supplier:        it.Supplier,
			ResponsibleName: it.ResponsibleName,
			PalletQuantity:  it.PalletQuantity,
			VolumeQuantity:  it.VolumeQuantity,
			Plate:           it.Plate,
			DriverName:      it.DriverName,
			DriverCPF:       it.DriverCPF,
			ContactNumber:   it.ContactNumber,
			ReceivingType:   it.ReceivingType,
		},
	}
	if r.ArrivalAt, err = parseOptionalTime(it.ArrivalAt); err != nil {
		return domain.Reservation{}, fmt.Errorf("parse arrival_at: %w", err)
	}
	if r.ConferenceAt, err = parseOptionalTime(it.ConferenceAt); err != nil {
		return domain.Reservation{}, fmt.Errorf("parse conference_at: %w", err)
	}
	return r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
