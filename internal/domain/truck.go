package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// TruckType is a vehicle category code (truck, toco, carreta, ...). The set
// is open: the known codes are whatever rows the capacity table holds.
type TruckType string

var folder = cases.Fold()

// NormalizeTruckType trims and case-folds a code so "Carreta " and "carreta"
// address the same capacity row.
func NormalizeTruckType(code string) TruckType {
	return TruckType(folder.String(strings.TrimSpace(code)))
}

func (t TruckType) String() string {
	return string(t)
}

// CapacityLimit is the maximum number of reservations a truck type may hold
// on a single day.
type CapacityLimit struct {
	TruckType TruckType
	MaxPerDay int
}

// BlockedDate is a day closed by hand, regardless of capacity.
type BlockedDate struct {
	Date   Date
	Reason string
}

// SlotCount is the number of reservations for one truck type on one day.
type SlotCount struct {
	Date      Date
	TruckType TruckType
	Count     int
}
