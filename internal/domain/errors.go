package domain

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAlreadyReceived      = errors.New("reservation already received")
	ErrBlockedDateNotFound  = errors.New("blocked date not found")
	ErrLimitNotConfigured   = errors.New("no limit configured for this truck type")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrSlotTaken            = errors.New("slot already taken")
	ErrValidation           = errors.New("validation failed")
	ErrStorageInconsistency = errors.New("storage inconsistency")
)

// ConfigError reports a truck type with no capacity row. It is a data problem
// for operators, not a full day.
type ConfigError struct {
	TruckType TruckType
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no limit configured for truck type %q", string(e.TruckType))
}

func (e *ConfigError) Unwrap() error {
	return ErrLimitNotConfigured
}

// CapacityError reports that (Date, TruckType) already holds Limit reservations.
type CapacityError struct {
	TruckType TruckType
	Date      Date
	Limit     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("limit reached for %s on %s", e.TruckType, e.Date)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StorageInconsistencyError means a conference record was written but the
// reservation status could not follow.
type StorageInconsistencyError struct {
	ReservationID string
	Err           error
}

func (e *StorageInconsistencyError) Error() string {
	return fmt.Sprintf("reservation %s: conference stored but status update failed: %v", e.ReservationID, e.Err)
}

func (e *StorageInconsistencyError) Unwrap() []error {
	return []error{ErrStorageInconsistency, e.Err}
}
