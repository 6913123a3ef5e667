package app

import (
	"encoding/base32"

	"github.com/google/uuid"
)

// Access codes avoid I, O, 0 and 1 so they survive being read over the phone.
var accessCodeEncoding = base32.NewEncoding("ABCDEFGHJKLMNPQRSTUVWXYZ23456789").WithPadding(base32.NoPadding)

func newID() string {
	return uuid.NewString()
}

// newAccessCode returns an 8 character code built from 40 random bits.
func newAccessCode() string {
	id := uuid.New()
	return accessCodeEncoding.EncodeToString(id[:5])
}
