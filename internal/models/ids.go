package models

import (
	"time"

	"github.com/google/uuid"
)

// assignID fills an empty primary key before insert
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// baseOr returns *t when set and fallback otherwise
func baseOr(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}
