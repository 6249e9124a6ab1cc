// Package domain contains the core data types for the RoamLog application.
// This package only depends on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for trip and entry dates.
const DateLayout = "2006-01-02"

// Trip is a user-owned travel plan; entries belong to a trip.
// StartDate and EndDate are calendar dates at midnight UTC.
type Trip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
	Budget    float64
	Notes     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripPatch carries a partial trip update. A nil field was not supplied and
// leaves the stored value untouched; a non-nil field overwrites it, even when
// it points at a zero value.
type TripPatch struct {
	Name      *string
	Location  *string
	StartDate *time.Time
	EndDate   *time.Time
	Budget    *float64
	Notes     *string
	ImageURL  *string
}

// Apply returns a copy of t with every supplied field of p written over it.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Budget != nil {
		t.Budget = *p.Budget
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	return t
}
