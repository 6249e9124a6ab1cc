package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a dated journal record attached to exactly one trip.
// It has no owner of its own: access is granted through the parent trip.
type Entry struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	Content   string
	Date      time.Time
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryPatch carries a partial entry update; nil means "not supplied".
// TripID is deliberately absent: an entry never moves between trips.
type EntryPatch struct {
	Title    *string
	Content  *string
	Date     *time.Time
	PhotoURL *string
}

// Apply returns a copy of e with every supplied field of p written over it.
func (p EntryPatch) Apply(e Entry) Entry {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.PhotoURL != nil {
		e.PhotoURL = *p.PhotoURL
	}
	return e
}
