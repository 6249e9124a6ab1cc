package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// Response bodies. Calendar dates use openapi_types.Date so they marshal as
// "YYYY-MM-DD", matching openapi.yaml.

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type MeResponse struct {
	User *User `json:"user"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Trip struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"userId"`
	Name      string             `json:"name"`
	Location  string             `json:"location"`
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
	Budget    float64            `json:"budget"`
	Notes     string             `json:"notes"`
	ImageURL  string             `json:"imageUrl"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type TripResponse struct {
	Trip Trip `json:"trip"`
}

type TripListResponse struct {
	Trips []Trip `json:"trips"`
}

type Entry struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"tripId"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Date      openapi_types.Date `json:"date"`
	PhotoURL  string             `json:"photoUrl"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type EntryResponse struct {
	Entry Entry `json:"entry"`
}

type EntryListResponse struct {
	Entries []Entry `json:"entries"`
}

type ItineraryResponse struct {
	Itinerary string `json:"itinerary"`
}

type PlanResponse struct {
	Itinerary string `json:"itinerary"`
	Trip      Trip   `json:"trip"`
	Entry     Entry  `json:"entry"`
}

// ExportRow is one line of a trip export. Entry fields are omitted for a trip
// without entries.
type ExportRow struct {
	TripID        uuid.UUID           `json:"tripId"`
	TripName      string              `json:"tripName"`
	TripLocation  string              `json:"tripLocation"`
	TripStartDate openapi_types.Date  `json:"tripStartDate"`
	TripEndDate   openapi_types.Date  `json:"tripEndDate"`
	TripBudget    float64             `json:"tripBudget"`
	EntryTitle    *string             `json:"entryTitle,omitempty"`
	EntryDate     *openapi_types.Date `json:"entryDate,omitempty"`
	EntryContent  *string             `json:"entryContent,omitempty"`
	EntryPhotoURL *string             `json:"entryPhotoUrl,omitempty"`
}

// --- mapping helpers --------------------------------------------------------

func userToResponse(id uuid.UUID, username string) User {
	return User{ID: id, Username: username}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Location:  t.Location,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		Budget:    t.Budget,
		Notes:     t.Notes,
		ImageURL:  t.ImageURL,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tripsToResponse(trips []domain.Trip) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripToResponse(t))
	}
	return out
}

func entryToResponse(e domain.Entry) Entry {
	return Entry{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		Content:   e.Content,
		Date:      openapi_types.Date{Time: e.Date},
		PhotoURL:  e.PhotoURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func entriesToResponse(entries []domain.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}
