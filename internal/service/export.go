package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
)

// ExportService assembles a flat export of one trip and its journal.
type ExportService struct {
	trips   repo.TripRepo
	entries repo.EntryRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, entries repo.EntryRepo) *ExportService {
	return &ExportService{trips: trips, entries: entries}
}

// Export returns one ExportRow per entry of a trip owned by userID, in the
// same order as the entry list. A trip with no entries contributes one row
// with empty entry fields.
func (s *ExportService) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	entries, err := s.entries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	base := domain.ExportRow{
		TripID:        trip.ID.String(),
		TripName:      trip.Name,
		TripLocation:  trip.Location,
		TripStartDate: trip.StartDate.Format(domain.DateLayout),
		TripEndDate:   trip.EndDate.Format(domain.DateLayout),
		TripBudget:    trip.Budget,
	}

	if len(entries) == 0 {
		return []domain.ExportRow{base}, nil
	}

	rows := make([]domain.ExportRow, 0, len(entries))
	for _, e := range entries {
		row := base
		row.EntryTitle = e.Title
		row.EntryDate = e.Date.Format(domain.DateLayout)
		row.EntryContent = e.Content
		row.EntryPhoto = e.PhotoURL
		rows = append(rows, row)
	}
	return rows, nil
}
