package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
)

// EntryService implements business logic for journal entries. Entries carry
// no owner of their own; access is granted through the parent trip.
type EntryService struct {
	trips   repo.TripRepo
	entries repo.EntryRepo
}

// NewEntryService constructs an EntryService.
func NewEntryService(trips repo.TripRepo, entries repo.EntryRepo) *EntryService {
	return &EntryService{trips: trips, entries: entries}
}

// ListByTrip returns the entries of a trip owned by userID, newest date first.
func (s *EntryService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Entry, error) {
	if err := s.ownTrip(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.EntryService.ListByTrip: %w", err)
	}

	entries, err := s.entries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.EntryService.ListByTrip: %w", err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

// Create validates and stores a new entry on a trip owned by userID.
func (s *EntryService) Create(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error) {
	entry = normalizeEntry(entry)
	if err := validateEntry(entry); err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Create: %w", err)
	}
	if err := s.ownTrip(ctx, userID, entry.TripID); err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Create: %w", err)
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single entry whose trip is owned by userID.
func (s *EntryService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Entry, error) {
	entry, err := s.authorize(ctx, userID, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.GetByID: %w", err)
	}
	return entry, nil
}

// Update applies patch to an entry whose trip is owned by userID.
// The entry cannot be moved to another trip.
func (s *EntryService) Update(ctx context.Context, userID, id uuid.UUID, patch domain.EntryPatch) (domain.Entry, error) {
	existing, err := s.authorize(ctx, userID, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Update: %w", err)
	}

	merged := normalizeEntry(patch.Apply(existing))
	if err := validateEntry(merged); err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Update: %w", err)
	}

	updated, err := s.entries.Update(ctx, merged)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an entry whose trip is owned by userID.
func (s *EntryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, id); err != nil {
		return fmt.Errorf("service.EntryService.Delete: %w", err)
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EntryService.Delete: %w", err)
	}
	return nil
}

// authorize loads an entry and checks that its trip belongs to userID.
// A missing entry, a missing trip and a foreign trip all yield
// domain.ErrNotFound.
func (s *EntryService) authorize(ctx context.Context, userID, entryID uuid.UUID) (domain.Entry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return domain.Entry{}, err
	}
	if err := s.ownTrip(ctx, userID, entry.TripID); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *EntryService) ownTrip(ctx context.Context, userID, tripID uuid.UUID) error {
	_, err := s.trips.GetByID(ctx, userID, tripID)
	return err
}
