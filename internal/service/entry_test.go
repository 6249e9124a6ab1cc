package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/service"
)

// entryWorld wires an EntryService where owner owns tripID and entryID is an
// entry on that trip.
type entryWorld struct {
	owner, tripID, entryID uuid.UUID
	trips                  *mockTripRepo
	entries                *mockEntryRepo
	svc                    *service.EntryService
}

func newEntryWorld() *entryWorld {
	w := &entryWorld{owner: uuid.New(), tripID: uuid.New(), entryID: uuid.New()}
	w.trips = ownedTrips(w.owner, w.tripID)
	w.entries = &mockEntryRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Entry, error) {
			if id != w.entryID {
				return domain.Entry{}, domain.ErrNotFound
			}
			e := validEntry(w.tripID)
			e.ID = w.entryID
			return e, nil
		},
		create: func(_ context.Context, e domain.Entry) (domain.Entry, error) {
			e.ID = uuid.New()
			return e, nil
		},
		update: func(_ context.Context, e domain.Entry) (domain.Entry, error) { return e, nil },
		delete: func(context.Context, uuid.UUID) error { return nil },
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Entry, error) {
			return nil, nil
		},
	}
	w.svc = service.NewEntryService(w.trips, w.entries)
	return w
}

func TestEntryService_Create_Valid(t *testing.T) {
	w := newEntryWorld()

	got, err := w.svc.Create(context.Background(), w.owner, validEntry(w.tripID))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, w.tripID, got.TripID)
}

func TestEntryService_Create_ForeignTrip(t *testing.T) {
	w := newEntryWorld()
	w.entries.create = func(context.Context, domain.Entry) (domain.Entry, error) {
		t.Fatal("create must not run for a foreign trip")
		return domain.Entry{}, nil
	}

	_, err := w.svc.Create(context.Background(), uuid.New(), validEntry(w.tripID))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Entry)
		want   string
	}{
		{"short title", func(e *domain.Entry) { e.Title = " a " }, "title must be at least 2 characters"},
		{"short content", func(e *domain.Entry) { e.Content = "too short" }, "content must be at least 10 characters"},
		{"padded content", func(e *domain.Entry) { e.Content = "   nine ch   " }, "content must be at least 10 characters"},
		{"missing date", func(e *domain.Entry) { e.Date = domain.Entry{}.Date }, "date is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newEntryWorld()
			e := validEntry(w.tripID)
			tc.mutate(&e)

			_, err := w.svc.Create(context.Background(), w.owner, e)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Problems, tc.want)
		})
	}
}

func TestEntryService_ListByTrip(t *testing.T) {
	w := newEntryWorld()

	got, err := w.svc.ListByTrip(context.Background(), w.owner, w.tripID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEntryService_ListByTrip_ForeignTrip(t *testing.T) {
	w := newEntryWorld()
	w.entries.listByTripID = func(context.Context, uuid.UUID) ([]domain.Entry, error) {
		t.Fatal("entries of a foreign trip must not be loaded")
		return nil, nil
	}

	_, err := w.svc.ListByTrip(context.Background(), uuid.New(), w.tripID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_GetByID(t *testing.T) {
	w := newEntryWorld()

	got, err := w.svc.GetByID(context.Background(), w.owner, w.entryID)

	require.NoError(t, err)
	assert.Equal(t, w.entryID, got.ID)
}

// Every entry operation shares one authorization check: a missing entry and
// an entry on someone else's trip are both reported as not found.
func TestEntryService_Authorization(t *testing.T) {
	stranger := uuid.New()
	title := "Changed"

	ops := map[string]func(w *entryWorld, caller, id uuid.UUID) error{
		"get": func(w *entryWorld, caller, id uuid.UUID) error {
			_, err := w.svc.GetByID(context.Background(), caller, id)
			return err
		},
		"update": func(w *entryWorld, caller, id uuid.UUID) error {
			_, err := w.svc.Update(context.Background(), caller, id, domain.EntryPatch{Title: &title})
			return err
		},
		"delete": func(w *entryWorld, caller, id uuid.UUID) error {
			return w.svc.Delete(context.Background(), caller, id)
		},
	}

	for name, op := range ops {
		t.Run(name+"/foreign", func(t *testing.T) {
			w := newEntryWorld()
			assert.ErrorIs(t, op(w, stranger, w.entryID), domain.ErrNotFound)
		})
		t.Run(name+"/missing", func(t *testing.T) {
			w := newEntryWorld()
			assert.ErrorIs(t, op(w, w.owner, uuid.New()), domain.ErrNotFound)
		})
		t.Run(name+"/owner", func(t *testing.T) {
			w := newEntryWorld()
			assert.NoError(t, op(w, w.owner, w.entryID))
		})
	}
}

func TestEntryService_Delete_ForeignNeverDeletes(t *testing.T) {
	w := newEntryWorld()
	w.entries.delete = func(context.Context, uuid.UUID) error {
		t.Fatal("delete must not run for a foreign entry")
		return nil
	}

	err := w.svc.Delete(context.Background(), uuid.New(), w.entryID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_Update_PresenceBased(t *testing.T) {
	w := newEntryWorld()

	photo := "https://example.com/p.jpg"
	got, err := w.svc.Update(context.Background(), w.owner, w.entryID, domain.EntryPatch{PhotoURL: &photo})

	require.NoError(t, err)
	assert.Equal(t, photo, got.PhotoURL)
	assert.Equal(t, "Day one", got.Title)
	assert.Equal(t, w.tripID, got.TripID)
}

func TestEntryService_Update_InvalidMerge(t *testing.T) {
	w := newEntryWorld()

	short := "meh"
	_, err := w.svc.Update(context.Background(), w.owner, w.entryID, domain.EntryPatch{Content: &short})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
