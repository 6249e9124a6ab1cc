package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
	"github.com/pkordes/roamlog/backend/testutil"
)

type tripRepos struct {
	users   repo.UserRepo
	trips   repo.TripRepo
	entries repo.EntryRepo
}

// newTestRepos opens a rolled-back transaction and builds every repo on it.
func newTestRepos(t *testing.T) tripRepos {
	t.Helper()
	tx := testutil.NewTx(t)
	return tripRepos{
		users:   repo.NewUserRepo(tx),
		trips:   repo.NewTripRepo(tx),
		entries: repo.NewEntryRepo(tx),
	}
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		UserID:    userID,
		Name:      "Japan",
		Location:  "Tokyo",
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Budget:    1000,
		Notes:     "Test notes",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := createUser(t, r.users)

	input := tripFixture(owner.ID)
	got, err := r.trips.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Location, got.Location)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, 1000.0, got.Budget)
	assert.Equal(t, "", got.ImageURL)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_GetByID_ScopedToOwner(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	alice := createUser(t, r.users)
	bob := createUser(t, r.users)

	created, err := r.trips.Create(ctx, tripFixture(alice.ID))
	require.NoError(t, err)

	got, err := r.trips.GetByID(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = r.trips.GetByID(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "another user's trip must look absent")
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)
	owner := createUser(t, r.users)

	_, err := r.trips.GetByID(context.Background(), owner.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUser_OrderedByStartDate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := createUser(t, r.users)
	other := createUser(t, r.users)

	later := tripFixture(owner.ID)
	later.Name = "Later"
	later.StartDate = later.StartDate.AddDate(0, 1, 0)
	later.EndDate = later.EndDate.AddDate(0, 1, 0)

	earlier := tripFixture(owner.ID)
	earlier.Name = "Earlier"

	_, err := r.trips.Create(ctx, later)
	require.NoError(t, err)
	_, err = r.trips.Create(ctx, earlier)
	require.NoError(t, err)
	_, err = r.trips.Create(ctx, tripFixture(other.ID))
	require.NoError(t, err)

	trips, err := r.trips.ListByUser(ctx, owner.ID)

	require.NoError(t, err)
	require.Len(t, trips, 2, "only the owner's trips are listed")
	assert.Equal(t, "Earlier", trips[0].Name)
	assert.Equal(t, "Later", trips[1].Name)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := createUser(t, r.users)

	created, err := r.trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	created.Name = "Updated Name"
	created.Notes = ""
	created.Budget = 0
	created.ImageURL = "https://example.com/fuji.jpg"

	updated, err := r.trips.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "", updated.Notes)
	assert.Equal(t, 0.0, updated.Budget)
	assert.Equal(t, "https://example.com/fuji.jpg", updated.ImageURL)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_OtherOwner(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	alice := createUser(t, r.users)
	bob := createUser(t, r.users)

	created, err := r.trips.Create(ctx, tripFixture(alice.ID))
	require.NoError(t, err)

	hijack := created
	hijack.UserID = bob.ID
	hijack.Name = "Stolen"

	_, err = r.trips.Update(ctx, hijack)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.trips.GetByID(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Japan", got.Name, "trip must be unchanged")
}

func TestTripRepo_Delete_CascadesToEntries(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := createUser(t, r.users)

	trip, err := r.trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)
	entry, err := r.entries.Create(ctx, entryFixture(trip.ID))
	require.NoError(t, err)

	require.NoError(t, r.trips.Delete(ctx, owner.ID, trip.ID))

	_, err = r.trips.GetByID(ctx, owner.ID, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
	_, err = r.entries.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "entries go with their trip")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	alice := createUser(t, r.users)
	bob := createUser(t, r.users)

	created, err := r.trips.Create(ctx, tripFixture(alice.ID))
	require.NoError(t, err)

	assert.ErrorIs(t, r.trips.Delete(ctx, bob.ID, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, r.trips.Delete(ctx, alice.ID, uuid.New()), domain.ErrNotFound)
}
