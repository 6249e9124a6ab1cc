package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
	"github.com/pkordes/roamlog/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field: set only the
// ones your test needs, an unset one panics if called.

type mockUserRepo struct {
	create        func(ctx context.Context, username, hash string) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, hash string) (domain.User, error) {
	return m.create(ctx, username, hash)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockEntryRepo struct {
	create       func(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Entry, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Entry, error)
	update       func(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEntryRepo) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	return m.create(ctx, entry)
}
func (m *mockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	return m.getByID(ctx, id)
}
func (m *mockEntryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Entry, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockEntryRepo) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	return m.update(ctx, entry)
}
func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.EntryRepo = (*mockEntryRepo)(nil)

type mockTokens struct {
	issue  func(id domain.Identity) (string, time.Time, error)
	verify func(token string) (domain.Identity, error)
}

func (m *mockTokens) Issue(id domain.Identity) (string, time.Time, error) { return m.issue(id) }
func (m *mockTokens) Verify(token string) (domain.Identity, error)      { return m.verify(token) }

var _ service.TokenIssuer = (*mockTokens)(nil)

type mockCompleter struct {
	complete func(ctx context.Context, system, prompt string) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return m.complete(ctx, system, prompt)
}

var _ service.Completer = (*mockCompleter)(nil)

// fakeTx runs fn directly against the given repos. committed reports whether
// fn returned nil.
type fakeTx struct {
	trips     repo.TripRepo
	entries   repo.EntryRepo
	calls     int
	committed bool
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(trips repo.TripRepo, entries repo.EntryRepo) error) error {
	f.calls++
	if err := fn(f.trips, f.entries); err != nil {
		return err
	}
	f.committed = true
	return nil
}

var _ service.TxRunner = (*fakeTx)(nil)

// ---- fixtures --------------------------------------------------------------

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func validTrip() domain.Trip {
	return domain.Trip{
		Name:      "Lisbon",
		Location:  "Portugal",
		StartDate: day("2025-05-01"),
		EndDate:   day("2025-05-10"),
		Budget:    1200,
	}
}

func validEntry(tripID uuid.UUID) domain.Entry {
	return domain.Entry{
		TripID:  tripID,
		Title:   "Day one",
		Content: "Walked all over Alfama and ate pasteis.",
		Date:    day("2025-05-01"),
	}
}

// echoTripRepo echoes whatever it receives back, assigning an ID on create.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = uuid.New()
			return t, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ownedTrips returns a trip repo in which only (owner, tripID) exists.
func ownedTrips(owner, tripID uuid.UUID) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, userID, id uuid.UUID) (domain.Trip, error) {
			if userID != owner || id != tripID {
				return domain.Trip{}, domain.ErrNotFound
			}
			t := validTrip()
			t.ID, t.UserID = tripID, owner
			return t, nil
		},
	}
}
