package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roamlog/backend/internal/auth"
	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/handler"
)

// Hand-written test doubles for the handler's Servicer interfaces.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	signup      func(ctx context.Context, username, password string) (domain.Session, error)
	login       func(ctx context.Context, username, password string) (domain.Session, error)
	currentUser func(token string) *domain.Identity
}

func (m *mockAuthServicer) Signup(ctx context.Context, u, p string) (domain.Session, error) {
	return m.signup(ctx, u, p)
}
func (m *mockAuthServicer) Login(ctx context.Context, u, p string) (domain.Session, error) {
	return m.login(ctx, u, p)
}
func (m *mockAuthServicer) CurrentUser(token string) *domain.Identity { return m.currentUser(token) }

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockTripServicer struct {
	list    func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	create  func(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Create(ctx context.Context, userID uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) Update(ctx context.Context, userID, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, userID, id, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockEntryServicer struct {
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Entry, error)
	create     func(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Entry, error)
	update     func(ctx context.Context, userID, id uuid.UUID, patch domain.EntryPatch) (domain.Entry, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockEntryServicer) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Entry, error) {
	return m.listByTrip(ctx, userID, tripID)
}
func (m *mockEntryServicer) Create(ctx context.Context, userID uuid.UUID, e domain.Entry) (domain.Entry, error) {
	return m.create(ctx, userID, e)
}
func (m *mockEntryServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Entry, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockEntryServicer) Update(ctx context.Context, userID, id uuid.UUID, p domain.EntryPatch) (domain.Entry, error) {
	return m.update(ctx, userID, id, p)
}
func (m *mockEntryServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

var _ handler.EntryServicer = (*mockEntryServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockPlannerServicer struct {
	generate func(ctx context.Context, req domain.ItineraryRequest) (string, error)
	plan     func(ctx context.Context, userID uuid.UUID, req domain.PlanRequest) (domain.Plan, error)
}

func (m *mockPlannerServicer) Generate(ctx context.Context, req domain.ItineraryRequest) (string, error) {
	return m.generate(ctx, req)
}
func (m *mockPlannerServicer) Plan(ctx context.Context, userID uuid.UUID, req domain.PlanRequest) (domain.Plan, error) {
	return m.plan(ctx, userID, req)
}

var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const testSecret = "handler-test-secret"

var testTokens = auth.NewTokens(testSecret, time.Hour)

// newHTTPHandler wires a Server with the given deps into its chi router.
// Tokens and a discarding logger are filled in when absent.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Tokens == nil {
		d.Tokens = testTokens
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(d).Routes()
}

// newRequest builds a request with an optional JSON body. A non-nil body of
// type string is sent verbatim.
func newRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// asUser attaches a valid session cookie for userID.
func asUser(t *testing.T, req *http.Request, userID uuid.UUID) *http.Request {
	t.Helper()
	token, _, err := testTokens.Issue(domain.Identity{UserID: userID, Username: "alice"})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) handler.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[handler.ErrorResponse](t, rec)
	require.Equal(t, code, body.Code)
	return body
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func tripFixture(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		UserID:    owner,
		Name:      "Lisbon",
		Location:  "Portugal",
		StartDate: day("2025-05-01"),
		EndDate:   day("2025-05-10"),
		Budget:    1200,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func entryFixture(tripID uuid.UUID) domain.Entry {
	return domain.Entry{
		ID:        uuid.New(),
		TripID:    tripID,
		Title:     "Day one",
		Content:   "Walked all over Alfama and ate pasteis.",
		Date:      day("2025-05-01"),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}
