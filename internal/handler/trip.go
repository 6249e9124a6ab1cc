package handler

import (
	"net/http"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

const tripNotFound = "Trip not found"

type createTripRequest struct {
	Name      string     `json:"name" validate:"required"`
	Location  string     `json:"location" validate:"required"`
	StartDate string     `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string     `json:"endDate" validate:"required,datetime=2006-01-02"`
	Budget    flexNumber `json:"budget"`
	Notes     string     `json:"notes"`
	ImageURL  string     `json:"imageUrl" validate:"omitempty,url"`
}

// updateTripRequest only changes the fields present in the body. A JSON null
// counts as absent.
type updateTripRequest struct {
	Name      *string     `json:"name"`
	Location  *string     `json:"location"`
	StartDate *string     `json:"startDate" validate:"omitnil,datetime=2006-01-02"`
	EndDate   *string     `json:"endDate" validate:"omitnil,datetime=2006-01-02"`
	Budget    *flexNumber `json:"budget"`
	Notes     *string     `json:"notes"`
	ImageURL  *string     `json:"imageUrl"`
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), callerID(r))
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, TripListResponse{Trips: tripsToResponse(trips)})
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	created, err := s.trips.Create(r.Context(), callerID(r), domain.Trip{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		Budget:    float64(req.Budget),
		Notes:     req.Notes,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, TripResponse{Trip: tripToResponse(created)})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, TripResponse{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	if err := s.checkURL("imageUrl", req.ImageURL); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	updated, err := s.trips.Update(r.Context(), callerID(r), id, domain.TripPatch{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: parseDatePtr(req.StartDate),
		EndDate:   parseDatePtr(req.EndDate),
		Budget:    req.Budget.ptr(),
		Notes:     req.Notes,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, TripResponse{Trip: tripToResponse(updated)})
}

// DeleteTrip handles DELETE /trips/{id}. The trip's entries go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	if err := s.trips.Delete(r.Context(), callerID(r), id); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
