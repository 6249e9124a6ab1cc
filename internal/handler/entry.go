package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

const entryNotFound = "Entry not found"

type createEntryRequest struct {
	TripID   string `json:"tripId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

type updateEntryRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Date     *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	PhotoURL *string `json:"photoUrl"`
}

// ListEntries handles GET /entries?tripId=.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDQuery(r)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	entries, err := s.entries.ListByTrip(r.Context(), callerID(r), tripID)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: entriesToResponse(entries)})
}

// CreateEntry handles POST /entries. The target trip must belong to the caller.
func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		writeError(w, http.StatusNotFound, tripNotFound, "not_found")
		return
	}

	created, err := s.entries.Create(r.Context(), callerID(r), domain.Entry{
		TripID:   tripID,
		Title:    req.Title,
		Content:  req.Content,
		Date:     parseDate(req.Date),
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, EntryResponse{Entry: entryToResponse(created)})
}

// GetEntry handles GET /entries/{id}.
func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}

	entry, err := s.entries.GetByID(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Entry: entryToResponse(entry)})
}

// UpdateEntry handles PUT /entries/{id}.
func (s *Server) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}

	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}
	if err := s.checkURL("photoUrl", req.PhotoURL); err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}

	updated, err := s.entries.Update(r.Context(), callerID(r), id, domain.EntryPatch{
		Title:    req.Title,
		Content:  req.Content,
		Date:     parseDatePtr(req.Date),
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Entry: entryToResponse(updated)})
}

// DeleteEntry handles DELETE /entries/{id}.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}

	if err := s.entries.Delete(r.Context(), callerID(r), id); err != nil {
		s.fail(w, r, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
