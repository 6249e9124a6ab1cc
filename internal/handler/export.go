package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_location", "trip_start_date", "trip_end_date", "trip_budget",
	"entry_title", "entry_date", "entry_content", "entry_photo_url",
}

// ExportTrip handles GET /trips/{id}/export.
// It returns one flat row per journal entry of the trip.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be one of json, csv", "validation_error")
		return
	}

	rows, err := s.export.Export(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	if format == "csv" {
		writeCSV(w, id, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as a CSV attachment.
func writeCSV(w http.ResponseWriter, tripID uuid.UUID, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer.Write never fails, so neither does csv.Writer here.
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.csv"`, tripID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToResponse maps a domain.ExportRow to the JSON row.
// Entry fields that are empty become nil pointers (omitted in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)

	row := ExportRow{
		TripID:        tripID,
		TripName:      r.TripName,
		TripLocation:  r.TripLocation,
		TripStartDate: mustParseDate(r.TripStartDate),
		TripEndDate:   mustParseDate(r.TripEndDate),
		TripBudget:    r.TripBudget,
	}
	if r.EntryTitle != "" {
		row.EntryTitle = &r.EntryTitle
	}
	if r.EntryDate != "" {
		d := mustParseDate(r.EntryDate)
		row.EntryDate = &d
	}
	if r.EntryContent != "" {
		row.EntryContent = &r.EntryContent
	}
	if r.EntryPhoto != "" {
		row.EntryPhotoURL = &r.EntryPhoto
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.TripLocation,
		r.TripStartDate,
		r.TripEndDate,
		strconv.FormatFloat(r.TripBudget, 'f', -1, 64),
		r.EntryTitle,
		r.EntryDate,
		r.EntryContent,
		r.EntryPhoto,
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
