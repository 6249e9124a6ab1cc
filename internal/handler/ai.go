package handler

import (
	"net/http"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

type itineraryRequest struct {
	Destination string  `json:"destination" validate:"required"`
	Days        *int    `json:"days"`
	StartDate   *string `json:"startDate" validate:"omitnil,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitnil,datetime=2006-01-02"`
	Style       string  `json:"style"`
	BudgetLevel string  `json:"budgetLevel" validate:"omitempty,oneof=budget midrange luxury"`
}

func (req itineraryRequest) toDomain() domain.ItineraryRequest {
	return domain.ItineraryRequest{
		Destination: req.Destination,
		Days:        req.Days,
		StartDate:   parseDatePtr(req.StartDate),
		EndDate:     parseDatePtr(req.EndDate),
		Style:       req.Style,
		BudgetLevel: domain.BudgetLevel(req.BudgetLevel),
	}
}

type planRequest struct {
	itineraryRequest
	Name   string     `json:"name"`
	Budget flexNumber `json:"budget"`
}

// GenerateItinerary handles POST /ai/itinerary. The text is returned for
// preview only; nothing is stored.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, "")
		return
	}

	text, err := s.planner.Generate(r.Context(), req.toDomain())
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{Itinerary: text})
}

// CreatePlan handles POST /ai/plans. It generates an itinerary and saves it
// as a new trip whose first entry holds the text.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, "")
		return
	}

	plan, err := s.planner.Plan(r.Context(), callerID(r), domain.PlanRequest{
		Itinerary: req.toDomain(),
		Name:      req.Name,
		Budget:    float64(req.Budget),
	})
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, PlanResponse{
		Itinerary: plan.Itinerary,
		Trip:      tripToResponse(plan.Trip),
		Entry:     entryToResponse(plan.Entry),
	})
}
