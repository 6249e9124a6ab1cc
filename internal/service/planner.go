package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
)

const (
	systemPrompt      = "You are an expert travel planner."
	fallbackItinerary = "Couldn't generate itinerary."
	planEntryTitle    = "AI Itinerary"
)

// Completer sends one chat prompt to a language model and returns the reply
// text. *planner.Client implements it.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// TxRunner runs trip and entry writes in one transaction. *repo.TxStore
// implements it.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(trips repo.TripRepo, entries repo.EntryRepo) error) error
}

// PlannerService generates travel itineraries and optionally saves them as a
// new trip.
type PlannerService struct {
	completer Completer
	tx        TxRunner
}

// NewPlannerService constructs a PlannerService. completer may be nil when no
// provider is configured; every generation then fails with
// domain.ErrProviderNotConfigured.
func NewPlannerService(completer Completer, tx TxRunner) *PlannerService {
	return &PlannerService{completer: completer, tx: tx}
}

// Generate validates req, asks the provider for an itinerary and returns the
// text unchanged.
func (s *PlannerService) Generate(ctx context.Context, req domain.ItineraryRequest) (string, error) {
	req, err := normalizeItinerary(req)
	if err != nil {
		return "", fmt.Errorf("service.PlannerService.Generate: %w", err)
	}

	text, err := s.complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("service.PlannerService.Generate: %w", err)
	}
	return text, nil
}

// Plan generates an itinerary and stores it as a new trip owned by userID,
// with the itinerary text as the trip's first entry. Nothing is written when
// generation fails, and both writes roll back together when either fails.
func (s *PlannerService) Plan(ctx context.Context, userID uuid.UUID, req domain.PlanRequest) (domain.Plan, error) {
	itin, err := normalizeItinerary(req.Itinerary)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}
	if itin.StartDate == nil || itin.EndDate == nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.Plan: %w",
			domain.Invalid("startDate and endDate are required to save a plan"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Trip to " + itin.Destination
	}
	trip := normalizeTrip(domain.Trip{
		UserID:    userID,
		Name:      name,
		Location:  itin.Destination,
		StartDate: *itin.StartDate,
		EndDate:   *itin.EndDate,
		Budget:    req.Budget,
	})
	if err := validateTrip(trip); err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}

	text, err := s.complete(ctx, itin)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}

	plan := domain.Plan{Itinerary: text}
	err = s.tx.WithinTx(ctx, func(trips repo.TripRepo, entries repo.EntryRepo) error {
		created, err := trips.Create(ctx, trip)
		if err != nil {
			return err
		}
		entry, err := entries.Create(ctx, domain.Entry{
			TripID:  created.ID,
			Title:   planEntryTitle,
			Content: text,
			Date:    created.StartDate,
		})
		if err != nil {
			return err
		}
		plan.Trip, plan.Entry = created, entry
		return nil
	})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}
	return plan, nil
}

func (s *PlannerService) complete(ctx context.Context, req domain.ItineraryRequest) (string, error) {
	if s.completer == nil {
		return "", domain.ErrProviderNotConfigured
	}

	text, err := s.completer.Complete(ctx, systemPrompt, BuildPrompt(req))
	if err != nil {
		if errors.Is(err, domain.ErrProviderRateLimited) ||
			errors.Is(err, domain.ErrProviderNotConfigured) ||
			errors.Is(err, domain.ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		return fallbackItinerary, nil
	}
	return text, nil
}

// normalizeItinerary trims the destination, fills the default budget level
// and checks the request. The day bound applies to both the explicit day
// count and the span of the date range.
func normalizeItinerary(req domain.ItineraryRequest) (domain.ItineraryRequest, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	req.Style = strings.TrimSpace(req.Style)
	if req.BudgetLevel == "" {
		req.BudgetLevel = domain.BudgetLevelMidrange
	}

	var p problems
	p.minLen("destination", req.Destination, 2)

	if req.Days != nil && (*req.Days < 1 || *req.Days > domain.MaxItineraryDays) {
		p.add(fmt.Sprintf("days must be between 1 and %d", domain.MaxItineraryDays))
	}

	switch {
	case req.StartDate == nil && req.EndDate == nil:
	case req.StartDate == nil || req.EndDate == nil:
		p.add("startDate and endDate must be provided together")
	case req.EndDate.Before(*req.StartDate):
		p.add("endDate must not be before startDate")
	case spanDays(*req.StartDate, *req.EndDate) > domain.MaxItineraryDays:
		p.add(fmt.Sprintf("date range must not exceed %d days", domain.MaxItineraryDays))
	}

	switch req.BudgetLevel {
	case domain.BudgetLevelBudget, domain.BudgetLevelMidrange, domain.BudgetLevelLuxury:
	default:
		p.add("budgetLevel must be one of budget, midrange, luxury")
	}

	return req, p.err()
}

// spanDays counts both endpoints, so a same-day range is one day.
func spanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// BuildPrompt renders the planning prompt for req. The trip length comes from
// Days when set, then from the date range, and otherwise defaults to a 3-5 day
// trip.
func BuildPrompt(req domain.ItineraryRequest) string {
	var duration string
	switch {
	case req.Days != nil && *req.Days == 1:
		duration = "lasting 1 day"
	case req.Days != nil:
		duration = fmt.Sprintf("lasting %d days", *req.Days)
	case req.StartDate != nil && req.EndDate != nil:
		duration = fmt.Sprintf("from %s to %s",
			req.StartDate.Format(domain.DateLayout), req.EndDate.Format(domain.DateLayout))
	default:
		duration = "for a 3-5 day trip"
	}

	style := req.Style
	if style == "" {
		style = "a balanced mix of sightseeing and relaxation"
	}
	level := req.BudgetLevel
	if level == "" {
		level = domain.BudgetLevelMidrange
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a travel itinerary for %s, %s.\n", req.Destination, duration)
	fmt.Fprintf(&b, "Travel style: %s.\n", style)
	fmt.Fprintf(&b, "Budget level: %s.\n\n", level)
	b.WriteString("Requirements:\n")
	b.WriteString("- Organize the plan day by day with a heading for each day.\n")
	b.WriteString("- Suggest 3 to 5 activities per day, each with a one-line description.\n")
	b.WriteString("- Mix food, sightseeing, culture and local experiences.\n")
	fmt.Fprintf(&b, "- End with 3 practical travel tips for %s.\n", req.Destination)
	return b.String()
}
