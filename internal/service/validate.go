package service

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// problems accumulates rule violations so a single ValidationError can
// report all of them at once.
type problems []string

func (p *problems) minLen(field, value string, n int) {
	if value == "" {
		*p = append(*p, field+" is required")
		return
	}
	if utf8.RuneCountInString(value) < n {
		*p = append(*p, fmt.Sprintf("%s must be at least %d characters", field, n))
	}
}

func (p *problems) add(msg string) {
	*p = append(*p, msg)
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return domain.Invalid(p...)
}

// normalizeTrip trims text fields and clamps the budget to a finite,
// non-negative number. Bad budgets are coerced, never rejected.
func normalizeTrip(t domain.Trip) domain.Trip {
	t.Name = strings.TrimSpace(t.Name)
	t.Location = strings.TrimSpace(t.Location)
	t.ImageURL = strings.TrimSpace(t.ImageURL)
	t.Budget = clampBudget(t.Budget)
	return t
}

func clampBudget(b float64) float64 {
	if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
		return 0
	}
	return b
}

// validateTrip enforces business rules common to Create and Update.
//   - Name and Location must be at least 2 characters after trimming.
//   - Both dates must be set, and EndDate must not be before StartDate.
func validateTrip(t domain.Trip) error {
	var p problems
	p.minLen("name", t.Name, 2)
	p.minLen("location", t.Location, 2)
	if t.StartDate.IsZero() {
		p.add("startDate is required")
	}
	if t.EndDate.IsZero() {
		p.add("endDate is required")
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		p.add("endDate must not be before startDate")
	}
	return p.err()
}

func normalizeEntry(e domain.Entry) domain.Entry {
	e.Title = strings.TrimSpace(e.Title)
	e.Content = strings.TrimSpace(e.Content)
	e.PhotoURL = strings.TrimSpace(e.PhotoURL)
	return e
}

// validateEntry enforces business rules common to Create and Update.
//   - Title must be at least 2 characters, Content at least 10, after trimming.
//   - Date must be set.
func validateEntry(e domain.Entry) error {
	var p problems
	p.minLen("title", e.Title, 2)
	p.minLen("content", e.Content, 10)
	if e.Date.IsZero() {
		p.add("date is required")
	}
	return p.err()
}
