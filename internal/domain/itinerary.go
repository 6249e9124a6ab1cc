package domain

import "time"

// BudgetLevel is the spending style an itinerary is planned for.
type BudgetLevel string

const (
	BudgetLevelBudget   BudgetLevel = "budget"
	BudgetLevelMidrange BudgetLevel = "midrange"
	BudgetLevelLuxury   BudgetLevel = "luxury"
)

// MaxItineraryDays bounds both an explicit day count and a date-range span.
const MaxItineraryDays = 30

// ItineraryRequest holds the structured inputs of a generated itinerary.
// Days takes precedence over the date range when both are supplied.
type ItineraryRequest struct {
	Destination string
	Days        *int
	StartDate   *time.Time
	EndDate     *time.Time
	Style       string
	BudgetLevel BudgetLevel
}

// PlanRequest asks for an itinerary that is saved as a new trip with the
// itinerary text as its first entry.
type PlanRequest struct {
	Itinerary ItineraryRequest
	Name      string
	Budget    float64
}

// Plan is the outcome of a saved plan: the generated text plus the two
// records written for it.
type Plan struct {
	Itinerary string
	Trip      Trip
	Entry     Entry
}
