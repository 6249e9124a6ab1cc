package domain

// ExportRow is a single row in a trip journal export.
// It is a flat, denormalized view: one row per entry, with trip fields repeated
// for every entry on that trip. A trip with no entries yields one row with
// zero values for all entry fields.
type ExportRow struct {
	// Trip fields, repeated for every entry on the trip.
	TripID        string
	TripName      string
	TripLocation  string
	TripStartDate string // "2006-01-02" formatted date
	TripEndDate   string
	TripBudget    float64

	// Entry fields, empty when the trip has no entries.
	EntryTitle   string
	EntryDate    string
	EntryContent string
	EntryPhoto   string
}
