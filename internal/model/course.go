package model

import "time"

// Frequency is the spacing rule used to lay out session dates when a
// course's timetable is generated.  The values are the ones persisted in
// courses.frequency; anything else falls back to weekly during
// generation.
type Frequency string

const (
	FrequencyWeekly       Frequency = "settimanale"
	FrequencyEveryTwoDays Frequency = "ogni_due_giorni"
	FrequencyDaily        Frequency = "giornaliero"
)

// Valid reports whether the frequency is one of the recognised values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyEveryTwoDays, FrequencyDaily:
		return true
	}
	return false
}

// Step returns the number of days between two consecutive sessions.
// Unrecognised frequencies behave as weekly.
func (f Frequency) Step() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyEveryTwoDays:
		return 2
	default:
		return 7
	}
}

// Course statuses stored in courses.status.
const (
	CourseDraft     = "BOZZA"
	CourseActive    = "ATTIVO"
	CourseCompleted = "COMPLETATO"
	CourseSuspended = "SOSPESO"
)

// Course represents a thematic cooking course as stored in the `courses`
// table.  Its timetable of sessions is generated from StartDate,
// Frequency and SessionCount when the course is created.
//
// Fields:
//
//	ID              – primary key identifier.
//	ChefID          – owning chef.
//	CategoryID      – course category.
//	CategoryName    – joined category name (populated by list queries).
//	Title           – course title.
//	Description     – free-form description.
//	StartDate       – date of the first session.
//	Frequency       – spacing rule between sessions.
//	SessionCount    – planned number of sessions (1..50).
//	PriceCents      – enrollment price in cents.
//	DurationHours   – duration of a single session in hours (1..8).
//	MaxParticipants – enrollment capacity (1..50).
//	Status          – BOZZA, ATTIVO, COMPLETATO or SOSPESO.
//	CreatedAt       – timestamp of creation.
type Course struct {
	ID              uint64    // courses.id
	ChefID          uint64    // courses.chef_id
	CategoryID      uint64    // courses.category_id
	CategoryName    string    // categories.name (joined, not persisted here)
	Title           string    // courses.title
	Description     string    // courses.description
	StartDate       time.Time // courses.start_date (DATE)
	Frequency       Frequency // courses.frequency
	SessionCount    int       // courses.session_count
	PriceCents      uint32    // courses.price_cents
	DurationHours   int       // courses.duration_hours
	MaxParticipants int       // courses.max_participants
	Status          string    // courses.status
	CreatedAt       time.Time // courses.created_at
}
