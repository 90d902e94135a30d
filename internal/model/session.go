package model

import "time"

// Modality distinguishes theory sessions held online from practical
// sessions held in person.  The values are the ones persisted in
// sessions.modality.  Legacy rows may carry "pratica" as a synonym for
// in person; reporting collapses both into ModalityInPerson.
type Modality string

const (
	ModalityOnline   Modality = "online"
	ModalityInPerson Modality = "presenza"
)

// Valid reports whether the modality is one of the recognised values.
func (m Modality) Valid() bool {
	return m == ModalityOnline || m == ModalityInPerson
}

// Session is one scheduled meeting of a course as stored in the
// `sessions` table.  The full set of a course's sessions is created in a
// single transaction when the course is created; afterwards individual
// sessions may be edited but never renumbered.
//
// Fields:
//
//	ID              – primary key identifier.
//	CourseID        – owning course.
//	SequenceNumber  – position within the course (1..N, contiguous).
//	Date            – day the session is held; never before the course start date.
//	Modality        – online (theory) or presenza (practical).
//	Title           – session title.
//	Description     – free-form description.
//	DurationMinutes – planned duration in minutes.
//	Completed       – whether the session has been held.
//	CreatedAt       – timestamp of creation.
type Session struct {
	ID              uint64    // sessions.id
	CourseID        uint64    // sessions.course_id
	SequenceNumber  int       // sessions.sequence_number
	Date            time.Time // sessions.session_date (DATE)
	Modality        Modality  // sessions.modality
	Title           string    // sessions.title
	Description     string    // sessions.description
	DurationMinutes int       // sessions.duration_minutes
	Completed       bool      // sessions.completed
	CreatedAt       time.Time // sessions.created_at
}

// SessionRecipe links a practical session to a recipe prepared during
// it.  The pair (SessionID, RecipeID) is unique; ExecutionOrder sorts
// the recipes within the session.
//
// Fields:
//
//	SessionID      – session the recipe is prepared in.
//	RecipeID       – recipe being prepared.
//	ExecutionOrder – 1-based position in the session's lineup.
type SessionRecipe struct {
	SessionID      uint64 // session_recipes.session_id
	RecipeID       uint64 // session_recipes.recipe_id
	ExecutionOrder int    // session_recipes.execution_order
}
