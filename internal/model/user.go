package model

import "time"

// Experience levels stored in users.experience_level.
const (
	ExperienceBeginner     = "PRINCIPIANTE"
	ExperienceIntermediate = "INTERMEDIO"
	ExperienceAdvanced     = "AVANZATO"
)

// User represents a course participant as stored in the `users` table.
// Users are managed by the back office and enroll in courses; they do
// not authenticate against this API.  Deactivation is preferred over
// deletion so that historical enrollments keep a valid reference.
//
// Fields:
//
//	ID              – primary key identifier.
//	Name            – first name.
//	Surname         – last name.
//	Email           – unique email address.
//	ExperienceLevel – PRINCIPIANTE, INTERMEDIO or AVANZATO.
//	IsActive        – whether the account is active; inactive users cannot enroll.
//	CreatedAt       – timestamp of creation.
//	UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64    // users.id
	Name            string    // users.name
	Surname         string    // users.surname
	Email           string    // users.email
	ExperienceLevel string    // users.experience_level
	IsActive        bool      // users.is_active
	CreatedAt       time.Time // users.created_at
	UpdatedAt       time.Time // users.updated_at
}
