// Package service holds the business rules sitting between the HTTP
// handlers and the repositories: timetable generation, the enrollment
// ledger's transition rules and the report derivations. Services return
// sentinel errors so handlers can map outcomes to status codes without
// inspecting strings.
package service

import "errors"

// ErrValidation is returned when input fails a business rule check.
// It is usually wrapped with a message describing the offending field.
var ErrValidation = errors.New("validation failed")

// ErrCourseNotActive is returned when enrolling into a course that is
// not open for enrollment (draft, completed or suspended).
var ErrCourseNotActive = errors.New("course not active")

// ErrCourseFull is returned when the course has reached its
// max_participants count of active enrollments.
var ErrCourseFull = errors.New("course full")

// ErrDuplicateEnrollment is returned when the user already holds an
// active or completed enrollment in the course.
var ErrDuplicateEnrollment = errors.New("duplicate enrollment")

// ErrUserInactive is returned when the participant account has been
// deactivated.
var ErrUserInactive = errors.New("user inactive")

// ErrNotPractical is returned when linking a recipe to a session that
// is not held in person. Recipes are prepared live, so online theory
// sessions cannot carry them.
var ErrNotPractical = errors.New("session not practical")
