// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current chef is not
// authorized to operate on a resource owned by someone else, while
// ErrConflict signals that an operation cannot proceed due to the
// current state of dependent records (e.g. deleting a course that
// still has enrollments).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update or delete cannot be
// performed because of conflicting state, such as cancelling an
// enrollment that is not active or deleting a course that still
// has enrollments. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")
