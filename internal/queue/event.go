// Package queue defines message payloads exchanged over the message broker.
package queue

// EnrollmentRecordedEvent is published whenever the enrollment ledger
// changes: a new enrollment, a completion or a cancellation. It carries
// enough information for downstream consumers to build an audit trail
// without querying the primary database.
type EnrollmentRecordedEvent struct {
	EnrollmentID uint64 `json:"enrollment_id"`
	UserID       uint64 `json:"user_id"`
	UserName     string `json:"user_name"`
	CourseID     uint64 `json:"course_id"`
	CourseTitle  string `json:"course_title"`
	ChefID       uint64 `json:"chef_id"`
	Action       string `json:"action"` // enrolled | completed | cancelled
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	PriceCents   uint32 `json:"price_cents"`
	RecordedAt   string `json:"recorded_at"`
}
