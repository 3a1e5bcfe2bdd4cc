package models

import "time"

type CheckInMethod string

const (
	CheckInManual CheckInMethod = "manual"
	CheckInFacial CheckInMethod = "facial"
)

// CheckIn records a single attendance event for a child. When the method is
// facial, Confidence carries the score reported by the external recognition
// collaborator; it is stored opaquely and never interpreted here.
type CheckIn struct {
	ID         int           `json:"id" db:"id"`
	ChildID    int           `json:"child_id" db:"child_id"`
	Date       time.Time     `json:"date" db:"date"`
	Method     CheckInMethod `json:"method" db:"method"`
	Confidence *float64      `json:"confidence,omitempty" db:"confidence"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}
