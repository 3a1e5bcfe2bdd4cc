package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Payment struct {
	ID          int           `json:"id" db:"id"`
	ChildID     int           `json:"child_id" db:"child_id"`
	Concept     string        `json:"concept" db:"concept"`
	AmountCents int           `json:"amount_cents" db:"amount_cents"`
	Status      PaymentStatus `json:"status" db:"status"`
	Reference   string        `json:"reference" db:"reference"`
	PaidAt      *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
