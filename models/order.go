package models

import "time"

type OrderStatus string

const (
	OrderStatusPlaced   OrderStatus = "placed"
	OrderStatusCanceled OrderStatus = "canceled"
)

type Order struct {
	ID         int         `json:"id" db:"id"`
	GuardianID int         `json:"guardian_id" db:"guardian_id"`
	ProductID  int         `json:"product_id" db:"product_id"`
	Quantity   int         `json:"quantity" db:"quantity"`
	TotalCents int         `json:"total_cents" db:"total_cents"`
	Status     OrderStatus `json:"status" db:"status"`
	Reference  string      `json:"reference" db:"reference"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}
