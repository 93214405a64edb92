package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem freezes the unit price at purchase time. MedicineName is
// denormalized so the row remains meaningful if the medicine is later
// deleted from the catalog.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	MedicineID   uuid.UUID       `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Order is written exactly once per successful checkout and never mutated
// afterwards. There is no pending state: IsCompleted is true at creation.
type Order struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	OrderDate          time.Time       `json:"order_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	FinalAmount        decimal.Decimal `json:"final_amount"`
	IsCompleted        bool            `json:"is_completed"`
	Items              []OrderItem     `json:"items,omitempty"`
}

type CheckoutRequest struct {
	Discount string `json:"discount,omitempty"`
}

type CheckoutResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}
