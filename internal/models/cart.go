package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem snapshots price, image and the stock ceiling at add-time.
// MaxQuantity is informational only; the live stock read at checkout is
// authoritative.
type CartItem struct {
	MedicineID  uuid.UUID       `json:"medicine_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageURL    string          `json:"image_url"`
	MaxQuantity int             `json:"max_quantity"`
}

// Cart is session-scoped state held in the session store, keyed by the
// session ID carried in the caller's token. It is never written to Postgres.
type Cart struct {
	SessionID string              `json:"session_id"`
	Items     map[string]CartItem `json:"items"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     make(map[string]CartItem),
		UpdatedAt: time.Now(),
	}
}

type AddItemRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"required"`
	Quantity   int       `json:"quantity"`
}

type RemoveItemRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"required"`
}

type CartLine struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	ImageURL   string          `json:"image_url"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
