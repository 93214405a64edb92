package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Medicine struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Components    string          `json:"components"`
	ProductNumber string          `json:"product_number"`
	Quantity      int             `json:"quantity"`
	CompanyName   string          `json:"company_name"`
	Power         string          `json:"power"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateMedicineRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=200"`
	Components    string `json:"components" validate:"required"`
	ProductNumber string `json:"product_number" validate:"required,min=3,max=100"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	CompanyName   string `json:"company_name" validate:"required,max=200"`
	Power         string `json:"power" validate:"required,max=50"`
	Price         string `json:"price" validate:"required"`
	ImageURL      string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// Only fields present in the request are applied; nil means "leave as is".
type UpdateMedicineRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Components  *string `json:"components,omitempty"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	Power       *string `json:"power,omitempty" validate:"omitempty,max=50"`
	Price       *string `json:"price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// Mutation result payload for the product management API.
type MedicineMutationResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Medicine *Medicine `json:"medicine,omitempty"`
}

// Drug label information from the enrichment lookup. Every field falls back
// to fixed text when the lookup cannot provide it.
type DrugInfo struct {
	Description string `json:"description"`
	Uses        string `json:"uses"`
	SideEffects string `json:"side_effects"`
	Precautions string `json:"precautions"`
}

type MedicineDetailResponse struct {
	Medicine *Medicine `json:"medicine"`
	DrugInfo *DrugInfo `json:"drug_info"`
}
