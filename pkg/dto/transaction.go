package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddAssetRequest struct {
	Name           string  `json:"name"`
	EstimatedValue float64 `json:"estimated_value"`
	Type           string  `json:"type"`
}

type AssetResponse struct {
	ID             uuid.UUID `json:"id"`
	AllocationID   uuid.UUID `json:"allocation_id"`
	Name           string    `json:"name"`
	EstimatedValue float64   `json:"estimated_value"`
	Type           string    `json:"type"`
}

type TransactionResponse struct {
	ID           uuid.UUID `json:"id"`
	AllocationID uuid.UUID `json:"allocation_id"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

type PayRentRequest struct {
	Amount float64 `json:"amount"`
}

type PaymentResponse struct {
	ID           uuid.UUID `json:"id"`
	AllocationID uuid.UUID `json:"allocation_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
