package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusSuccessful = "SUCCESSFUL"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusPending    = "PENDING"
)

type Payment struct {
	ID           uuid.UUID `json:"id"`
	AllocationID uuid.UUID `json:"allocation_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
