package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLockerRequest struct {
	LockerNumber string  `json:"locker_number"`
	Size         string  `json:"size"`
	MonthlyRent  float64 `json:"monthly_rent"`
}

type LockerResponse struct {
	ID           uuid.UUID `json:"id"`
	VaultID      uuid.UUID `json:"vault_id"`
	LockerNumber string    `json:"locker_number"`
	Size         string    `json:"size"`
	Status       string    `json:"status"`
	MonthlyRent  float64   `json:"monthly_rent"`
}

type AllocateLockerRequest struct {
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

type AllocationResponse struct {
	ID          uuid.UUID `json:"id"`
	LockerID    uuid.UUID `json:"locker_id"`
	UserID      uuid.UUID `json:"user_id"`
	AllocatedAt time.Time `json:"allocated_at"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Status      string    `json:"status"`
}
