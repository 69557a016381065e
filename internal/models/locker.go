package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LockerSizeSmall  = "SMALL"
	LockerSizeMedium = "MEDIUM"
	LockerSizeLarge  = "LARGE"
)

const (
	LockerStatusAvailable   = "AVAILABLE"
	LockerStatusAllocated   = "ALLOCATED"
	LockerStatusMaintenance = "MAINTENANCE"
)

type Locker struct {
	ID           uuid.UUID `json:"id"`
	VaultID      uuid.UUID `json:"vault_id"`
	LockerNumber string    `json:"locker_number"`
	Size         string    `json:"size"`
	Status       string    `json:"status"`
	MonthlyRent  float64   `json:"monthly_rent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidLockerSize(size string) bool {
	switch size {
	case LockerSizeSmall, LockerSizeMedium, LockerSizeLarge:
		return true
	}
	return false
}
