package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VaultStatusOperational = "OPERATIONAL"
	VaultStatusMaintenance = "MAINTENANCE"
	VaultStatusClosed      = "CLOSED"
)

// Vault is a physical facility containing lockers. The counters are only
// ever touched inside the locked AddLocker/Allocate transactions, so
// 0 <= AvailableLockers <= TotalLockers holds after every commit.
type Vault struct {
	ID               uuid.UUID `json:"id"`
	Location         string    `json:"location"`
	TotalLockers     int       `json:"total_lockers"`
	AvailableLockers int       `json:"available_lockers"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
