package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypeDeposit  = "DEPOSIT"
	TransactionTypeWithdraw = "WITHDRAW"
)

// VaultTransaction is an append-only audit fact. No update or delete path
// exists for these rows.
type VaultTransaction struct {
	ID           uuid.UUID `json:"id"`
	AllocationID uuid.UUID `json:"allocation_id"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}
