package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AllocationStatusActive     = "ACTIVE"
	AllocationStatusExpired    = "EXPIRED"
	AllocationStatusTerminated = "TERMINATED"
)

// RentalTerm is both the default length of a new allocation and the
// period added by each successful rent payment.
const RentalTerm = 30 * 24 * time.Hour

// LockerAllocation is a time-bounded claim by a user on a locker. A locker
// has at most one ACTIVE allocation at a time; this is enforced through the
// locker status flip inside the allocation transaction.
type LockerAllocation struct {
	ID          uuid.UUID `json:"id"`
	LockerID    uuid.UUID `json:"locker_id"`
	UserID      uuid.UUID `json:"user_id"`
	AllocatedAt time.Time `json:"allocated_at"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Status      string    `json:"status"`
}
