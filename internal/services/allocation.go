package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

var (
	ErrLockerNotFound       = errors.New("locker not found")
	ErrLockerUnavailable    = errors.New("locker is not available for allocation")
	ErrVaultNotOperational  = errors.New("vault is not operational")
	ErrNoLockersAvailable   = errors.New("no available lockers in the vault")
	ErrAllocationNotFound   = errors.New("locker allocation not found")
	ErrAllocationExpired    = errors.New("allocation has expired")
	ErrAllocationTerminated = errors.New("allocation has been terminated")
)

// AllocationService owns the allocation lifecycle and the locker status
// transitions that go with it.
type AllocationService struct {
	db  *database.DB
	now func() time.Time
}

func NewAllocationService(db *database.DB) *AllocationService {
	return &AllocationService{db: db, now: time.Now}
}

// Allocate claims an AVAILABLE locker for a user. The locker row and its
// vault row are locked for the duration of the transaction, so concurrent
// attempts on the same locker serialize and exactly one sees AVAILABLE.
// The allocation insert, the locker status flip and the vault counter
// decrement commit together or not at all.
func (s *AllocationService) Allocate(ctx context.Context, lockerID, userID uuid.UUID, expiryDate *time.Time) (*models.LockerAllocation, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock order is locker first, then vault. AddLocker only ever locks
	// the vault row, so the two paths cannot deadlock.
	var vaultID uuid.UUID
	var lockerStatus string
	err = tx.QueryRow(ctx, `
		SELECT vault_id, status FROM lockers WHERE id = $1 FOR UPDATE
	`, lockerID).Scan(&vaultID, &lockerStatus)
	if err != nil {
		return nil, ErrLockerNotFound
	}

	var vaultStatus string
	var availableLockers int
	err = tx.QueryRow(ctx, `
		SELECT status, available_lockers FROM vaults WHERE id = $1 FOR UPDATE
	`, vaultID).Scan(&vaultStatus, &availableLockers)
	if err != nil {
		return nil, fmt.Errorf("failed to load vault: %w", err)
	}

	if vaultStatus != models.VaultStatusOperational {
		return nil, ErrVaultNotOperational
	}
	if lockerStatus != models.LockerStatusAvailable {
		return nil, ErrLockerUnavailable
	}
	if availableLockers <= 0 {
		return nil, ErrNoLockersAvailable
	}

	now := s.now()
	expiry := now.Add(models.RentalTerm)
	if expiryDate != nil {
		expiry = *expiryDate
	}

	var allocation models.LockerAllocation
	err = tx.QueryRow(ctx, `
		INSERT INTO locker_allocations (locker_id, user_id, allocated_at, expiry_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, locker_id, user_id, allocated_at, expiry_date, status
	`, lockerID, userID, now, expiry, models.AllocationStatusActive).Scan(
		&allocation.ID, &allocation.LockerID, &allocation.UserID,
		&allocation.AllocatedAt, &allocation.ExpiryDate, &allocation.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE lockers SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.LockerStatusAllocated, lockerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update locker status: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE vaults SET available_lockers = available_lockers - 1, updated_at = NOW() WHERE id = $1
	`, vaultID)
	if err != nil {
		return nil, fmt.Errorf("failed to update vault counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &allocation, nil
}

// GetOwned fetches an allocation scoped to its owner. An allocation that
// exists but belongs to someone else reads as not found on purpose.
func (s *AllocationService) GetOwned(ctx context.Context, allocationID, userID uuid.UUID) (*models.LockerAllocation, error) {
	var allocation models.LockerAllocation
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, locker_id, user_id, allocated_at, expiry_date, status
		FROM locker_allocations
		WHERE id = $1 AND user_id = $2
	`, allocationID, userID).Scan(
		&allocation.ID, &allocation.LockerID, &allocation.UserID,
		&allocation.AllocatedAt, &allocation.ExpiryDate, &allocation.Status,
	)
	if err != nil {
		return nil, ErrAllocationNotFound
	}
	return &allocation, nil
}

// IsOpenForAssets reports whether assets may still be deposited. Expired
// allocations refuse deposits; withdrawals stay permitted regardless.
func (s *AllocationService) IsOpenForAssets(allocation *models.LockerAllocation) bool {
	return allocation.Status != models.AllocationStatusExpired
}

// Renew extends an allocation's expiry by period and forces it back to
// ACTIVE. It runs inside the caller's transaction; the only caller is the
// payment recorder, which is the sole path that moves expiry_date forward.
// Renewals stack: the period is added to the stored expiry, not to now.
func (s *AllocationService) Renew(ctx context.Context, tx pgx.Tx, allocationID uuid.UUID, period time.Duration) (*models.LockerAllocation, error) {
	days := int(period / (24 * time.Hour))

	var allocation models.LockerAllocation
	err := tx.QueryRow(ctx, `
		UPDATE locker_allocations
		SET expiry_date = expiry_date + make_interval(days => $1), status = $2
		WHERE id = $3
		RETURNING id, locker_id, user_id, allocated_at, expiry_date, status
	`, days, models.AllocationStatusActive, allocationID).Scan(
		&allocation.ID, &allocation.LockerID, &allocation.UserID,
		&allocation.AllocatedAt, &allocation.ExpiryDate, &allocation.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to renew allocation: %w", err)
	}
	return &allocation, nil
}
