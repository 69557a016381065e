package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", f.counter),
		Email:        fmt.Sprintf("user%d@example.com", f.counter),
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Status:       models.UserStatusActive,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, phone, password_hash, role, status, created_at, updated_at
	`, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role, user.Status).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// WithStatus sets the user's status
func WithStatus(status string) UserOption {
	return func(u *models.User) {
		u.Status = status
	}
}

// CreateVault creates a test vault
func (f *Fixtures) CreateVault(t *testing.T, opts ...VaultOption) *models.Vault {
	t.Helper()
	f.counter++

	vault := &models.Vault{
		Location: fmt.Sprintf("Test Location %d", f.counter),
		Status:   models.VaultStatusOperational,
	}

	for _, opt := range opts {
		opt(vault)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO vaults (location, status)
		VALUES ($1, $2)
		RETURNING id, location, total_lockers, available_lockers, status, created_at, updated_at
	`, vault.Location, vault.Status).Scan(
		&vault.ID, &vault.Location, &vault.TotalLockers, &vault.AvailableLockers,
		&vault.Status, &vault.CreatedAt, &vault.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	return vault
}

// VaultOption configures a test vault
type VaultOption func(*models.Vault)

// WithLocation sets the vault's location
func WithLocation(location string) VaultOption {
	return func(v *models.Vault) {
		v.Location = location
	}
}

// WithVaultStatus sets the vault's status
func WithVaultStatus(status string) VaultOption {
	return func(v *models.Vault) {
		v.Status = status
	}
}

// CreateLocker creates a test locker in a vault and bumps the counters,
// matching what the vault service does.
func (f *Fixtures) CreateLocker(t *testing.T, vault *models.Vault, opts ...LockerOption) *models.Locker {
	t.Helper()
	f.counter++

	locker := &models.Locker{
		VaultID:      vault.ID,
		LockerNumber: fmt.Sprintf("L-%03d", f.counter),
		Size:         models.LockerSizeMedium,
		Status:       models.LockerStatusAvailable,
		MonthlyRent:  49.99,
	}

	for _, opt := range opts {
		opt(locker)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO lockers (vault_id, locker_number, size, status, monthly_rent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, vault_id, locker_number, size, status, monthly_rent, created_at, updated_at
	`, locker.VaultID, locker.LockerNumber, locker.Size, locker.Status, locker.MonthlyRent).Scan(
		&locker.ID, &locker.VaultID, &locker.LockerNumber, &locker.Size,
		&locker.Status, &locker.MonthlyRent, &locker.CreatedAt, &locker.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create locker: %v", err)
	}

	available := 0
	if locker.Status == models.LockerStatusAvailable {
		available = 1
	}
	_, err = tx.Exec(ctx, `
		UPDATE vaults
		SET total_lockers = total_lockers + 1,
			available_lockers = available_lockers + $1
		WHERE id = $2
	`, available, locker.VaultID)
	if err != nil {
		t.Fatalf("failed to update vault counters: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return locker
}

// LockerOption configures a test locker
type LockerOption func(*models.Locker)

// WithLockerNumber sets the locker's number
func WithLockerNumber(number string) LockerOption {
	return func(l *models.Locker) {
		l.LockerNumber = number
	}
}

// WithSize sets the locker's size
func WithSize(size string) LockerOption {
	return func(l *models.Locker) {
		l.Size = size
	}
}

// WithLockerStatus sets the locker's status
func WithLockerStatus(status string) LockerOption {
	return func(l *models.Locker) {
		l.Status = status
	}
}

// WithRent sets the locker's monthly rent
func WithRent(rent float64) LockerOption {
	return func(l *models.Locker) {
		l.MonthlyRent = rent
	}
}

// CreateAllocation allocates a locker to a user directly, flipping the
// locker status and vault counter the way the allocation service does.
func (f *Fixtures) CreateAllocation(t *testing.T, locker *models.Locker, user *models.User, opts ...AllocationOption) *models.LockerAllocation {
	t.Helper()

	now := time.Now()
	allocation := &models.LockerAllocation{
		LockerID:    locker.ID,
		UserID:      user.ID,
		AllocatedAt: now,
		ExpiryDate:  now.Add(models.RentalTerm),
		Status:      models.AllocationStatusActive,
	}

	for _, opt := range opts {
		opt(allocation)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO locker_allocations (locker_id, user_id, allocated_at, expiry_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, locker_id, user_id, allocated_at, expiry_date, status
	`, allocation.LockerID, allocation.UserID, allocation.AllocatedAt, allocation.ExpiryDate, allocation.Status).Scan(
		&allocation.ID, &allocation.LockerID, &allocation.UserID,
		&allocation.AllocatedAt, &allocation.ExpiryDate, &allocation.Status,
	)
	if err != nil {
		t.Fatalf("failed to create allocation: %v", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE lockers SET status = $1 WHERE id = $2
	`, models.LockerStatusAllocated, locker.ID)
	if err != nil {
		t.Fatalf("failed to update locker status: %v", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE vaults SET available_lockers = available_lockers - 1 WHERE id = $1
	`, locker.VaultID)
	if err != nil {
		t.Fatalf("failed to update vault counters: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	locker.Status = models.LockerStatusAllocated
	return allocation
}

// AllocationOption configures a test allocation
type AllocationOption func(*models.LockerAllocation)

// WithAllocationStatus sets the allocation's status
func WithAllocationStatus(status string) AllocationOption {
	return func(a *models.LockerAllocation) {
		a.Status = status
	}
}

// WithExpiryDate sets the allocation's expiry date
func WithExpiryDate(expiry time.Time) AllocationOption {
	return func(a *models.LockerAllocation) {
		a.ExpiryDate = expiry
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
