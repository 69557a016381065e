package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/velimir/safekeep-api/internal/models"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, name, email string, phone *string, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// VaultServiceInterface defines the methods used by handlers from VaultService
type VaultServiceInterface interface {
	Create(ctx context.Context, location string, totalLockers int, status string) (*models.Vault, error)
	GetByID(ctx context.Context, vaultID uuid.UUID) (*models.Vault, error)
	List(ctx context.Context) ([]models.Vault, error)
	AddLocker(ctx context.Context, vaultID uuid.UUID, lockerNumber, size string, monthlyRent float64) (*models.Locker, error)
	ListAvailableLockers(ctx context.Context, size string, vaultID *uuid.UUID) ([]models.Locker, error)
}

// AllocationServiceInterface defines the methods used by handlers from AllocationService
type AllocationServiceInterface interface {
	Allocate(ctx context.Context, lockerID, userID uuid.UUID, expiryDate *time.Time) (*models.LockerAllocation, error)
	GetOwned(ctx context.Context, allocationID, userID uuid.UUID) (*models.LockerAllocation, error)
}

// AssetServiceInterface defines the methods used by handlers from AssetService
type AssetServiceInterface interface {
	Add(ctx context.Context, allocationID, requesterID uuid.UUID, name string, estimatedValue float64, assetType string) (*models.Asset, error)
	Remove(ctx context.Context, assetID, requesterID uuid.UUID) error
	ListByAllocation(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Asset, error)
}

// PaymentServiceInterface defines the methods used by handlers from PaymentService
type PaymentServiceInterface interface {
	RecordPayment(ctx context.Context, allocationID, requesterID uuid.UUID, amount float64) (*models.Payment, error)
	ListPayments(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Payment, error)
	ListTransactions(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.VaultTransaction, error)
}
