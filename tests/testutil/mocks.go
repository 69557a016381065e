package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/velimir/safekeep-api/internal/models"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email string, phone *string, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockVaultService mocks the VaultService
type MockVaultService struct {
	mock.Mock
}

func (m *MockVaultService) Create(ctx context.Context, location string, totalLockers int, status string) (*models.Vault, error) {
	args := m.Called(ctx, location, totalLockers, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vault), args.Error(1)
}

func (m *MockVaultService) GetByID(ctx context.Context, vaultID uuid.UUID) (*models.Vault, error) {
	args := m.Called(ctx, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vault), args.Error(1)
}

func (m *MockVaultService) List(ctx context.Context) ([]models.Vault, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vault), args.Error(1)
}

func (m *MockVaultService) AddLocker(ctx context.Context, vaultID uuid.UUID, lockerNumber, size string, monthlyRent float64) (*models.Locker, error) {
	args := m.Called(ctx, vaultID, lockerNumber, size, monthlyRent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Locker), args.Error(1)
}

func (m *MockVaultService) ListAvailableLockers(ctx context.Context, size string, vaultID *uuid.UUID) ([]models.Locker, error) {
	args := m.Called(ctx, size, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Locker), args.Error(1)
}

// MockAllocationService mocks the AllocationService
type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) Allocate(ctx context.Context, lockerID, userID uuid.UUID, expiryDate *time.Time) (*models.LockerAllocation, error) {
	args := m.Called(ctx, lockerID, userID, expiryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LockerAllocation), args.Error(1)
}

func (m *MockAllocationService) GetOwned(ctx context.Context, allocationID, userID uuid.UUID) (*models.LockerAllocation, error) {
	args := m.Called(ctx, allocationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LockerAllocation), args.Error(1)
}

// MockAssetService mocks the AssetService
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Add(ctx context.Context, allocationID, requesterID uuid.UUID, name string, estimatedValue float64, assetType string) (*models.Asset, error) {
	args := m.Called(ctx, allocationID, requesterID, name, estimatedValue, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetService) Remove(ctx context.Context, assetID, requesterID uuid.UUID) error {
	args := m.Called(ctx, assetID, requesterID)
	return args.Error(0)
}

func (m *MockAssetService) ListByAllocation(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Asset, error) {
	args := m.Called(ctx, allocationID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

// MockPaymentService mocks the PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, allocationID, requesterID uuid.UUID, amount float64) (*models.Payment, error) {
	args := m.Called(ctx, allocationID, requesterID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Payment, error) {
	args := m.Called(ctx, allocationID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentService) ListTransactions(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.VaultTransaction, error) {
	args := m.Called(ctx, allocationID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VaultTransaction), args.Error(1)
}
