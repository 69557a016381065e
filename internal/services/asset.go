package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrInvalidAssetName  = errors.New("asset name is required")
	ErrInvalidAssetValue = errors.New("estimated value must not be negative")
	ErrInvalidAssetType  = errors.New("invalid asset type")
)

// AssetService owns the set of items declared inside an allocation. Every
// mutation writes its audit fact in the same transaction: an asset row
// without its DEPOSIT fact (or the reverse) can never be observed.
type AssetService struct {
	db *database.DB
}

func NewAssetService(db *database.DB) *AssetService {
	return &AssetService{db: db}
}

func (s *AssetService) Add(ctx context.Context, allocationID, requesterID uuid.UUID, name string, estimatedValue float64, assetType string) (*models.Asset, error) {
	if name == "" {
		return nil, ErrInvalidAssetName
	}
	if estimatedValue < 0 {
		return nil, ErrInvalidAssetValue
	}
	if !models.ValidAssetType(assetType) {
		return nil, ErrInvalidAssetType
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var allocationStatus string
	err = tx.QueryRow(ctx, `
		SELECT status FROM locker_allocations WHERE id = $1 AND user_id = $2
	`, allocationID, requesterID).Scan(&allocationStatus)
	if err != nil {
		return nil, ErrAllocationNotFound
	}

	if allocationStatus == models.AllocationStatusExpired {
		return nil, ErrAllocationExpired
	}

	var asset models.Asset
	err = tx.QueryRow(ctx, `
		INSERT INTO assets (allocation_id, name, estimated_value, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, allocation_id, name, estimated_value, type
	`, allocationID, name, estimatedValue, assetType).Scan(
		&asset.ID, &asset.AllocationID, &asset.Name, &asset.EstimatedValue, &asset.Type,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vault_transactions (allocation_id, type)
		VALUES ($1, $2)
	`, allocationID, models.TransactionTypeDeposit)
	if err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &asset, nil
}

// Remove withdraws an asset and records the WITHDRAW fact. Ownership is
// checked through the owning allocation. There is no expiry gate here:
// items may always be taken out, even from an expired allocation.
func (s *AssetService) Remove(ctx context.Context, assetID, requesterID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var allocationID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT a.allocation_id
		FROM assets a
		JOIN locker_allocations la ON a.allocation_id = la.id
		WHERE a.id = $1 AND la.user_id = $2
	`, assetID, requesterID).Scan(&allocationID)
	if err != nil {
		return ErrAssetNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vault_transactions (allocation_id, type)
		VALUES ($1, $2)
	`, allocationID, models.TransactionTypeWithdraw)
	if err != nil {
		return fmt.Errorf("failed to record withdrawal: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM assets WHERE id = $1`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *AssetService) ListByAllocation(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Asset, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id FROM locker_allocations WHERE id = $1 AND user_id = $2
	`, allocationID, requesterID).Scan(&ownerID)
	if err != nil {
		return nil, ErrAllocationNotFound
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, allocation_id, name, estimated_value, type
		FROM assets
		WHERE allocation_id = $1
		ORDER BY name ASC
	`, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(
			&asset.ID, &asset.AllocationID, &asset.Name, &asset.EstimatedValue, &asset.Type,
		); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
