package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

var (
	ErrVaultNotFound     = errors.New("vault not found")
	ErrInvalidRent       = errors.New("monthly rent must be positive")
	ErrInvalidLockerSize = errors.New("invalid locker size")
	ErrLockerNumberTaken = errors.New("locker number already exists in this vault")
)

// VaultService owns the vault inventory: the locker collection of each
// vault and the total/available counters. The counters are mutated only
// here and in AllocationService.Allocate, always under a row lock.
type VaultService struct {
	db *database.DB
}

func NewVaultService(db *database.DB) *VaultService {
	return &VaultService{db: db}
}

func (s *VaultService) Create(ctx context.Context, location string, totalLockers int, status string) (*models.Vault, error) {
	var vault models.Vault
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO vaults (location, total_lockers, available_lockers, status)
		VALUES ($1, $2, $2, $3)
		RETURNING id, location, total_lockers, available_lockers, status, created_at, updated_at
	`, location, totalLockers, status).Scan(
		&vault.ID, &vault.Location, &vault.TotalLockers, &vault.AvailableLockers,
		&vault.Status, &vault.CreatedAt, &vault.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault: %w", err)
	}
	return &vault, nil
}

func (s *VaultService) GetByID(ctx context.Context, vaultID uuid.UUID) (*models.Vault, error) {
	var vault models.Vault
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, location, total_lockers, available_lockers, status, created_at, updated_at
		FROM vaults WHERE id = $1
	`, vaultID).Scan(
		&vault.ID, &vault.Location, &vault.TotalLockers, &vault.AvailableLockers,
		&vault.Status, &vault.CreatedAt, &vault.UpdatedAt,
	)
	if err != nil {
		return nil, ErrVaultNotFound
	}
	return &vault, nil
}

func (s *VaultService) List(ctx context.Context) ([]models.Vault, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, location, total_lockers, available_lockers, status, created_at, updated_at
		FROM vaults
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vaults []models.Vault
	for rows.Next() {
		var vault models.Vault
		if err := rows.Scan(
			&vault.ID, &vault.Location, &vault.TotalLockers, &vault.AvailableLockers,
			&vault.Status, &vault.CreatedAt, &vault.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vaults = append(vaults, vault)
	}
	return vaults, nil
}

// AddLocker creates an AVAILABLE locker and bumps both vault counters in
// the same transaction, so the counters can never drift from the locker
// rows they summarize.
func (s *VaultService) AddLocker(ctx context.Context, vaultID uuid.UUID, lockerNumber, size string, monthlyRent float64) (*models.Locker, error) {
	if monthlyRent <= 0 {
		return nil, ErrInvalidRent
	}
	if !models.ValidLockerSize(size) {
		return nil, ErrInvalidLockerSize
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedVaultID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM vaults WHERE id = $1 FOR UPDATE
	`, vaultID).Scan(&lockedVaultID)
	if err != nil {
		return nil, ErrVaultNotFound
	}

	var locker models.Locker
	err = tx.QueryRow(ctx, `
		INSERT INTO lockers (vault_id, locker_number, size, status, monthly_rent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, vault_id, locker_number, size, status, monthly_rent, created_at, updated_at
	`, vaultID, lockerNumber, size, models.LockerStatusAvailable, monthlyRent).Scan(
		&locker.ID, &locker.VaultID, &locker.LockerNumber, &locker.Size,
		&locker.Status, &locker.MonthlyRent, &locker.CreatedAt, &locker.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrLockerNumberTaken
		}
		return nil, fmt.Errorf("failed to create locker: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE vaults
		SET total_lockers = total_lockers + 1,
			available_lockers = available_lockers + 1,
			updated_at = NOW()
		WHERE id = $1
	`, vaultID)
	if err != nil {
		return nil, fmt.Errorf("failed to update vault counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &locker, nil
}

func (s *VaultService) ListAvailableLockers(ctx context.Context, size string, vaultID *uuid.UUID) ([]models.Locker, error) {
	query := `
		SELECT id, vault_id, locker_number, size, status, monthly_rent, created_at, updated_at
		FROM lockers
		WHERE status = $1`
	args := []any{models.LockerStatusAvailable}

	if size != "" {
		args = append(args, size)
		query += fmt.Sprintf(" AND size = $%d", len(args))
	}
	if vaultID != nil {
		args = append(args, *vaultID)
		query += fmt.Sprintf(" AND vault_id = $%d", len(args))
	}
	query += " ORDER BY locker_number ASC"

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lockers []models.Locker
	for rows.Next() {
		var locker models.Locker
		if err := rows.Scan(
			&locker.ID, &locker.VaultID, &locker.LockerNumber, &locker.Size,
			&locker.Status, &locker.MonthlyRent, &locker.CreatedAt, &locker.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lockers = append(lockers, locker)
	}
	return lockers, nil
}
