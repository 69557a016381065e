package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

// PaymentService appends immutable payment facts and drives allocation
// renewal. A successful payment is the only event that extends an
// allocation's expiry date.
type PaymentService struct {
	db          *database.DB
	allocations *AllocationService
}

func NewPaymentService(db *database.DB, allocations *AllocationService) *PaymentService {
	return &PaymentService{db: db, allocations: allocations}
}

// RecordPayment validates the amount, writes the payment row and renews
// the allocation by one rental term in a single transaction. No payment
// gateway is modeled: a payment that passes validation is SUCCESSFUL.
func (s *PaymentService) RecordPayment(ctx context.Context, allocationID, requesterID uuid.UUID, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var allocationStatus string
	err = tx.QueryRow(ctx, `
		SELECT status FROM locker_allocations
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, allocationID, requesterID).Scan(&allocationStatus)
	if err != nil {
		return nil, ErrAllocationNotFound
	}

	// A payment can bring an EXPIRED allocation back to ACTIVE, but a
	// terminated one stays terminated.
	if allocationStatus == models.AllocationStatusTerminated {
		return nil, ErrAllocationTerminated
	}

	var payment models.Payment
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (allocation_id, amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, allocation_id, amount, status, created_at
	`, allocationID, amount, models.PaymentStatusSuccessful).Scan(
		&payment.ID, &payment.AllocationID, &payment.Amount,
		&payment.Status, &payment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if _, err := s.allocations.Renew(ctx, tx, allocationID, models.RentalTerm); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.Payment, error) {
	if err := s.checkOwnership(ctx, allocationID, requesterID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, allocation_id, amount, status, created_at
		FROM payments
		WHERE allocation_id = $1
		ORDER BY created_at ASC
	`, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID, &payment.AllocationID, &payment.Amount,
			&payment.Status, &payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (s *PaymentService) ListTransactions(ctx context.Context, allocationID, requesterID uuid.UUID) ([]models.VaultTransaction, error) {
	if err := s.checkOwnership(ctx, allocationID, requesterID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, allocation_id, type, created_at
		FROM vault_transactions
		WHERE allocation_id = $1
		ORDER BY created_at ASC
	`, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.VaultTransaction
	for rows.Next() {
		var txn models.VaultTransaction
		if err := rows.Scan(&txn.ID, &txn.AllocationID, &txn.Type, &txn.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

func (s *PaymentService) checkOwnership(ctx context.Context, allocationID, requesterID uuid.UUID) error {
	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id FROM locker_allocations WHERE id = $1 AND user_id = $2
	`, allocationID, requesterID).Scan(&id)
	if err != nil {
		return ErrAllocationNotFound
	}
	return nil
}
