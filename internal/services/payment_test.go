package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

func setupPaymentService(t *testing.T) (*PaymentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPaymentService(db, NewAllocationService(db)), mock
}

func TestPaymentService_RecordPayment(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()
	paymentID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT status FROM locker_allocations\s+WHERE id = \$1 AND user_id = \$2\s+FOR UPDATE`).
		WithArgs(allocationID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.AllocationStatusActive))

	paymentRows := pgxmock.NewRows([]string{"id", "allocation_id", "amount", "status", "created_at"}).
		AddRow(paymentID, allocationID, 49.99, models.PaymentStatusSuccessful, now)
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(allocationID, 49.99, models.PaymentStatusSuccessful).
		WillReturnRows(paymentRows)

	renewedRows := pgxmock.NewRows([]string{"id", "locker_id", "user_id", "allocated_at", "expiry_date", "status"}).
		AddRow(allocationID, uuid.New(), userID, now, now.Add(models.RentalTerm), models.AllocationStatusActive)
	mock.ExpectQuery(`UPDATE locker_allocations\s+SET expiry_date = expiry_date \+ make_interval`).
		WithArgs(30, models.AllocationStatusActive, allocationID).
		WillReturnRows(renewedRows)

	mock.ExpectCommit()

	payment, err := svc.RecordPayment(context.Background(), allocationID, userID, 49.99)

	require.NoError(t, err)
	assert.Equal(t, paymentID, payment.ID)
	assert.Equal(t, 49.99, payment.Amount)
	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_RecordPayment_InvalidAmount(t *testing.T) {
	svc, mock := setupPaymentService(t)

	_, err := svc.RecordPayment(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RecordPayment(context.Background(), uuid.New(), uuid.New(), -49.99)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_RecordPayment_ForeignAllocation(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM locker_allocations`).
		WithArgs(allocationID, userID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.RecordPayment(context.Background(), allocationID, userID, 49.99)

	assert.ErrorIs(t, err, ErrAllocationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_RecordPayment_Terminated(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM locker_allocations`).
		WithArgs(allocationID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.AllocationStatusTerminated))
	mock.ExpectRollback()

	_, err := svc.RecordPayment(context.Background(), allocationID, userID, 49.99)

	assert.ErrorIs(t, err, ErrAllocationTerminated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_RecordPayment_RevivesExpired(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT status FROM locker_allocations`).
		WithArgs(allocationID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.AllocationStatusExpired))

	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(allocationID, 49.99, models.PaymentStatusSuccessful).
		WillReturnRows(pgxmock.NewRows([]string{"id", "allocation_id", "amount", "status", "created_at"}).
			AddRow(uuid.New(), allocationID, 49.99, models.PaymentStatusSuccessful, now))

	mock.ExpectQuery(`UPDATE locker_allocations`).
		WithArgs(30, models.AllocationStatusActive, allocationID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "locker_id", "user_id", "allocated_at", "expiry_date", "status"}).
			AddRow(allocationID, uuid.New(), userID, now, now.Add(models.RentalTerm), models.AllocationStatusActive))

	mock.ExpectCommit()

	payment, err := svc.RecordPayment(context.Background(), allocationID, userID, 49.99)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_ListPayments(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT id FROM locker_allocations WHERE id = \$1 AND user_id = \$2`).
		WithArgs(allocationID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(allocationID))

	paymentRows := pgxmock.NewRows([]string{"id", "allocation_id", "amount", "status", "created_at"}).
		AddRow(uuid.New(), allocationID, 49.99, models.PaymentStatusSuccessful, now).
		AddRow(uuid.New(), allocationID, 49.99, models.PaymentStatusSuccessful, now.Add(time.Hour))
	mock.ExpectQuery(`SELECT .+ FROM payments\s+WHERE allocation_id = \$1`).
		WithArgs(allocationID).
		WillReturnRows(paymentRows)

	payments, err := svc.ListPayments(context.Background(), allocationID, userID)

	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_ListTransactions_ForeignAllocation(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT id FROM locker_allocations`).
		WithArgs(allocationID, userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ListTransactions(context.Background(), allocationID, userID)

	assert.ErrorIs(t, err, ErrAllocationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_ListTransactions(t *testing.T) {
	svc, mock := setupPaymentService(t)
	allocationID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT id FROM locker_allocations`).
		WithArgs(allocationID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(allocationID))

	txnRows := pgxmock.NewRows([]string{"id", "allocation_id", "type", "created_at"}).
		AddRow(uuid.New(), allocationID, models.TransactionTypeDeposit, now).
		AddRow(uuid.New(), allocationID, models.TransactionTypeWithdraw, now.Add(time.Minute))
	mock.ExpectQuery(`SELECT .+ FROM vault_transactions\s+WHERE allocation_id = \$1`).
		WithArgs(allocationID).
		WillReturnRows(txnRows)

	transactions, err := svc.ListTransactions(context.Background(), allocationID, userID)

	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionTypeDeposit, transactions[0].Type)
	assert.Equal(t, models.TransactionTypeWithdraw, transactions[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
