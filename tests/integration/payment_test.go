package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velimir/safekeep-api/internal/models"
	"github.com/velimir/safekeep-api/internal/services"
	"github.com/velimir/safekeep-api/tests/testutil"
)

func TestPaymentService_Integration_RecordPaymentRenews(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	allocationSvc := services.NewAllocationService(tdb.DB)
	paymentSvc := services.NewPaymentService(tdb.DB, allocationSvc)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)
	allocation := fixtures.CreateAllocation(t, locker, user)

	payment, err := paymentSvc.RecordPayment(ctx, allocation.ID, user.ID, locker.MonthlyRent)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.Equal(t, locker.MonthlyRent, payment.Amount)

	renewed, err := allocationSvc.GetOwned(ctx, allocation.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationStatusActive, renewed.Status)
	assert.WithinDuration(t,
		allocation.ExpiryDate.Add(models.RentalTerm),
		renewed.ExpiryDate, time.Second)
}

func TestPaymentService_Integration_RenewalsStack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	allocationSvc := services.NewAllocationService(tdb.DB)
	paymentSvc := services.NewPaymentService(tdb.DB, allocationSvc)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)
	allocation := fixtures.CreateAllocation(t, locker, user)

	// Each payment extends from the stored expiry, not from now.
	_, err := paymentSvc.RecordPayment(ctx, allocation.ID, user.ID, locker.MonthlyRent)
	require.NoError(t, err)
	_, err = paymentSvc.RecordPayment(ctx, allocation.ID, user.ID, locker.MonthlyRent)
	require.NoError(t, err)

	renewed, err := allocationSvc.GetOwned(ctx, allocation.ID, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t,
		allocation.ExpiryDate.Add(2*models.RentalTerm),
		renewed.ExpiryDate, time.Second)

	payments, err := paymentSvc.ListPayments(ctx, allocation.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestPaymentService_Integration_RevivesExpiredAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	allocationSvc := services.NewAllocationService(tdb.DB)
	paymentSvc := services.NewPaymentService(tdb.DB, allocationSvc)
	assetSvc := services.NewAssetService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)
	allocation := fixtures.CreateAllocation(t, locker, user,
		testutil.WithAllocationStatus(models.AllocationStatusExpired))

	_, err := assetSvc.Add(ctx, allocation.ID, user.ID, "Deed", 0, models.AssetTypeDocument)
	require.ErrorIs(t, err, services.ErrAllocationExpired)

	_, err = paymentSvc.RecordPayment(ctx, allocation.ID, user.ID, locker.MonthlyRent)
	require.NoError(t, err)

	renewed, err := allocationSvc.GetOwned(ctx, allocation.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationStatusActive, renewed.Status)

	// Deposits work again once the allocation is back to ACTIVE.
	_, err = assetSvc.Add(ctx, allocation.ID, user.ID, "Deed", 0, models.AssetTypeDocument)
	assert.NoError(t, err)
}

func TestPaymentService_Integration_TerminatedAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	allocationSvc := services.NewAllocationService(tdb.DB)
	paymentSvc := services.NewPaymentService(tdb.DB, allocationSvc)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)
	allocation := fixtures.CreateAllocation(t, locker, user,
		testutil.WithAllocationStatus(models.AllocationStatusTerminated))

	_, err := paymentSvc.RecordPayment(ctx, allocation.ID, user.ID, locker.MonthlyRent)
	assert.ErrorIs(t, err, services.ErrAllocationTerminated)

	payments, err := paymentSvc.ListPayments(ctx, allocation.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPaymentService_Integration_ForeignAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	allocationSvc := services.NewAllocationService(tdb.DB)
	paymentSvc := services.NewPaymentService(tdb.DB, allocationSvc)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	owner := fixtures.CreateUser(t)
	stranger := fixtures.CreateUser(t)
	allocation := fixtures.CreateAllocation(t, locker, owner)

	_, err := paymentSvc.RecordPayment(ctx, allocation.ID, stranger.ID, locker.MonthlyRent)
	assert.ErrorIs(t, err, services.ErrAllocationNotFound)

	_, err = paymentSvc.ListPayments(ctx, allocation.ID, stranger.ID)
	assert.ErrorIs(t, err, services.ErrAllocationNotFound)

	_, err = paymentSvc.ListTransactions(ctx, allocation.ID, stranger.ID)
	assert.ErrorIs(t, err, services.ErrAllocationNotFound)
}
