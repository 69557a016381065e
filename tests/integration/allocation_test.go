package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velimir/safekeep-api/internal/models"
	"github.com/velimir/safekeep-api/internal/services"
	"github.com/velimir/safekeep-api/tests/testutil"
)

func TestAllocationService_Integration_Allocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	vaultSvc := services.NewVaultService(tdb.DB)
	svc := services.NewAllocationService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)

	allocation, err := svc.Allocate(ctx, locker.ID, user.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, locker.ID, allocation.LockerID)
	assert.Equal(t, user.ID, allocation.UserID)
	assert.Equal(t, models.AllocationStatusActive, allocation.Status)
	assert.WithinDuration(t, allocation.AllocatedAt.Add(models.RentalTerm), allocation.ExpiryDate, time.Second)

	// Locker flips to ALLOCATED and the vault counter drops.
	available, err := vaultSvc.ListAvailableLockers(ctx, "", &vault.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	updated, err := vaultSvc.GetByID(ctx, vault.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalLockers)
	assert.Equal(t, 0, updated.AvailableLockers)
}

func TestAllocationService_Integration_AllocateTwice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAllocationService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	first := fixtures.CreateUser(t)
	second := fixtures.CreateUser(t)

	_, err := svc.Allocate(ctx, locker.ID, first.ID, nil)
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, locker.ID, second.ID, nil)
	assert.ErrorIs(t, err, services.ErrLockerUnavailable)
}

func TestAllocationService_Integration_VaultNotOperational(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAllocationService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t, testutil.WithVaultStatus(models.VaultStatusMaintenance))
	locker := fixtures.CreateLocker(t, vault)
	user := fixtures.CreateUser(t)

	_, err := svc.Allocate(ctx, locker.ID, user.ID, nil)

	assert.ErrorIs(t, err, services.ErrVaultNotOperational)
}

func TestAllocationService_Integration_ConcurrentAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAllocationService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)

	const workers = 8
	users := make([]*models.User, workers)
	for i := range users {
		users[i] = fixtures.CreateUser(t)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Allocate(ctx, locker.ID, users[i].ID, nil)
		}(i)
	}
	wg.Wait()

	// The row locks serialize the attempts: exactly one wins.
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, services.ErrLockerUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded)

	var availableLockers int
	err := tdb.DB.Pool.QueryRow(ctx, `SELECT available_lockers FROM vaults WHERE id = $1`, vault.ID).Scan(&availableLockers)
	require.NoError(t, err)
	assert.Equal(t, 0, availableLockers)
}

func TestAllocationService_Integration_GetOwned(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAllocationService(tdb.DB)
	ctx := context.Background()

	vault := fixtures.CreateVault(t)
	locker := fixtures.CreateLocker(t, vault)
	owner := fixtures.CreateUser(t)
	stranger := fixtures.CreateUser(t)

	allocation := fixtures.CreateAllocation(t, locker, owner)

	got, err := svc.GetOwned(ctx, allocation.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, allocation.ID, got.ID)

	// Someone else's allocation reads the same as a missing one.
	_, err = svc.GetOwned(ctx, allocation.ID, stranger.ID)
	assert.ErrorIs(t, err, services.ErrAllocationNotFound)
}
