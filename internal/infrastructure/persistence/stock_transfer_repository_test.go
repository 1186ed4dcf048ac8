package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransfer(t *testing.T, sourceTenant, destTenant uuid.UUID, reference string) *trade.StockTransfer {
	t.Helper()
	transfer, err := trade.NewStockTransfer(reference, sourceTenant, destTenant)
	require.NoError(t, err)
	require.NoError(t, transfer.AddItem(
		uuid.New(), uuid.New(), "Widget",
		decimal.NewFromInt(5), decimal.NewFromInt(350), decimal.NewFromInt(300),
	))
	return transfer
}

func TestGormStockTransferRepository_Visibility(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockTransferRepository(db)
	ctx := context.Background()
	sourceTenant := uuid.New()
	destTenant := uuid.New()

	transfer := createTestTransfer(t, sourceTenant, destTenant, "TRF-20260831-001")
	require.NoError(t, repo.Save(ctx, transfer))

	t.Run("visible to the source tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, sourceTenant, transfer.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.Reference, found.Reference)
		require.Len(t, found.Items, 1)
		assert.True(t, found.Items[0].TransferPrice.Equal(decimal.NewFromInt(350)))
	})

	t.Run("visible to the destination tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, destTenant, transfer.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.ID, found.ID)
	})

	t.Run("invisible to a third tenant", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), transfer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockTransferRepository_CountForDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockTransferRepository(db)
	ctx := context.Background()
	sourceTenant := uuid.New()
	destTenant := uuid.New()

	require.NoError(t, repo.Save(ctx, createTestTransfer(t, sourceTenant, destTenant, "TRF-A")))
	require.NoError(t, repo.Save(ctx, createTestTransfer(t, sourceTenant, destTenant, "TRF-B")))
	// transfers received by the tenant do not count towards its sequence
	require.NoError(t, repo.Save(ctx, createTestTransfer(t, destTenant, sourceTenant, "TRF-C")))

	count, err := repo.CountForDay(ctx, sourceTenant, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormStockTransferRepository_StatusUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockTransferRepository(db)
	ctx := context.Background()
	sourceTenant := uuid.New()
	destTenant := uuid.New()

	transfer := createTestTransfer(t, sourceTenant, destTenant, "TRF-20260831-002")
	require.NoError(t, repo.Save(ctx, transfer))

	require.NoError(t, transfer.Validate())
	require.NoError(t, transfer.MarkReceived())
	require.NoError(t, repo.Save(ctx, transfer))

	found, err := repo.FindByIDForTenant(ctx, sourceTenant, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.TransferStatusReceived, found.Status)
	assert.NotNil(t, found.ValidatedAt)
	assert.NotNil(t, found.ReceivedAt)
}
