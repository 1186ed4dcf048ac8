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

func createTestSale(t *testing.T, tenantID uuid.UUID, reference string) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(tenantID, reference, nil, decimal.Zero, "")
	require.NoError(t, err)
	require.NoError(t, sale.AddItem(uuid.New(), "Widget", decimal.NewFromInt(2), decimal.NewFromInt(500)))
	require.NoError(t, sale.SettlePayments(decimal.NewFromInt(1000), ""))
	return sale
}

func TestGormSaleRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("round-trips a sale with its items", func(t *testing.T) {
		sale := createTestSale(t, tenantID, "VTE-20260831-001")
		require.NoError(t, repo.Save(ctx, sale))

		found, err := repo.FindByIDForTenant(ctx, tenantID, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sale.Reference, found.Reference)
		assert.Equal(t, trade.PaymentStatusPaid, found.Status)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Widget", found.Items[0].ProductName)
		assert.True(t, found.Items[0].Amount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("finds by reference", func(t *testing.T) {
		sale := createTestSale(t, tenantID, "VTE-20260831-002")
		require.NoError(t, repo.Save(ctx, sale))

		found, err := repo.FindByReference(ctx, tenantID, "VTE-20260831-002")
		require.NoError(t, err)
		assert.Equal(t, sale.ID, found.ID)
	})

	t.Run("is invisible to other tenants", func(t *testing.T) {
		sale := createTestSale(t, tenantID, "VTE-20260831-003")
		require.NoError(t, repo.Save(ctx, sale))

		_, err := repo.FindByIDForTenant(ctx, uuid.New(), sale.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists settlement changes", func(t *testing.T) {
		sale, err := trade.NewSale(tenantID, "VTE-20260831-004", nil, decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, sale.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(500)))
		require.NoError(t, sale.SettlePayments(decimal.NewFromInt(200), ""))
		require.NoError(t, repo.Save(ctx, sale))

		require.NoError(t, sale.SettlePayments(decimal.NewFromInt(500), ""))
		require.NoError(t, repo.Save(ctx, sale))

		found, err := repo.FindByIDForTenant(ctx, tenantID, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.PaymentStatusPaid, found.Status)
		assert.True(t, found.AmountDue.IsZero())
	})
}

func TestGormSaleRepository_DuplicateReference(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, createTestSale(t, tenantID, "VTE-20260831-001")))

	duplicate := createTestSale(t, tenantID, "VTE-20260831-001")
	assert.ErrorIs(t, repo.Save(ctx, duplicate), shared.ErrAlreadyExists)

	other := createTestSale(t, uuid.New(), "VTE-20260831-001")
	assert.NoError(t, repo.Save(ctx, other))
}

func TestGormSaleRepository_CountForDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for _, ref := range []string{"VTE-A", "VTE-B", "VTE-C"} {
		require.NoError(t, repo.Save(ctx, createTestSale(t, tenantID, ref)))
	}
	require.NoError(t, repo.Save(ctx, createTestSale(t, uuid.New(), "VTE-OTHER")))

	count, err := repo.CountForDay(ctx, tenantID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountForDay(ctx, tenantID, time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
