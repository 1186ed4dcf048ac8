package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormClientAccountRepository_IncrementBalance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates the account on first deposit", func(t *testing.T) {
		clientID := uuid.New()

		balance, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(500)))

		account, err := repo.FindByClient(ctx, tenantID, clientID)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))
		assert.Contains(t, account.AccountNumber, "ACC-")
	})

	t.Run("accumulates on subsequent deposits", func(t *testing.T) {
		clientID := uuid.New()

		_, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(500))
		require.NoError(t, err)
		balance, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(250))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(750)), "got %s", balance)
	})
}

func TestGormClientAccountRepository_DecrementBalance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("debits within the balance", func(t *testing.T) {
		clientID := uuid.New()
		_, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(800))
		require.NoError(t, err)

		balance, err := repo.DecrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(300), false)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(500)), "got %s", balance)
	})

	t.Run("guarded debit fails on insufficient balance", func(t *testing.T) {
		clientID := uuid.New()
		_, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(100))
		require.NoError(t, err)

		_, err = repo.DecrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(500), false)
		require.Error(t, err)
		assert.True(t, shared.IsErrorCode(err, "INSUFFICIENT_BALANCE"))

		account, err := repo.FindByClient(ctx, tenantID, clientID)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("allowNegative bypasses the guard", func(t *testing.T) {
		clientID := uuid.New()
		_, err := repo.IncrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(100))
		require.NoError(t, err)

		balance, err := repo.DecrementBalance(ctx, tenantID, clientID, decimal.NewFromInt(500), true)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(-400)), "got %s", balance)
	})

	t.Run("missing account reports not found", func(t *testing.T) {
		_, err := repo.DecrementBalance(ctx, tenantID, uuid.New(), decimal.NewFromInt(10), false)
		require.Error(t, err)
		assert.True(t, shared.IsErrorCode(err, "NOT_FOUND"))
	})
}
