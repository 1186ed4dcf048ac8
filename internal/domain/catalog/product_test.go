package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T, initialStock float64) *Product {
	product, err := NewProduct(uuid.New(), "Widget",
		decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromFloat(initialStock))
	require.NoError(t, err)
	return product
}

// ============================================
// NewProduct Tests
// ============================================

func TestNewProduct(t *testing.T) {
	t.Run("initial stock counts toward lifetime", func(t *testing.T) {
		product := createTestProduct(t, 20)
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(20)))
		assert.True(t, product.LifetimeQuantity.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, ProductStatusInStock, product.Status)
	})

	t.Run("zero stock starts out of stock", func(t *testing.T) {
		product := createTestProduct(t, 0)
		assert.Equal(t, ProductStatusOutOfStock, product.Status)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "   ", decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Widget", decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

// ============================================
// Stock Movement Tests
// ============================================

func TestProduct_Deduct(t *testing.T) {
	t.Run("reduces stock and keeps lifetime", func(t *testing.T) {
		product := createTestProduct(t, 20)
		require.NoError(t, product.Deduct(decimal.NewFromInt(5)))

		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(15)))
		assert.True(t, product.LifetimeQuantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("deducting to zero flips status", func(t *testing.T) {
		product := createTestProduct(t, 5)
		require.NoError(t, product.Deduct(decimal.NewFromInt(5)))
		assert.Equal(t, ProductStatusOutOfStock, product.Status)
	})

	t.Run("refuses to go negative", func(t *testing.T) {
		product := createTestProduct(t, 3)
		err := product.Deduct(decimal.NewFromInt(4))
		assert.Error(t, err)
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product := createTestProduct(t, 3)
		assert.Error(t, product.Deduct(decimal.Zero))
	})
}

func TestProduct_Receive(t *testing.T) {
	product := createTestProduct(t, 10)
	require.NoError(t, product.Receive(decimal.NewFromInt(7)))

	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(17)))
	assert.True(t, product.LifetimeQuantity.Equal(decimal.NewFromInt(17)))
}

func TestProduct_Restore(t *testing.T) {
	// Restore returns stock without inflating lifetime, unlike Receive
	product := createTestProduct(t, 10)
	require.NoError(t, product.Deduct(decimal.NewFromInt(4)))
	require.NoError(t, product.Restore(decimal.NewFromInt(4)))

	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, product.LifetimeQuantity.Equal(decimal.NewFromInt(10)))
}

// ============================================
// Alert Threshold Tests
// ============================================

func TestProduct_AlertThreshold(t *testing.T) {
	t.Run("zero threshold never alerts", func(t *testing.T) {
		product := createTestProduct(t, 1)
		assert.False(t, product.IsBelowThreshold())
	})

	t.Run("stock at threshold alerts", func(t *testing.T) {
		product := createTestProduct(t, 5)
		require.NoError(t, product.SetAlertThreshold(decimal.NewFromInt(5)))

		assert.True(t, product.IsBelowThreshold())
		assert.Equal(t, ProductStatusLowStock, product.Status)
	})

	t.Run("deduction across threshold flips status", func(t *testing.T) {
		product := createTestProduct(t, 10)
		require.NoError(t, product.SetAlertThreshold(decimal.NewFromInt(3)))
		assert.Equal(t, ProductStatusInStock, product.Status)

		require.NoError(t, product.Deduct(decimal.NewFromInt(8)))
		assert.Equal(t, ProductStatusLowStock, product.Status)
	})
}
