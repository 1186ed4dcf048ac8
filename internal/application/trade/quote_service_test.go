package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates without touching stock", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(3)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "draft", quote.Status)
		assert.Contains(t, quote.Reference, "DEV-")
		assert.True(t, quote.TotalAmount.Equal(decimal.NewFromInt(1500)))

		stored, err := f.products.FindByIDForTenant(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("quote references number up within the month", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		first, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		second, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "-001", first.Reference[len(first.Reference)-4:])
		assert.Equal(t, "-002", second.Reference[len(second.Reference)-4:])
	})
}

func TestQuoteService_Convert(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("conversion creates the sale and marks the quote", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(2)}},
		})
		require.NoError(t, err)

		sale, err := f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{
			Payments: []PaymentRequest{
				{Method: trade.PaymentMethodCash, Amount: decimal.NewFromInt(1000)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", sale.Status)

		converted, err := f.quoteService.GetByID(ctx, tenantID, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, "converted", converted.Status)
		assert.Equal(t, sale.ID, *converted.SaleID)

		stored, err := f.products.FindByIDForTenant(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(8)))
	})

	t.Run("sale keeps the quoted prices even if the catalog moved", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)

		f.products.products[product.ID].SalePrice = decimal.NewFromInt(999)

		sale, err := f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{})
		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(500)), "got %s", sale.TotalAmount)
	})

	t.Run("second conversion fails", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)

		_, err = f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{})
		require.NoError(t, err)

		_, err = f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{})
		require.Error(t, err)
		assert.True(t, shared.IsErrorCode(err, "ALREADY_EXISTS"))
	})

	t.Run("conversion with insufficient stock fails and leaves the quote open", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 1, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(5)}},
		})
		require.NoError(t, err)

		_, err = f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{})
		require.Error(t, err)
		assert.True(t, shared.IsErrorCode(err, "INSUFFICIENT_STOCK"))

		stored, err := f.quoteService.GetByID(ctx, tenantID, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, "draft", stored.Status)
	})

	t.Run("rejected quote cannot convert", func(t *testing.T) {
		f := newFixture()
		product := f.addProduct(tenantID, "Widget", 10, 300, 500)

		quote, err := f.quoteService.Create(ctx, tenantID, CreateQuoteRequest{
			Items: []QuoteItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		_, err = f.quoteService.UpdateStatus(ctx, tenantID, quote.ID, "rejected")
		require.NoError(t, err)

		_, err = f.quoteService.Convert(ctx, tenantID, quote.ID, ConvertQuoteRequest{})
		assert.True(t, shared.IsErrorCode(err, "INVALID_STATE"))
	})
}
