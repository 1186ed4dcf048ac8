package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	supplierID := uuid.New()
	order, err := NewPurchaseOrder(uuid.New(), "CMD-20260115-001", &supplierID)
	require.NoError(t, err)
	return order
}

func addOrderItem(t *testing.T, order *PurchaseOrder, name string, qty, price float64) uuid.UUID {
	productID := uuid.New()
	err := order.AddItem(productID, name, decimal.NewFromFloat(qty), decimal.NewFromFloat(price))
	require.NoError(t, err)
	return productID
}

// ============================================
// OrderStatus Tests
// ============================================

func TestOrderStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderStatusDraft, false},
		{OrderStatusSent, false},
		{OrderStatusConfirmed, false},
		{OrderStatusPartiallyReceived, false},
		{OrderStatusCompleted, true},
		{OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestOrderStatus_CanReceive(t *testing.T) {
	tests := []struct {
		status     OrderStatus
		canReceive bool
	}{
		{OrderStatusDraft, false},
		{OrderStatusSent, false},
		{OrderStatusConfirmed, true},
		{OrderStatusPartiallyReceived, true},
		{OrderStatusCompleted, false},
		{OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.canReceive, tt.status.CanReceive())
		})
	}
}

// ============================================
// NewPurchaseOrder Tests
// ============================================

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("starts as draft", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.False(t, order.IsTransferLinked())
		assert.True(t, order.EstimatedTotal.IsZero())
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "", nil)
		assert.Error(t, err)
	})
}

func TestNewTransferOrder(t *testing.T) {
	order, err := NewTransferOrder(uuid.New(), "CMD-20260115-002", uuid.New())
	require.NoError(t, err)

	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.True(t, order.IsTransferLinked())
	assert.Nil(t, order.SupplierID)
}

// ============================================
// AddItem Tests
// ============================================

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("accumulates estimated total", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addOrderItem(t, order, "Widget", 10, 5)
		addOrderItem(t, order, "Gadget", 4, 2.50)

		assert.True(t, order.EstimatedTotal.Equal(decimal.NewFromInt(60)), "got %s", order.EstimatedTotal)
	})

	t.Run("rejected once order is confirmed", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		err := order.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("transfer order accepts items while confirmed and keeps totals equal", func(t *testing.T) {
		order, err := NewTransferOrder(uuid.New(), "CMD-20260115-003", uuid.New())
		require.NoError(t, err)

		addOrderItem(t, order, "Widget", 10, 5)
		assert.True(t, order.ActualTotal.Equal(order.EstimatedTotal))
		assert.True(t, order.PriceVariance.IsZero())
	})
}

// ============================================
// Status Transition Tests
// ============================================

func TestPurchaseOrder_Transitions(t *testing.T) {
	t.Run("draft to sent to confirmed", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addOrderItem(t, order, "Widget", 10, 5)

		require.NoError(t, order.MarkSent())
		assert.Equal(t, OrderStatusSent, order.Status)

		require.NoError(t, order.MarkConfirmed())
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})

	t.Run("cannot confirm without items", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Error(t, order.MarkConfirmed())
	})

	t.Run("cancel records reason and timestamp", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		require.NoError(t, order.Cancel("supplier out of business"))

		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "supplier out of business", order.CancelReason)
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("cannot cancel a completed order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 5, 10)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(5), decimal.NewFromInt(10), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()
		require.Equal(t, OrderStatusCompleted, order.Status)

		assert.Error(t, order.Cancel("too late"))
	})

	t.Run("override is permissive but protects terminal states", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		require.NoError(t, order.OverrideStatus(OrderStatusPartiallyReceived))
		assert.Equal(t, OrderStatusPartiallyReceived, order.Status)

		require.NoError(t, order.OverrideStatus(OrderStatusCompleted))
		assert.NotNil(t, order.CompletedAt)

		assert.Error(t, order.OverrideStatus(OrderStatusDraft))
	})
}

// ============================================
// Receiving Tests
// ============================================

func TestPurchaseOrder_ReceiveItem(t *testing.T) {
	t.Run("cannot receive on a draft order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(5), decimal.NewFromInt(5), nil)
		assert.Error(t, err)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(5), nil)
		assert.Error(t, err)
	})

	t.Run("partial receipt moves order to partially received", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(4), decimal.NewFromInt(5), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()

		assert.Equal(t, OrderStatusPartiallyReceived, order.Status)
		item := order.GetItemByProduct(productID)
		assert.Equal(t, OrderItemStatusPartiallyReceived, item.Status)
		assert.True(t, item.Remaining().Equal(decimal.NewFromInt(6)))
	})

	t.Run("full receipt across calls completes the order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(4), decimal.NewFromInt(5), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()

		_, err = order.ReceiveItem(productID, decimal.NewFromInt(6), decimal.NewFromInt(5), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()

		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.NotNil(t, order.CompletedAt)
		assert.True(t, order.AllReceived())
	})

	t.Run("cannot receive more than ordered", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(11), decimal.NewFromInt(5), nil)
		assert.Error(t, err)
	})

	t.Run("weighted average actual price across receptions", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		// 4 units at 6.00 then 6 units at 4.00 => (24 + 24) / 10 = 4.80
		_, err := order.ReceiveItem(productID, decimal.NewFromInt(4), decimal.NewFromInt(6), nil)
		require.NoError(t, err)
		_, err = order.ReceiveItem(productID, decimal.NewFromInt(6), decimal.NewFromInt(4), nil)
		require.NoError(t, err)

		item := order.GetItemByProduct(productID)
		assert.True(t, item.ActualPrice.Equal(decimal.NewFromFloat(4.80)), "got %s", item.ActualPrice)
		assert.Len(t, item.Receptions, 2)
	})

	t.Run("actual total and variance recomputed on finalize", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5) // estimated 50
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(10), decimal.NewFromInt(6), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()

		assert.True(t, order.ActualTotal.Equal(decimal.NewFromInt(60)), "got %s", order.ActualTotal)
		assert.True(t, order.PriceVariance.Equal(decimal.NewFromInt(10)), "got %s", order.PriceVariance)
	})

	t.Run("transfer order totals untouched by receipt", func(t *testing.T) {
		order, err := NewTransferOrder(uuid.New(), "CMD-20260115-004", uuid.New())
		require.NoError(t, err)
		productID := addOrderItem(t, order, "Widget", 10, 5)

		_, err = order.ReceiveItem(productID, decimal.NewFromInt(10), decimal.NewFromInt(7), nil)
		require.NoError(t, err)
		order.FinalizeReceipt()

		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.True(t, order.ActualTotal.Equal(decimal.NewFromInt(50)), "got %s", order.ActualTotal)
		assert.True(t, order.PriceVariance.IsZero())
	})

	t.Run("rejects non-positive actual price", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		productID := addOrderItem(t, order, "Widget", 10, 5)
		require.NoError(t, order.MarkConfirmed())

		_, err := order.ReceiveItem(productID, decimal.NewFromInt(1), decimal.Zero, nil)
		assert.Error(t, err)
	})
}
