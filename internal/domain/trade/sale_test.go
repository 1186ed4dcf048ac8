package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestSale(t *testing.T) *Sale {
	tenantID := uuid.New()
	sale, err := NewSale(tenantID, "VTE-20260115-001", nil, decimal.Zero, "")
	require.NoError(t, err)
	return sale
}

func addSaleItem(t *testing.T, sale *Sale, name string, qty, price float64) {
	err := sale.AddItem(uuid.New(), name, decimal.NewFromFloat(qty), decimal.NewFromFloat(price))
	require.NoError(t, err)
}

// ============================================
// DerivePaymentStatus Tests
// ============================================

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		paid  float64
		hint  PaymentStatus
		want  PaymentStatus
	}{
		{"exact payment is paid", 100, 100, "", PaymentStatusPaid},
		{"overpayment is paid", 100, 120, "", PaymentStatusPaid},
		{"within tolerance is paid", 100, 99.99, "", PaymentStatusPaid},
		{"one cent over tolerance is partial", 100, 99.98, "", PaymentStatusPartial},
		{"half payment is partial", 100, 50, "", PaymentStatusPartial},
		{"no payment defaults to pending", 100, 0, "", PaymentStatusPending},
		{"no payment respects cancelled hint", 100, 0, PaymentStatusCancelled, PaymentStatusCancelled},
		{"positive payment ignores cancelled hint", 100, 50, PaymentStatusCancelled, PaymentStatusPartial},
		{"zero total zero paid is paid", 0, 0, "", PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentStatus(decimal.NewFromFloat(tt.total), decimal.NewFromFloat(tt.paid), tt.hint)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PaymentStatus
		isValid bool
	}{
		{PaymentStatusPaid, true},
		{PaymentStatusPartial, true},
		{PaymentStatusPending, true},
		{PaymentStatusCancelled, true},
		{PaymentStatus("bogus"), false},
		{PaymentStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

// ============================================
// NewSale Tests
// ============================================

func TestNewSale(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates sale with valid inputs", func(t *testing.T) {
		clientID := uuid.New()
		sale, err := NewSale(tenantID, "VTE-20260115-001", &clientID, decimal.Zero, "")
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.Equal(t, tenantID, sale.TenantID)
		assert.Equal(t, "VTE-20260115-001", sale.Reference)
		assert.Equal(t, clientID, *sale.ClientID)
		assert.Equal(t, PaymentStatusPending, sale.Status)
		assert.Empty(t, sale.Items)
		assert.True(t, sale.TotalAmount.IsZero())
	})

	t.Run("allows anonymous sale", func(t *testing.T) {
		sale, err := NewSale(tenantID, "VTE-20260115-002", nil, decimal.Zero, "")
		require.NoError(t, err)
		assert.Nil(t, sale.ClientID)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewSale(tenantID, "", nil, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewSale(tenantID, "VTE-20260115-003", nil, decimal.NewFromInt(-5), "")
		assert.Error(t, err)
	})
}

// ============================================
// Sale.AddItem Tests
// ============================================

func TestSale_AddItem(t *testing.T) {
	t.Run("accumulates total across items", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 2, 10.50)
		addSaleItem(t, sale, "Gadget", 1, 4.25)

		assert.Equal(t, 2, sale.ItemCount())
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(25.25)),
			"got %s", sale.TotalAmount)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		sale := createTestSale(t)
		err := sale.AddItem(uuid.New(), "Widget", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		sale := createTestSale(t)
		err := sale.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(-10))
		assert.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		sale := createTestSale(t)
		err := sale.AddItem(uuid.Nil, "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestSale_Discount(t *testing.T) {
	t.Run("discount reduces total", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), "VTE-20260115-004", nil, decimal.NewFromInt(5), "")
		require.NoError(t, err)
		addSaleItem(t, sale, "Widget", 2, 10)

		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(15)), "got %s", sale.TotalAmount)
	})

	t.Run("total floors at zero when discount exceeds items", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), "VTE-20260115-005", nil, decimal.NewFromInt(100), "")
		require.NoError(t, err)
		addSaleItem(t, sale, "Widget", 1, 10)

		assert.True(t, sale.TotalAmount.IsZero())
	})
}

// ============================================
// Sale.SettlePayments Tests
// ============================================

func TestSale_SettlePayments(t *testing.T) {
	t.Run("full payment settles the sale", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 2, 50)

		err := sale.SettlePayments(decimal.NewFromInt(100), "")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPaid, sale.Status)
		assert.True(t, sale.IsPaid())
		assert.True(t, sale.AmountDue.IsZero())
		assert.True(t, sale.AmountPaid.Equal(decimal.NewFromInt(100)))
	})

	t.Run("partial payment leaves amount due", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 2, 50)

		err := sale.SettlePayments(decimal.NewFromInt(40), "")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPartial, sale.Status)
		assert.True(t, sale.AmountDue.Equal(decimal.NewFromInt(60)), "got %s", sale.AmountDue)
	})

	t.Run("payment within tolerance settles and zeroes due", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 1, 100)

		err := sale.SettlePayments(decimal.NewFromFloat(99.99), "")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPaid, sale.Status)
		assert.True(t, sale.AmountDue.IsZero())
	})

	t.Run("overpayment does not go negative", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 1, 100)

		err := sale.SettlePayments(decimal.NewFromInt(150), "")
		require.NoError(t, err)
		assert.True(t, sale.AmountDue.IsZero())
	})

	t.Run("rejects settling without items", func(t *testing.T) {
		sale := createTestSale(t)
		err := sale.SettlePayments(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("rejects negative payment sum", func(t *testing.T) {
		sale := createTestSale(t)
		addSaleItem(t, sale, "Widget", 1, 100)
		err := sale.SettlePayments(decimal.NewFromInt(-1), "")
		assert.Error(t, err)
	})
}
