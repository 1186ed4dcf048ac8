package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.True(t, Round2(decimal.NewFromFloat(1.005)).Equal(decimal.NewFromFloat(1.01)))
	assert.True(t, Round2(decimal.NewFromFloat(1.004)).Equal(decimal.NewFromFloat(1.00)))
	assert.True(t, Round2(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestPaymentTolerance(t *testing.T) {
	total := decimal.NewFromInt(100)

	tests := []struct {
		name   string
		paid   decimal.Decimal
		covers bool
	}{
		{"exact", decimal.NewFromInt(100), true},
		{"over", decimal.NewFromInt(110), true},
		{"one cent short", decimal.NewFromFloat(99.99), true},
		{"two cents short", decimal.NewFromFloat(99.98), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			covers := total.Sub(tt.paid).LessThanOrEqual(PaymentTolerance)
			assert.Equal(t, tt.covers, covers)
		})
	}
}
