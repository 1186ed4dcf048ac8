package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodMobile  PaymentMethod = "mobile"
	PaymentMethodCheque  PaymentMethod = "cheque"
	PaymentMethodAccount PaymentMethod = "account" // drawn from the client's prepaid balance
)

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile, PaymentMethodCheque, PaymentMethodAccount:
		return true
	}
	return false
}

// Payment is an append-only record of money received against a sale
type Payment struct {
	shared.BaseEntity
	TenantID uuid.UUID
	SaleID   uuid.UUID
	Method   PaymentMethod
	Amount   decimal.Decimal
	PaidAt   time.Time
}

// NewPayment creates a payment record for a sale
func NewPayment(tenantID, saleID uuid.UUID, method PaymentMethod, amount decimal.Decimal) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		SaleID:     saleID,
		Method:     method,
		Amount:     valueobject.Round2(amount),
		PaidAt:     time.Now(),
	}, nil
}
