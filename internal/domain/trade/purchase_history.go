package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseSource tags where a stock inflow came from
type PurchaseSource string

const (
	PurchaseSourceOrder    PurchaseSource = "order"
	PurchaseSourceTransfer PurchaseSource = "transfer"
)

// IsValid checks if the source tag is known
func (s PurchaseSource) IsValid() bool {
	return s == PurchaseSourceOrder || s == PurchaseSourceTransfer
}

// PurchaseHistory is an immutable record of one stock inflow, the ledger
// average-cost calculations are derived from.
type PurchaseHistory struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	ProductID  uuid.UUID
	OrderID    *uuid.UUID
	TransferID *uuid.UUID
	Source     PurchaseSource
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalCost  decimal.Decimal
	ReceivedAt time.Time
}

// NewPurchaseHistory creates a stock inflow record
func NewPurchaseHistory(tenantID, productID uuid.UUID, source PurchaseSource, quantity, unitPrice decimal.Decimal) (*PurchaseHistory, error) {
	if tenantID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant and product IDs cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid purchase source")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	quantity = valueobject.Round2(quantity)
	unitPrice = valueobject.Round2(unitPrice)
	return &PurchaseHistory{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProductID:  productID,
		Source:     source,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalCost:  valueobject.Round2(quantity.Mul(unitPrice)),
		ReceivedAt: time.Now(),
	}, nil
}

// WithOrder links the inflow to its order
func (h *PurchaseHistory) WithOrder(orderID uuid.UUID) *PurchaseHistory {
	h.OrderID = &orderID
	return h
}

// WithTransfer links the inflow to its transfer
func (h *PurchaseHistory) WithTransfer(transferID uuid.UUID) *PurchaseHistory {
	h.TransferID = &transferID
	return h
}
