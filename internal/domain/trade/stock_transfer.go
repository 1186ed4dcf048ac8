package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the lifecycle of a stock transfer
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusValidated TransferStatus = "validated"
	TransferStatusReceived  TransferStatus = "received"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusValidated, TransferStatusReceived, TransferStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TransferStatus) CanTransitionTo(target TransferStatus) bool {
	switch s {
	case TransferStatusPending:
		return target == TransferStatusValidated || target == TransferStatusReceived || target == TransferStatusCancelled
	case TransferStatusValidated:
		return target == TransferStatusReceived || target == TransferStatusCancelled
	case TransferStatusReceived, TransferStatusCancelled:
		return false
	}
	return false
}

// TransferItem is one line of a stock transfer. SourceProductID lives in the
// source tenant, DestinationProductID in the destination tenant (matched or
// auto-created at transfer creation). OriginalPurchasePrice preserves the
// source cost basis next to the negotiated transfer price.
type TransferItem struct {
	ID                    uuid.UUID
	TransferID            uuid.UUID
	SourceProductID       uuid.UUID
	DestinationProductID  uuid.UUID
	ProductName           string
	Quantity              decimal.Decimal
	TransferPrice         decimal.Decimal
	OriginalPurchasePrice decimal.Decimal
}

// NewTransferItem creates a transfer line
func NewTransferItem(transferID, sourceProductID, destProductID uuid.UUID, productName string, quantity, transferPrice, originalPrice decimal.Decimal) (*TransferItem, error) {
	if sourceProductID == uuid.Nil || destProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination products are required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer quantity must be positive")
	}
	if transferPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer price cannot be negative")
	}

	return &TransferItem{
		ID:                    uuid.New(),
		TransferID:            transferID,
		SourceProductID:       sourceProductID,
		DestinationProductID:  destProductID,
		ProductName:           productName,
		Quantity:              valueobject.Round2(quantity),
		TransferPrice:         valueobject.Round2(transferPrice),
		OriginalPurchasePrice: valueobject.Round2(originalPrice),
	}, nil
}

// Amount returns quantity times transfer price
func (i *TransferItem) Amount() decimal.Decimal {
	return valueobject.Round2(i.Quantity.Mul(i.TransferPrice))
}

// StockTransfer moves inventory between two tenant businesses. The source
// gives up stock at creation time, so a transfer in flight is a liability the
// source cannot resell; the destination gains stock only when the linked
// destination order is received. Not tenant-scoped like other aggregates:
// it belongs to both sides.
type StockTransfer struct {
	shared.BaseAggregateRoot
	Reference           string
	SourceTenantID      uuid.UUID
	DestinationTenantID uuid.UUID
	OrderID             uuid.UUID // the auto-generated destination order
	Items               []TransferItem
	Status              TransferStatus
	Note                string
	ValidatedAt         *time.Time
	ReceivedAt          *time.Time
	CancelledAt         *time.Time
}

// NewStockTransfer creates a pending transfer between two businesses
func NewStockTransfer(reference string, sourceTenantID, destinationTenantID uuid.UUID) (*StockTransfer, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer reference cannot be empty")
	}
	if sourceTenantID == uuid.Nil || destinationTenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination businesses are required")
	}
	if sourceTenantID == destinationTenantID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cannot transfer stock to the same business")
	}

	return &StockTransfer{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Reference:           reference,
		SourceTenantID:      sourceTenantID,
		DestinationTenantID: destinationTenantID,
		Items:               make([]TransferItem, 0),
		Status:              TransferStatusPending,
	}, nil
}

// AddItem adds a transfer line
func (t *StockTransfer) AddItem(sourceProductID, destProductID uuid.UUID, productName string, quantity, transferPrice, originalPrice decimal.Decimal) error {
	if t.Status != TransferStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a transfer already in progress")
	}
	item, err := NewTransferItem(t.ID, sourceProductID, destProductID, productName, quantity, transferPrice, originalPrice)
	if err != nil {
		return err
	}
	t.Items = append(t.Items, *item)
	t.Touch()
	return nil
}

// LinkOrder attaches the auto-generated destination order
func (t *StockTransfer) LinkOrder(orderID uuid.UUID) {
	t.OrderID = orderID
	t.Touch()
}

// TotalAmount sums the transfer line amounts
func (t *StockTransfer) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for idx := range t.Items {
		total = total.Add(t.Items[idx].Amount())
	}
	return valueobject.Round2(total)
}

// Validate confirms dispatch by the source business
func (t *StockTransfer) Validate() error {
	if !t.Status.CanTransitionTo(TransferStatusValidated) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot validate transfer in %s status", t.Status))
	}
	now := time.Now()
	t.Status = TransferStatusValidated
	t.ValidatedAt = &now
	t.UpdatedAt = now
	return nil
}

// MarkReceived completes the transfer when the destination order is
// received. Idempotent: marking an already-received transfer is a no-op.
func (t *StockTransfer) MarkReceived() error {
	if t.Status == TransferStatusReceived {
		return nil
	}
	if !t.Status.CanTransitionTo(TransferStatusReceived) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive transfer in %s status", t.Status))
	}
	now := time.Now()
	t.Status = TransferStatusReceived
	t.ReceivedAt = &now
	t.UpdatedAt = now
	return nil
}

// Cancel aborts the transfer; only legal before goods were received
func (t *StockTransfer) Cancel() error {
	if !t.Status.CanTransitionTo(TransferStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel transfer in %s status", t.Status))
	}
	now := time.Now()
	t.Status = TransferStatusCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	return nil
}

// IsReceived returns true once the destination has received the goods
func (t *StockTransfer) IsReceived() bool {
	return t.Status == TransferStatusReceived
}
