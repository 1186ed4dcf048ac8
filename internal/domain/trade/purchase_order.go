package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a supplier purchase order
type OrderStatus string

const (
	OrderStatusDraft             OrderStatus = "draft"
	OrderStatusSent              OrderStatus = "sent"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusPartiallyReceived OrderStatus = "partially_received"
	OrderStatusCompleted         OrderStatus = "completed"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusConfirmed,
		OrderStatusPartiallyReceived, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states no transition may leave
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanReceive returns true if goods can be received against this status
func (s OrderStatus) CanReceive() bool {
	return s == OrderStatusConfirmed || s == OrderStatusPartiallyReceived
}

// OrderItemStatus tracks receipt progress of a single line
type OrderItemStatus string

const (
	OrderItemStatusPending           OrderItemStatus = "pending"
	OrderItemStatusPartiallyReceived OrderItemStatus = "partially_received"
	OrderItemStatusReceived          OrderItemStatus = "received"
)

// Reception records one receiving event against an order line. Multiple
// receptions accumulate against the same line until it is fully received.
type Reception struct {
	ID          uuid.UUID
	OrderItemID uuid.UUID
	Quantity    decimal.Decimal
	ActualPrice decimal.Decimal
	ReceivedBy  *uuid.UUID
	ReceivedAt  time.Time
}

// OrderItem is a purchase order line. ActualPrice is the weighted-average
// unit cost across all receptions to date, maintained incrementally from the
// running received cost rather than by replaying the reception history.
type OrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	OrderedQuantity  decimal.Decimal
	EstimatedPrice   decimal.Decimal
	ReceivedQuantity decimal.Decimal
	ReceivedCost     decimal.Decimal
	ActualPrice      decimal.Decimal
	Status           OrderItemStatus
	Receptions       []Reception
}

// NewOrderItem creates a purchase order line
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity, estimatedPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Ordered quantity must be positive")
	}
	if estimatedPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Estimated price cannot be negative")
	}

	return &OrderItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		ProductID:        productID,
		ProductName:      productName,
		OrderedQuantity:  valueobject.Round2(quantity),
		EstimatedPrice:   valueobject.Round2(estimatedPrice),
		ReceivedQuantity: decimal.Zero,
		ReceivedCost:     decimal.Zero,
		ActualPrice:      decimal.Zero,
		Status:           OrderItemStatusPending,
		Receptions:       make([]Reception, 0),
	}, nil
}

// EstimatedAmount returns ordered quantity times estimated price
func (i *OrderItem) EstimatedAmount() decimal.Decimal {
	return valueobject.Round2(i.OrderedQuantity.Mul(i.EstimatedPrice))
}

// Remaining returns the quantity still to be received
func (i *OrderItem) Remaining() decimal.Decimal {
	return i.OrderedQuantity.Sub(i.ReceivedQuantity)
}

// IsFullyReceived returns true once the ordered quantity is fully received
func (i *OrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// receive folds one reception into the line: accumulates quantity and cost,
// recomputes the weighted-average actual price and flips the line status.
func (i *OrderItem) receive(quantity, actualPrice decimal.Decimal, receivedBy *uuid.UUID) (*Reception, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Received quantity must be positive")
	}
	if actualPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Actual price must be positive")
	}
	if i.ReceivedQuantity.Add(quantity).GreaterThan(i.OrderedQuantity) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Received quantity exceeds ordered quantity for %s", i.ProductName))
	}

	quantity = valueobject.Round2(quantity)
	actualPrice = valueobject.Round2(actualPrice)

	reception := Reception{
		ID:          uuid.New(),
		OrderItemID: i.ID,
		Quantity:    quantity,
		ActualPrice: actualPrice,
		ReceivedBy:  receivedBy,
		ReceivedAt:  time.Now(),
	}
	i.Receptions = append(i.Receptions, reception)

	i.ReceivedQuantity = valueobject.Round2(i.ReceivedQuantity.Add(quantity))
	i.ReceivedCost = valueobject.Round2(i.ReceivedCost.Add(quantity.Mul(actualPrice)))
	i.ActualPrice = valueobject.Round2(i.ReceivedCost.Div(i.ReceivedQuantity))

	if i.IsFullyReceived() {
		i.Status = OrderItemStatusReceived
	} else {
		i.Status = OrderItemStatusPartiallyReceived
	}
	return &i.Receptions[len(i.Receptions)-1], nil
}

// PurchaseOrder is the supplier order aggregate root. Transfer-linked orders
// (TransferID set, no supplier) carry authoritative totals fixed at creation;
// receipt never re-accumulates them.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Reference      string
	SupplierID     *uuid.UUID
	TransferID     *uuid.UUID
	Items          []OrderItem
	EstimatedTotal decimal.Decimal
	ActualTotal    decimal.Decimal
	PriceVariance  decimal.Decimal
	Status         OrderStatus
	Note           string
	OrderedAt      time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// NewPurchaseOrder creates a draft supplier order
func NewPurchaseOrder(tenantID uuid.UUID, reference string, supplierID *uuid.UUID) (*PurchaseOrder, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order reference cannot be empty")
	}

	return &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Reference:           reference,
		SupplierID:          supplierID,
		Items:               make([]OrderItem, 0),
		EstimatedTotal:      decimal.Zero,
		ActualTotal:         decimal.Zero,
		PriceVariance:       decimal.Zero,
		Status:              OrderStatusDraft,
		OrderedAt:           time.Now(),
	}, nil
}

// NewTransferOrder creates the destination order for a stock transfer. The
// order starts confirmed, not draft, because price and quantity are already
// fixed by the transfer; estimated and actual totals are set equal up front.
func NewTransferOrder(tenantID uuid.UUID, reference string, transferID uuid.UUID) (*PurchaseOrder, error) {
	order, err := NewPurchaseOrder(tenantID, reference, nil)
	if err != nil {
		return nil, err
	}
	order.TransferID = &transferID
	order.Status = OrderStatusConfirmed
	return order, nil
}

// IsTransferLinked returns true when the order was generated by a transfer
func (o *PurchaseOrder) IsTransferLinked() bool {
	return o.TransferID != nil
}

// AddItem adds a line and refreshes the estimated total. For transfer orders
// the actual total tracks the estimate since it is authoritative at creation.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity, estimatedPrice decimal.Decimal) error {
	canAdd := o.Status == OrderStatusDraft ||
		(o.IsTransferLinked() && o.Status == OrderStatusConfirmed && o.noReceipts())
	if !canAdd {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to an order already in progress")
	}
	item, err := NewOrderItem(o.ID, productID, productName, quantity, estimatedPrice)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.refreshEstimatedTotal()
	if o.IsTransferLinked() {
		o.ActualTotal = o.EstimatedTotal
		o.PriceVariance = decimal.Zero
	}
	o.Touch()
	return nil
}

func (o *PurchaseOrder) noReceipts() bool {
	for idx := range o.Items {
		if !o.Items[idx].ReceivedQuantity.IsZero() {
			return false
		}
	}
	return true
}

// MarkSent transitions draft → sent
func (o *PurchaseOrder) MarkSent() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send order in %s status", o.Status))
	}
	o.Status = OrderStatusSent
	o.Touch()
	return nil
}

// MarkConfirmed transitions sent (or draft) → confirmed
func (o *PurchaseOrder) MarkConfirmed() error {
	if o.Status != OrderStatusDraft && o.Status != OrderStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot confirm order without items")
	}
	o.Status = OrderStatusConfirmed
	o.Touch()
	return nil
}

// ReceiveItem applies one reception to the line for productID and returns
// the reception record. The caller recomputes order-level state with
// FinalizeReceipt once every line of the receiving call is applied.
func (o *PurchaseOrder) ReceiveItem(productID uuid.UUID, quantity, actualPrice decimal.Decimal, receivedBy *uuid.UUID) (*Reception, error) {
	if !o.Status.CanReceive() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods on order in %s status", o.Status))
	}
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return o.Items[idx].receive(quantity, actualPrice, receivedBy)
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Product is not part of this order")
}

// FinalizeReceipt recomputes order status and totals after a receiving call.
// The order completes only when every line is fully received. Totals of
// transfer-linked orders are left untouched; they were fixed at creation.
func (o *PurchaseOrder) FinalizeReceipt() {
	allReceived := true
	for idx := range o.Items {
		if !o.Items[idx].IsFullyReceived() {
			allReceived = false
			break
		}
	}
	if allReceived {
		now := time.Now()
		o.Status = OrderStatusCompleted
		o.CompletedAt = &now
	} else {
		o.Status = OrderStatusPartiallyReceived
	}

	if !o.IsTransferLinked() {
		actual := decimal.Zero
		for idx := range o.Items {
			actual = actual.Add(o.Items[idx].ReceivedCost)
		}
		o.ActualTotal = valueobject.Round2(actual)
		o.PriceVariance = valueobject.Round2(o.ActualTotal.Sub(o.EstimatedTotal))
	}
	o.Touch()
}

// OverrideStatus overwrites the order status. The source system deliberately
// imposes no transition table here beyond protecting terminal states; see
// UpdateOrderStatus in the order service.
func (o *PurchaseOrder) OverrideStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid order status")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change status of a %s order", o.Status))
	}
	o.Status = target
	if target == OrderStatusCompleted {
		now := time.Now()
		o.CompletedAt = &now
	}
	o.Touch()
	return nil
}

// Cancel cancels the order from any non-terminal state
func (o *PurchaseOrder) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	return nil
}

// AllReceived returns true once every line is fully received
func (o *PurchaseOrder) AllReceived() bool {
	for idx := range o.Items {
		if !o.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// GetItemByProduct returns the line for a product ID
func (o *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *PurchaseOrder) refreshEstimatedTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].EstimatedAmount())
	}
	o.EstimatedTotal = valueobject.Round2(total)
}
