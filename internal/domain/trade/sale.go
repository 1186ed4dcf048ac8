package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of a sale
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPartial, PaymentStatusPending, PaymentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus computes the status of a sale from its total and the
// sum of declared payments. Within PaymentTolerance of the total the sale is
// paid; any positive payment short of the total is partial; with no payment
// the caller-supplied hint (pending or cancelled) is respected.
func DerivePaymentStatus(total, paid decimal.Decimal, hint PaymentStatus) PaymentStatus {
	if paid.IsPositive() && total.Sub(paid).LessThanOrEqual(valueobject.PaymentTolerance) {
		return PaymentStatusPaid
	}
	if total.IsZero() && paid.IsZero() {
		return PaymentStatusPaid
	}
	if paid.IsPositive() {
		return PaymentStatusPartial
	}
	if hint == PaymentStatusCancelled {
		return PaymentStatusCancelled
	}
	return PaymentStatusPending
}

// SaleItem is an immutable line item snapshot. Price and quantity are fixed
// at sale time and never re-linked to the live product.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// NewSaleItem creates a new sale line item
func NewSaleItem(saleID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	quantity = valueobject.Round2(quantity)
	unitPrice = valueobject.Round2(unitPrice)
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      valueobject.Round2(quantity.Mul(unitPrice)),
	}, nil
}

// Sale is the point-of-sale aggregate root. Items are immutable once the
// sale is created; only the payment status and amounts move as payments
// accrue.
type Sale struct {
	shared.TenantAggregateRoot
	Reference      string
	ClientID       *uuid.UUID // nil for anonymous sales
	Items          []SaleItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	AmountPaid     decimal.Decimal
	AmountDue      decimal.Decimal
	Status         PaymentStatus
	Note           string
	SoldAt         time.Time
}

// NewSale creates a sale with its item snapshots and derives the payment
// status from the declared payment sum.
func NewSale(tenantID uuid.UUID, reference string, clientID *uuid.UUID, discount decimal.Decimal, statusHint PaymentStatus) (*Sale, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale reference cannot be empty")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if statusHint != "" && !statusHint.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment status")
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Reference:           reference,
		ClientID:            clientID,
		Items:               make([]SaleItem, 0),
		TotalAmount:         decimal.Zero,
		DiscountAmount:      valueobject.Round2(discount),
		AmountPaid:          decimal.Zero,
		AmountDue:           decimal.Zero,
		Status:              PaymentStatusPending,
		SoldAt:              time.Now(),
	}, nil
}

// AddItem snapshots a line item and updates the running total
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	item, err := NewSaleItem(s.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}
	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	return nil
}

// SettlePayments records the summed declared payments, computes the amount
// due and derives the final status. hint is only consulted when nothing was
// paid.
func (s *Sale) SettlePayments(paid decimal.Decimal, hint PaymentStatus) error {
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Payment sum cannot be negative")
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Sale must have at least one item")
	}

	paid = valueobject.Round2(paid)
	due := valueobject.Round2(s.TotalAmount.Sub(paid))
	if due.IsNegative() {
		due = decimal.Zero
	}

	s.AmountPaid = paid
	s.AmountDue = due
	s.Status = DerivePaymentStatus(s.TotalAmount, paid, hint)
	if s.Status == PaymentStatusPaid {
		s.AmountDue = decimal.Zero
	}
	s.Touch()
	return nil
}

// SetNote sets a free-form note
func (s *Sale) SetNote(note string) {
	s.Note = note
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Amount)
	}
	total = total.Sub(s.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	s.TotalAmount = valueobject.Round2(total)
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// IsPaid returns true if the sale is fully settled
func (s *Sale) IsPaid() bool {
	return s.Status == PaymentStatusPaid
}
