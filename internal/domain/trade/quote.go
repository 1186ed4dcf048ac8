package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultQuoteValidity is how long a quote stays convertible by default
const DefaultQuoteValidity = 30 * 24 * time.Hour

// QuoteStatus represents the lifecycle of a quote
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusRejected, QuoteStatusExpired, QuoteStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// QuoteItem is a proposed line item; quotes never touch stock
type QuoteItem struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// NewQuoteItem creates a quote line item
func NewQuoteItem(quoteID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*QuoteItem, error) {
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
	return &QuoteItem{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      valueobject.Round2(quantity.Mul(unitPrice)),
	}, nil
}

// Quote is a priced proposal with no stock effect. Converting it hands its
// items to the sale workflow and records a back-reference to the new sale.
type Quote struct {
	shared.TenantAggregateRoot
	Reference      string
	ClientID       *uuid.UUID
	Items          []QuoteItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	Status         QuoteStatus
	ValidUntil     time.Time
	SaleID         *uuid.UUID // set once converted
	Note           string
}

// NewQuote creates a draft quote with the default validity window
func NewQuote(tenantID uuid.UUID, reference string, clientID *uuid.UUID, discount decimal.Decimal) (*Quote, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote reference cannot be empty")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	return &Quote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Reference:           reference,
		ClientID:            clientID,
		Items:               make([]QuoteItem, 0),
		TotalAmount:         decimal.Zero,
		DiscountAmount:      valueobject.Round2(discount),
		Status:              QuoteStatusDraft,
		ValidUntil:          time.Now().Add(DefaultQuoteValidity),
	}, nil
}

// AddItem adds a line and refreshes the total
func (q *Quote) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if q.Status != QuoteStatusDraft && q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a decided quote")
	}
	item, err := NewQuoteItem(q.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}
	q.Items = append(q.Items, *item)
	q.recalculateTotal()
	q.Touch()
	return nil
}

// SetValidUntil overrides the validity deadline
func (q *Quote) SetValidUntil(deadline time.Time) error {
	if deadline.Before(time.Now()) {
		return shared.NewDomainError("INVALID_INPUT", "Validity deadline cannot be in the past")
	}
	q.ValidUntil = deadline
	q.Touch()
	return nil
}

// SetNote sets a free-form note
func (q *Quote) SetNote(note string) {
	q.Note = note
}

// IsExpired reports whether the validity window has lapsed
func (q *Quote) IsExpired() bool {
	return q.Status == QuoteStatusExpired || time.Now().After(q.ValidUntil)
}

// CanConvert reports whether the quote may still become a sale
func (q *Quote) CanConvert() error {
	switch q.Status {
	case QuoteStatusConverted:
		return shared.NewDomainError("ALREADY_EXISTS", "Quote has already been converted")
	case QuoteStatusRejected:
		return shared.NewDomainError("INVALID_STATE", "Cannot convert a rejected quote")
	case QuoteStatusExpired:
		return shared.NewDomainError("INVALID_STATE", "Cannot convert an expired quote")
	}
	if q.IsExpired() {
		return shared.NewDomainError("INVALID_STATE", "Cannot convert an expired quote")
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot convert a quote without items")
	}
	return nil
}

// MarkConverted records the sale produced from this quote
func (q *Quote) MarkConverted(saleID uuid.UUID) error {
	if err := q.CanConvert(); err != nil {
		return err
	}
	q.Status = QuoteStatusConverted
	q.SaleID = &saleID
	q.Touch()
	return nil
}

// UpdateStatus moves the quote through its decision states
func (q *Quote) UpdateStatus(target QuoteStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid quote status")
	}
	if q.Status == QuoteStatusConverted {
		return shared.NewDomainError("INVALID_STATE", "Cannot change status of a converted quote")
	}
	if target == QuoteStatusConverted {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Use conversion to reach %s", target))
	}
	q.Status = target
	q.Touch()
	return nil
}

func (q *Quote) recalculateTotal() {
	total := decimal.Zero
	for idx := range q.Items {
		total = total.Add(q.Items[idx].Amount)
	}
	total = total.Sub(q.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	q.TotalAmount = valueobject.Round2(total)
}
