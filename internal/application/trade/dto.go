package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a sale creation request. UnitPrice is
// optional; when absent the product's current sale price is used.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// PaymentRequest is one declared payment on a sale
type PaymentRequest struct {
	Method trade.PaymentMethod `json:"method" binding:"required"`
	Amount decimal.Decimal     `json:"amount" binding:"required"`
}

// CreateSaleRequest is the request to create a sale. The client is optional:
// either an existing client ID, or a name and phone pair to create one on
// the fly, or nothing for an anonymous sale.
type CreateSaleRequest struct {
	ClientID    *uuid.UUID        `json:"client_id"`
	ClientName  string            `json:"client_name"`
	ClientPhone string            `json:"client_phone"`
	Items       []SaleItemRequest `json:"items" binding:"required,min=1"`
	Payments    []PaymentRequest  `json:"payments"`
	Discount    decimal.Decimal   `json:"discount"`
	StatusHint  string            `json:"status_hint"`
	Note        string            `json:"note"`
}

// SaleItemResponse is one sale line in a response
type SaleItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleResponse is the sale representation returned to callers
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	Reference      string             `json:"reference"`
	ClientID       *uuid.UUID         `json:"client_id,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	AmountDue      decimal.Decimal    `json:"amount_due"`
	Status         string             `json:"status"`
	Note           string             `json:"note,omitempty"`
	SoldAt         time.Time          `json:"sold_at"`
}

// ToSaleResponse maps a sale aggregate to its response
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		items[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return SaleResponse{
		ID:             s.ID,
		Reference:      s.Reference,
		ClientID:       s.ClientID,
		Items:          items,
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		AmountPaid:     s.AmountPaid,
		AmountDue:      s.AmountDue,
		Status:         string(s.Status),
		Note:           s.Note,
		SoldAt:         s.SoldAt,
	}
}

// ToSaleResponses maps a slice of sales
func ToSaleResponses(sales []*trade.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = ToSaleResponse(s)
	}
	return responses
}

// OrderItemRequest is one line of an order creation request
type OrderItemRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	EstimatedPrice decimal.Decimal `json:"estimated_price" binding:"required"`
}

// CreateOrderRequest is the request to create a supplier order
type CreateOrderRequest struct {
	SupplierID *uuid.UUID         `json:"supplier_id"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1"`
	Note       string             `json:"note"`
}

// ReceiveLineRequest is one line of a receiving call
type ReceiveLineRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	ActualPrice decimal.Decimal `json:"actual_price" binding:"required"`
}

// ReceiveOrderRequest is the request to receive goods against an order
type ReceiveOrderRequest struct {
	Lines      []ReceiveLineRequest `json:"lines" binding:"required,min=1"`
	ReceivedBy *uuid.UUID           `json:"received_by"`
}

// UpdateOrderStatusRequest overrides the order status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// OrderItemResponse is one order line in a response
type OrderItemResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	EstimatedPrice   decimal.Decimal `json:"estimated_price"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	ActualPrice      decimal.Decimal `json:"actual_price"`
	Status           string          `json:"status"`
}

// OrderResponse is the purchase order representation
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Reference      string              `json:"reference"`
	SupplierID     *uuid.UUID          `json:"supplier_id,omitempty"`
	TransferID     *uuid.UUID          `json:"transfer_id,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	EstimatedTotal decimal.Decimal     `json:"estimated_total"`
	ActualTotal    decimal.Decimal     `json:"actual_total"`
	PriceVariance  decimal.Decimal     `json:"price_variance"`
	Status         string              `json:"status"`
	Note           string              `json:"note,omitempty"`
	OrderedAt      time.Time           `json:"ordered_at"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
}

// ToOrderResponse maps a purchase order aggregate to its response
func ToOrderResponse(o *trade.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			OrderedQuantity:  item.OrderedQuantity,
			EstimatedPrice:   item.EstimatedPrice,
			ReceivedQuantity: item.ReceivedQuantity,
			ActualPrice:      item.ActualPrice,
			Status:           string(item.Status),
		}
	}
	return OrderResponse{
		ID:             o.ID,
		Reference:      o.Reference,
		SupplierID:     o.SupplierID,
		TransferID:     o.TransferID,
		Items:          items,
		EstimatedTotal: o.EstimatedTotal,
		ActualTotal:    o.ActualTotal,
		PriceVariance:  o.PriceVariance,
		Status:         string(o.Status),
		Note:           o.Note,
		OrderedAt:      o.OrderedAt,
		CompletedAt:    o.CompletedAt,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []*trade.PurchaseOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}

// TransferItemRequest is one line of a transfer creation request
type TransferItemRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	TransferPrice decimal.Decimal `json:"transfer_price" binding:"required"`
}

// CreateTransferRequest is the request to move stock to another business
type CreateTransferRequest struct {
	DestinationTenantID uuid.UUID             `json:"destination_tenant_id" binding:"required"`
	Items               []TransferItemRequest `json:"items" binding:"required,min=1"`
	Note                string                `json:"note"`
}

// TransferItemResponse is one transfer line in a response
type TransferItemResponse struct {
	SourceProductID      uuid.UUID       `json:"source_product_id"`
	DestinationProductID uuid.UUID       `json:"destination_product_id"`
	ProductName          string          `json:"product_name"`
	Quantity             decimal.Decimal `json:"quantity"`
	TransferPrice        decimal.Decimal `json:"transfer_price"`
}

// TransferResponse is the stock transfer representation
type TransferResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Reference           string                 `json:"reference"`
	SourceTenantID      uuid.UUID              `json:"source_tenant_id"`
	DestinationTenantID uuid.UUID              `json:"destination_tenant_id"`
	OrderID             uuid.UUID              `json:"order_id"`
	Items               []TransferItemResponse `json:"items"`
	TotalAmount         decimal.Decimal        `json:"total_amount"`
	Status              string                 `json:"status"`
	CreatedAt           time.Time              `json:"created_at"`
	ValidatedAt         *time.Time             `json:"validated_at,omitempty"`
	ReceivedAt          *time.Time             `json:"received_at,omitempty"`
}

// ToTransferResponse maps a transfer aggregate to its response
func ToTransferResponse(t *trade.StockTransfer) TransferResponse {
	items := make([]TransferItemResponse, len(t.Items))
	for i := range t.Items {
		item := &t.Items[i]
		items[i] = TransferItemResponse{
			SourceProductID:      item.SourceProductID,
			DestinationProductID: item.DestinationProductID,
			ProductName:          item.ProductName,
			Quantity:             item.Quantity,
			TransferPrice:        item.TransferPrice,
		}
	}
	return TransferResponse{
		ID:                  t.ID,
		Reference:           t.Reference,
		SourceTenantID:      t.SourceTenantID,
		DestinationTenantID: t.DestinationTenantID,
		OrderID:             t.OrderID,
		Items:               items,
		TotalAmount:         t.TotalAmount(),
		Status:              string(t.Status),
		CreatedAt:           t.CreatedAt,
		ValidatedAt:         t.ValidatedAt,
		ReceivedAt:          t.ReceivedAt,
	}
}

// ToTransferResponses maps a slice of transfers
func ToTransferResponses(transfers []*trade.StockTransfer) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = ToTransferResponse(t)
	}
	return responses
}

// QuoteItemRequest is one line of a quote creation request
type QuoteItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest is the request to create a quote
type CreateQuoteRequest struct {
	ClientID   *uuid.UUID         `json:"client_id"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1"`
	Discount   decimal.Decimal    `json:"discount"`
	ValidUntil *time.Time         `json:"valid_until"`
	Note       string             `json:"note"`
}

// ConvertQuoteRequest carries the payments declared at conversion time
type ConvertQuoteRequest struct {
	Payments []PaymentRequest `json:"payments"`
}

// QuoteItemResponse is one quote line in a response
type QuoteItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuoteResponse is the quote representation
type QuoteResponse struct {
	ID             uuid.UUID           `json:"id"`
	Reference      string              `json:"reference"`
	ClientID       *uuid.UUID          `json:"client_id,omitempty"`
	Items          []QuoteItemResponse `json:"items"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Status         string              `json:"status"`
	ValidUntil     time.Time           `json:"valid_until"`
	SaleID         *uuid.UUID          `json:"sale_id,omitempty"`
	Note           string              `json:"note,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToQuoteResponse maps a quote aggregate to its response
func ToQuoteResponse(q *trade.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, len(q.Items))
	for i := range q.Items {
		item := &q.Items[i]
		items[i] = QuoteItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return QuoteResponse{
		ID:             q.ID,
		Reference:      q.Reference,
		ClientID:       q.ClientID,
		Items:          items,
		TotalAmount:    q.TotalAmount,
		DiscountAmount: q.DiscountAmount,
		Status:         string(q.Status),
		ValidUntil:     q.ValidUntil,
		SaleID:         q.SaleID,
		Note:           q.Note,
		CreatedAt:      q.CreatedAt,
	}
}

// ToQuoteResponses maps a slice of quotes
func ToQuoteResponses(quotes []*trade.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		responses[i] = ToQuoteResponse(q)
	}
	return responses
}

// PurchaseHistoryResponse is one stock inflow record
type PurchaseHistoryResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	OrderID    *uuid.UUID      `json:"order_id,omitempty"`
	TransferID *uuid.UUID      `json:"transfer_id,omitempty"`
	Source     string          `json:"source"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	ReceivedAt time.Time       `json:"received_at"`
}

// ToPurchaseHistoryResponses maps inflow records
func ToPurchaseHistoryResponses(records []*trade.PurchaseHistory) []PurchaseHistoryResponse {
	responses := make([]PurchaseHistoryResponse, len(records))
	for i, r := range records {
		responses[i] = PurchaseHistoryResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			OrderID:    r.OrderID,
			TransferID: r.TransferID,
			Source:     string(r.Source),
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			TotalCost:  r.TotalCost,
			ReceivedAt: r.ReceivedAt,
		}
	}
	return responses
}
