package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleItemModel is the persistence model for a sale line item.
type SaleItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem.
func (m *SaleItemModel) ToDomain() trade.SaleItem {
	return trade.SaleItem{
		ID:          m.ID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain SaleItem.
func (m *SaleItemModel) FromDomain(i trade.SaleItem) {
	m.ID = i.ID
	m.SaleID = i.SaleID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
}

// SaleModel is the persistence model for the Sale aggregate.
type SaleModel struct {
	TenantAggregateModel
	Reference      string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_tenant_reference,priority:2"`
	ClientID       *uuid.UUID          `gorm:"type:uuid;index"`
	Items          []SaleItemModel     `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	AmountDue      decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Status         trade.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Note           string              `gorm:"type:text"`
	SoldAt         time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale aggregate.
func (m *SaleModel) ToDomain() *trade.Sale {
	items := make([]trade.SaleItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &trade.Sale{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Reference:           m.Reference,
		ClientID:            m.ClientID,
		Items:               items,
		TotalAmount:         m.TotalAmount,
		DiscountAmount:      m.DiscountAmount,
		AmountPaid:          m.AmountPaid,
		AmountDue:           m.AmountDue,
		Status:              m.Status,
		Note:                m.Note,
		SoldAt:              m.SoldAt,
	}
}

// FromDomain populates the persistence model from a domain Sale aggregate.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Reference = s.Reference
	m.ClientID = s.ClientID
	m.Items = make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i].FromDomain(item)
	}
	m.TotalAmount = s.TotalAmount
	m.DiscountAmount = s.DiscountAmount
	m.AmountPaid = s.AmountPaid
	m.AmountDue = s.AmountDue
	m.Status = s.Status
	m.Note = s.Note
	m.SoldAt = s.SoldAt
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// PaymentModel is the persistence model for a payment record.
type PaymentModel struct {
	BaseModel
	TenantID uuid.UUID           `gorm:"type:uuid;not null;index:idx_payment_tenant_sale,priority:1"`
	SaleID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_payment_tenant_sale,priority:2"`
	Method   trade.PaymentMethod `gorm:"type:varchar(20);not null"`
	Amount   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaidAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *trade.Payment {
	return &trade.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		SaleID:     m.SaleID,
		Method:     m.Method,
		Amount:     m.Amount,
		PaidAt:     m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *trade.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.SaleID = p.SaleID
	m.Method = p.Method
	m.Amount = p.Amount
	m.PaidAt = p.PaidAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *trade.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ReceptionModel is the persistence model for one receiving event on an
// order line.
type ReceptionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ActualPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReceivedBy  *uuid.UUID      `gorm:"type:uuid"`
	ReceivedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceptionModel) TableName() string {
	return "order_receptions"
}

// ToDomain converts the persistence model to a domain Reception.
func (m *ReceptionModel) ToDomain() trade.Reception {
	return trade.Reception{
		ID:          m.ID,
		OrderItemID: m.OrderItemID,
		Quantity:    m.Quantity,
		ActualPrice: m.ActualPrice,
		ReceivedBy:  m.ReceivedBy,
		ReceivedAt:  m.ReceivedAt,
	}
}

// FromDomain populates the persistence model from a domain Reception.
func (m *ReceptionModel) FromDomain(r trade.Reception) {
	m.ID = r.ID
	m.OrderItemID = r.OrderItemID
	m.Quantity = r.Quantity
	m.ActualPrice = r.ActualPrice
	m.ReceivedBy = r.ReceivedBy
	m.ReceivedAt = r.ReceivedAt
}

// OrderItemModel is the persistence model for a purchase order line.
type OrderItemModel struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductName      string                `gorm:"type:varchar(200);not null"`
	OrderedQuantity  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	EstimatedPrice   decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	ReceivedQuantity decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ReceivedCost     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ActualPrice      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status           trade.OrderItemStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Receptions       []ReceptionModel      `gorm:"foreignKey:OrderItemID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	receptions := make([]trade.Reception, len(m.Receptions))
	for i, r := range m.Receptions {
		receptions[i] = r.ToDomain()
	}
	return trade.OrderItem{
		ID:               m.ID,
		OrderID:          m.OrderID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		OrderedQuantity:  m.OrderedQuantity,
		EstimatedPrice:   m.EstimatedPrice,
		ReceivedQuantity: m.ReceivedQuantity,
		ReceivedCost:     m.ReceivedCost,
		ActualPrice:      m.ActualPrice,
		Status:           m.Status,
		Receptions:       receptions,
	}
}

// FromDomain populates the persistence model from a domain OrderItem.
func (m *OrderItemModel) FromDomain(i trade.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.OrderedQuantity = i.OrderedQuantity
	m.EstimatedPrice = i.EstimatedPrice
	m.ReceivedQuantity = i.ReceivedQuantity
	m.ReceivedCost = i.ReceivedCost
	m.ActualPrice = i.ActualPrice
	m.Status = i.Status
	m.Receptions = make([]ReceptionModel, len(i.Receptions))
	for idx, r := range i.Receptions {
		m.Receptions[idx].FromDomain(r)
	}
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate.
type PurchaseOrderModel struct {
	TenantAggregateModel
	Reference      string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_reference,priority:2"`
	SupplierID     *uuid.UUID        `gorm:"type:uuid;index"`
	TransferID     *uuid.UUID        `gorm:"type:uuid;index"`
	Items          []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID"`
	EstimatedTotal decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	ActualTotal    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PriceVariance  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status         trade.OrderStatus `gorm:"type:varchar(30);not null;default:'draft'"`
	Note           string            `gorm:"type:text"`
	OrderedAt      time.Time         `gorm:"not null;index"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string            `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder aggregate.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	items := make([]trade.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &trade.PurchaseOrder{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Reference:           m.Reference,
		SupplierID:          m.SupplierID,
		TransferID:          m.TransferID,
		Items:               items,
		EstimatedTotal:      m.EstimatedTotal,
		ActualTotal:         m.ActualTotal,
		PriceVariance:       m.PriceVariance,
		Status:              m.Status,
		Note:                m.Note,
		OrderedAt:           m.OrderedAt,
		CompletedAt:         m.CompletedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain PurchaseOrder aggregate.
func (m *PurchaseOrderModel) FromDomain(o *trade.PurchaseOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Reference = o.Reference
	m.SupplierID = o.SupplierID
	m.TransferID = o.TransferID
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i].FromDomain(item)
	}
	m.EstimatedTotal = o.EstimatedTotal
	m.ActualTotal = o.ActualTotal
	m.PriceVariance = o.PriceVariance
	m.Status = o.Status
	m.Note = o.Note
	m.OrderedAt = o.OrderedAt
	m.CompletedAt = o.CompletedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain
// PurchaseOrder.
func PurchaseOrderModelFromDomain(o *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// TransferItemModel is the persistence model for a stock transfer line.
type TransferItemModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key"`
	TransferID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	DestinationProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName           string          `gorm:"type:varchar(200);not null"`
	Quantity              decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TransferPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OriginalPurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (TransferItemModel) TableName() string {
	return "stock_transfer_items"
}

// ToDomain converts the persistence model to a domain TransferItem.
func (m *TransferItemModel) ToDomain() trade.TransferItem {
	return trade.TransferItem{
		ID:                    m.ID,
		TransferID:            m.TransferID,
		SourceProductID:       m.SourceProductID,
		DestinationProductID:  m.DestinationProductID,
		ProductName:           m.ProductName,
		Quantity:              m.Quantity,
		TransferPrice:         m.TransferPrice,
		OriginalPurchasePrice: m.OriginalPurchasePrice,
	}
}

// FromDomain populates the persistence model from a domain TransferItem.
func (m *TransferItemModel) FromDomain(i trade.TransferItem) {
	m.ID = i.ID
	m.TransferID = i.TransferID
	m.SourceProductID = i.SourceProductID
	m.DestinationProductID = i.DestinationProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.TransferPrice = i.TransferPrice
	m.OriginalPurchasePrice = i.OriginalPurchasePrice
}

// StockTransferModel is the persistence model for the StockTransfer
// aggregate. A transfer belongs to both tenant sides, so it carries explicit
// source and destination tenant columns instead of the shared tenant scope.
type StockTransferModel struct {
	AggregateModel
	Reference           string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	SourceTenantID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	DestinationTenantID uuid.UUID            `gorm:"type:uuid;not null;index"`
	OrderID             uuid.UUID            `gorm:"type:uuid;index"`
	Items               []TransferItemModel  `gorm:"foreignKey:TransferID;references:ID"`
	Status              trade.TransferStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Note                string               `gorm:"type:text"`
	ValidatedAt         *time.Time
	ReceivedAt          *time.Time
	CancelledAt         *time.Time
}

// TableName returns the table name for GORM
func (StockTransferModel) TableName() string {
	return "stock_transfers"
}

// ToDomain converts the persistence model to a domain StockTransfer aggregate.
func (m *StockTransferModel) ToDomain() *trade.StockTransfer {
	items := make([]trade.TransferItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &trade.StockTransfer{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		Reference:           m.Reference,
		SourceTenantID:      m.SourceTenantID,
		DestinationTenantID: m.DestinationTenantID,
		OrderID:             m.OrderID,
		Items:               items,
		Status:              m.Status,
		Note:                m.Note,
		ValidatedAt:         m.ValidatedAt,
		ReceivedAt:          m.ReceivedAt,
		CancelledAt:         m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain StockTransfer aggregate.
func (m *StockTransferModel) FromDomain(t *trade.StockTransfer) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Reference = t.Reference
	m.SourceTenantID = t.SourceTenantID
	m.DestinationTenantID = t.DestinationTenantID
	m.OrderID = t.OrderID
	m.Items = make([]TransferItemModel, len(t.Items))
	for i, item := range t.Items {
		m.Items[i].FromDomain(item)
	}
	m.Status = t.Status
	m.Note = t.Note
	m.ValidatedAt = t.ValidatedAt
	m.ReceivedAt = t.ReceivedAt
	m.CancelledAt = t.CancelledAt
}

// StockTransferModelFromDomain creates a new persistence model from a domain
// StockTransfer.
func StockTransferModelFromDomain(t *trade.StockTransfer) *StockTransferModel {
	m := &StockTransferModel{}
	m.FromDomain(t)
	return m
}

// QuoteItemModel is the persistence model for a quote line.
type QuoteItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (QuoteItemModel) TableName() string {
	return "quote_items"
}

// ToDomain converts the persistence model to a domain QuoteItem.
func (m *QuoteItemModel) ToDomain() trade.QuoteItem {
	return trade.QuoteItem{
		ID:          m.ID,
		QuoteID:     m.QuoteID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain QuoteItem.
func (m *QuoteItemModel) FromDomain(i trade.QuoteItem) {
	m.ID = i.ID
	m.QuoteID = i.QuoteID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
}

// QuoteModel is the persistence model for the Quote aggregate.
type QuoteModel struct {
	TenantAggregateModel
	Reference      string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_quote_tenant_reference,priority:2"`
	ClientID       *uuid.UUID        `gorm:"type:uuid;index"`
	Items          []QuoteItemModel  `gorm:"foreignKey:QuoteID;references:ID"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status         trade.QuoteStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ValidUntil     time.Time         `gorm:"not null"`
	SaleID         *uuid.UUID        `gorm:"type:uuid"`
	Note           string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the persistence model to a domain Quote aggregate.
func (m *QuoteModel) ToDomain() *trade.Quote {
	items := make([]trade.QuoteItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &trade.Quote{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Reference:           m.Reference,
		ClientID:            m.ClientID,
		Items:               items,
		TotalAmount:         m.TotalAmount,
		DiscountAmount:      m.DiscountAmount,
		Status:              m.Status,
		ValidUntil:          m.ValidUntil,
		SaleID:              m.SaleID,
		Note:                m.Note,
	}
}

// FromDomain populates the persistence model from a domain Quote aggregate.
func (m *QuoteModel) FromDomain(q *trade.Quote) {
	m.FromDomainTenantAggregateRoot(q.TenantAggregateRoot)
	m.Reference = q.Reference
	m.ClientID = q.ClientID
	m.Items = make([]QuoteItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i].FromDomain(item)
	}
	m.TotalAmount = q.TotalAmount
	m.DiscountAmount = q.DiscountAmount
	m.Status = q.Status
	m.ValidUntil = q.ValidUntil
	m.SaleID = q.SaleID
	m.Note = q.Note
}

// QuoteModelFromDomain creates a new persistence model from a domain Quote.
func QuoteModelFromDomain(q *trade.Quote) *QuoteModel {
	m := &QuoteModel{}
	m.FromDomain(q)
	return m
}

// PurchaseHistoryModel is the persistence model for the append-only stock
// inflow ledger.
type PurchaseHistoryModel struct {
	BaseModel
	TenantID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_history_tenant_product,priority:1"`
	ProductID  uuid.UUID            `gorm:"type:uuid;not null;index:idx_history_tenant_product,priority:2"`
	OrderID    *uuid.UUID           `gorm:"type:uuid;index"`
	TransferID *uuid.UUID           `gorm:"type:uuid;index"`
	Source     trade.PurchaseSource `gorm:"type:varchar(20);not null"`
	Quantity   decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	UnitPrice  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalCost  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	ReceivedAt time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PurchaseHistoryModel) TableName() string {
	return "purchase_histories"
}

// ToDomain converts the persistence model to a domain PurchaseHistory record.
func (m *PurchaseHistoryModel) ToDomain() *trade.PurchaseHistory {
	return &trade.PurchaseHistory{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		ProductID:  m.ProductID,
		OrderID:    m.OrderID,
		TransferID: m.TransferID,
		Source:     m.Source,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TotalCost:  m.TotalCost,
		ReceivedAt: m.ReceivedAt,
	}
}

// FromDomain populates the persistence model from a domain PurchaseHistory record.
func (m *PurchaseHistoryModel) FromDomain(h *trade.PurchaseHistory) {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.TenantID = h.TenantID
	m.ProductID = h.ProductID
	m.OrderID = h.OrderID
	m.TransferID = h.TransferID
	m.Source = h.Source
	m.Quantity = h.Quantity
	m.UnitPrice = h.UnitPrice
	m.TotalCost = h.TotalCost
	m.ReceivedAt = h.ReceivedAt
}

// PurchaseHistoryModelFromDomain creates a new persistence model from a
// domain PurchaseHistory.
func PurchaseHistoryModelFromDomain(h *trade.PurchaseHistory) *PurchaseHistoryModel {
	m := &PurchaseHistoryModel{}
	m.FromDomain(h)
	return m
}
