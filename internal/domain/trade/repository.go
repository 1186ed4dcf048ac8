package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
)

// SaleRepository persists sales and their line items
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// CountForDay counts the tenant's sales created on the given calendar
	// day; the next sequence number is this count plus one.
	CountForDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (int64, error)
	Save(ctx context.Context, sale *Sale) error
}

// PaymentRepository persists payment records
type PaymentRepository interface {
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// PurchaseOrderRepository persists purchase orders, items and receptions
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindByTransfer(ctx context.Context, transferID uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*PurchaseOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountForDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	// SaveWithLock updates an order guarded by its loaded version, failing
	// when a concurrent writer changed the row. Receipt and status changes
	// must use this instead of Save.
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error
}

// StockTransferRepository persists cross-tenant stock transfers. Transfers
// are visible to both sides, so lookups take the acting tenant and match it
// against either end.
type StockTransferRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockTransfer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*StockTransfer, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// CountForDay counts transfers dispatched by the source tenant on the
	// given calendar day.
	CountForDay(ctx context.Context, sourceTenantID uuid.UUID, day time.Time) (int64, error)
	Save(ctx context.Context, transfer *StockTransfer) error
}

// QuoteRepository persists quotes
type QuoteRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Quote, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Quote, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// CountForMonth counts the tenant's quotes created in the given calendar
	// month; quote references are numbered per month, not per day.
	CountForMonth(ctx context.Context, tenantID uuid.UUID, month time.Time) (int64, error)
	Save(ctx context.Context, quote *Quote) error
}

// PurchaseHistoryRepository persists the append-only stock inflow ledger
type PurchaseHistoryRepository interface {
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]*PurchaseHistory, error)
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
	Save(ctx context.Context, record *PurchaseHistory) error
}
