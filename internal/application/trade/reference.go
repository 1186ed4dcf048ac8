package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/trade"
)

// ReferenceGenerator produces human-readable document references numbered
// per tenant and per period. The count query runs inside the caller's
// transaction; a unique index on (tenant_id, reference) is the ultimate
// guarantee against a duplicate slipping through under concurrency.
type ReferenceGenerator struct {
	saleRepo     trade.SaleRepository
	orderRepo    trade.PurchaseOrderRepository
	transferRepo trade.StockTransferRepository
	quoteRepo    trade.QuoteRepository
}

// NewReferenceGenerator creates a new ReferenceGenerator
func NewReferenceGenerator(
	saleRepo trade.SaleRepository,
	orderRepo trade.PurchaseOrderRepository,
	transferRepo trade.StockTransferRepository,
	quoteRepo trade.QuoteRepository,
) *ReferenceGenerator {
	return &ReferenceGenerator{
		saleRepo:     saleRepo,
		orderRepo:    orderRepo,
		transferRepo: transferRepo,
		quoteRepo:    quoteRepo,
	}
}

// NextSaleReference returns the next VTE-YYYYMMDD-NNN reference
func (g *ReferenceGenerator) NextSaleReference(ctx context.Context, tenantID uuid.UUID) (string, error) {
	now := time.Now()
	count, err := g.saleRepo.CountForDay(ctx, tenantID, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("VTE-%s-%03d", now.Format("20060102"), count+1), nil
}

// NextOrderReference returns the next CMD-YYYYMMDD-NNN reference
func (g *ReferenceGenerator) NextOrderReference(ctx context.Context, tenantID uuid.UUID) (string, error) {
	now := time.Now()
	count, err := g.orderRepo.CountForDay(ctx, tenantID, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CMD-%s-%03d", now.Format("20060102"), count+1), nil
}

// NextTransferReference returns the next TRF-YYYYMMDD-NNN reference,
// numbered against the source business.
func (g *ReferenceGenerator) NextTransferReference(ctx context.Context, sourceTenantID uuid.UUID) (string, error) {
	now := time.Now()
	count, err := g.transferRepo.CountForDay(ctx, sourceTenantID, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TRF-%s-%03d", now.Format("20060102"), count+1), nil
}

// NextQuoteReference returns the next DEV-YYYY-MM-NNN reference, numbered
// per calendar month.
func (g *ReferenceGenerator) NextQuoteReference(ctx context.Context, tenantID uuid.UUID) (string, error) {
	now := time.Now()
	count, err := g.quoteRepo.CountForMonth(ctx, tenantID, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DEV-%s-%03d", now.Format("2006-01"), count+1), nil
}
