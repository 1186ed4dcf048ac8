package trade

import (
	"context"

	"github.com/google/uuid"
	appcatalog "github.com/retailflow/backend/internal/application/catalog"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
)

// QuoteService handles quotes and their conversion to sales. Conversion
// delegates sale creation to the sale service and then marks the quote in a
// follow-up transaction; a conversion mark failure after the sale committed
// is surfaced to the caller rather than rolling the sale back.
type QuoteService struct {
	txManager    shared.TransactionManager
	quoteRepo    trade.QuoteRepository
	refGen       *ReferenceGenerator
	stockService *appcatalog.StockService
	saleService  *SaleService
	recorder     audit.Recorder
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	txManager shared.TransactionManager,
	quoteRepo trade.QuoteRepository,
	refGen *ReferenceGenerator,
	stockService *appcatalog.StockService,
	saleService *SaleService,
	recorder audit.Recorder,
) *QuoteService {
	return &QuoteService{
		txManager:    txManager,
		quoteRepo:    quoteRepo,
		refGen:       refGen,
		stockService: stockService,
		saleService:  saleService,
		recorder:     recorder,
	}
}

// Create creates a quote; no stock moves
func (s *QuoteService) Create(ctx context.Context, tenantID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	var quote *trade.Quote
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		reference, err := s.refGen.NextQuoteReference(ctx, tenantID)
		if err != nil {
			return err
		}
		quote, err = trade.NewQuote(tenantID, reference, req.ClientID, req.Discount)
		if err != nil {
			return err
		}
		if req.ValidUntil != nil {
			if err := quote.SetValidUntil(*req.ValidUntil); err != nil {
				return err
			}
		}
		if req.Note != "" {
			quote.SetNote(req.Note)
		}

		for _, line := range req.Items {
			product, err := s.stockService.Product(ctx, tenantID, line.ProductID)
			if err != nil {
				return err
			}
			price := product.SalePrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			if err := quote.AddItem(product.ID, product.Name, line.Quantity, price); err != nil {
				return err
			}
		}

		if err := s.quoteRepo.Save(ctx, quote); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(tenantID, "quote", quote.ID, audit.ActionCreated).
			WithDetail("reference", quote.Reference))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Convert turns a quote into a sale. The sale runs through the full sale
// workflow (stock deduction, payments, account debit) in its own
// transaction; the quote is then marked converted with a back-reference.
func (s *QuoteService) Convert(ctx context.Context, tenantID, quoteID uuid.UUID, req ConvertQuoteRequest) (*SaleResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := quote.CanConvert(); err != nil {
		return nil, err
	}

	saleReq := CreateSaleRequest{
		ClientID: quote.ClientID,
		Discount: quote.DiscountAmount,
		Payments: req.Payments,
		Note:     "converted from " + quote.Reference,
	}
	for i := range quote.Items {
		item := &quote.Items[i]
		price := item.UnitPrice
		saleReq.Items = append(saleReq.Items, SaleItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: &price,
		})
	}

	sale, err := s.saleService.Create(ctx, tenantID, saleReq)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		// reload to avoid clobbering a concurrent update
		quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if err := quote.MarkConverted(sale.ID); err != nil {
			return err
		}
		if err := s.quoteRepo.Save(ctx, quote); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(tenantID, "quote", quote.ID, audit.ActionConverted).
			WithDetail("sale_reference", sale.Reference))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// UpdateStatus moves a quote through its decision states
func (s *QuoteService) UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status string) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := quote.UpdateStatus(trade.QuoteStatus(status)); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]QuoteResponse, int64, error) {
	quotes, err := s.quoteRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToQuoteResponses(quotes), total, nil
}
