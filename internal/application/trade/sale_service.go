package trade

import (
	"context"

	"github.com/google/uuid"
	appcatalog "github.com/retailflow/backend/internal/application/catalog"
	apppartner "github.com/retailflow/backend/internal/application/partner"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleService orchestrates the point-of-sale workflow. A sale creation is a
// single transaction covering client resolution, reference generation, stock
// deduction, payment recording and the optional account debit; if any step
// fails nothing is persisted. Low-stock alerts collected during the
// transaction are published only after commit.
type SaleService struct {
	txManager      shared.TransactionManager
	saleRepo       trade.SaleRepository
	paymentRepo    trade.PaymentRepository
	refGen         *ReferenceGenerator
	clientService  *apppartner.ClientService
	accountService *apppartner.AccountService
	stockService   *appcatalog.StockService
	notifier       appcatalog.LowStockNotifier
	recorder       audit.Recorder
}

// NewSaleService creates a new SaleService
func NewSaleService(
	txManager shared.TransactionManager,
	saleRepo trade.SaleRepository,
	paymentRepo trade.PaymentRepository,
	refGen *ReferenceGenerator,
	clientService *apppartner.ClientService,
	accountService *apppartner.AccountService,
	stockService *appcatalog.StockService,
	notifier appcatalog.LowStockNotifier,
	recorder audit.Recorder,
) *SaleService {
	return &SaleService{
		txManager:      txManager,
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		refGen:         refGen,
		clientService:  clientService,
		accountService: accountService,
		stockService:   stockService,
		notifier:       notifier,
		recorder:       recorder,
	}
}

// Create creates a sale atomically and returns its full representation
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale must have at least one item")
	}
	statusHint := trade.PaymentStatus(req.StatusHint)
	if req.StatusHint != "" && !statusHint.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment status hint")
	}
	for _, p := range req.Payments {
		if !p.Method.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
		}
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
		}
	}

	var (
		sale     *trade.Sale
		lowStock []*catalog.Product
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		client, err := s.clientService.Resolve(ctx, tenantID, apppartner.ResolveClientInput{
			ClientID: req.ClientID,
			FullName: req.ClientName,
			Phone:    req.ClientPhone,
		})
		if err != nil {
			return err
		}
		var clientID *uuid.UUID
		if client != nil {
			clientID = &client.ID
		}

		for _, p := range req.Payments {
			if p.Method == trade.PaymentMethodAccount && clientID == nil {
				return shared.NewDomainError("INVALID_INPUT", "Account payment requires a client")
			}
		}

		reference, err := s.refGen.NextSaleReference(ctx, tenantID)
		if err != nil {
			return err
		}

		sale, err = trade.NewSale(tenantID, reference, clientID, req.Discount, statusHint)
		if err != nil {
			return err
		}
		if req.Note != "" {
			sale.SetNote(req.Note)
		}

		for _, line := range req.Items {
			product, err := s.stockService.Deduct(ctx, tenantID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			price := product.SalePrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			if err := sale.AddItem(product.ID, product.Name, line.Quantity, price); err != nil {
				return err
			}
			if product.IsBelowThreshold() {
				lowStock = append(lowStock, product)
			}
		}

		paid := decimal.Zero
		for _, p := range req.Payments {
			paid = paid.Add(p.Amount)
		}
		if err := sale.SettlePayments(paid, statusHint); err != nil {
			return err
		}

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}

		for _, p := range req.Payments {
			payment, err := trade.NewPayment(tenantID, sale.ID, p.Method, p.Amount)
			if err != nil {
				return err
			}
			if err := s.paymentRepo.Save(ctx, payment); err != nil {
				return err
			}
			if p.Method == trade.PaymentMethodAccount {
				if err := s.accountService.DebitForSale(ctx, tenantID, *clientID, sale.ID, p.Amount); err != nil {
					return err
				}
			}
		}

		s.recorder.Record(ctx, audit.NewEntry(tenantID, "sale", sale.ID, audit.ActionCreated).
			WithDetail("reference", sale.Reference).
			WithDetail("total", sale.TotalAmount.String()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, product := range lowStock {
		s.notifier.NotifyLowStock(ctx, product)
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByReference retrieves a sale by its document reference
func (s *SaleService) GetByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByReference(ctx, tenantID, reference)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SaleResponse, int64, error) {
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(sales), total, nil
}

// ListPayments lists the payments recorded against a sale
func (s *SaleService) ListPayments(ctx context.Context, tenantID, saleID uuid.UUID) ([]*trade.Payment, error) {
	if _, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindBySale(ctx, tenantID, saleID)
}
