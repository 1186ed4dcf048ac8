package trade

import (
	"context"

	"github.com/google/uuid"
	appcatalog "github.com/retailflow/backend/internal/application/catalog"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// TransferService orchestrates cross-tenant stock transfers. The source
// gives up stock at creation time; the destination gains it later through
// ordinary order receipt against the auto-generated destination order.
type TransferService struct {
	txManager    shared.TransactionManager
	transferRepo trade.StockTransferRepository
	orderRepo    trade.PurchaseOrderRepository
	productRepo  catalog.ProductRepository
	refGen       *ReferenceGenerator
	stockService *appcatalog.StockService
	recorder     audit.Recorder
}

// NewTransferService creates a new TransferService
func NewTransferService(
	txManager shared.TransactionManager,
	transferRepo trade.StockTransferRepository,
	orderRepo trade.PurchaseOrderRepository,
	productRepo catalog.ProductRepository,
	refGen *ReferenceGenerator,
	stockService *appcatalog.StockService,
	recorder audit.Recorder,
) *TransferService {
	return &TransferService{
		txManager:    txManager,
		transferRepo: transferRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		refGen:       refGen,
		stockService: stockService,
		recorder:     recorder,
	}
}

// Create creates a transfer: deducts source stock immediately, matches or
// auto-creates destination products and generates the confirmed destination
// order, all in one transaction.
func (s *TransferService) Create(ctx context.Context, sourceTenantID uuid.UUID, req CreateTransferRequest) (*TransferResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer must have at least one item")
	}

	var transfer *trade.StockTransfer
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		reference, err := s.refGen.NextTransferReference(ctx, sourceTenantID)
		if err != nil {
			return err
		}
		transfer, err = trade.NewStockTransfer(reference, sourceTenantID, req.DestinationTenantID)
		if err != nil {
			return err
		}
		transfer.Note = req.Note

		orderRef, err := s.refGen.NextOrderReference(ctx, req.DestinationTenantID)
		if err != nil {
			return err
		}
		order, err := trade.NewTransferOrder(req.DestinationTenantID, orderRef, transfer.ID)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			source, err := s.stockService.Deduct(ctx, sourceTenantID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			dest, err := s.matchDestinationProduct(ctx, req.DestinationTenantID, source, line)
			if err != nil {
				return err
			}

			if err := transfer.AddItem(source.ID, dest.ID, source.Name,
				line.Quantity, line.TransferPrice, source.PurchasePrice); err != nil {
				return err
			}
			if err := order.AddItem(dest.ID, dest.Name, line.Quantity, line.TransferPrice); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		transfer.LinkOrder(order.ID)
		if err := s.transferRepo.Save(ctx, transfer); err != nil {
			return err
		}

		s.recorder.Record(ctx, audit.NewEntry(sourceTenantID, "stock_transfer", transfer.ID, audit.ActionCreated).
			WithDetail("reference", transfer.Reference).
			WithDetail("destination_tenant", req.DestinationTenantID.String()))
		s.recorder.Record(ctx, audit.NewEntry(req.DestinationTenantID, "purchase_order", order.ID, audit.ActionCreated).
			WithDetail("reference", order.Reference).
			WithDetail("transfer", transfer.Reference))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTransferResponse(transfer)
	return &response, nil
}

// matchDestinationProduct finds the destination-side product for a transfer
// line by global reference, then local reference, then exact name; when no
// match exists a zero-stock product is created with the transfer price as
// its purchase cost basis.
func (s *TransferService) matchDestinationProduct(ctx context.Context, destTenantID uuid.UUID, source *catalog.Product, line TransferItemRequest) (*catalog.Product, error) {
	if source.GlobalReference != "" {
		product, err := s.productRepo.FindByGlobalReference(ctx, destTenantID, source.GlobalReference)
		if err == nil {
			return product, nil
		}
		if !shared.IsErrorCode(err, "NOT_FOUND") {
			return nil, err
		}
	}
	if source.LocalReference != "" {
		product, err := s.productRepo.FindByLocalReference(ctx, destTenantID, source.LocalReference)
		if err == nil {
			return product, nil
		}
		if !shared.IsErrorCode(err, "NOT_FOUND") {
			return nil, err
		}
	}
	product, err := s.productRepo.FindByName(ctx, destTenantID, source.Name)
	if err == nil {
		return product, nil
	}
	if !shared.IsErrorCode(err, "NOT_FOUND") {
		return nil, err
	}

	created, err := catalog.NewProduct(destTenantID, source.Name, line.TransferPrice, source.SalePrice, decimal.Zero)
	if err != nil {
		return nil, err
	}
	created.SetReferences(source.LocalReference, source.GlobalReference)
	if err := s.productRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Validate confirms dispatch on the source side
func (s *TransferService) Validate(ctx context.Context, tenantID, transferID uuid.UUID) (*TransferResponse, error) {
	var transfer *trade.StockTransfer
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		transfer, err = s.transferRepo.FindByIDForTenant(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := transfer.Validate(); err != nil {
			return err
		}
		if err := s.transferRepo.Save(ctx, transfer); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(tenantID, "stock_transfer", transfer.ID, audit.ActionValidated).
			WithDetail("reference", transfer.Reference))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTransferResponse(transfer)
	return &response, nil
}

// Cancel aborts a transfer before receipt: source stock comes back and the
// destination order is cancelled unless it already completed.
func (s *TransferService) Cancel(ctx context.Context, tenantID, transferID uuid.UUID, reason string) (*TransferResponse, error) {
	var transfer *trade.StockTransfer
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		transfer, err = s.transferRepo.FindByIDForTenant(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := transfer.Cancel(); err != nil {
			return err
		}

		for _, item := range transfer.Items {
			if _, err := s.stockService.Restore(ctx, transfer.SourceTenantID, item.SourceProductID, item.Quantity); err != nil {
				return err
			}
		}

		order, err := s.orderRepo.FindByTransfer(ctx, transfer.ID)
		if err != nil {
			if !shared.IsErrorCode(err, "NOT_FOUND") {
				return err
			}
		} else if order.Status != trade.OrderStatusCompleted && order.Status != trade.OrderStatusCancelled {
			if err := order.Cancel(reason); err != nil {
				return err
			}
			if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
				return err
			}
			s.recorder.Record(ctx, audit.NewEntry(transfer.DestinationTenantID, "purchase_order", order.ID, audit.ActionCancelled).
				WithDetail("reference", order.Reference))
		}

		if err := s.transferRepo.Save(ctx, transfer); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(transfer.SourceTenantID, "stock_transfer", transfer.ID, audit.ActionCancelled).
			WithDetail("reference", transfer.Reference).
			WithDetail("reason", reason))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTransferResponse(transfer)
	return &response, nil
}

// GetByID retrieves a transfer visible to the acting tenant
func (s *TransferService) GetByID(ctx context.Context, tenantID, transferID uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, transferID)
	if err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// List retrieves transfers where the tenant is source or destination
func (s *TransferService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]TransferResponse, int64, error) {
	transfers, err := s.transferRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transferRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransferResponses(transfers), total, nil
}
