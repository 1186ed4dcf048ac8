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

// OrderService orchestrates supplier orders and goods receiving. Receiving a
// transfer-linked order additionally completes the transfer on the source
// side; the whole receipt runs in one transaction.
type OrderService struct {
	txManager    shared.TransactionManager
	orderRepo    trade.PurchaseOrderRepository
	transferRepo trade.StockTransferRepository
	historyRepo  trade.PurchaseHistoryRepository
	refGen       *ReferenceGenerator
	stockService *appcatalog.StockService
	notifier     appcatalog.LowStockNotifier
	recorder     audit.Recorder
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txManager shared.TransactionManager,
	orderRepo trade.PurchaseOrderRepository,
	transferRepo trade.StockTransferRepository,
	historyRepo trade.PurchaseHistoryRepository,
	refGen *ReferenceGenerator,
	stockService *appcatalog.StockService,
	notifier appcatalog.LowStockNotifier,
	recorder audit.Recorder,
) *OrderService {
	return &OrderService{
		txManager:    txManager,
		orderRepo:    orderRepo,
		transferRepo: transferRepo,
		historyRepo:  historyRepo,
		refGen:       refGen,
		stockService: stockService,
		notifier:     notifier,
		recorder:     recorder,
	}
}

// Create creates a draft supplier order
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		reference, err := s.refGen.NextOrderReference(ctx, tenantID)
		if err != nil {
			return err
		}
		order, err = trade.NewPurchaseOrder(tenantID, reference, req.SupplierID)
		if err != nil {
			return err
		}
		order.Note = req.Note

		for _, line := range req.Items {
			product, err := s.stockService.Product(ctx, tenantID, line.ProductID)
			if err != nil {
				return err
			}
			if err := order.AddItem(product.ID, product.Name, line.Quantity, line.EstimatedPrice); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(tenantID, "purchase_order", order.ID, audit.ActionCreated).
			WithDetail("reference", order.Reference))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Receive applies a receiving call to an order: each line accumulates into
// its order item, stock and purchase cost move on the product, and an inflow
// record is appended. Transfer-linked orders skip the cost update, tag their
// inflow records as transfer-sourced and complete the transfer once fully
// received.
func (s *OrderService) Receive(ctx context.Context, tenantID, orderID uuid.UUID, req ReceiveOrderRequest) (*OrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receiving call must have at least one line")
	}

	var (
		order    *trade.PurchaseOrder
		lowStock []*catalog.Product
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			if _, err := order.ReceiveItem(line.ProductID, line.Quantity, line.ActualPrice, req.ReceivedBy); err != nil {
				return err
			}

			var newPrice *decimal.Decimal
			if !order.IsTransferLinked() {
				item := order.GetItemByProduct(line.ProductID)
				price := item.ActualPrice
				newPrice = &price
			}
			product, err := s.stockService.Receive(ctx, tenantID, line.ProductID, line.Quantity, newPrice)
			if err != nil {
				return err
			}
			if product.IsBelowThreshold() {
				lowStock = append(lowStock, product)
			}

			source := trade.PurchaseSourceOrder
			if order.IsTransferLinked() {
				source = trade.PurchaseSourceTransfer
			}
			record, err := trade.NewPurchaseHistory(tenantID, line.ProductID, source, line.Quantity, line.ActualPrice)
			if err != nil {
				return err
			}
			record.WithOrder(order.ID)
			if order.IsTransferLinked() {
				record.WithTransfer(*order.TransferID)
			}
			if err := s.historyRepo.Save(ctx, record); err != nil {
				return err
			}
		}

		order.FinalizeReceipt()
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return err
		}

		if order.IsTransferLinked() && order.AllReceived() {
			transfer, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, *order.TransferID)
			if err != nil {
				return err
			}
			if err := transfer.MarkReceived(); err != nil {
				return err
			}
			if err := s.transferRepo.Save(ctx, transfer); err != nil {
				return err
			}
		}

		s.recorder.Record(ctx, audit.NewEntry(tenantID, "purchase_order", order.ID, audit.ActionReceived).
			WithDetail("reference", order.Reference).
			WithDetail("status", string(order.Status)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, product := range lowStock {
		s.notifier.NotifyLowStock(ctx, product)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus overrides the order status, cancelling through Cancel when
// the target is cancelled so the reason and timestamp are recorded.
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid order status")
	}

	var order *trade.PurchaseOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		if target == trade.OrderStatusCancelled {
			err = order.Cancel(req.Reason)
		} else {
			err = order.OverrideStatus(target)
		}
		if err != nil {
			return err
		}
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return err
		}
		s.recorder.Record(ctx, audit.NewEntry(tenantID, "purchase_order", order.ID, audit.ActionUpdated).
			WithDetail("status", string(order.Status)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// ListProductHistory lists the stock inflow records for a product
func (s *OrderService) ListProductHistory(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]PurchaseHistoryResponse, int64, error) {
	records, err := s.historyRepo.FindByProduct(ctx, tenantID, productID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.historyRepo.CountByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, 0, err
	}
	return ToPurchaseHistoryResponses(records), total, nil
}
