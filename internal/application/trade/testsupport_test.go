package trade

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/retailflow/backend/internal/application/catalog"
	apppartner "github.com/retailflow/backend/internal/application/partner"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// In-memory fakes for the orchestrator tests. Transactionality itself is
// covered by the persistence-layer tests; here the tx manager is a
// passthrough and assertions focus on what was (or was not) saved.

type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, entry *audit.Entry) {}

type capturingNotifier struct {
	alerts []*catalog.Product
}

func (n *capturingNotifier) NotifyLowStock(ctx context.Context, product *catalog.Product) {
	n.alerts = append(n.alerts, product)
}

// ---- catalog ----

type memProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepo) FindByGlobalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.GlobalReference == ref {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByLocalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.LocalReference == ref {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && strings.EqualFold(p.Name, name) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *memProductRepo) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	if current, ok := r.products[product.ID]; ok && current.Version != product.Version {
		return shared.ErrVersionConflict
	}
	copied := *product
	copied.Version = product.Version + 1
	r.products[product.ID] = &copied
	return nil
}

// ---- partner ----

type memClientRepo struct {
	clients map[uuid.UUID]*partner.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[uuid.UUID]*partner.Client)}
}

func (r *memClientRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memClientRepo) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	for _, c := range r.clients {
		if c.TenantID == tenantID && c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memClientRepo) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	for _, c := range r.clients {
		if c.TenantID == tenantID && c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memClientRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	var out []partner.Client
	for _, c := range r.clients {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memClientRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memClientRepo) Save(ctx context.Context, client *partner.Client) error {
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

type memAccountRepo struct {
	accounts map[uuid.UUID]*partner.ClientAccount // keyed by client ID
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*partner.ClientAccount)}
}

func (r *memAccountRepo) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) (*partner.ClientAccount, error) {
	a, ok := r.accounts[clientID]
	if !ok || a.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAccountRepo) Save(ctx context.Context, account *partner.ClientAccount) error {
	copied := *account
	r.accounts[account.ClientID] = &copied
	return nil
}

func (r *memAccountRepo) IncrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	a, ok := r.accounts[clientID]
	if !ok {
		created, err := partner.NewClientAccount(tenantID, clientID)
		if err != nil {
			return decimal.Zero, err
		}
		r.accounts[clientID] = created
		a = created
	}
	a.Balance = a.Balance.Add(amount)
	return a.Balance, nil
}

func (r *memAccountRepo) DecrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal, allowNegative bool) (decimal.Decimal, error) {
	a, ok := r.accounts[clientID]
	if !ok || a.TenantID != tenantID {
		if allowNegative {
			created, err := partner.NewClientAccount(tenantID, clientID)
			if err != nil {
				return decimal.Zero, err
			}
			r.accounts[clientID] = created
			a = created
		} else {
			return decimal.Zero, shared.ErrInsufficientBalance
		}
	}
	if !allowNegative && a.Balance.LessThan(amount) {
		return decimal.Zero, shared.ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return a.Balance, nil
}

type memTransactionRepo struct {
	entries []partner.AccountTransaction
}

func (r *memTransactionRepo) Save(ctx context.Context, tx *partner.AccountTransaction) error {
	r.entries = append(r.entries, *tx)
	return nil
}

func (r *memTransactionRepo) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]partner.AccountTransaction, error) {
	var out []partner.AccountTransaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.TenantID == tenantID && e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	items, _ := r.FindByClient(ctx, tenantID, clientID, shared.DefaultFilter())
	return int64(len(items)), nil
}

// ---- trade ----

type memSaleRepo struct {
	sales map[uuid.UUID]*trade.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*trade.Sale)}
}

func (r *memSaleRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSaleRepo) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*trade.Sale, error) {
	for _, s := range r.sales {
		if s.TenantID == tenantID && s.Reference == reference {
			copied := *s
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.Sale, error) {
	var out []*trade.Sale
	for _, s := range r.sales {
		if s.TenantID == tenantID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSaleRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memSaleRepo) CountForDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	for _, s := range r.sales {
		if s.TenantID == tenantID && sameDay(s.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}

func (r *memSaleRepo) Save(ctx context.Context, sale *trade.Sale) error {
	copied := *sale
	r.sales[sale.ID] = &copied
	return nil
}

type memPaymentRepo struct {
	payments []trade.Payment
}

func (r *memPaymentRepo) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*trade.Payment, error) {
	var out []*trade.Payment
	for i := range r.payments {
		p := r.payments[i]
		if p.TenantID == tenantID && p.SaleID == saleID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Save(ctx context.Context, payment *trade.Payment) error {
	r.payments = append(r.payments, *payment)
	return nil
}

type memOrderRepo struct {
	orders map[uuid.UUID]*trade.PurchaseOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*trade.PurchaseOrder)}
}

func (r *memOrderRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memOrderRepo) FindByTransfer(ctx context.Context, transferID uuid.UUID) (*trade.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.TransferID != nil && *o.TransferID == transferID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.PurchaseOrder, error) {
	var out []*trade.PurchaseOrder
	for _, o := range r.orders {
		if o.TenantID == tenantID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memOrderRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memOrderRepo) CountForDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.TenantID == tenantID && sameDay(o.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}

func (r *memOrderRepo) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *memOrderRepo) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	if current, ok := r.orders[order.ID]; ok && current.Version != order.Version {
		return shared.ErrVersionConflict
	}
	copied := *order
	copied.Version = order.Version + 1
	r.orders[order.ID] = &copied
	return nil
}

type memTransferRepo struct {
	transfers map[uuid.UUID]*trade.StockTransfer
}

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{transfers: make(map[uuid.UUID]*trade.StockTransfer)}
}

func (r *memTransferRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.StockTransfer, error) {
	t, ok := r.transfers[id]
	if !ok || (t.SourceTenantID != tenantID && t.DestinationTenantID != tenantID) {
		return nil, shared.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTransferRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.StockTransfer, error) {
	var out []*trade.StockTransfer
	for _, t := range r.transfers {
		if t.SourceTenantID == tenantID || t.DestinationTenantID == tenantID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memTransferRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memTransferRepo) CountForDay(ctx context.Context, sourceTenantID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	for _, t := range r.transfers {
		if t.SourceTenantID == sourceTenantID && sameDay(t.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}

func (r *memTransferRepo) Save(ctx context.Context, transfer *trade.StockTransfer) error {
	copied := *transfer
	r.transfers[transfer.ID] = &copied
	return nil
}

type memQuoteRepo struct {
	quotes map[uuid.UUID]*trade.Quote
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{quotes: make(map[uuid.UUID]*trade.Quote)}
}

func (r *memQuoteRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quote, error) {
	q, ok := r.quotes[id]
	if !ok || q.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *memQuoteRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.Quote, error) {
	var out []*trade.Quote
	for _, q := range r.quotes {
		if q.TenantID == tenantID {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memQuoteRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memQuoteRepo) CountForMonth(ctx context.Context, tenantID uuid.UUID, month time.Time) (int64, error) {
	var count int64
	for _, q := range r.quotes {
		if q.TenantID == tenantID &&
			q.CreatedAt.Year() == month.Year() && q.CreatedAt.Month() == month.Month() {
			count++
		}
	}
	return count, nil
}

func (r *memQuoteRepo) Save(ctx context.Context, quote *trade.Quote) error {
	copied := *quote
	r.quotes[quote.ID] = &copied
	return nil
}

type memHistoryRepo struct {
	records []trade.PurchaseHistory
}

func (r *memHistoryRepo) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]*trade.PurchaseHistory, error) {
	var out []*trade.PurchaseHistory
	for i := range r.records {
		rec := r.records[i]
		if rec.TenantID == tenantID && rec.ProductID == productID {
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	items, _ := r.FindByProduct(ctx, tenantID, productID, shared.DefaultFilter())
	return int64(len(items)), nil
}

func (r *memHistoryRepo) Save(ctx context.Context, record *trade.PurchaseHistory) error {
	r.records = append(r.records, *record)
	return nil
}

// fixture wires every orchestrator against the in-memory fakes
type fixture struct {
	products  *memProductRepo
	clients   *memClientRepo
	accounts  *memAccountRepo
	ledger    *memTransactionRepo
	sales     *memSaleRepo
	payments  *memPaymentRepo
	orders    *memOrderRepo
	transfers *memTransferRepo
	quotes    *memQuoteRepo
	history   *memHistoryRepo
	notifier  *capturingNotifier

	saleService     *SaleService
	orderService    *OrderService
	transferService *TransferService
	quoteService    *QuoteService
}

func newFixture() *fixture {
	f := &fixture{
		products:  newMemProductRepo(),
		clients:   newMemClientRepo(),
		accounts:  newMemAccountRepo(),
		ledger:    &memTransactionRepo{},
		sales:     newMemSaleRepo(),
		payments:  &memPaymentRepo{},
		orders:    newMemOrderRepo(),
		transfers: newMemTransferRepo(),
		quotes:    newMemQuoteRepo(),
		history:   &memHistoryRepo{},
		notifier:  &capturingNotifier{},
	}

	txm := passthroughTxManager{}
	recorder := nopRecorder{}
	refGen := NewReferenceGenerator(f.sales, f.orders, f.transfers, f.quotes)
	stockService := appcatalog.NewStockService(f.products)
	clientService := apppartner.NewClientService(f.clients)
	accountService := apppartner.NewAccountService(txm, f.accounts, f.ledger, f.clients)

	f.saleService = NewSaleService(txm, f.sales, f.payments, refGen,
		clientService, accountService, stockService, f.notifier, recorder)
	f.orderService = NewOrderService(txm, f.orders, f.transfers, f.history, refGen,
		stockService, f.notifier, recorder)
	f.transferService = NewTransferService(txm, f.transfers, f.orders, f.products, refGen,
		stockService, recorder)
	f.quoteService = NewQuoteService(txm, f.quotes, refGen, stockService, f.saleService, recorder)
	return f
}

func (f *fixture) addProduct(tenantID uuid.UUID, name string, stock, purchasePrice, salePrice float64) *catalog.Product {
	product, err := catalog.NewProduct(tenantID, name,
		decimal.NewFromFloat(purchasePrice), decimal.NewFromFloat(salePrice), decimal.NewFromFloat(stock))
	if err != nil {
		panic(err)
	}
	f.products.products[product.ID] = product
	return product
}

func (f *fixture) addClient(tenantID uuid.UUID, name, phone string) *partner.Client {
	client, err := partner.NewClient(tenantID, name, phone)
	if err != nil {
		panic(err)
	}
	f.clients.clients[client.ID] = client
	return client
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
