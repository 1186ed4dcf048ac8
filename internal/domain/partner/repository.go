package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForTenant finds a client by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)

	// ExistsByPhone checks phone uniqueness within a tenant
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)

	// ExistsByEmail checks email uniqueness within a tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// FindAllForTenant lists clients for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Client, error)

	// CountForTenant counts clients for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error
}

// ClientAccountRepository defines the interface for client account
// persistence. Balance mutations are conditional atomic updates executed at
// the database level, never read-modify-write across two round trips.
type ClientAccountRepository interface {
	// FindByClient finds the account for a client, ErrNotFound if absent
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientAccount, error)

	// Save creates or updates an account record
	Save(ctx context.Context, account *ClientAccount) error

	// IncrementBalance atomically adds amount to the account balance,
	// creating the account if it does not exist yet, and returns the
	// post-operation balance.
	IncrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)

	// DecrementBalance atomically subtracts amount from the balance. Unless
	// allowNegative is set, the update is guarded by balance >= amount and
	// ErrInsufficientBalance is returned when the guard fails. Returns the
	// post-operation balance.
	DecrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal, allowNegative bool) (decimal.Decimal, error)
}

// AccountTransactionRepository defines the interface for the append-only
// account ledger
type AccountTransactionRepository interface {
	// Save appends a ledger entry
	Save(ctx context.Context, tx *AccountTransaction) error

	// FindByClient lists ledger entries for a client, most recent first
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]AccountTransaction, error)

	// CountByClient counts ledger entries for a client
	CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error)
}
