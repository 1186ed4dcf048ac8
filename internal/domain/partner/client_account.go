package partner

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientAccount holds a client's prepaid balance, one account per client.
// The balance is never written blindly: every change goes through an atomic
// conditional increment/decrement at the repository level, paired with an
// append-only AccountTransaction carrying the post-operation balance.
type ClientAccount struct {
	shared.TenantAggregateRoot
	ClientID      uuid.UUID
	AccountNumber string
	Balance       decimal.Decimal
}

// NewClientAccount creates a zero-balance account for a client
func NewClientAccount(tenantID, clientID uuid.UUID) (*ClientAccount, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	base := shared.NewTenantAggregateRoot(tenantID)
	return &ClientAccount{
		TenantAggregateRoot: base,
		ClientID:            clientID,
		AccountNumber:       fmt.Sprintf("ACC-%s", base.ID.String()[:8]),
		Balance:             decimal.Zero,
	}, nil
}

// CanDebit reports whether the account covers the amount
func (a *ClientAccount) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Touch updates the modification timestamp after a balance mutation
func (a *ClientAccount) Touch() {
	a.Touch()
}
