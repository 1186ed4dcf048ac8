package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountTransactionType represents the type of account ledger entry
type AccountTransactionType string

const (
	// AccountTransactionTypeDeposit credits the account balance
	AccountTransactionTypeDeposit AccountTransactionType = "deposit"
	// AccountTransactionTypeWithdrawal debits the account balance
	AccountTransactionTypeWithdrawal AccountTransactionType = "withdrawal"
	// AccountTransactionTypeAdjustment is a manual correction in either direction
	AccountTransactionTypeAdjustment AccountTransactionType = "adjustment"
	// AccountTransactionTypeRefund credits the balance back after a cancelled sale
	AccountTransactionTypeRefund AccountTransactionType = "refund"
)

// String returns the string representation of AccountTransactionType
func (t AccountTransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t AccountTransactionType) IsValid() bool {
	switch t {
	case AccountTransactionTypeDeposit,
		AccountTransactionTypeWithdrawal,
		AccountTransactionTypeAdjustment,
		AccountTransactionTypeRefund:
		return true
	}
	return false
}

// AccountTransaction is an immutable ledger row for a client account. Once
// created it is never modified; corrections are made with new entries.
type AccountTransaction struct {
	shared.BaseEntity
	TenantID     uuid.UUID
	AccountID    uuid.UUID
	ClientID     uuid.UUID
	Type         AccountTransactionType
	Amount       decimal.Decimal // always positive, direction given by Type
	BalanceAfter decimal.Decimal // balance snapshot after the operation
	SaleID       *uuid.UUID      // originating sale when paid on account
	Note         string
	OccurredAt   time.Time
}

// NewAccountTransaction creates a new ledger entry
func NewAccountTransaction(
	tenantID, accountID, clientID uuid.UUID,
	txType AccountTransactionType,
	amount, balanceAfter decimal.Decimal,
) (*AccountTransaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID cannot be empty")
	}
	if accountID == uuid.Nil || clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account and client IDs cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid account transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}

	return &AccountTransaction{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		AccountID:    accountID,
		ClientID:     clientID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		OccurredAt:   time.Now(),
	}, nil
}

// WithSale links the entry to its originating sale
func (t *AccountTransaction) WithSale(saleID uuid.UUID) *AccountTransaction {
	t.SaleID = &saleID
	return t
}

// WithNote sets a free-form note
func (t *AccountTransaction) WithNote(note string) *AccountTransaction {
	t.Note = note
	return t
}

// SignedAmount returns the amount with the sign implied by the type
func (t *AccountTransaction) SignedAmount() decimal.Decimal {
	if t.Type == AccountTransactionTypeWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
