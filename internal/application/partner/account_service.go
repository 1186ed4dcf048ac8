package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountService handles the client prepaid account ledger. Every balance
// change is an atomic conditional update at the repository level followed by
// an append-only ledger entry carrying the post-operation balance; both run
// inside one transaction.
type AccountService struct {
	txManager       shared.TransactionManager
	accountRepo     partner.ClientAccountRepository
	transactionRepo partner.AccountTransactionRepository
	clientRepo      partner.ClientRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(
	txManager shared.TransactionManager,
	accountRepo partner.ClientAccountRepository,
	transactionRepo partner.AccountTransactionRepository,
	clientRepo partner.ClientRepository,
) *AccountService {
	return &AccountService{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
	}
}

// Deposit credits a client account, creating the account on first deposit
func (s *AccountService) Deposit(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal, note string) (*AccountResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Deposit amount must be positive")
	}
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	var account *partner.ClientAccount
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.IncrementBalance(ctx, tenantID, clientID, amount); err != nil {
			return err
		}
		var err error
		account, err = s.accountRepo.FindByClient(ctx, tenantID, clientID)
		if err != nil {
			return err
		}
		entry, err := partner.NewAccountTransaction(tenantID, account.ID, clientID,
			partner.AccountTransactionTypeDeposit, amount, account.Balance)
		if err != nil {
			return err
		}
		if note != "" {
			entry.WithNote(note)
		}
		return s.transactionRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// Withdraw debits a client account; fails with INSUFFICIENT_BALANCE when the
// balance does not cover the amount.
func (s *AccountService) Withdraw(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal, note string) (*AccountResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Withdrawal amount must be positive")
	}

	var account *partner.ClientAccount
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.DecrementBalance(ctx, tenantID, clientID, amount, false); err != nil {
			return err
		}
		var err error
		account, err = s.accountRepo.FindByClient(ctx, tenantID, clientID)
		if err != nil {
			return err
		}
		entry, err := partner.NewAccountTransaction(tenantID, account.ID, clientID,
			partner.AccountTransactionTypeWithdrawal, amount, account.Balance)
		if err != nil {
			return err
		}
		if note != "" {
			entry.WithNote(note)
		}
		return s.transactionRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// DebitForSale debits the account as payment for a sale. Meant to be called
// inside the sale's transaction; joins the enclosing transaction through the
// context instead of opening its own.
func (s *AccountService) DebitForSale(ctx context.Context, tenantID, clientID, saleID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Debit amount must be positive")
	}

	if _, err := s.accountRepo.DecrementBalance(ctx, tenantID, clientID, amount, false); err != nil {
		return err
	}
	account, err := s.accountRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	entry, err := partner.NewAccountTransaction(tenantID, account.ID, clientID,
		partner.AccountTransactionTypeWithdrawal, amount, account.Balance)
	if err != nil {
		return err
	}
	entry.WithSale(saleID).WithNote("sale paid on account")
	return s.transactionRepo.Save(ctx, entry)
}

// GetAccount returns the account for a client, a zero-balance view when none
// exists yet.
func (s *AccountService) GetAccount(ctx context.Context, tenantID, clientID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		if shared.IsErrorCode(err, "NOT_FOUND") {
			if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
				return nil, err
			}
			return &AccountResponse{ClientID: clientID, Balance: decimal.Zero}, nil
		}
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// ListTransactions lists a client's ledger entries, most recent first
func (s *AccountService) ListTransactions(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]TransactionResponse, int64, error) {
	entries, err := s.transactionRepo.FindByClient(ctx, tenantID, clientID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, 0, err
	}
	return ToTransactionResponses(entries), total, nil
}
