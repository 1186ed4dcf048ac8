package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the request to create a client
type CreateClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// ClientResponse is the client representation returned to callers
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponse maps a client aggregate to its response
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// ToClientResponses maps a slice of clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// AccountResponse is the client account representation
type AccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToAccountResponse maps an account aggregate to its response
func ToAccountResponse(a *partner.ClientAccount) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		ClientID:      a.ClientID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
	}
}

// TransactionResponse is one account ledger entry
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	SaleID       *uuid.UUID      `json:"sale_id,omitempty"`
	Note         string          `json:"note,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// ToTransactionResponses maps ledger entries
func ToTransactionResponses(entries []partner.AccountTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = TransactionResponse{
			ID:           e.ID,
			Type:         string(e.Type),
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			SaleID:       e.SaleID,
			Note:         e.Note,
			OccurredAt:   e.OccurredAt,
		}
	}
	return responses
}
