package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
)

// Client is a shop customer. Clients are often created lazily at the moment
// of a first sale; phone is the primary identity key and must be unique per
// tenant, email is unique when present.
type Client struct {
	shared.TenantAggregateRoot
	FullName string
	Phone    string
	Email    string
	Address  string
}

// NewClient creates a new client. Name and phone are trimmed and required.
func NewClient(tenantID uuid.UUID, fullName, phone string) (*Client, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client phone cannot be empty")
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FullName:            fullName,
		Phone:               phone,
	}, nil
}

// SetEmail sets the optional email address
func (c *Client) SetEmail(email string) {
	c.Email = strings.TrimSpace(email)
	c.Touch()
}

// SetAddress sets the optional postal address
func (c *Client) SetAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.Touch()
}
