package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
)

// ResolveClientInput identifies a client either by ID or by the pair of name
// and phone used to create one on the fly during a sale.
type ResolveClientInput struct {
	ClientID *uuid.UUID
	FullName string
	Phone    string
}

// ClientService handles client operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client with phone and email uniqueness checks
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(tenantID, req.FullName, req.Phone)
	if err != nil {
		return nil, err
	}

	exists, err := s.clientRepo.ExistsByPhone(ctx, tenantID, client.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this phone already exists")
	}

	if req.Email != "" {
		client.SetEmail(req.Email)
		exists, err := s.clientRepo.ExistsByEmail(ctx, tenantID, client.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this email already exists")
		}
	}
	if req.Address != "" {
		client.SetAddress(req.Address)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ClientResponse, int64, error) {
	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToClientResponses(clients), total, nil
}

// Resolve returns the client for the given input, creating one when only
// name and phone are supplied. Returns nil with no error when the input is
// empty, which callers treat as an anonymous sale.
func (s *ClientService) Resolve(ctx context.Context, tenantID uuid.UUID, input ResolveClientInput) (*partner.Client, error) {
	if input.ClientID != nil {
		return s.clientRepo.FindByIDForTenant(ctx, tenantID, *input.ClientID)
	}
	if input.FullName == "" && input.Phone == "" {
		return nil, nil
	}

	client, err := partner.NewClient(tenantID, input.FullName, input.Phone)
	if err != nil {
		return nil, err
	}
	exists, err := s.clientRepo.ExistsByPhone(ctx, tenantID, client.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this phone already exists")
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
