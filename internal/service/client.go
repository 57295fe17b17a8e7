package service

import (
	"context"
	"errors"
	"fmt"

	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/store"
)

// ClientDetail is a client with what they connected and submitted.
type ClientDetail struct {
	Client      *model.Client
	Connections []model.PlatformConnection
	Requests    []model.OnboardingRequest
}

type ClientService interface {
	List(ctx context.Context, adminID int64) ([]model.Client, error)
	Get(ctx context.Context, adminID, clientID int64) (*ClientDetail, error)
}

type clientService struct {
	clientStore  store.ClientStore
	requestStore store.OnboardingRequestStore
	connStore    store.ConnectionStore
}

func NewClientService(clientStore store.ClientStore, requestStore store.OnboardingRequestStore, connStore store.ConnectionStore) ClientService {
	return &clientService{
		clientStore:  clientStore,
		requestStore: requestStore,
		connStore:    connStore,
	}
}

func (s *clientService) List(ctx context.Context, adminID int64) ([]model.Client, error) {
	clients, err := s.clientStore.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) Get(ctx context.Context, adminID, clientID int64) (*ClientDetail, error) {
	client, err := s.clientStore.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	if client.AdminID != adminID {
		return nil, ErrClientNotFound
	}

	conns, err := s.connStore.List(ctx, model.ClientSubject(clientID))
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	reqs, err := s.requestStore.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing onboarding requests: %w", err)
	}

	return &ClientDetail{Client: client, Connections: conns, Requests: reqs}, nil
}
