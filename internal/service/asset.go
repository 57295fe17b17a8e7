package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service/platform"
	"onboardly.app/portal/internal/store"
)

var ErrClientNotFound = errors.New("client not found")

type AssetService interface {
	// List returns the stored assets of a client's active connection. With
	// refresh, discovery runs again with the stored token and the result is
	// persisted when it differs.
	List(ctx context.Context, adminID, clientID int64, p model.Platform, refresh bool) ([]model.Asset, error)
}

type assetService struct {
	registry    ProviderRegistry
	clientStore store.ClientStore
	connStore   store.ConnectionStore
}

func NewAssetService(registry ProviderRegistry, clientStore store.ClientStore, connStore store.ConnectionStore) AssetService {
	return &assetService{
		registry:    registry,
		clientStore: clientStore,
		connStore:   connStore,
	}
}

func (s *assetService) List(ctx context.Context, adminID, clientID int64, p model.Platform, refresh bool) ([]model.Asset, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", platform.ErrUnsupportedPlatform, p)
	}

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

	conn, err := s.connStore.Get(ctx, model.ClientSubject(clientID), p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("getting connection: %w", err)
	}
	if !conn.IsActive {
		return nil, ErrConnectionNotFound
	}

	if !refresh {
		return conn.Assets, nil
	}

	provider, err := s.registry.Get(p)
	if err != nil {
		return nil, err
	}

	req := platform.DiscoveryRequest{
		AccessToken: conn.AccessToken,
		Scopes:      conn.Scopes,
	}
	if p == model.PlatformShopify && conn.ExternalUsername != nil {
		req.Shop = *conn.ExternalUsername
	}

	assets := provider.DiscoverAssets(ctx, req)
	if len(assets) == 1 && assets[0].Type == model.AssetTypeError {
		slog.WarnContext(ctx, "asset refresh failed, keeping stored assets",
			"connection_id", conn.ID,
			"platform", p,
		)
		return conn.Assets, nil
	}

	if model.AssetsEqual(conn.Assets, assets) {
		return conn.Assets, nil
	}

	conn.Assets = assets
	if err := s.connStore.UpdateAssets(ctx, conn); err != nil {
		return nil, fmt.Errorf("updating connection assets: %w", err)
	}

	slog.InfoContext(ctx, "connection assets refreshed",
		"connection_id", conn.ID,
		"platform", p,
		"asset_count", len(assets),
	)
	return assets, nil
}
