package service

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/colleague-finance-api/internal/lib/cache"
	"golang.org/x/sync/errgroup"
)

// EthosStore reads data privacy settings and extended data.
type EthosStore interface {
	PrivacyPaths(ctx context.Context, resource string) ([]string, error)
	ExtendedData(ctx context.Context, resource string, guids []string) (map[string]json.RawMessage, error)
}

// EthosContext is the metadata applied to an integration response.
type EthosContext struct {
	// Restricted holds the dot separated property paths hidden from the
	// caller.
	Restricted []string

	// Extended holds extra properties per GUID.
	Extended map[string]json.RawMessage
}

// EthosService resolves data privacy and extended data for integration
// responses.
type EthosService struct {
	store EthosStore
	cache *cache.Cache
}

func NewEthosService(store EthosStore, c *cache.Cache) *EthosService {
	return &EthosService{store: store, cache: c}
}

// GetDataPrivacyListByApi returns the property paths hidden for resource.
func (s *EthosService) GetDataPrivacyListByApi(ctx context.Context, resource string, bypassCache bool) ([]string, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.Key("ethos", "privacy", resource), bypassCache,
		func(ctx context.Context) ([]string, error) {
			return s.store.PrivacyPaths(ctx, resource)
		})
}

// GetExtendedEthosDataByResource returns the extended properties of guids.
func (s *EthosService) GetExtendedEthosDataByResource(ctx context.Context, resource string, guids []string) (map[string]json.RawMessage, error) {
	return s.store.ExtendedData(ctx, resource, guids)
}

// Context fetches data privacy and extended data concurrently.
func (s *EthosService) Context(ctx context.Context, resource string, guids []string, bypassCache bool) (EthosContext, error) {
	var out EthosContext

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		paths, err := s.GetDataPrivacyListByApi(gctx, resource, bypassCache)
		out.Restricted = paths
		return err
	})
	g.Go(func() error {
		extended, err := s.GetExtendedEthosDataByResource(gctx, resource, guids)
		out.Extended = extended
		return err
	})

	if err := g.Wait(); err != nil {
		return EthosContext{}, err
	}
	return out, nil
}
