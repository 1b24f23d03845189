package service

import (
	"context"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/cache"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ReferenceService serves the small self-service code tables. Whole tables
// are cached under cf:ref:<kind>.
type ReferenceService struct {
	docs   DocumentStore
	cache  *cache.Cache
	access Access
}

func NewReferenceService(docs DocumentStore, c *cache.Cache, access Access) *ReferenceService {
	return &ReferenceService{docs: docs, cache: c, access: access}
}

func referenceTable[T any](ctx context.Context, s *ReferenceService, kind string, bypass bool) ([]T, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.cache, cache.Key("ref", kind), bypass, func(ctx context.Context) ([]T, error) {
		return listDocuments[T](ctx, s.docs, repository.DocumentQuery{Kind: kind})
	})
}

func (s *ReferenceService) GetCommodityCodes(ctx context.Context, bypass bool) ([]model.ProcurementCommodityCode, error) {
	return referenceTable[model.ProcurementCommodityCode](ctx, s, KindCommodityCode, bypass)
}

func (s *ReferenceService) GetCommodityCode(ctx context.Context, code string) (*model.ProcurementCommodityCode, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A commodity code must be specified.")
	}
	return getDocument[model.ProcurementCommodityCode](ctx, s.docs, KindCommodityCode, code)
}

func (s *ReferenceService) GetCommodityUnitTypes(ctx context.Context, bypass bool) ([]model.CodeDescription, error) {
	return referenceTable[model.CodeDescription](ctx, s, KindCommodityUnitType, bypass)
}

func (s *ReferenceService) GetShipToCodes(ctx context.Context, bypass bool) ([]model.CodeDescription, error) {
	return referenceTable[model.CodeDescription](ctx, s, KindShipToCode, bypass)
}

func (s *ReferenceService) GetShipViaCodes(ctx context.Context, bypass bool) ([]model.CodeDescription, error) {
	return referenceTable[model.CodeDescription](ctx, s, KindShipViaCode, bypass)
}

func (s *ReferenceService) GetFixedAssetTransferFlags(ctx context.Context, bypass bool) ([]model.CodeDescription, error) {
	return referenceTable[model.CodeDescription](ctx, s, KindFixedAssetTransferFlag, bypass)
}

// WarmCache reloads every code table into the cache.
func (s *ReferenceService) WarmCache(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return warmTable[model.ProcurementCommodityCode](ctx, s, KindCommodityCode)
	})
	for _, kind := range []string{KindCommodityUnitType, KindShipToCode, KindShipViaCode, KindFixedAssetTransferFlag} {
		g.Go(func() error {
			return warmTable[model.CodeDescription](ctx, s, kind)
		})
	}
	return g.Wait()
}

func warmTable[T any](ctx context.Context, s *ReferenceService, kind string) error {
	rows, err := listDocuments[T](ctx, s.docs, repository.DocumentQuery{Kind: kind})
	if err != nil {
		return err
	}
	s.cache.Set(ctx, cache.Key("ref", kind), rows)
	return nil
}
