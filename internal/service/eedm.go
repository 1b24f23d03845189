package service

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/cache"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EEDMStore is the record store behind integration resources.
type EEDMStore interface {
	List(ctx context.Context, q repository.EEDMQuery) ([]json.RawMessage, int, error)
	Get(ctx context.Context, resource, guid string) (json.RawMessage, error)
}

// ResourceSpec describes one integration resource.
type ResourceSpec struct {
	// Name is the route name, e.g. "accounts-payable-invoices".
	Name string

	// Permission is the code required to read the resource; "" for none.
	Permission string

	// Paged resources are read one page at a time and never cached as a
	// whole.
	Paged bool

	// PageSize is the default and maximum limit of a paged resource; the
	// configured page sizes apply when zero.
	PageSize int
}

// ListParams are the parsed query of an integration list request.
type ListParams struct {
	Offset      int
	Limit       int
	Criteria    json.RawMessage
	BypassCache bool
}

// Page is one page of results plus the total number of matches.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Resource serves reads of one integration resource with items of type T.
type Resource[T any] struct {
	spec   ResourceSpec
	store  EEDMStore
	cache  *cache.Cache
	access Access
}

func NewResource[T any](spec ResourceSpec, store EEDMStore, c *cache.Cache, access Access) *Resource[T] {
	return &Resource[T]{spec: spec, store: store, cache: c, access: access}
}

func (r *Resource[T]) Spec() ResourceSpec {
	return r.spec
}

// GetAll returns the records matching p. Unfiltered lists of unpaged
// resources are cached.
func (r *Resource[T]) GetAll(ctx context.Context, p ListParams) (Page[T], error) {
	if err := r.access.RequireIntegration(ctx, r.spec.Permission, r.spec.Name); err != nil {
		return Page[T]{}, err
	}

	load := func(ctx context.Context) (Page[T], error) {
		bodies, total, err := r.store.List(ctx, repository.EEDMQuery{
			Resource: r.spec.Name,
			Criteria: p.Criteria,
			Offset:   p.Offset,
			Limit:    p.Limit,
		})
		if err != nil {
			return Page[T]{}, err
		}

		items, err := decodeAll[T](bodies, r.spec.Name)
		if err != nil {
			return Page[T]{}, err
		}
		return Page[T]{Items: items, Total: total}, nil
	}

	if r.spec.Paged || len(p.Criteria) > 0 {
		return load(ctx)
	}
	return cache.GetOrLoad(ctx, r.cache, r.listKey(), p.BypassCache, load)
}

// GetByGUID returns one record. A malformed GUID is not found.
func (r *Resource[T]) GetByGUID(ctx context.Context, guid string, bypassCache bool) (*T, error) {
	if err := r.access.RequireIntegration(ctx, r.spec.Permission, r.spec.Name); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(guid); err != nil {
		return nil, errs.Newf(errs.ErrNotFound, "No %s was found for GUID '%s'.", r.spec.Name, guid)
	}

	load := func(ctx context.Context) (*T, error) {
		body, err := r.store.Get(ctx, r.spec.Name, guid)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.Wrap(errs.ErrNotFound, err, "No "+r.spec.Name+" was found for GUID '"+guid+"'.")
			}
			return nil, err
		}
		return decode[T](body, r.spec.Name)
	}

	if r.spec.Paged {
		return load(ctx)
	}
	return cache.GetOrLoad(ctx, r.cache, cache.Key("eedm", r.spec.Name, guid), bypassCache, load)
}

// WarmCache drops the cached records of an unpaged resource and reloads its
// list.
func (r *Resource[T]) WarmCache(ctx context.Context) error {
	if r.spec.Paged {
		return nil
	}
	if err := r.cache.InvalidatePrefix(ctx, cache.Key("eedm", r.spec.Name)+":"); err != nil {
		return err
	}
	_, err := r.GetAll(ctx, ListParams{BypassCache: true})
	return err
}

func (r *Resource[T]) listKey() string {
	return cache.Key("eedm", r.spec.Name, "list")
}

func decode[T any](body json.RawMessage, resource string) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, errs.Wrap(errs.ErrRepository, errors.WithStack(err), "Unable to read "+resource+".")
	}
	return &v, nil
}

func decodeAll[T any](bodies []json.RawMessage, resource string) ([]T, error) {
	items := make([]T, 0, len(bodies))
	for _, body := range bodies {
		v, err := decode[T](body, resource)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, nil
}
