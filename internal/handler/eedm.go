package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// EEDMOptions describe how one integration resource reads its query.
type EEDMOptions struct {
	// PermissionStatus answers permission failures; 401 when zero.
	PermissionStatus int

	// Filters are the properties accepted in the criteria query parameter.
	Filters []string

	// NamedQueries are extra query parameters holding JSON objects that
	// are merged into the criteria.
	NamedQueries []string
}

// EEDMResource is the HTTP side of one integration resource.
type EEDMResource interface {
	Name() string
	List() echo.HandlerFunc
	Get() echo.HandlerFunc
}

// EEDMHandler serves list and get-by-GUID of one integration resource.
type EEDMHandler[T any] struct {
	Handler
	resource *service.Resource[T]
	ethos    *service.EthosService
	opts     EEDMOptions
}

func NewEEDMHandler[T any](s *server.Server, ethos *service.EthosService, resource *service.Resource[T], opts EEDMOptions) *EEDMHandler[T] {
	if opts.PermissionStatus == 0 {
		opts.PermissionStatus = http.StatusUnauthorized
	}
	return &EEDMHandler[T]{
		Handler:  NewHandler(s),
		resource: resource,
		ethos:    ethos,
		opts:     opts,
	}
}

func (h *EEDMHandler[T]) Name() string {
	return h.resource.Spec().Name
}

func (h *EEDMHandler[T]) List() echo.HandlerFunc {
	return Handle(h.Handler, h.list, http.StatusOK)
}

func (h *EEDMHandler[T]) Get() echo.HandlerFunc {
	return Handle(h.Handler, h.get, http.StatusOK)
}

// NotSupported answers the mutation routes of read-only integration
// resources. Nothing is bound and no service is called.
func NotSupported(c echo.Context) error {
	return errs.NewNotSupportedError()
}

// eedmListRequest binds nothing. The query string is read by
// parseListQuery, which also rejects unknown parameters.
type eedmListRequest struct{}

func (r *eedmListRequest) Validate() error {
	return nil
}

type eedmGUIDRequest struct {
	GUID string `param:"id"`
}

func (r *eedmGUIDRequest) Validate() error {
	if strings.TrimSpace(r.GUID) == "" {
		return errs.NewMissingGUIDError()
	}
	return nil
}

func (h *EEDMHandler[T]) list(c echo.Context, _ *eedmListRequest) (*listResponse, error) {
	spec := h.resource.Spec()
	cfg := h.server.Config.API

	defaultLimit, maxLimit := cfg.DefaultPageSize, cfg.MaxPageSize
	if spec.PageSize > 0 {
		defaultLimit, maxLimit = spec.PageSize, spec.PageSize
	}

	q, err := parseListQuery(c, spec.Paged, h.opts, defaultLimit, maxLimit)
	if err != nil {
		return nil, err
	}

	resp := &listResponse{}
	if spec.Paged {
		resp.paging = &paging{
			offset:      q.offset,
			limit:       q.limit,
			maxPageSize: maxLimit,
			includeSelf: cfg.IncludeLinkSelfHeaders,
		}
	}

	if q.emptyResult {
		middleware.GetLogger(c).Debug().Str("resource", spec.Name).Msg("filter cannot match, returning empty result")
		return resp, nil
	}

	params := service.ListParams{
		Criteria:    q.criteria,
		BypassCache: bypassCache(c),
	}
	if spec.Paged {
		params.Offset, params.Limit = q.offset, q.limit
	}

	ctx := c.Request().Context()
	page, err := h.resource.GetAll(ctx, params)
	if err != nil {
		return nil, h.translate(c, err)
	}

	objects, err := toObjects(page.Items)
	if err != nil {
		return nil, h.translate(c, err)
	}

	restricted, err := applyEthos(ctx, h.ethos, spec.Name, objects, params.BypassCache)
	if err != nil {
		return nil, h.translate(c, err)
	}

	resp.items = objects
	resp.total = page.Total
	resp.restricted = restricted
	return resp, nil
}

func (h *EEDMHandler[T]) get(c echo.Context, req *eedmGUIDRequest) (*objectResponse, error) {
	ctx := c.Request().Context()
	bypass := bypassCache(c)

	item, err := h.resource.GetByGUID(ctx, req.GUID, bypass)
	if err != nil {
		return nil, h.translate(c, err)
	}

	objects, err := toObjects([]T{*item})
	if err != nil {
		return nil, h.translate(c, err)
	}

	restricted, err := applyEthos(ctx, h.ethos, h.Name(), objects, bypass)
	if err != nil {
		return nil, h.translate(c, err)
	}

	return &objectResponse{body: objects[0], restricted: restricted}, nil
}

func (h *EEDMHandler[T]) translate(c echo.Context, err error) error {
	out := errs.ToIntegrationError(err, h.opts.PermissionStatus)
	middleware.GetLogger(c).Error().Err(err).Int("status", out.Status).Str("resource", h.Name()).Msg(out.Error())
	return out
}

// listQuery is the parsed query string of an integration list request.
type listQuery struct {
	offset   int
	limit    int
	criteria json.RawMessage

	// emptyResult is set when a filter names an unsupported property or
	// carries an empty value: the answer is an empty list.
	emptyResult bool
}

func parseListQuery(c echo.Context, paged bool, opts EEDMOptions, defaultLimit, maxLimit int) (listQuery, error) {
	q := listQuery{limit: defaultLimit}
	values := c.QueryParams()

	allowed := append([]string{"criteria", "offset", "limit"}, opts.NamedQueries...)
	if err := checkQueryNames(values, allowed); err != nil {
		return q, err
	}

	if paged {
		var err error
		if q.offset, err = parsePagingValue(values.Get("offset"), "offset", 0); err != nil {
			return q, err
		}
		if q.limit, err = parsePagingValue(values.Get("limit"), "limit", defaultLimit); err != nil {
			return q, err
		}
		if q.limit == 0 {
			q.limit = defaultLimit
		}
		if maxLimit > 0 && q.limit > maxLimit {
			q.limit = maxLimit
		}
	}

	criteria := map[string]any{}

	if raw, ok := values["criteria"]; ok {
		obj, err := parseFilterObject("criteria", raw[0])
		if err != nil {
			return q, err
		}
		for key := range obj {
			if !slices.Contains(opts.Filters, key) {
				q.emptyResult = true
				return q, nil
			}
		}
		if isEmptyFilter(obj) {
			q.emptyResult = true
			return q, nil
		}
		for key, value := range obj {
			criteria[key] = value
		}
	}

	for _, name := range opts.NamedQueries {
		raw, ok := values[name]
		if !ok {
			continue
		}
		obj, err := parseFilterObject(name, raw[0])
		if err != nil {
			return q, err
		}
		if isEmptyFilter(obj) {
			q.emptyResult = true
			return q, nil
		}
		for key, value := range obj {
			criteria[key] = value
		}
	}

	if len(criteria) > 0 {
		body, err := json.Marshal(criteria)
		if err != nil {
			return q, errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation, "Invalid filter.").WithCause(err)
		}
		q.criteria = body
	}

	return q, nil
}

// checkQueryNames rejects query parameters outside allowed.
func checkQueryNames(values url.Values, allowed []string) error {
	for name := range values {
		if !slices.Contains(allowed, name) {
			return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
				"'"+name+"' is an invalid query parameter for filtering.")
		}
	}
	return nil
}

func parsePagingValue(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
			"The "+name+" query parameter must be a non-negative number.")
	}
	return n, nil
}

func parseFilterObject(name, raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
			"The "+name+" query parameter is not valid JSON.").WithCause(err)
	}
	if v == nil {
		return map[string]any{}, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
			"The "+name+" query parameter must be a JSON object.")
	}
	return obj, nil
}

// isEmptyFilter reports whether a filter is empty or holds an empty value
// at any depth: "", null, {} or [].
func isEmptyFilter(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		if len(t) == 0 {
			return true
		}
		for _, child := range t {
			if isEmptyFilter(child) {
				return true
			}
		}
	case []any:
		if len(t) == 0 {
			return true
		}
		for _, child := range t {
			if isEmptyFilter(child) {
				return true
			}
		}
	}
	return false
}
