package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/lib/utils"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Response headers of integration endpoints.
const (
	HeaderTotalCount        = "X-Total-Count"
	HeaderMaxPageSize       = "X-Max-Page-Size"
	HeaderContentRestricted = "X-Content-Restricted"
	HeaderLink              = "Link"
)

// paging is the window a paged list was read with.
type paging struct {
	offset      int
	limit       int
	maxPageSize int
	includeSelf bool
}

// listResponse is an integration list body plus its headers. paging is nil
// for unpaged resources.
type listResponse struct {
	items      []map[string]any
	total      int
	paging     *paging
	restricted bool
}

func (r *listResponse) pageSize() int {
	return len(r.items)
}

func (r *listResponse) Respond(c echo.Context, status int) error {
	header := c.Response().Header()
	header.Set(HeaderTotalCount, strconv.Itoa(r.total))
	if r.restricted {
		header.Set(HeaderContentRestricted, "partial")
	}

	if r.paging != nil {
		header.Set(HeaderMaxPageSize, strconv.Itoa(r.paging.maxPageSize))
		if link := linkHeader(requestURL(c), r.total, *r.paging); link != "" {
			header.Set(HeaderLink, link)
		}
	}

	items := r.items
	if items == nil {
		items = []map[string]any{}
	}
	return c.JSON(status, items)
}

// objectResponse is a single integration object.
type objectResponse struct {
	body       map[string]any
	restricted bool
}

func (r *objectResponse) Respond(c echo.Context, status int) error {
	if r.restricted {
		c.Response().Header().Set(HeaderContentRestricted, "partial")
	}
	return c.JSON(status, r.body)
}

func requestURL(c echo.Context) *url.URL {
	u := *c.Request().URL
	u.Scheme = c.Scheme()
	u.Host = c.Request().Host
	return &u
}

// linkHeader builds the RFC 8288 Link header of a paged list.
func linkHeader(base *url.URL, total int, p paging) string {
	if p.limit <= 0 {
		return ""
	}

	at := func(offset int) string {
		u := *base
		q := u.Query()
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(p.limit))
		u.RawQuery = q.Encode()
		return u.String()
	}

	last := 0
	if total > 0 {
		last = ((total - 1) / p.limit) * p.limit
	}

	var links []string
	add := func(rel string, offset int) {
		links = append(links, fmt.Sprintf("<%s>; rel=%q", at(offset), rel))
	}

	if p.includeSelf {
		add("self", p.offset)
	}
	add("first", 0)
	if p.offset > 0 {
		add("prev", max(0, p.offset-p.limit))
	}
	if p.offset+p.limit < total {
		add("next", p.offset+p.limit)
	}
	add("last", last)

	return strings.Join(links, ", ")
}

// toObjects converts DTOs into JSON objects so Ethos metadata can be
// applied.
func toObjects[T any](items []T) ([]map[string]any, error) {
	objects := make([]map[string]any, 0, len(items))
	for i := range items {
		obj, err := utils.ToObject(items[i])
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// applyEthos hides the restricted properties of objects and merges their
// extended data. It reports whether any property was removed.
func applyEthos(ctx context.Context, ethos *service.EthosService, resource string, objects []map[string]any, bypass bool) (bool, error) {
	if ethos == nil || len(objects) == 0 {
		return false, nil
	}

	guids := make([]string, 0, len(objects))
	for _, obj := range objects {
		if id, ok := obj["id"].(string); ok && id != "" {
			guids = append(guids, strings.ToLower(id))
		}
	}

	ec, err := ethos.Context(ctx, resource, guids, bypass)
	if err != nil {
		return false, err
	}

	restricted := false
	for _, obj := range objects {
		for _, path := range ec.Restricted {
			if utils.RemovePath(obj, path) {
				restricted = true
			}
		}

		id, _ := obj["id"].(string)
		raw, ok := ec.Extended[strings.ToLower(id)]
		if !ok || len(raw) == 0 {
			continue
		}

		var extra map[string]any
		if err := json.Unmarshal(raw, &extra); err != nil {
			return false, errors.Wrapf(err, "invalid extended data for %s %s", resource, id)
		}
		utils.Merge(obj, extra)
	}

	return restricted, nil
}
