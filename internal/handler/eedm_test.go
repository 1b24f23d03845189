package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/pkg/errors"
)

const (
	buyerGUID1  = "6a2d6c0e-58f4-4c1b-9e43-2b1f0b8f6a01"
	buyerGUID2  = "6a2d6c0e-58f4-4c1b-9e43-2b1f0b8f6a02"
	buyerGUID3  = "6a2d6c0e-58f4-4c1b-9e43-2b1f0b8f6a03"
	sourceGUID  = "3b2f1f5e-7a9c-4c21-9a43-0d7e7d0c7f10"
	missingGUID = "9d6b1c52-0f0e-4b9a-8f43-7f6e4d3c2b1a"
)

func buyerStore() *fakeEEDMStore {
	return &fakeEEDMStore{records: []json.RawMessage{
		json.RawMessage(`{"id":"` + buyerGUID1 + `","status":"active"}`),
		json.RawMessage(`{"id":"` + buyerGUID2 + `","status":"active"}`),
		json.RawMessage(`{"id":"` + buyerGUID3 + `","status":"inactive"}`),
	}}
}

func sourceStore() *fakeEEDMStore {
	return &fakeEEDMStore{records: []json.RawMessage{
		json.RawMessage(`{"id":"` + sourceGUID + `","code":"AP","title":"Regular AP"}`),
	}}
}

func mountEEDM(t *testing.T, resource EEDMResource) func(method, target string) *httptestResult {
	t.Helper()
	e, g := newTestEcho(newTestServer(), &testUser)
	g.GET("/"+resource.Name(), resource.List())
	g.GET("/"+resource.Name()+"/:id", resource.Get())
	g.POST("/"+resource.Name(), NotSupported)

	return func(method, target string) *httptestResult {
		rec := serve(e, method, target, "", nil)
		return &httptestResult{rec.Code, rec.Header(), rec.Body.Bytes(), rec}
	}
}

func TestEEDMListPaging(t *testing.T) {
	t.Parallel()

	store := buyerStore()
	resource := service.NewResource[model.Buyer](service.ResourceSpec{Name: "buyers", Paged: true}, store, nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{}))

	res := do(http.MethodGet, "/buyers?limit=2")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d, body %s", res.status, res.body)
	}

	var items []model.Buyer
	if err := json.Unmarshal(res.body, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].ID != buyerGUID1 {
		t.Fatalf("items = %+v", items)
	}
	if store.last.Offset != 0 || store.last.Limit != 2 {
		t.Errorf("query = %+v, want offset 0 limit 2", store.last)
	}

	if got := res.header.Get(HeaderTotalCount); got != "3" {
		t.Errorf("%s = %q, want 3", HeaderTotalCount, got)
	}
	if got := res.header.Get(HeaderMaxPageSize); got != "500" {
		t.Errorf("%s = %q, want 500", HeaderMaxPageSize, got)
	}

	link := res.header.Get(HeaderLink)
	for _, want := range []string{
		`<http://example.com/buyers?limit=2&offset=0>; rel="first"`,
		`<http://example.com/buyers?limit=2&offset=2>; rel="next"`,
		`<http://example.com/buyers?limit=2&offset=2>; rel="last"`,
	} {
		if !strings.Contains(link, want) {
			t.Errorf("Link %q does not contain %q", link, want)
		}
	}
	if strings.Contains(link, `rel="prev"`) {
		t.Errorf("first page Link has prev: %q", link)
	}
}

func TestEEDMListClampsLimit(t *testing.T) {
	t.Parallel()

	store := buyerStore()
	resource := service.NewResource[model.Buyer](service.ResourceSpec{Name: "buyers", Paged: true}, store, nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{}))

	if res := do(http.MethodGet, "/buyers?offset=1&limit=9000"); res.status != http.StatusOK {
		t.Fatalf("status = %d, body %s", res.status, res.body)
	}
	if store.last.Offset != 1 || store.last.Limit != 500 {
		t.Errorf("query = %+v, want offset 1 limit 500", store.last)
	}
}

func TestEEDMListQueryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{
			name:    "unknown parameter",
			query:   "?foo=1",
			message: "'foo' is an invalid query parameter for filtering.",
		},
		{
			name:    "negative offset",
			query:   "?offset=-1",
			message: "The offset query parameter must be a non-negative number.",
		},
		{
			name:    "criteria is not json",
			query:   "?criteria=" + url.QueryEscape("{code"),
			message: "The criteria query parameter is not valid JSON.",
		},
		{
			name:    "criteria is not an object",
			query:   "?criteria=" + url.QueryEscape(`["AP"]`),
			message: "The criteria query parameter must be a JSON object.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := buyerStore()
			resource := service.NewResource[model.Buyer](service.ResourceSpec{Name: "buyers", Paged: true}, store, nil, service.Access{})
			do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{Filters: []string{"status"}}))

			res := do(http.MethodGet, "/buyers"+tt.query)
			if res.status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", res.status)
			}
			body := decodeIntegrationError(t, res.rec)
			if body.Errors[0].Message != tt.message {
				t.Errorf("message = %q, want %q", body.Errors[0].Message, tt.message)
			}
			if store.lists != 0 {
				t.Errorf("store was queried %d times", store.lists)
			}
		})
	}
}

func TestEEDMListFiltersThatCannotMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria string
	}{
		{name: "unsupported property", criteria: `{"title":"Regular AP"}`},
		{name: "empty value", criteria: `{"code":""}`},
		{name: "null value", criteria: `{"code":null}`},
		{name: "empty object", criteria: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := sourceStore()
			resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, store, nil, service.Access{})
			do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{Filters: []string{"code"}}))

			res := do(http.MethodGet, "/accounts-payable-sources?criteria="+url.QueryEscape(tt.criteria))
			if res.status != http.StatusOK {
				t.Fatalf("status = %d, body %s", res.status, res.body)
			}
			if got := strings.TrimSpace(string(res.body)); got != "[]" {
				t.Errorf("body = %s, want []", got)
			}
			if store.lists != 0 {
				t.Errorf("store was queried %d times", store.lists)
			}
		})
	}
}

func TestEEDMListPassesCriteria(t *testing.T) {
	t.Parallel()

	store := sourceStore()
	resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, store, nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{Filters: []string{"code"}}))

	res := do(http.MethodGet, "/accounts-payable-sources?criteria="+url.QueryEscape(`{"code":"AP"}`))
	if res.status != http.StatusOK {
		t.Fatalf("status = %d, body %s", res.status, res.body)
	}
	if got := string(store.last.Criteria); got != `{"code":"AP"}` {
		t.Errorf("criteria = %s", got)
	}
	if res.header.Get(HeaderLink) != "" {
		t.Error("unpaged list has a Link header")
	}
}

func TestEEDMPermissionStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   int
	}{
		{name: "default", want: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := service.ResourceSpec{Name: "buyers", Permission: "VIEW.BUYERS", Paged: true}
			resource := service.NewResource[model.Buyer](spec, buyerStore(), nil, service.Access{Enforce: true})
			do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{PermissionStatus: tt.status}))

			for _, target := range []string{"/buyers", "/buyers/" + buyerGUID1} {
				res := do(http.MethodGet, target)
				if res.status != tt.want {
					t.Fatalf("%s: status = %d, want %d", target, res.status, tt.want)
				}
				body := decodeIntegrationError(t, res.rec)
				if body.Errors[0].Code != errs.CodeAccessDenied {
					t.Errorf("%s: code = %q", target, body.Errors[0].Code)
				}
			}
		})
	}
}

func TestEEDMGetNotFound(t *testing.T) {
	t.Parallel()

	resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, sourceStore(), nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{}))

	for _, guid := range []string{"not-a-guid", missingGUID} {
		res := do(http.MethodGet, "/accounts-payable-sources/"+guid)
		if res.status != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", guid, res.status)
		}
		body := decodeIntegrationError(t, res.rec)
		if body.Errors[0].Code != errs.CodeGUIDNotFound {
			t.Errorf("%s: code = %q", guid, body.Errors[0].Code)
		}
		if !strings.Contains(body.Errors[0].Message, guid) {
			t.Errorf("%s: message %q does not name the GUID", guid, body.Errors[0].Message)
		}
	}
}

func TestEEDMGUIDRequestRequiresGUID(t *testing.T) {
	t.Parallel()

	err := (&eedmGUIDRequest{GUID: "  "}).Validate()
	var integrationErr *errs.IntegrationAPIError
	if !errors.As(err, &integrationErr) {
		t.Fatalf("err = %v, want *errs.IntegrationAPIError", err)
	}
	if integrationErr.Status != http.StatusBadRequest || integrationErr.Errors[0].Code != errs.CodeMissingRequestID {
		t.Errorf("err = %+v", integrationErr)
	}
}

func TestEEDMGetAppliesEthosContext(t *testing.T) {
	t.Parallel()

	ethos := service.NewEthosService(&fakeEthosStore{
		paths: []string{"title"},
		extended: map[string]json.RawMessage{
			sourceGUID: json.RawMessage(`{"extension":{"ledger":"GL"}}`),
		},
	}, nil)
	resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, sourceStore(), nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), ethos, resource, EEDMOptions{}))

	res := do(http.MethodGet, "/accounts-payable-sources/"+sourceGUID)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d, body %s", res.status, res.body)
	}
	if got := res.header.Get(HeaderContentRestricted); got != "partial" {
		t.Errorf("%s = %q, want partial", HeaderContentRestricted, got)
	}

	var obj map[string]any
	if err := json.Unmarshal(res.body, &obj); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := obj["title"]; ok {
		t.Error("restricted property title was returned")
	}
	if obj["code"] != "AP" {
		t.Errorf("code = %v, want AP", obj["code"])
	}
	ext, _ := obj["extension"].(map[string]any)
	if ext["ledger"] != "GL" {
		t.Errorf("extension = %v", obj["extension"])
	}
}

func TestNotSupported(t *testing.T) {
	t.Parallel()

	resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, sourceStore(), nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), nil, resource, EEDMOptions{}))

	res := do(http.MethodPost, "/accounts-payable-sources")
	if res.status != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", res.status)
	}
	body := decodeIntegrationError(t, res.rec)
	if body.Errors[0].Message != "The requested operation is not supported by this resource." {
		t.Errorf("message = %q", body.Errors[0].Message)
	}
	if body.Errors[0].Description != "Unsupported" {
		t.Errorf("description = %q", body.Errors[0].Description)
	}
}

func TestIsEmptyFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{`{"code":"AP"}`, false},
		{`{"code":" "}`, true},
		{`{"fiscalYear":{"id":""}}`, true},
		{`{"fiscalYear":{"id":"` + sourceGUID + `"}}`, false},
		{`{"codes":[]}`, true},
		{`{"codes":["AP",""]}`, true},
		{`{"amount":0}`, false},
	}

	for _, tt := range tests {
		obj, err := parseFilterObject("criteria", tt.raw)
		if err != nil {
			t.Fatalf("%s: %v", tt.raw, err)
		}
		if got := isEmptyFilter(obj); got != tt.want {
			t.Errorf("isEmptyFilter(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestEEDMGetMergesExtendedDataForUppercaseGUID(t *testing.T) {
	t.Parallel()

	upper := strings.ToUpper(sourceGUID)
	store := &fakeEEDMStore{records: []json.RawMessage{
		json.RawMessage(`{"id":"` + upper + `","code":"AP","title":"Regular AP"}`),
	}}
	ethos := service.NewEthosService(&fakeEthosStore{
		extended: map[string]json.RawMessage{
			sourceGUID: json.RawMessage(`{"extension":{"ledger":"GL"}}`),
		},
	}, nil)
	resource := service.NewResource[model.AccountsPayableSource](service.ResourceSpec{Name: "accounts-payable-sources"}, store, nil, service.Access{})
	do := mountEEDM(t, NewEEDMHandler(newTestServer(), ethos, resource, EEDMOptions{}))

	res := do(http.MethodGet, "/accounts-payable-sources/"+upper)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d, body %s", res.status, res.body)
	}

	var obj map[string]any
	if err := json.Unmarshal(res.body, &obj); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ext, _ := obj["extension"].(map[string]any)
	if ext["ledger"] != "GL" {
		t.Errorf("extension = %v", obj["extension"])
	}
}

// catalogResource returns the production handler of one integration
// resource, backed by store.
func catalogResource(t *testing.T, name string, store *fakeEEDMStore, access service.Access) EEDMResource {
	t.Helper()
	for _, resource := range newEEDMHandlers(newTestServer(), service.NewEEDMServices(store, nil, access), nil) {
		if resource.Name() == name {
			return resource
		}
	}
	t.Fatalf("no integration resource %q", name)
	return nil
}

func TestEEDMCatalogNamedQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resource string
		query    string
		filter   string
	}{
		{resource: "vendors", query: "vendorDetail", filter: `{"vendorDetail":{"id":"` + buyerGUID1 + `"}}`},
		{resource: "ledger-activities", query: "fiscalYear", filter: `{"fiscalYear":{"id":"` + buyerGUID2 + `"}}`},
		{resource: "payment-transactions", query: "document", filter: `{"document":{"id":"` + buyerGUID3 + `"}}`},
		{resource: "accounting-string-component-values", query: "effectiveOn", filter: `{"effectiveOn":"2026-07-01"}`},
		{resource: "grants", query: "fiscalYear", filter: `{"fiscalYear":{"id":"` + sourceGUID + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			t.Parallel()

			store := &fakeEEDMStore{}
			do := mountEEDM(t, catalogResource(t, tt.resource, store, service.Access{}))

			res := do(http.MethodGet, "/"+tt.resource+"?"+tt.query+"="+url.QueryEscape(tt.filter))
			if res.status != http.StatusOK {
				t.Fatalf("status = %d, body %s", res.status, res.body)
			}
			if got := string(store.last.Criteria); got != tt.filter {
				t.Errorf("criteria = %s, want %s", got, tt.filter)
			}
		})
	}
}

func TestEEDMFiscalPeriodsRejectsFiscalYearQuery(t *testing.T) {
	t.Parallel()

	store := &fakeEEDMStore{}
	do := mountEEDM(t, catalogResource(t, "fiscal-periods", store, service.Access{}))

	res := do(http.MethodGet, "/fiscal-periods?fiscalYear="+url.QueryEscape(`{"fiscalYear":{"id":"`+sourceGUID+`"}}`))
	if res.status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.status)
	}
	if got := decodeIntegrationError(t, res.rec).Errors[0].Message; got != "'fiscalYear' is an invalid query parameter for filtering." {
		t.Errorf("message = %q", got)
	}

	res = do(http.MethodGet, "/fiscal-periods?criteria="+url.QueryEscape(`{"fiscalYear":{"id":"`+sourceGUID+`"}}`))
	if res.status != http.StatusOK {
		t.Fatalf("criteria: status = %d, body %s", res.status, res.body)
	}
	if store.lists != 1 {
		t.Errorf("store was queried %d times, want 1", store.lists)
	}
}

func TestEEDMResourcePageSize(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"accounting-string-component-values", "accounting-string-subcomponent-values"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := &fakeEEDMStore{}
			do := mountEEDM(t, catalogResource(t, name, store, service.Access{}))

			res := do(http.MethodGet, "/"+name)
			if res.status != http.StatusOK {
				t.Fatalf("status = %d, body %s", res.status, res.body)
			}
			if store.last.Limit != 200 {
				t.Errorf("default limit = %d, want 200", store.last.Limit)
			}
			if got := res.header.Get(HeaderMaxPageSize); got != "200" {
				t.Errorf("%s = %q, want 200", HeaderMaxPageSize, got)
			}

			if res := do(http.MethodGet, "/"+name+"?limit=900"); res.status != http.StatusOK {
				t.Fatalf("status = %d, body %s", res.status, res.body)
			}
			if store.last.Limit != 200 {
				t.Errorf("clamped limit = %d, want 200", store.last.Limit)
			}
		})
	}
}

func TestEEDMAccountingStringComponentValuesPermission(t *testing.T) {
	t.Parallel()

	store := &fakeEEDMStore{}
	do := mountEEDM(t, catalogResource(t, "accounting-string-component-values", store, service.Access{Enforce: true}))

	res := do(http.MethodGet, "/accounting-string-component-values")
	if res.status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.status)
	}
	if code := decodeIntegrationError(t, res.rec).Errors[0].Code; code != errs.CodeAccessDenied {
		t.Errorf("code = %q", code)
	}
	if store.lists != 0 {
		t.Errorf("store was queried %d times", store.lists)
	}
}
