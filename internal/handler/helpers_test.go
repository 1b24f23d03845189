package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var testUser = identity.User{ID: "0000894", Role: "org:member", Permissions: []string{"VIEW.AP.INVOICES"}}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: config.Default(), Logger: &logger}
}

// newTestEcho returns an Echo instance with the production binder and error
// handler. Routes added to the returned group run as user when it is set.
func newTestEcho(s *server.Server, user *identity.User) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.Binder = validation.NewBinder()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	g := e.Group("")
	if user != nil {
		u := *user
		g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(middleware.Authenticate(c, u))
			}
		})
	}
	return e, g
}

func serve(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// httptestResult is a recorded response.
type httptestResult struct {
	status int
	header http.Header
	body   []byte
	rec    *httptest.ResponseRecorder
}

func decodeIntegrationError(t *testing.T, rec *httptest.ResponseRecorder) errs.IntegrationAPIError {
	t.Helper()
	if ct := rec.Header().Get(echo.HeaderContentType); ct != errs.IntegrationErrorsMediaType {
		t.Fatalf("content type = %q, want %q", ct, errs.IntegrationErrorsMediaType)
	}
	var body errs.IntegrationAPIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode integration error: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Fatal("integration error has no entries")
	}
	return body
}

func decodeHTTPError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

// fakeEEDMStore serves integration records in insertion order.
type fakeEEDMStore struct {
	mu      sync.Mutex
	records []json.RawMessage
	lists   int
	last    repository.EEDMQuery
}

func (f *fakeEEDMStore) List(_ context.Context, q repository.EEDMQuery) ([]json.RawMessage, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.last = q

	items := f.records
	if q.Limit > 0 {
		start := min(q.Offset, len(items))
		end := min(start+q.Limit, len(items))
		items = items[start:end]
	}
	return items, len(f.records), nil
}

func (f *fakeEEDMStore) Get(_ context.Context, _, guid string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, body := range f.records {
		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &head); err == nil && head.ID == guid {
			return body, nil
		}
	}
	return nil, errs.New(errs.ErrNotFound, "record not found")
}

// fakeEthosStore returns fixed privacy paths and extended data.
type fakeEthosStore struct {
	paths    []string
	extended map[string]json.RawMessage
}

func (f *fakeEthosStore) PrivacyPaths(context.Context, string) ([]string, error) {
	return f.paths, nil
}

func (f *fakeEthosStore) ExtendedData(context.Context, string, []string) (map[string]json.RawMessage, error) {
	return f.extended, nil
}

// fakeDocs is a DocumentStore holding documents by kind and id.
type fakeDocs struct {
	mu   sync.Mutex
	docs map[string]repository.Document
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: map[string]repository.Document{}}
}

func (f *fakeDocs) put(t *testing.T, kind, id string, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s/%s: %v", kind, id, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[kind+"/"+id] = repository.Document{Kind: kind, ID: id, Body: body}
}

func (f *fakeDocs) Get(_ context.Context, kind, id string) (*repository.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[kind+"/"+id]
	if !ok {
		return nil, errs.New(errs.ErrNotFound, "Record not found.")
	}
	return &doc, nil
}

func (f *fakeDocs) List(_ context.Context, q repository.DocumentQuery) ([]repository.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.Document
	for _, doc := range f.docs {
		if doc.Kind == q.Kind {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDocs) Insert(_ context.Context, doc repository.Document) error {
	return f.Upsert(context.Background(), doc)
}

func (f *fakeDocs) Update(_ context.Context, doc repository.Document) error {
	return f.Upsert(context.Background(), doc)
}

func (f *fakeDocs) Upsert(_ context.Context, doc repository.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.Kind+"/"+doc.ID] = doc
	return nil
}

func (f *fakeDocs) Delete(_ context.Context, kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, kind+"/"+id)
	return nil
}

func (f *fakeDocs) NextID(context.Context) (int64, error) {
	return 1, nil
}
