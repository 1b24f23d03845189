package service

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/lib/job"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
)

// memDocs is an in-memory DocumentStore with jsonb-like containment. Every
// write stamps UpdatedAt from a logical clock.
type memDocs struct {
	mu    sync.Mutex
	docs  map[string]repository.Document
	seq   int64
	clock int64
}

// stamp returns the next write time. Callers hold mu.
func (m *memDocs) stamp() time.Time {
	m.clock++
	return time.Unix(0, m.clock).UTC()
}

func newMemDocs() *memDocs {
	return &memDocs{docs: map[string]repository.Document{}, seq: 1000}
}

func memKey(kind, id string) string { return kind + "/" + id }

func (m *memDocs) put(t *testing.T, kind, id, owner string, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s/%s: %v", kind, id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[memKey(kind, id)] = repository.Document{Kind: kind, ID: id, OwnerID: owner, Body: body, UpdatedAt: m.stamp()}
}

func (m *memDocs) Get(_ context.Context, kind, id string) (*repository.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[memKey(kind, id)]
	if !ok {
		return nil, errs.New(errs.ErrNotFound, "Record not found.")
	}
	return &doc, nil
}

func (m *memDocs) List(_ context.Context, q repository.DocumentQuery) ([]repository.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var criteria any
	if len(q.Contains) > 0 {
		if err := json.Unmarshal(q.Contains, &criteria); err != nil {
			return nil, err
		}
	}

	var out []repository.Document
	for _, doc := range m.docs {
		if doc.Kind != q.Kind || (q.OwnerID != "" && doc.OwnerID != q.OwnerID) {
			continue
		}
		if q.Keyword != "" && !strings.Contains(strings.ToLower(string(doc.Body)), strings.ToLower(q.Keyword)) {
			continue
		}
		if criteria != nil {
			var body any
			if err := json.Unmarshal(doc.Body, &body); err != nil {
				return nil, err
			}
			if !jsonContains(body, criteria) {
				continue
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

// jsonContains mirrors the jsonb @> operator.
func jsonContains(have, want any) bool {
	switch w := want.(type) {
	case map[string]any:
		h, ok := have.(map[string]any)
		if !ok {
			return false
		}
		for k, wv := range w {
			hv, ok := h[k]
			if !ok || !jsonContains(hv, wv) {
				return false
			}
		}
		return true
	case []any:
		h, ok := have.([]any)
		if !ok {
			return false
		}
		for _, wv := range w {
			found := false
			for _, hv := range h {
				if jsonContains(hv, wv) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(have, want)
	}
}

func (m *memDocs) Insert(_ context.Context, doc repository.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[memKey(doc.Kind, doc.ID)]; ok {
		return errs.New(errs.ErrInvalidArgument, "duplicate")
	}
	doc.UpdatedAt = m.stamp()
	m.docs[memKey(doc.Kind, doc.ID)] = doc
	return nil
}

func (m *memDocs) Update(_ context.Context, doc repository.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[memKey(doc.Kind, doc.ID)]
	if !ok {
		return errs.New(errs.ErrNotFound, "Record not found.")
	}
	if !doc.UpdatedAt.IsZero() && !doc.UpdatedAt.Equal(existing.UpdatedAt) {
		return errs.New(errs.ErrConcurrentUpdate, "changed by another request")
	}
	existing.Body = doc.Body
	existing.UpdatedAt = m.stamp()
	m.docs[memKey(doc.Kind, doc.ID)] = existing
	return nil
}

func (m *memDocs) Upsert(_ context.Context, doc repository.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc.UpdatedAt = m.stamp()
	m.docs[memKey(doc.Kind, doc.ID)] = doc
	return nil
}

func (m *memDocs) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[memKey(kind, id)]; !ok {
		return errs.New(errs.ErrNotFound, "Record not found.")
	}
	delete(m.docs, memKey(kind, id))
	return nil
}

func (m *memDocs) NextID(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []job.ApprovalNotificationPayload
}

func (n *recordingNotifier) EnqueueApprovalNotification(_ context.Context, p job.ApprovalNotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, p)
	return nil
}

func userCtx(id string, permissions ...string) context.Context {
	return identity.WithUser(context.Background(), identity.User{ID: id, Permissions: permissions})
}

func repositoryQuery(kind string) repository.DocumentQuery {
	return repository.DocumentQuery{Kind: kind}
}
