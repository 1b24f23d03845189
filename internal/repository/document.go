package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// Document is one self-service record in finance_documents.
type Document struct {
	Kind      string          `db:"kind"`
	ID        string          `db:"id"`
	OwnerID   string          `db:"owner_id"`
	Body      json.RawMessage `db:"body"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// DocumentQuery filters documents of one kind. Empty fields do not filter.
type DocumentQuery struct {
	Kind     string
	OwnerID  string
	Contains json.RawMessage
	Keyword  string
	Limit    int
}

// DocumentRepository stores self-service documents keyed by kind and id.
type DocumentRepository struct {
	db DBTX
}

func NewDocumentRepository(db DBTX) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `kind, id, coalesce(owner_id, '') AS owner_id, body, created_at, updated_at`

// Get returns one document or an errs.ErrNotFound error.
func (r *DocumentRepository) Get(ctx context.Context, kind, id string) (*Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM finance_documents WHERE kind = $1 AND id = $2`,
		kind, id,
	)
	if err != nil {
		return nil, sqlerr.Translate(err, kind)
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, sqlerr.Translate(err, kind)
	}
	return doc, nil
}

const listDocuments = `
SELECT ` + documentColumns + `
FROM finance_documents
WHERE kind = @kind
  AND (@owner::text IS NULL OR owner_id = @owner::text)
  AND (@contains::jsonb IS NULL OR body @> @contains::jsonb)
  AND (@keyword::text IS NULL OR body::text ILIKE '%' || @keyword::text || '%')
ORDER BY id
LIMIT NULLIF(@limit::int, 0)`

// List returns the documents matching q ordered by id.
func (r *DocumentRepository) List(ctx context.Context, q DocumentQuery) ([]Document, error) {
	rows, err := r.db.Query(ctx, listDocuments, pgx.NamedArgs{
		"kind":     q.Kind,
		"owner":    nullable(q.OwnerID),
		"contains": nullable(q.Contains),
		"keyword":  nullable(q.Keyword),
		"limit":    q.Limit,
	})
	if err != nil {
		return nil, sqlerr.Translate(err, q.Kind)
	}

	docs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Document])
	if err != nil {
		return nil, sqlerr.Translate(err, q.Kind)
	}
	return docs, nil
}

// Insert stores a new document. A duplicate id is an invalid argument.
func (r *DocumentRepository) Insert(ctx context.Context, doc Document) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO finance_documents (kind, id, owner_id, body) VALUES ($1, $2, $3, $4)`,
		doc.Kind, doc.ID, nullable(doc.OwnerID), doc.Body,
	)
	return sqlerr.Translate(err, doc.Kind)
}

// Update replaces the body of an existing document. When doc.UpdatedAt is
// set the row must still carry that timestamp; a row changed since it was
// read is an errs.ErrConcurrentUpdate error.
func (r *DocumentRepository) Update(ctx context.Context, doc Document) error {
	var readAt *time.Time
	if !doc.UpdatedAt.IsZero() {
		readAt = &doc.UpdatedAt
	}

	tag, err := r.db.Exec(ctx, `
UPDATE finance_documents SET body = $3, updated_at = clock_timestamp()
WHERE kind = $1 AND id = $2 AND ($4::timestamptz IS NULL OR updated_at = $4::timestamptz)`,
		doc.Kind, doc.ID, doc.Body, readAt,
	)
	if err != nil {
		return sqlerr.Translate(err, doc.Kind)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if readAt != nil {
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM finance_documents WHERE kind = $1 AND id = $2)`,
			doc.Kind, doc.ID,
		).Scan(&exists)
		if err != nil {
			return sqlerr.Translate(err, doc.Kind)
		}
		if exists {
			return errs.Newf(errs.ErrConcurrentUpdate, "%s %s was changed by another request.", doc.Kind, doc.ID)
		}
	}
	return errs.New(errs.ErrNotFound, "Record not found.")
}

// Upsert inserts doc or replaces the body stored under its key.
func (r *DocumentRepository) Upsert(ctx context.Context, doc Document) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO finance_documents (kind, id, owner_id, body)
VALUES ($1, $2, $3, $4)
ON CONFLICT (kind, id)
DO UPDATE SET body = EXCLUDED.body, owner_id = EXCLUDED.owner_id, updated_at = now()`,
		doc.Kind, doc.ID, nullable(doc.OwnerID), doc.Body,
	)
	return sqlerr.Translate(err, doc.Kind)
}

// Delete removes a document.
func (r *DocumentRepository) Delete(ctx context.Context, kind, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM finance_documents WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return sqlerr.Translate(err, kind)
	}
	if tag.RowsAffected() == 0 {
		return errs.New(errs.ErrNotFound, "Record not found.")
	}
	return nil
}

// NextID draws a new document number from the shared sequence.
func (r *DocumentRepository) NextID(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('finance_document_seq')`).Scan(&n); err != nil {
		return 0, sqlerr.Translate(err, "document number")
	}
	return n, nil
}

// Decode unmarshals a document body into T.
func Decode[T any](doc *Document) (*T, error) {
	var v T
	if err := json.Unmarshal(doc.Body, &v); err != nil {
		return nil, errs.Wrap(errs.ErrRepository, errors.WithStack(err), "Unable to read "+doc.Kind+".")
	}
	return &v, nil
}

// DecodeAll unmarshals every document body into T.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i := range docs {
		v, err := Decode[T](&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Encode marshals v into a document body.
func Encode(v any) (json.RawMessage, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(errs.ErrRepository, errors.WithStack(err), "Unable to store document.")
	}
	return body, nil
}
