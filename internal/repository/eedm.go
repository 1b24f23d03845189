package repository

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/colleague-finance-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// EEDMRepository reads integration records stored as JSON documents.
type EEDMRepository struct {
	db DBTX
}

func NewEEDMRepository(db DBTX) *EEDMRepository {
	return &EEDMRepository{db: db}
}

// EEDMQuery selects records of one resource. Criteria is a JSON object that
// every returned body must contain. Limit 0 returns every record from Offset.
type EEDMQuery struct {
	Resource string
	Criteria json.RawMessage
	Offset   int
	Limit    int
}

const countEEDMRecords = `
SELECT count(*)
FROM eedm_records
WHERE resource = @resource
  AND (@criteria::jsonb IS NULL OR body @> @criteria::jsonb)`

const listEEDMRecords = `
SELECT body
FROM eedm_records
WHERE resource = @resource
  AND (@criteria::jsonb IS NULL OR body @> @criteria::jsonb)
ORDER BY record_key, guid
OFFSET @offset
LIMIT NULLIF(@limit::int, 0)`

// List returns one page of bodies and the total number of matches.
func (r *EEDMRepository) List(ctx context.Context, q EEDMQuery) ([]json.RawMessage, int, error) {
	args := pgx.NamedArgs{
		"resource": q.Resource,
		"criteria": nullable(q.Criteria),
		"offset":   q.Offset,
		"limit":    q.Limit,
	}

	var total int
	if err := r.db.QueryRow(ctx, countEEDMRecords, args).Scan(&total); err != nil {
		return nil, 0, sqlerr.Translate(err, q.Resource)
	}
	if total == 0 || q.Offset >= total {
		return []json.RawMessage{}, total, nil
	}

	rows, err := r.db.Query(ctx, listEEDMRecords, args)
	if err != nil {
		return nil, 0, sqlerr.Translate(err, q.Resource)
	}

	bodies, err := pgx.CollectRows(rows, pgx.RowTo[json.RawMessage])
	if err != nil {
		return nil, 0, sqlerr.Translate(err, q.Resource)
	}

	return bodies, total, nil
}

// Get returns the body stored under guid.
func (r *EEDMRepository) Get(ctx context.Context, resource, guid string) (json.RawMessage, error) {
	var body json.RawMessage
	err := r.db.QueryRow(ctx,
		`SELECT body FROM eedm_records WHERE resource = $1 AND guid = $2`,
		resource, guid,
	).Scan(&body)
	if err != nil {
		return nil, sqlerr.Translate(err, resource)
	}
	return body, nil
}
