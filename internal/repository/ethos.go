package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// EthosRepository reads data privacy settings and extended data.
type EthosRepository struct {
	db DBTX
}

func NewEthosRepository(db DBTX) *EthosRepository {
	return &EthosRepository{db: db}
}

// PrivacyPaths returns the property paths hidden for resource.
func (r *EthosRepository) PrivacyPaths(ctx context.Context, resource string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT property_path FROM ethos_data_privacy WHERE resource = $1 ORDER BY property_path`,
		resource,
	)
	if err != nil {
		return nil, sqlerr.Translate(err, "data privacy setting")
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, sqlerr.Translate(err, "data privacy setting")
	}
	return paths, nil
}

// ExtendedData returns the extra properties stored for each guid. GUIDs
// without extended data are absent from the map.
func (r *EthosRepository) ExtendedData(ctx context.Context, resource string, guids []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(guids))
	if len(guids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT guid::text, body FROM ethos_extended_data WHERE resource = $1 AND guid = ANY($2::uuid[])`,
		resource, guids,
	)
	if err != nil {
		return nil, sqlerr.Translate(err, "extended data")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			guid string
			body json.RawMessage
		)
		if err := rows.Scan(&guid, &body); err != nil {
			return nil, sqlerr.Translate(err, "extended data")
		}
		out[strings.ToLower(guid)] = body
	}

	if err := rows.Err(); err != nil {
		return nil, sqlerr.Translate(err, "extended data")
	}
	return out, nil
}
