// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist or update data,
// abstracting SQL logic away from the service layer. Driver errors leave
// this package already translated by sqlerr.Translate.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nullable maps empty strings and empty byte slices to SQL NULL so optional
// filters can be written as "(@x IS NULL OR ...)".
func nullable[T ~string | ~[]byte](v T) any {
	if len(v) == 0 {
		return nil
	}
	return v
}
