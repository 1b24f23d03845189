package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNullable(t *testing.T) {
	t.Parallel()

	if got := nullable(""); got != nil {
		t.Fatalf("nullable(\"\") = %v", got)
	}
	if got := nullable(json.RawMessage(nil)); got != nil {
		t.Fatalf("nullable(nil bytes) = %v", got)
	}
	if got := nullable("0001"); got != "0001" {
		t.Fatalf("nullable kept %v", got)
	}
}

type draft struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	body, err := Encode(draft{ID: "12", Reason: "move funds"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode[draft](&Document{Kind: "draft-budget-adjustment", ID: "12", Body: body})
	if err != nil {
		t.Fatal(err)
	}
	if got.Reason != "move funds" {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeCorruptBodyIsRepositoryError(t *testing.T) {
	t.Parallel()

	_, err := DecodeAll[draft]([]Document{{Kind: "draft-budget-adjustment", Body: json.RawMessage(`{"id": 12`)}})
	if !errors.Is(err, errs.ErrRepository) {
		t.Fatalf("err = %v, want repository error", err)
	}
}

// updateDB answers the conditional update with a fixed row count and the
// existence check with exists.
type updateDB struct {
	affected string
	exists   bool
	args     []any
}

func (d *updateDB) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	d.args = args
	return pgconn.NewCommandTag("UPDATE " + d.affected), nil
}

func (d *updateDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (d *updateDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return existsRow(d.exists)
}

type existsRow bool

func (r existsRow) Scan(dest ...any) error {
	*dest[0].(*bool) = bool(r)
	return nil
}

func TestDocumentUpdateDetectsConcurrentChange(t *testing.T) {
	t.Parallel()

	readAt := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		affected  string
		exists    bool
		updatedAt time.Time
		want      error
	}{
		{name: "updated", affected: "1", updatedAt: readAt},
		{name: "changed since read", affected: "0", exists: true, updatedAt: readAt, want: errs.ErrConcurrentUpdate},
		{name: "deleted since read", affected: "0", updatedAt: readAt, want: errs.ErrNotFound},
		{name: "unconditional missing", affected: "0", want: errs.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := &updateDB{affected: tt.affected, exists: tt.exists}
			err := NewDocumentRepository(db).Update(context.Background(), Document{
				Kind:      "budget-adjustment",
				ID:        "B000101",
				Body:      json.RawMessage(`{}`),
				UpdatedAt: tt.updatedAt,
			})

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
			} else if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			readAtArg, _ := db.args[3].(*time.Time)
			if tt.updatedAt.IsZero() != (readAtArg == nil) {
				t.Errorf("read time argument = %v", db.args[3])
			}
		})
	}
}
