package database

import (
	"context"
	"embed"
	"io/fs"

	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Migrations ship inside the binary.
//
//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable stores the applied migration version.
const VersionTable = "schema_version"

// LoadMigrations returns a tern migrator with the embedded migrations loaded.
func LoadMigrations(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return nil, errors.Wrap(err, "constructing database migrator")
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "retrieving database migrations subtree")
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, errors.Wrap(err, "loading database migrations")
	}

	return m, nil
}

// Migrate applies migrations up to targetVersion over a dedicated
// connection. A negative targetVersion means latest.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, targetVersion int32) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return errors.Wrap(err, "connecting for migrations")
	}
	defer conn.Close(ctx)

	m, err := LoadMigrations(ctx, conn)
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving current database migration version")
	}

	latest := int32(len(m.Migrations))
	if targetVersion < 0 || targetVersion > latest {
		targetVersion = latest
	}

	if from == targetVersion {
		logger.Info().Msgf("database schema up to date, version %d", from)
		return nil
	}

	if err := m.MigrateTo(ctx, targetVersion); err != nil {
		return errors.Wrapf(err, "migrating database schema to version %d", targetVersion)
	}

	logger.Info().Msgf("migrated database schema, from %d to %d", from, targetVersion)
	return nil
}
