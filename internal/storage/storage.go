package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/runtimeconfig"
	"github.com/goliatone/go-composer/internal/styles"
	cmslayouts "github.com/goliatone/go-composer/layouts"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

var ErrDSNRequired = errors.New("storage: dsn is required")

const pingTimeout = 10 * time.Second

// Open connects to the configured database and returns a bun handle using
// the matching dialect.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}
	driver := runtimeconfig.NormalizeDriver(cfg.Driver)

	var dialect schema.Dialect
	switch driver {
	case "sqlite3":
		dialect = sqlitedialect.New()
	case "postgres":
		dialect = pgdialect.New()
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// a shared memory database disappears with its last connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(10 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return bun.NewDB(sqlDB, dialect), nil
}

// Models lists the tables owned by the composer.
func Models() []any {
	return []any{
		(*cmslayouts.Layout)(nil),
		(*styles.StyleSettings)(nil),
	}
}

// CreateTables creates the composer tables that do not exist yet.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
