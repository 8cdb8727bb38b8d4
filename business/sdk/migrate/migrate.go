// Package migrate contains the database schema, migrations and seeding data.
package migrate

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/jmoiron/sqlx"
)

var (
	//go:embed sql/schema.sql
	schemaDoc string

	//go:embed sql/seed.sql
	seedDoc string
)

// Migrate attempts to bring the database up to date with the schema
// defined in this package.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	return execute(ctx, db, schemaDoc)
}

// Seed loads development data into the database. The seed document runs
// in a single transaction and is written to be idempotent.
func Seed(ctx context.Context, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	return execute(ctx, db, seedDoc)
}

func execute(ctx context.Context, db *sqlx.DB, doc string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, doc); err != nil {
		if errTx := tx.Rollback(); errTx != nil {
			return fmt.Errorf("rollback: %w", errTx)
		}
		return fmt.Errorf("exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
