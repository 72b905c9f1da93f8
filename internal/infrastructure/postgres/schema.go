package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// schemaStatements splits schema.sql on ';' and drops blank statements.
// The file holds no functions or string literals containing semicolons.
func schemaStatements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ApplySchema creates any missing tables and indexes. Every statement is
// idempotent, so it is safe to run on each start.
func (db *DB) ApplySchema(ctx context.Context) error {
	stmts := schemaStatements()

	err := db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement %q: %w", sqlVerb(stmt), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Database schema applied (%d statements)", len(stmts))
	return nil
}
