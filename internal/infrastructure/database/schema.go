package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "bookstore-ranking/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the books and sales tables if they do not exist.
// All statements run in one transaction so a half-created schema is never left behind.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	err := pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, stmt := range splitStatements(schemaSQL) {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Msg("[DATABASE] Schema ready")
	return nil
}

// splitStatements splits the embedded script on ';' and drops comment-only chunks.
func splitStatements(script string) []string {
	var stmts []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			stmts = append(stmts, strings.Join(lines, "\n"))
		}
	}
	return stmts
}
