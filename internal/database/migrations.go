package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/models"
)

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS board_columns (
	status   TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	version  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tickets (
	id           TEXT PRIMARY KEY,
	number       INTEGER NOT NULL UNIQUE,
	subject      TEXT NOT NULL,
	status       TEXT NOT NULL,
	priority     TEXT NOT NULL DEFAULT 'MEDIUM',
	assignee     TEXT NOT NULL DEFAULT '',
	company      TEXT NOT NULL DEFAULT '',
	kanban_order INTEGER NOT NULL DEFAULT 0,
	resolved_at  DATETIME,
	closed_at    DATETIME,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tickets_status_order
	ON tickets(status, kanban_order);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// runMigrations applies every migration newer than the recorded schema
// version, then makes sure every board column has its row.
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	currentVersion := 0

	var tableCount int
	err := db.GetContext(ctx, &tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if tableCount > 0 {
		err = db.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to apply migration v%d: %w", m.version, err)
		}
	}

	return seedBoardColumns(ctx, db)
}

// seedBoardColumns inserts the fixed board columns. Existing rows keep their
// version.
func seedBoardColumns(ctx context.Context, db *sqlx.DB) error {
	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for position, status := range models.BoardColumns {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO board_columns (status, position) VALUES (?, ?)
				 ON CONFLICT(status) DO UPDATE SET position = excluded.position`,
				string(status), position)
			if err != nil {
				return fmt.Errorf("failed to seed column %s: %w", status, err)
			}
		}
		return nil
	})
}
