package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// ColumnRepo reads and bumps board column versions.
type ColumnRepo struct {
	db *sqlx.DB
}

type columnVersionRow struct {
	Status  models.Status `db:"status"`
	Version int64         `db:"version"`
}

// Versions returns the current version of every board column
func (r *ColumnRepo) Versions(ctx context.Context) (map[models.Status]int64, error) {
	var rows []columnVersionRow
	err := r.db.SelectContext(ctx, &rows, `SELECT status, version FROM board_columns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read column versions: %w", err)
	}
	out := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Version
	}
	return out, nil
}

// columnVersions reads the versions of the given columns inside tx. Statuses
// without a board column are left out.
func columnVersions(ctx context.Context, tx *sqlx.Tx, statuses []models.Status) (map[models.Status]int64, error) {
	query, args, err := sqlx.In(`SELECT status, version FROM board_columns WHERE status IN (?)`, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to build version query: %w", err)
	}
	var rows []columnVersionRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to read column versions: %w", err)
	}
	out := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Version
	}
	return out, nil
}

func bumpColumnVersions(ctx context.Context, tx *sqlx.Tx, statuses []models.Status) error {
	for _, s := range statuses {
		_, err := tx.ExecContext(ctx, `UPDATE board_columns SET version = version + 1 WHERE status = ?`, string(s))
		if err != nil {
			return fmt.Errorf("failed to bump version of %s: %w", s, err)
		}
	}
	return nil
}
