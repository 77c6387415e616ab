package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/models"
)

const summaryColumns = `id, number, subject, status, priority, assignee, company, kanban_order, created_at`

const ticketColumns = `id, number, subject, status, priority, assignee, company, kanban_order,
	resolved_at, closed_at, created_at, updated_at`

// boardOrder is the rendering order inside a column
const boardOrder = `kanban_order ASC, created_at DESC, id ASC`

// TicketRepo handles all ticket-related database operations.
type TicketRepo struct {
	db *sqlx.DB
}

// NewTicketParams describes a ticket to create
type NewTicketParams struct {
	Subject  string
	Status   models.Status
	Priority models.Priority
	Assignee string
	Company  string
	// CreatedAgo backdates created_at, as an SQLite modifier such as "-3 hours".
	// Empty means now.
	CreatedAgo string
}

// Create inserts a ticket at the bottom of its column and returns it
func (r *TicketRepo) Create(ctx context.Context, p NewTicketParams) (*models.Ticket, error) {
	id := uuid.NewString()
	modifier := p.CreatedAgo
	if modifier == "" {
		modifier = "+0 seconds"
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var number, order int
		if err := tx.GetContext(ctx, &number, `SELECT COALESCE(MAX(number), 0) + 1 FROM tickets`); err != nil {
			return fmt.Errorf("failed to allocate ticket number: %w", err)
		}
		err := tx.GetContext(ctx, &order,
			`SELECT COALESCE(MAX(kanban_order) + 1, 0) FROM tickets WHERE status = ?`, string(p.Status))
		if err != nil {
			return fmt.Errorf("failed to compute order: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tickets (id, number, subject, status, priority, assignee, company, kanban_order,
				resolved_at, closed_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?,
				CASE WHEN ? = 'RESOLVED' THEN datetime('now', ?) END,
				CASE WHEN ? = 'CLOSED' THEN datetime('now', ?) END,
				datetime('now', ?), datetime('now', ?))`,
			id, number, p.Subject, string(p.Status), string(p.Priority), p.Assignee, p.Company, order,
			string(p.Status), modifier,
			string(p.Status), modifier,
			modifier, modifier,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ticket: %w", err)
		}

		return bumpColumnVersions(ctx, tx, []models.Status{p.Status})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a ticket
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.GetContext(ctx, &t, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}
	return &t, nil
}

// GetByNumber returns a ticket by its human-facing number
func (r *TicketRepo) GetByNumber(ctx context.Context, number int) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.GetContext(ctx, &t, `SELECT `+ticketColumns+` FROM tickets WHERE number = ?`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", ErrTicketNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket #%d: %w", number, err)
	}
	return &t, nil
}

// Delete removes a ticket
func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var status models.Status
		err := tx.GetContext(ctx, &status, `SELECT status FROM tickets WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get ticket %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete ticket %s: %w", id, err)
		}
		return bumpColumnVersions(ctx, tx, []models.Status{status})
	})
}

// Count returns the number of tickets in the store
func (r *TicketRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tickets`); err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return n, nil
}

// ListBoard returns every ticket whose status is a board column, in
// rendering order within each status
func (r *TicketRepo) ListBoard(ctx context.Context) ([]*models.TicketSummary, error) {
	return listBoard(ctx, r.db)
}

func listBoard(ctx context.Context, q sqlx.ExtContext) ([]*models.TicketSummary, error) {
	query, args, err := sqlx.In(
		`SELECT `+summaryColumns+` FROM tickets WHERE status IN (?) ORDER BY status, `+boardOrder,
		statusStrings(models.BoardColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to build board query: %w", err)
	}

	tickets := []*models.TicketSummary{}
	if err := sqlx.SelectContext(ctx, q, &tickets, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list board tickets: %w", err)
	}
	return tickets, nil
}

// ApplyReorder commits one reorder command atomically: the primary ticket's
// status and order, every affected sibling's order, lifecycle timestamps, and
// a version bump for each touched column. Nothing is written unless all of
// it is.
//
// When the command carries column versions they must match the stored ones.
// Affected siblings must still exist and sit in a touched column.
func (r *TicketRepo) ApplyReorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error) {
	result := &models.ReorderResult{}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var from models.Status
		err := tx.GetContext(ctx, &from, `SELECT status FROM tickets WHERE id = ?`, cmd.TicketID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrTicketNotFound, cmd.TicketID)
		}
		if err != nil {
			return fmt.Errorf("failed to get ticket %s: %w", cmd.TicketID, err)
		}

		touched := []models.Status{from}
		if cmd.NewStatus != from {
			touched = append(touched, cmd.NewStatus)
		}

		if err := checkColumnVersions(ctx, tx, cmd.ColumnVersions); err != nil {
			return err
		}
		if err := checkAffected(ctx, tx, cmd.AffectedTickets, touched); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tickets SET status = ?, kanban_order = ?,
				`+lifecycleAssignments(from, cmd.NewStatus)+`
				updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			string(cmd.NewStatus), cmd.NewOrder, cmd.TicketID)
		if err != nil {
			return fmt.Errorf("failed to move ticket %s: %w", cmd.TicketID, err)
		}

		if len(cmd.AffectedTickets) > 0 {
			stmt, err := tx.PreparexContext(ctx,
				`UPDATE tickets SET kanban_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
			if err != nil {
				return fmt.Errorf("failed to prepare reindex statement: %w", err)
			}
			defer stmt.Close()

			for _, change := range cmd.AffectedTickets {
				if _, err := stmt.ExecContext(ctx, change.Order, change.ID); err != nil {
					return fmt.Errorf("failed to reindex ticket %s: %w", change.ID, err)
				}
			}
		}

		if err := bumpColumnVersions(ctx, tx, touched); err != nil {
			return err
		}

		ids := make([]string, 0, len(cmd.AffectedTickets)+1)
		ids = append(ids, cmd.TicketID)
		for _, change := range cmd.AffectedTickets {
			ids = append(ids, change.ID)
		}
		query, args, err := sqlx.In(
			`SELECT `+summaryColumns+` FROM tickets WHERE id IN (?) ORDER BY status, `+boardOrder, ids)
		if err != nil {
			return fmt.Errorf("failed to build result query: %w", err)
		}
		if err := tx.SelectContext(ctx, &result.Tickets, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to read back tickets: %w", err)
		}

		result.Versions, err = columnVersions(ctx, tx, touched)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lifecycleAssignments stamps resolved_at and closed_at when a ticket enters
// RESOLVED or CLOSED and clears them when it leaves
func lifecycleAssignments(from, to models.Status) string {
	var b strings.Builder
	for _, stamp := range []struct {
		status models.Status
		column string
	}{
		{models.StatusResolved, "resolved_at"},
		{models.StatusClosed, "closed_at"},
	} {
		switch {
		case to == stamp.status && from != stamp.status:
			b.WriteString(stamp.column + " = CURRENT_TIMESTAMP,\n")
		case to != stamp.status && from == stamp.status:
			b.WriteString(stamp.column + " = NULL,\n")
		}
	}
	return b.String()
}

func checkColumnVersions(ctx context.Context, tx *sqlx.Tx, expected map[models.Status]int64) error {
	for status, want := range expected {
		var got int64
		err := tx.GetContext(ctx, &got, `SELECT version FROM board_columns WHERE status = ?`, string(status))
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read version of %s: %w", status, err)
		}
		if got != want {
			return fmt.Errorf("%w: %s is at version %d, command expected %d",
				ErrColumnVersionMismatch, status, got, want)
		}
	}
	return nil
}

func checkAffected(ctx context.Context, tx *sqlx.Tx, affected []models.OrderChange, touched []models.Status) error {
	for _, change := range affected {
		var status models.Status
		err := tx.GetContext(ctx, &status, `SELECT status FROM tickets WHERE id = ?`, change.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrAffectedMissing, change.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get ticket %s: %w", change.ID, err)
		}
		inTouched := false
		for _, s := range touched {
			if s == status {
				inTouched = true
				break
			}
		}
		if !inTouched {
			return fmt.Errorf("%w: %s is now in %s", ErrAffectedMoved, change.ID, status)
		}
	}
	return nil
}
