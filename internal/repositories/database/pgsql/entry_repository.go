package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxManualEntryRepository struct {
	pool *pgxpool.Pool
}

// newPgxManualEntryRepository creates a new repository for manual entries.
func newPgxManualEntryRepository(pool *pgxpool.Pool) portsrepo.ManualEntryRepositoryFacade {
	return &PgxManualEntryRepository{pool: pool}
}

// Ensure PgxManualEntryRepository implements portsrepo.ManualEntryRepositoryFacade
var _ portsrepo.ManualEntryRepositoryFacade = (*PgxManualEntryRepository)(nil)

const entryColumns = `id, user_id, name, current_value, category, entry_type, notes, created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.ManualEntry, error) {
	var entry domain.ManualEntry
	var notes sql.NullString
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Name,
		&entry.CurrentValue,
		&entry.Category,
		&entry.EntryType,
		&notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Notes = notes.String
	return &entry, nil
}

func (r *PgxManualEntryRepository) SaveEntry(ctx context.Context, entry domain.ManualEntry) error {
	query := `
		INSERT INTO manual_entries (id, user_id, name, current_value, category, entry_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Name,
		entry.CurrentValue,
		entry.Category,
		entry.EntryType,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save manual entry: %w", err)
	}
	return nil
}

func (r *PgxManualEntryRepository) FindEntryByID(ctx context.Context, userID, entryID string) (*domain.ManualEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM manual_entries WHERE id = $1 AND user_id = $2;`
	entry, err := scanEntry(r.pool.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find manual entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (r *PgxManualEntryRepository) ListEntries(ctx context.Context, userID string) ([]domain.ManualEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM manual_entries WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ManualEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxManualEntryRepository) UpdateEntry(ctx context.Context, entry domain.ManualEntry) error {
	query := `
		UPDATE manual_entries
		SET name = $3, current_value = $4, notes = NULLIF($5, ''), updated_at = $6
		WHERE id = $1 AND user_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Name,
		entry.CurrentValue,
		entry.Notes,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update manual entry %s: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entry.ID)
	}
	return nil
}

func (r *PgxManualEntryRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	// History rows go with the entry via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM manual_entries WHERE id = $1 AND user_id = $2;`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete manual entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

func (r *PgxManualEntryRepository) AppendHistory(ctx context.Context, record domain.ManualEntryHistory) error {
	query := `
		INSERT INTO manual_entry_history (id, entry_id, user_id, old_value, new_value, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.EntryID,
		record.UserID,
		record.OldValue,
		record.NewValue,
		record.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append entry history: %w", err)
	}
	return nil
}

func (r *PgxManualEntryRepository) ListHistory(ctx context.Context, userID, entryID string) ([]domain.ManualEntryHistory, error) {
	query := `
		SELECT id, entry_id, user_id, old_value, new_value, changed_at
		FROM manual_entry_history
		WHERE entry_id = $1 AND user_id = $2
		ORDER BY changed_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, entryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry history: %w", err)
	}
	defer rows.Close()

	var records []domain.ManualEntryHistory
	for rows.Next() {
		var rec domain.ManualEntryHistory
		if err := rows.Scan(&rec.ID, &rec.EntryID, &rec.UserID, &rec.OldValue, &rec.NewValue, &rec.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating history rows: %w", err)
	}
	return records, nil
}
