package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pocketmark/api/internal/database/postgres"
	"github.com/pocketmark/api/queue/models"
)

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a queue repository backed by PostgreSQL.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

func (r *postgresRepository) Enqueue(ctx context.Context, bookmarkID uuid.UUID, priority int) error {
	query := `
		INSERT INTO ai_processing_queue (bookmark_id, status, priority)
		VALUES ($1, $2, $3)
	`

	exec := r.getExecutor(ctx)
	if _, err := exec.ExecContext(ctx, query, bookmarkID, models.StatusPending, priority); err != nil {
		return fmt.Errorf("enqueue bookmark %s: %w", bookmarkID, err)
	}
	return nil
}

func (r *postgresRepository) Claim(ctx context.Context, bookmarkID uuid.UUID) error {
	// Single conditional update: the status predicate is the mutual-exclusion
	// point, so two concurrent claimers can never both win.
	query := `
		UPDATE ai_processing_queue
		SET status = $1, processing_started_at = NOW()
		WHERE bookmark_id = $2 AND status = $3
	`

	exec := r.getExecutor(ctx)
	result, err := exec.ExecContext(ctx, query, models.StatusProcessing, bookmarkID, models.StatusPending)
	if err != nil {
		return fmt.Errorf("claim queue entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoPendingEntry
	}
	return nil
}

func (r *postgresRepository) Complete(ctx context.Context, bookmarkID uuid.UUID) error {
	query := `
		UPDATE ai_processing_queue
		SET status = $1, processing_completed_at = NOW()
		WHERE bookmark_id = $2 AND status = $3
	`

	exec := r.getExecutor(ctx)
	result, err := exec.ExecContext(ctx, query, models.StatusCompleted, bookmarkID, models.StatusProcessing)
	if err != nil {
		return fmt.Errorf("complete queue entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotProcessing
	}
	return nil
}

func (r *postgresRepository) Fail(ctx context.Context, bookmarkID uuid.UUID, reason string) error {
	query := `
		UPDATE ai_processing_queue
		SET status = $1, error_message = $2, retry_count = retry_count + 1
		WHERE bookmark_id = $3 AND status = $4
	`

	exec := r.getExecutor(ctx)
	result, err := exec.ExecContext(ctx, query, models.StatusFailed, reason, bookmarkID, models.StatusProcessing)
	if err != nil {
		return fmt.Errorf("fail queue entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotProcessing
	}
	return nil
}

func (r *postgresRepository) NextPending(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 1
	}

	query := `
		SELECT bookmark_id
		FROM ai_processing_queue
		WHERE status = $1
		ORDER BY priority DESC, created_at ASC
		LIMIT $2
	`

	var bookmarkIDs []uuid.UUID
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &bookmarkIDs, query, models.StatusPending, limit); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("next pending entries: %w", err)
	}
	return bookmarkIDs, nil
}

func (r *postgresRepository) RevertStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE ai_processing_queue
		SET status = $1, processing_started_at = NULL
		WHERE status = $2 AND processing_started_at < NOW() - ($3 * INTERVAL '1 second')
	`

	exec := r.getExecutor(ctx)
	result, err := exec.ExecContext(ctx, query, models.StatusPending, models.StatusProcessing, int64(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("revert stale entries: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) FindByBookmark(ctx context.Context, bookmarkID uuid.UUID) (*models.Entry, error) {
	query := `
		SELECT * FROM ai_processing_queue
		WHERE bookmark_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var entry models.Entry
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &entry, query, bookmarkID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find queue entry: %w", err)
	}
	return &entry, nil
}
