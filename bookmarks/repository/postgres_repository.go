package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pocketmark/api/bookmarks/models"
	"github.com/pocketmark/api/internal/database/postgres"
)

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a bookmark repository backed by PostgreSQL.
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

func (r *postgresRepository) Insert(ctx context.Context, bookmark *models.Bookmark) error {
	query := `
		INSERT INTO bookmarks (
			user_id, title, url, description, source_platform,
			content_type, thumbnail_url, latitude, longitude,
			location_name, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	exec := r.getExecutor(ctx)
	row := exec.QueryRowxContext(ctx, query,
		bookmark.OwnerUserID,
		bookmark.Title,
		bookmark.URL,
		bookmark.Description,
		bookmark.SourcePlatform,
		bookmark.ContentType,
		bookmark.ThumbnailURL,
		bookmark.Latitude,
		bookmark.Longitude,
		bookmark.LocationName,
		bookmark.Metadata,
	)
	if err := row.Scan(&bookmark.ID, &bookmark.CreatedAt, &bookmark.UpdatedAt); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Bookmark, error) {
	query := `
		SELECT * FROM bookmarks
		WHERE id = $1 AND user_id = $2
	`
	return r.findOne(ctx, query, id, ownerID)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error) {
	query := `
		SELECT * FROM bookmarks
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByOwnerAndURL(ctx context.Context, ownerID uuid.UUID, url string) (*models.Bookmark, error) {
	query := `
		SELECT * FROM bookmarks
		WHERE user_id = $1 AND url = $2
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.findOne(ctx, query, ownerID, url)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &bookmark, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &bookmark, nil
}

func (r *postgresRepository) ApplyCategorization(ctx context.Context, id uuid.UUID, categoryID int, contentType string, description *string) error {
	query := `
		UPDATE bookmarks
		SET
			category_id = $1,
			content_type = $2,
			description = COALESCE($3, description),
			updated_at = NOW()
		WHERE id = $4
	`

	exec := r.getExecutor(ctx)
	result, err := exec.ExecContext(ctx, query, categoryID, contentType, description, id)
	if err != nil {
		return fmt.Errorf("apply categorization: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("apply categorization: bookmark %s not found", id)
	}
	return nil
}

// listRow joins a bookmark with its (possibly absent) category.
type listRow struct {
	models.Bookmark
	CategoryName  sql.NullString `db:"category_name"`
	CategoryColor sql.NullString `db:"category_color"`
	CategoryIcon  sql.NullString `db:"category_icon"`
}

func (r *postgresRepository) List(ctx context.Context, ownerID uuid.UUID, filter models.ListFilter) ([]models.BookmarkResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			b.*,
			c.name AS category_name,
			c.color AS category_color,
			c.icon AS category_icon
		FROM bookmarks b
		LEFT JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
	`)

	args := []interface{}{ownerID}
	paramIndex := 2

	if filter.Search != "" {
		sb.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.description ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, "%"+filter.Search+"%")
		paramIndex++
	}

	if filter.CategoryID != nil {
		sb.WriteString(fmt.Sprintf(" AND b.category_id = $%d", paramIndex))
		args = append(args, *filter.CategoryID)
		paramIndex++
	}

	sb.WriteString(fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1))
	args = append(args, limit, offset)

	var rows []listRow
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	responses := make([]models.BookmarkResponse, 0, len(rows))
	for _, row := range rows {
		resp := models.BookmarkResponse{Bookmark: row.Bookmark}
		if row.Bookmark.CategoryID != nil && row.CategoryName.Valid {
			resp.Category = &models.CategoryRef{
				ID:    *row.Bookmark.CategoryID,
				Name:  row.CategoryName.String,
				Color: row.CategoryColor.String,
				Icon:  row.CategoryIcon.String,
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
