package repository

import (
	"context"

	"github.com/pocketmark/api/categories/models"
)

// Repository reads the fixed category set.
type Repository interface {
	// ListAll returns every category ordered by ID.
	ListAll(ctx context.Context) ([]models.Category, error)
}
