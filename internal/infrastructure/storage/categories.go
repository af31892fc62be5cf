package storage

import (
	"context"
	"database/sql"
	"fmt"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

// CategoryRepository owns the categories table.
type CategoryRepository struct {
	db *sql.DB
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository wires a sql.DB implementation.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// ListWithCounts returns categories with their published article counts.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `SELECT c.id, c.name, c.slug, COUNT(a.id) AS article_count
	FROM categories c
	LEFT JOIN articles a ON a.category_id = c.id AND a.status = 'published'
	GROUP BY c.id, c.name, c.slug
	ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	var result []domain.CategoryCount
	for rows.Next() {
		var row domain.CategoryCount
		if err := rows.Scan(&row.ID, &row.Name, &row.Slug, &row.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
