package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

// LinkRepository owns the affiliate_links table.
type LinkRepository struct {
	db *sql.DB
}

var _ ports.LinkRepository = (*LinkRepository)(nil)

// NewLinkRepository wires a sql.DB implementation.
func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

const linkColumns = `id, product_name, product_description, price_usd, price_display,
	brand, affiliate_url, network, category_id, tags, is_featured, created_at, updated_at`

// Create inserts the link and fills its generated id and timestamps.
func (r *LinkRepository) Create(ctx context.Context, link *domain.AffiliateLink) error {
	query := `INSERT INTO affiliate_links
		(product_name, product_description, price_usd, price_display, brand,
		 affiliate_url, network, category_id, tags, is_featured)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		link.ProductName,
		link.ProductDescription,
		link.PriceUSD,
		link.PriceDisplay,
		link.Brand,
		link.AffiliateURL,
		link.Network,
		link.CategoryID,
		link.Tags,
		link.IsFeatured,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	return nil
}

// GetByID loads one link or domain.ErrNotFound.
func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM affiliate_links WHERE id = $1`, id)

	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query link %d: %w", id, err)
	}

	return link, nil
}

// List returns links with category names and article counts; categoryID 0
// means all categories.
func (r *LinkRepository) List(ctx context.Context, categoryID int64) ([]domain.LinkOverview, error) {
	qb := psql.Select(
		"al.id", "al.product_name", "al.product_description", "al.price_usd",
		"al.price_display", "al.brand", "al.affiliate_url", "al.network",
		"al.category_id", "al.tags", "al.is_featured", "al.created_at", "al.updated_at",
		"COALESCE(c.name, '') AS category_name",
		"(SELECT COUNT(*) FROM articles WHERE affiliate_link_id = al.id) AS article_count",
	).
		From("affiliate_links al").
		LeftJoin("categories c ON c.id = al.category_id").
		OrderBy("al.created_at DESC")

	if categoryID > 0 {
		qb = qb.Where(sq.Eq{"al.category_id": categoryID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build link listing: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var result []domain.LinkOverview
	for rows.Next() {
		var (
			item     domain.LinkOverview
			priceUSD sql.NullFloat64
		)
		err := rows.Scan(
			&item.ID, &item.ProductName, &item.ProductDescription, &priceUSD,
			&item.PriceDisplay, &item.Brand, &item.AffiliateURL, &item.Network,
			&item.CategoryID, &item.Tags, &item.IsFeatured, &item.CreatedAt, &item.UpdatedAt,
			&item.CategoryName, &item.ArticleCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		item.PriceUSD = floatPtr(priceUSD)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// Update applies the non-nil patch fields and returns the updated link.
func (r *LinkRepository) Update(ctx context.Context, id int64, patch domain.LinkPatch) (*domain.AffiliateLink, error) {
	query := `UPDATE affiliate_links SET
		product_name = COALESCE($1, product_name),
		product_description = COALESCE($2, product_description),
		price_usd = COALESCE($3, price_usd),
		price_display = COALESCE($4, price_display),
		brand = COALESCE($5, brand),
		affiliate_url = COALESCE($6, affiliate_url),
		tags = COALESCE($7, tags),
		is_featured = COALESCE($8, is_featured),
		updated_at = NOW()
	WHERE id = $9
	RETURNING ` + linkColumns

	row := r.db.QueryRowContext(ctx, query,
		patch.ProductName,
		patch.ProductDescription,
		patch.PriceUSD,
		patch.PriceDisplay,
		patch.Brand,
		patch.AffiliateURL,
		patch.Tags,
		patch.IsFeatured,
		id,
	)

	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update link %d: %w", id, err)
	}

	return link, nil
}

// Delete removes the link; deleting an unknown id is a no-op.
func (r *LinkRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM affiliate_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

// WithoutPublishedArticle lists links lacking a published article. This is a
// query-time preference for the scheduled batch, not a lock: a concurrent
// generation can still produce a duplicate article for the same link.
func (r *LinkRepository) WithoutPublishedArticle(ctx context.Context, limit int) ([]domain.AffiliateLink, error) {
	query := `SELECT al.id, al.product_name, al.product_description, al.price_usd,
		al.price_display, al.brand, al.affiliate_url, al.network, al.category_id,
		al.tags, al.is_featured, al.created_at, al.updated_at
	FROM affiliate_links al
	LEFT JOIN articles a ON a.affiliate_link_id = al.id AND a.status = 'published'
	WHERE a.id IS NULL
	ORDER BY al.created_at
	LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished links: %w", err)
	}
	defer rows.Close()

	var result []domain.AffiliateLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		result = append(result, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

func scanLink(row rowScanner) (*domain.AffiliateLink, error) {
	var (
		link     domain.AffiliateLink
		priceUSD sql.NullFloat64
	)
	err := row.Scan(
		&link.ID, &link.ProductName, &link.ProductDescription, &priceUSD,
		&link.PriceDisplay, &link.Brand, &link.AffiliateURL, &link.Network,
		&link.CategoryID, &link.Tags, &link.IsFeatured, &link.CreatedAt, &link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	link.PriceUSD = floatPtr(priceUSD)
	return &link, nil
}
