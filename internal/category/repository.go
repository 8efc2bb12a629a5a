package category

import (
	"context"
	"database/sql"
	"fmt"

	"freshcart-be/internal/logger"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	AddCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
	NextSlug(ctx context.Context, name string) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx)

	query := `
		SELECT
			c.id, c.name, c.slug, c.description, c.image,
			c.is_active, c.created_by, c.created_at, c.updated_at,
			COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image,
			&c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	query := `
		SELECT
			c.id, c.name, c.slug, c.description, c.image,
			c.is_active, c.created_by, c.created_at, c.updated_at,
			COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image,
		&c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.ProductCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)",
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) AddCategory(ctx context.Context, c *Category) error {
	log := logger.FromCtx(ctx).With(zap.String("category_name", c.Name))
	log.Info("AddCategory started")

	query := `
		INSERT INTO categories (name, slug, description, image, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Slug, c.Description, c.Image, c.IsActive, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.Int64("category_id", c.ID))
	return nil
}

func (r *repository) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.Description, c.IsActive, c.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_id = $1",
		categoryID,
	).Scan(&count)
	return count, err
}

// NextSlug derives a slug from the name and disambiguates clashes with a
// numeric suffix (fresh-fruits, fresh-fruits-2, ...). Only numeric
// suffixes count as clashes: an existing "fresh-fruits" does not force
// a new "fresh" category off its own slug.
func (r *repository) NextSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)

	var taken int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug ~ ('^' || $1 || '(-[0-9]+)?$')`,
		base,
	).Scan(&taken)
	if err != nil {
		return "", err
	}

	if taken == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, taken+1), nil
}
