package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"freshcart-be/internal/logger"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Filter narrows the catalog listing.
type Filter struct {
	Search   string
	Category string
	Sort     string
	Limit    int32
	Page     int32
}

type Repository interface {
	GetProducts(ctx context.Context, filter Filter) ([]*Product, int64, error)
	GetProductByIDOrSlug(ctx context.Context, idOrSlug string) (*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CategoryExists(ctx context.Context, id int64) (bool, error)
	NextSlug(ctx context.Context, name string) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.slug, p.description, p.price, p.category_id,
	p.stock, p.image, p.cloudinary_id, p.unit, p.discount,
	p.is_active, p.created_by, p.created_at, p.updated_at,
	c.id, c.name, c.slug
`

func scanProduct(row interface{ Scan(...interface{}) error }) (*Product, error) {
	var p Product
	var catID sql.NullInt64
	var catName, catSlug sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID,
		&p.Stock, &p.Image, &p.CloudinaryID, &p.Unit, &p.Discount,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		p.Category = &CategoryRef{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
	}
	return &p, nil
}

func (r *repository) GetProducts(ctx context.Context, filter Filter) ([]*Product, int64, error) {
	// ---------- DEFAULTS ----------
	finalLimit := int32(10)
	finalPage := int32(1)

	if filter.Limit > 0 {
		finalLimit = filter.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}
	if filter.Page > 0 {
		finalPage = filter.Page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("search", filter.Search),
		zap.String("category", filter.Category),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	// ---------- FILTER ----------
	where := []string{}
	args := []interface{}{}

	if filter.Search != "" {
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	if filter.Category != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, filter.Category)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	countQuery := `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	` + whereClause

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("DB count failed GetProducts", zap.Error(err))
		return nil, 0, err
	}

	// ---------- ORDER ----------
	orderBy := "p.created_at DESC"
	switch filter.Sort {
	case "price":
		orderBy = "p.price ASC"
	case "-price":
		orderBy = "p.price DESC"
	case "name":
		orderBy = "p.name ASC"
	case "createdAt":
		orderBy = "p.created_at ASC"
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	` + whereClause + " ORDER BY " + orderBy

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetProducts", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, rows.Err()
}

func (r *repository) GetProductByIDOrSlug(ctx context.Context, idOrSlug string) (*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE (p.id::text = $1 OR p.slug = $1) AND p.is_active = TRUE
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, idOrSlug))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) CreateProduct(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(zap.String("product_name", p.Name))

	query := `
		INSERT INTO products (
			name, slug, description, price, category_id, stock,
			image, cloudinary_id, unit, discount, is_active, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.Stock,
		p.Image, p.CloudinaryID, p.Unit, p.Discount, p.IsActive, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("CreateProduct DB query failed", zap.Error(err))
		return fmt.Errorf("create product failed: %w", err)
	}

	log.Info("CreateProduct success", zap.Int64("product_id", p.ID))
	return nil
}

func (r *repository) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4,
			category_id = $5, stock = $6, image = $7, cloudinary_id = $8,
			unit = $9, discount = $10, is_active = $11, updated_at = NOW()
		WHERE id = $12
	`,
		p.Name, p.Slug, p.Description, p.Price,
		p.CategoryID, p.Stock, p.Image, p.CloudinaryID,
		p.Unit, p.Discount, p.IsActive, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)",
		id,
	).Scan(&exists)
	return exists, err
}

// NextSlug mirrors the category slug rule: derived from the name,
// disambiguated with a numeric suffix on clash. Only numeric suffixes
// count, so slugs that merely extend the base word are left alone.
func (r *repository) NextSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)

	var taken int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE slug ~ ('^' || $1 || '(-[0-9]+)?$')`,
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
