package product

import (
	"context"
	"math"
	"strings"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetProducts(ctx context.Context, filter Filter) (*Page, error)
	GetProduct(ctx context.Context, idOrSlug string) (*Product, error)
	CreateProduct(ctx context.Context, params CreateParams) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateParams) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProducts(ctx context.Context, filter Filter) (*Page, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProducts"),
	)

	products, total, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	return &Page{
		Products:    products,
		TotalPages:  int64(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func (s *service) GetProduct(ctx context.Context, idOrSlug string) (*Product, error) {
	p, err := s.repo.GetProductByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	// Products whose category was removed still render consistently.
	if p.Category == nil {
		p.Category = &CategoryRef{Name: "Uncategorized", Slug: "uncategorized"}
	}
	return p, nil
}

func (s *service) CreateProduct(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", params.Name),
	)
	log.Info("CreateProduct started")

	if err := validateProductFields(params.Price, params.Stock, params.Discount, params.Unit); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *params.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrInvalidCategory
		}
	}

	productSlug, err := s.repo.NextSlug(ctx, params.Name)
	if err != nil {
		log.Error("failed to derive slug", zap.Error(err))
		return nil, err
	}

	p := &Product{
		Name:         strings.TrimSpace(params.Name),
		Slug:         productSlug,
		Description:  strings.TrimSpace(params.Description),
		Price:        params.Price,
		CategoryID:   params.CategoryID,
		Stock:        params.Stock,
		Image:        params.Image,
		CloudinaryID: params.CloudinaryID,
		Unit:         params.Unit,
		Discount:     params.Discount,
		IsActive:     true,
		CreatedBy:    params.CreatedBy,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	if p.Category == nil {
		p.Category = &CategoryRef{Name: "Uncategorized", Slug: "uncategorized"}
	}

	log.Info("CreateProduct success", zap.Int64("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, params UpdateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.Int64("product_id", id),
	)

	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *params.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrInvalidCategory
		}
		p.CategoryID = params.CategoryID
	}

	if params.Name != nil && strings.TrimSpace(*params.Name) != p.Name {
		newSlug, err := s.repo.NextSlug(ctx, *params.Name)
		if err != nil {
			return nil, err
		}
		p.Name = strings.TrimSpace(*params.Name)
		p.Slug = newSlug
	}
	if params.Description != nil {
		p.Description = strings.TrimSpace(*params.Description)
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Unit != nil {
		p.Unit = *params.Unit
	}
	if params.Discount != nil {
		p.Discount = *params.Discount
	}
	if params.Image != nil {
		p.Image = *params.Image
	}
	if params.CloudinaryID != nil {
		p.CloudinaryID = *params.CloudinaryID
	}

	if err := validateProductFields(p.Price, p.Stock, p.Discount, p.Unit); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	if p.Category == nil {
		p.Category = &CategoryRef{Name: "Uncategorized", Slug: "uncategorized"}
	}
	return p, nil
}

// DeleteProduct removes the product and returns the deleted row so the
// caller can release its stored image.
func (s *service) DeleteProduct(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func validateProductFields(price float64, stock int, discount float64, unit Unit) error {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	if discount < 0 || discount > 100 {
		return ErrInvalidDiscount
	}
	if !ValidUnit(unit) {
		return ErrInvalidUnit
	}
	return nil
}
