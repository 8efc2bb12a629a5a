package category

import (
	"context"
	"strings"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

const defaultImage = "https://res.cloudinary.com/demo/image/upload/v1/samples/default-category.png"

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	AddCategory(ctx context.Context, name, description string, createdBy int64) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, name, description *string) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if categories == nil {
		categories = []*Category{}
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, name, description string, createdBy int64) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)
	log.Info("AddCategory started")

	// Category names are normalized lowercase and unique.
	name = strings.ToLower(strings.TrimSpace(name))

	exists, err := s.repo.ExistsByName(ctx, name, 0)
	if err != nil {
		log.Error("failed to check category name", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	categorySlug, err := s.repo.NextSlug(ctx, name)
	if err != nil {
		log.Error("failed to derive slug", zap.Error(err))
		return nil, err
	}

	c := &Category{
		Name:        name,
		Slug:        categorySlug,
		Description: strings.TrimSpace(description),
		Image:       defaultImage,
		IsActive:    true,
		CreatedBy:   createdBy,
	}

	if err := s.repo.AddCategory(ctx, c); err != nil {
		log.Error("failed to add category", zap.Error(err))
		// Concurrent creates can slip past the ExistsByName pre-check;
		// the unique index is the real guard.
		if strings.Contains(err.Error(), "categories_name_key") {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	log.Info("AddCategory success", zap.Int64("category_id", c.ID))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, name, description *string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.Int64("category_id", id),
	)

	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		newName := strings.ToLower(strings.TrimSpace(*name))
		if newName != c.Name {
			exists, err := s.repo.ExistsByName(ctx, newName, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrCategoryExists
			}

			newSlug, err := s.repo.NextSlug(ctx, newName)
			if err != nil {
				return nil, err
			}
			c.Name = newName
			c.Slug = newSlug
		}
	}

	if description != nil {
		c.Description = strings.TrimSpace(*description)
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		log.Error("failed to update category", zap.Error(err))
		if strings.Contains(err.Error(), "categories_name_key") {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.Int64("category_id", id),
	)

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.repo.DeleteCategory(ctx, id)
}
