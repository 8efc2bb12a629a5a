package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProducts(ctx context.Context, filter Filter) ([]*Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetProductByIDOrSlug(ctx context.Context, idOrSlug string) (*Product, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) CreateProduct(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) UpdateProduct(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) NextSlug(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func TestDiscountedPrice(t *testing.T) {
	p := &Product{Price: 200, Discount: 25}
	assert.InDelta(t, 150.0, p.DiscountedPrice(), 0.001)

	p.Discount = 0
	assert.Equal(t, 200.0, p.DiscountedPrice())
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	catID := int64(2)

	valid := CreateParams{
		Name:        "Organic Bananas",
		Description: "A bunch of fresh organic bananas",
		Price:       45,
		CategoryID:  &catID,
		Stock:       100,
		Unit:        UnitKg,
		Image:       "https://img/bananas.png",
		CreatedBy:   1,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CategoryExists", ctx, catID).Return(true, nil)
		repo.On("NextSlug", ctx, "Organic Bananas").Return("organic-bananas", nil)
		repo.On("CreateProduct", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Slug == "organic-bananas" && p.IsActive && p.Stock == 100
		})).Return(nil)

		p, err := svc.CreateProduct(ctx, valid)
		assert.NoError(t, err)
		assert.Equal(t, "Organic Bananas", p.Name)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CategoryExists", ctx, catID).Return(false, nil)

		_, err := svc.CreateProduct(ctx, valid)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("BadUnit", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := valid
		params.Unit = "dozen"

		_, err := svc.CreateProduct(ctx, params)
		assert.ErrorIs(t, err, ErrInvalidUnit)
		repo.AssertNotCalled(t, "CreateProduct", ctx, mock.Anything)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := valid
		params.Price = -1

		_, err := svc.CreateProduct(ctx, params)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("DiscountOutOfRange", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := valid
		params.Discount = 120

		_, err := svc.CreateProduct(ctx, params)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})
}

func TestService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("UncategorizedFallback", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetProductByIDOrSlug", ctx, "organic-bananas").
			Return(&Product{ID: 1, Name: "Organic Bananas"}, nil)

		p, err := svc.GetProduct(ctx, "organic-bananas")
		assert.NoError(t, err)
		assert.Equal(t, "Uncategorized", p.Category.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetProductByIDOrSlug", ctx, "ghost").Return(nil, ErrProductNotFound)

		_, err := svc.GetProduct(ctx, "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("RenameDerivesNewSlug", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		existing := &Product{ID: 1, Name: "Bananas", Slug: "bananas", Price: 45, Stock: 10, Unit: UnitKg}
		repo.On("GetProductByID", ctx, int64(1)).Return(existing, nil)
		repo.On("NextSlug", ctx, "Ripe Bananas").Return("ripe-bananas", nil)
		repo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Slug == "ripe-bananas" && p.Name == "Ripe Bananas"
		})).Return(nil)

		name := "Ripe Bananas"
		p, err := svc.UpdateProduct(ctx, 1, UpdateParams{Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, "ripe-bananas", p.Slug)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetProductByID", ctx, int64(9)).Return(nil, ErrProductNotFound)

		_, err := svc.UpdateProduct(ctx, 9, UpdateParams{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	svc := NewService(repo)

	existing := &Product{ID: 1, CloudinaryID: "freshcart/abc"}
	repo.On("GetProductByID", ctx, int64(1)).Return(existing, nil)
	repo.On("DeleteProduct", ctx, int64(1)).Return(nil)

	p, err := svc.DeleteProduct(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "freshcart/abc", p.CloudinaryID)
}
