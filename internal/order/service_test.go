package order

import (
	"context"
	"testing"

	"freshcart-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, params CreateParams) (*Order, error) {
	args := m.Called(ctx, params)
	if o := args.Get(0); o != nil {
		return o.(*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetOrdersByUser(ctx context.Context, userID int64) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if o := args.Get(0); o != nil {
		return o.([]*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetAllOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func validParams() CreateParams {
	productID := int64(7)
	return CreateParams{
		UserID: 1,
		Items: []ItemInput{
			{ProductID: &productID, Name: "Organic Bananas", Quantity: 2, Price: 10},
		},
		ShippingAddress: ShippingAddress{
			FullName:     "John Doe",
			AddressLine1: "42 Market Street",
			City:         "Mumbai",
			State:        "MH",
			Pincode:      "400001",
			Phone:        "9876543210",
		},
		TotalAmount:   20,
		PaymentMethod: payment.MethodCOD,
	}
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := validParams()
		repo.On("CreateOrder", ctx, params).
			Return(&Order{ID: 100, UserID: 1, Status: StatusPending, TotalAmount: 20, PaymentMethod: payment.MethodCOD}, nil)

		o, err := svc.CreateOrder(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, int64(100), o.ID)
		assert.Equal(t, StatusPending, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("GuestRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := validParams()
		params.UserID = 0

		_, err := svc.CreateOrder(ctx, params)
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("EmptyCartNeverReachesStore", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := validParams()
		params.Items = nil

		_, err := svc.CreateOrder(ctx, params)
		assert.ErrorIs(t, err, ErrEmptyOrder)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*CreateParams)
			field  string
		}{
			{"ZeroQuantity", func(p *CreateParams) { p.Items[0].Quantity = 0 }, "items"},
			{"NegativePrice", func(p *CreateParams) { p.Items[0].Price = -1 }, "items"},
			{"UnnamedItem", func(p *CreateParams) { p.Items[0].Name = " " }, "items"},
			{"ShortPincode", func(p *CreateParams) { p.ShippingAddress.Pincode = "4000" }, "shippingAddress.pincode"},
			{"AlphaPhone", func(p *CreateParams) { p.ShippingAddress.Phone = "98765abcde" }, "shippingAddress.phone"},
			{"MissingCity", func(p *CreateParams) { p.ShippingAddress.City = "" }, "shippingAddress.city"},
			{"NegativeTotal", func(p *CreateParams) { p.TotalAmount = -5 }, "totalAmount"},
			{"UnknownPaymentMethod", func(p *CreateParams) { p.PaymentMethod = "bitcoin" }, "paymentMethod"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(MockRepository)
				svc := NewService(repo)

				params := validParams()
				tc.mutate(&params)

				_, err := svc.CreateOrder(ctx, params)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.field, vErr.Field)
				repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("InsufficientStockPassthrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := validParams()
		repo.On("CreateOrder", ctx, params).
			Return(nil, &InsufficientStockError{ProductID: 7, ProductName: "Organic Bananas", Requested: 2, Available: 1})

		_, err := svc.CreateOrder(ctx, params)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Organic Bananas", stockErr.ProductName)
	})
}

func TestService_GetUserOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrdersByUser", ctx, int64(1)).Return([]*Order{{ID: 100}}, nil)

		orders, err := svc.GetUserOrders(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrdersByUser", ctx, int64(1)).Return(nil, nil)

		orders, err := svc.GetUserOrders(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("GuestRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.GetUserOrders(ctx, 0)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", ctx, int64(100)).Return(&Order{ID: 100, Status: StatusPending}, nil)
		repo.On("UpdateOrderStatus", ctx, int64(100), StatusShipped).Return(nil)

		o, err := svc.UpdateOrderStatus(ctx, 100, StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, StatusShipped, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.UpdateOrderStatus(ctx, 100, "refunded")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TerminalOrderImmutable", func(t *testing.T) {
		for _, st := range []Status{StatusDelivered, StatusCancelled} {
			repo := new(MockRepository)
			svc := NewService(repo)

			repo.On("GetOrderByID", ctx, int64(100)).Return(&Order{ID: 100, Status: st}, nil)

			_, err := svc.UpdateOrderStatus(ctx, 100, StatusProcessing)
			assert.ErrorIs(t, err, ErrOrderFinal)
			repo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", ctx, int64(999)).Return(nil, ErrOrderNotFound)

		_, err := svc.UpdateOrderStatus(ctx, 999, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
