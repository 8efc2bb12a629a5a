package order

import (
	"context"
	"testing"
	"time"

	"freshcart-be/internal/payment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		FullName:     "John Doe",
		AddressLine1: "42 Market Street",
		City:         "Mumbai",
		State:        "MH",
		Pincode:      "400001",
		Phone:        "9876543210",
	}
}

func TestRepository_CreateOrder(t *testing.T) {
	ctx := context.Background()
	productID := int64(7)

	params := CreateParams{
		UserID: 1,
		Items: []ItemInput{
			{ProductID: &productID, Name: "Organic Bananas", Quantity: 2, Price: 10, Image: "img.png"},
		},
		ShippingAddress: validAddress(),
		TotalAmount:     20,
		PaymentMethod:   payment.MethodCOD,
	}

	t.Run("Success decrements stock in the same tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT name, stock FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"name", "stock"}).AddRow("Organic Bananas", 5))
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(100, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(int64(100), &productID, "Organic Bananas", 2, 10.0, "img.png").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1, updated_at = NOW\(\)\s+WHERE id = \$2 AND stock >= \$1`).
			WithArgs(2, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		o, err := repo.CreateOrder(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, int64(100), o.ID)
		assert.Equal(t, StatusPending, o.Status)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Equal(t, 10.0, o.Items[0].Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStock rolls back before any write", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT name, stock FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"name", "stock"}).AddRow("Organic Bananas", 1))
		mock.ExpectRollback()

		_, err = repo.CreateOrder(ctx, params)
		require.Error(t, err)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Organic Bananas", stockErr.ProductName)
		assert.Equal(t, 2, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingProduct rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT name, stock FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"name", "stock"}))
		mock.ExpectRollback()

		_, err = repo.CreateOrder(ctx, params)

		var nfErr *ProductNotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, productID, nfErr.ProductID)
	})

	t.Run("UnreferencedItemSkipsStock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		now := time.Now()

		loose := params
		loose.Items = []ItemInput{{Name: "Gift Wrap", Quantity: 1, Price: 5}}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(101, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		o, err := repo.CreateOrder(ctx, loose)
		require.NoError(t, err)
		assert.Equal(t, int64(101), o.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetOrdersByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	orderRows := sqlmock.NewRows([]string{
		"id", "user_id", "total_amount", "payment_method", "payment_id", "status",
		"shipping_full_name", "shipping_address_line1", "shipping_address_line2",
		"shipping_city", "shipping_state", "shipping_pincode", "shipping_phone",
		"created_at", "updated_at",
	}).AddRow(100, 1, 20.0, "cod", nil, "pending",
		"John Doe", "42 Market Street", "", "Mumbai", "MH", "400001", "9876543210",
		now, now)

	mock.ExpectQuery(`SELECT(?s).+FROM orders o\s+WHERE o.user_id = \$1\s+ORDER BY o.created_at DESC`).
		WithArgs(int64(1)).
		WillReturnRows(orderRows)
	mock.ExpectQuery(`SELECT id, order_id, product_id, name, quantity, price, image\s+FROM order_items\s+WHERE order_id = ANY\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "quantity", "price", "image"}).
			AddRow(1, 100, 7, "Organic Bananas", 2, 10.0, "img.png"))

	orders, err := repo.GetOrdersByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Organic Bananas", orders[0].Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateOrderStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(StatusShipped, int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateOrderStatus(context.Background(), 100, StatusShipped))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(StatusShipped, int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateOrderStatus(context.Background(), 999, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
