package order

import (
	"context"
	"database/sql"

	"freshcart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, params CreateParams) (*Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]*Order, error)
	GetAllOrders(ctx context.Context) ([]*Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists the order and decrements stock in one
// transaction. Any failure, including an insufficient-stock guard on a
// single line, rolls back everything: no partial decrements, no
// orphaned order row.
func (r *repository) CreateOrder(ctx context.Context, params CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("user_id", params.UserID),
		zap.Int("item_count", len(params.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Lock and validate every referenced product before mutating.
	for _, item := range params.Items {
		if item.ProductID == nil {
			continue
		}

		var name string
		var stock int
		err := tx.QueryRowContext(ctx, `
			SELECT name, stock FROM products WHERE id = $1 FOR UPDATE
		`, *item.ProductID).Scan(&name, &stock)
		if err == sql.ErrNoRows {
			return nil, &ProductNotFoundError{ProductID: *item.ProductID}
		}
		if err != nil {
			return nil, err
		}

		if stock < item.Quantity {
			log.Warn("insufficient stock",
				zap.Int64("product_id", *item.ProductID),
				zap.Int("requested", item.Quantity),
				zap.Int("available", stock),
			)
			return nil, &InsufficientStockError{
				ProductID:   *item.ProductID,
				ProductName: name,
				Requested:   item.Quantity,
				Available:   stock,
			}
		}
	}

	// 2. Insert order
	o := &Order{
		UserID:          params.UserID,
		ShippingAddress: params.ShippingAddress,
		TotalAmount:     params.TotalAmount,
		PaymentMethod:   params.PaymentMethod,
		PaymentID:       params.PaymentID,
		Status:          StatusPending,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total_amount, payment_method, payment_id, status,
			shipping_full_name, shipping_address_line1, shipping_address_line2,
			shipping_city, shipping_state, shipping_pincode, shipping_phone
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`,
		o.UserID, o.TotalAmount, o.PaymentMethod, o.PaymentID, o.Status,
		o.ShippingAddress.FullName, o.ShippingAddress.AddressLine1, o.ShippingAddress.AddressLine2,
		o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.Pincode, o.ShippingAddress.Phone,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	// 3. Insert item snapshots + guarded stock decrement
	for _, item := range params.Items {
		var itemID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, price, image)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, o.ID, item.ProductID, item.Name, item.Quantity, item.Price, item.Image).Scan(&itemID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}

		o.Items = append(o.Items, Item{
			ID:        itemID,
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})

		if item.ProductID == nil {
			continue
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, *item.ProductID)
		if err != nil {
			return nil, err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		// Unreachable while the rows stay locked, but the guard keeps
		// oversell structurally impossible.
		if affected == 0 {
			return nil, &InsufficientStockError{
				ProductID: *item.ProductID,
				Requested: item.Quantity,
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created", zap.Int64("order_id", o.ID))
	return o, nil
}

const orderColumns = `
	o.id, o.user_id, o.total_amount, o.payment_method, o.payment_id, o.status,
	o.shipping_full_name, o.shipping_address_line1, o.shipping_address_line2,
	o.shipping_city, o.shipping_state, o.shipping_pincode, o.shipping_phone,
	o.created_at, o.updated_at
`

func scanOrder(rows *sql.Rows, withUser bool) (*Order, error) {
	var o Order
	var paymentID sql.NullString

	dest := []interface{}{
		&o.ID, &o.UserID, &o.TotalAmount, &o.PaymentMethod, &paymentID, &o.Status,
		&o.ShippingAddress.FullName, &o.ShippingAddress.AddressLine1, &o.ShippingAddress.AddressLine2,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.Pincode, &o.ShippingAddress.Phone,
		&o.CreatedAt, &o.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &o.UserName, &o.UserEmail)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	o.PaymentID = paymentID.String
	return &o, nil
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID int64) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows, false)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetAllOrders(ctx context.Context) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows, true)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads line items for a batch of orders in one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, quantity, price, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Name, &item.Quantity, &item.Price, &item.Image,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrOrderNotFound
	}

	o, err := scanOrder(rows, false)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
