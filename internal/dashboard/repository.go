package dashboard

import (
	"context"
	"database/sql"
)

const lowStockThreshold = 10

type Repository interface {
	CountOrders(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	OrdersByStatus(ctx context.Context) (map[string]int, error)
	RevenueSince(ctx context.Context, truncTo string, monthsBack int) (float64, error)
	LowStockProducts(ctx context.Context) ([]LowStockProduct, error)
	RecentProducts(ctx context.Context, limit int) ([]RecentProduct, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *repository) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products WHERE is_active = TRUE
	`).Scan(&n)
	return n, err
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE role = 'user'
	`).Scan(&n)
	return n, err
}

func (r *repository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'
	`).Scan(&total)
	return total, err
}

func (r *repository) OrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM orders GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// RevenueSince sums non-cancelled order totals inside a single
// calendar month, monthsBack months before the current one.
func (r *repository) RevenueSince(ctx context.Context, truncTo string, monthsBack int) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status <> 'cancelled'
		  AND date_trunc($1, created_at) = date_trunc($1, NOW()) - ($2 * INTERVAL '1 month')
	`, truncTo, monthsBack).Scan(&total)
	return total, err
}

func (r *repository) LowStockProducts(ctx context.Context) ([]LowStockProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, stock
		FROM products
		WHERE is_active = TRUE AND stock < $1
		ORDER BY stock ASC, name ASC
	`, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []LowStockProduct
	for rows.Next() {
		var p LowStockProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) RecentProducts(ctx context.Context, limit int) ([]RecentProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []RecentProduct
	for rows.Next() {
		var p RecentProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
