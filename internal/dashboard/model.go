package dashboard

import "time"

// LowStockProduct is a catalog entry running out of inventory.
type LowStockProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// RecentProduct is a freshly added catalog entry.
type RecentProduct struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the admin dashboard summary. Revenue excludes cancelled
// orders.
type Stats struct {
	TotalOrders      int               `json:"totalOrders"`
	TotalProducts    int               `json:"totalProducts"`
	TotalUsers       int               `json:"totalUsers"`
	TotalRevenue     float64           `json:"totalRevenue"`
	OrdersByStatus   map[string]int    `json:"ordersByStatus"`
	MonthRevenue     float64           `json:"monthRevenue"`
	RevenueGrowthPct float64           `json:"revenueGrowthPct"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
	RecentProducts   []RecentProduct   `json:"recentProducts"`
}
