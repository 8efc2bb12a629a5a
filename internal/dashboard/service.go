package dashboard

import (
	"context"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

const recentProductsLimit = 5

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetStats assembles the admin dashboard summary in one pass.
func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetStats"),
	)

	stats := &Stats{}
	var err error

	if stats.TotalOrders, err = s.repo.CountOrders(ctx); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, err
	}
	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.repo.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.repo.OrdersByStatus(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.RevenueSince(ctx, "month", 0)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.RevenueSince(ctx, "month", 1)
	if err != nil {
		return nil, err
	}
	stats.MonthRevenue = current
	stats.RevenueGrowthPct = growthPct(current, previous)

	if stats.LowStockProducts, err = s.repo.LowStockProducts(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockProducts == nil {
		stats.LowStockProducts = []LowStockProduct{}
	}

	if stats.RecentProducts, err = s.repo.RecentProducts(ctx, recentProductsLimit); err != nil {
		return nil, err
	}
	if stats.RecentProducts == nil {
		stats.RecentProducts = []RecentProduct{}
	}

	return stats, nil
}

// growthPct compares this month against the previous one. A previous
// month with no revenue reads as 100% growth when anything was sold.
func growthPct(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
