package handlers

import (
	"time"

	"github.com/CaptnR/football-jersey-store/cache"
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
)

// dashboardCacheKey is the Redis key the dashboard payload is memoized
// under; order and return mutations invalidate it.
const dashboardCacheKey = "dashboard:stats"

const dashboardCacheTTL = time.Minute

type dashboardStats struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	PendingReturns int64            `json:"pending_returns"`
	LowStockCount  int64            `json:"low_stock_count"`
	LowStock       []models.Jersey  `json:"low_stock_jerseys"`
	RecentOrders   []models.Order   `json:"recent_orders"`
}

// Dashboard returns the admin overview. Served from Redis when a fresh
// cached copy exists, recomputed from the database otherwise.
func Dashboard(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var stats dashboardStats
	if cache.GetJSON(ctx, dashboardCacheKey, &stats) {
		return respond(c, fiber.StatusOK, stats, "")
	}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return dbError(c, err, "")
	}

	if err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return dbError(c, err, "")
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return dbError(c, err, "")
	}
	stats.OrdersByStatus = make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	if err := db.Model(&models.Return{}).
		Where("status = ?", models.ReturnPending).
		Count(&stats.PendingReturns).Error; err != nil {
		return dbError(c, err, "")
	}

	if err := db.Preload("Player").
		Where("stock <= low_stock_threshold").
		Order("stock").
		Find(&stats.LowStock).Error; err != nil {
		return dbError(c, err, "")
	}
	stats.LowStockCount = int64(len(stats.LowStock))

	if err := db.Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error; err != nil {
		return dbError(c, err, "")
	}

	cache.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL)
	return respond(c, fiber.StatusOK, stats, "")
}
