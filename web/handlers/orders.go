package handlers

import (
	"errors"

	"github.com/CaptnR/football-jersey-store/cache"
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/events"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
)

// MyOrders returns the current user's orders, newest first
func MyOrders(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	var orders []models.Order
	if err := db.Preload("Items").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, orders, "")
}

// OrderDetail returns one order; owners see their own, staff see any
func OrderDetail(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		return dbError(c, err, "Order not found")
	}
	if order.UserID != user.ID && !user.IsStaff {
		return fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}
	return respond(c, fiber.StatusOK, order, "")
}

// AdminOrderList returns all orders with an optional status filter (admin)
func AdminOrderList(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Preload("Items").Preload("User").Order("created_at DESC")
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, orders, "")
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus applies a direct status edit under the state machine
// rules. Owners may cancel early orders; staff may set any valid status.
// Delivered orders only move through the return flow.
func UpdateOrderStatus(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	target, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		return dbError(c, err, "Order not found")
	}
	if order.UserID != user.ID && !user.IsStaff {
		return fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}

	if err := models.CanTransition(order.Status, target, user.IsStaff); err != nil {
		switch {
		case errors.Is(err, models.ErrTransitionForbidden):
			return fail(c, fiber.StatusForbidden, err.Error())
		default:
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	previous := order.Status
	order.Status = target
	if err := db.Save(&order).Error; err != nil {
		return dbError(c, err, "")
	}

	cache.Invalidate(c.Context(), dashboardCacheKey)
	events.Publish(c.Context(), events.OrderStatusChanged, fiber.Map{
		"order_id": order.ID,
		"from":     previous,
		"to":       order.Status,
		"by_staff": user.IsStaff,
	})

	return respond(c, fiber.StatusOK, order, "Order status updated")
}
