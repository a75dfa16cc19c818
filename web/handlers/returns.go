package handlers

import (
	"strings"
	"time"

	"github.com/CaptnR/football-jersey-store/cache"
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/events"
	"github.com/CaptnR/football-jersey-store/metrics"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type returnRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RequestReturn opens a return for a delivered order. The return row and
// the order's flip to return_requested commit together.
func RequestReturn(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var req returnRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fail(c, fiber.StatusBadRequest, models.ErrReturnReasonEmpty.Error())
	}

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		return dbError(c, err, "Order not found")
	}
	if order.UserID != user.ID {
		return fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}

	if err := order.ReturnEligible(time.Now()); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var ret models.Return
	err = db.Transaction(func(tx *gorm.DB) error {
		ret = models.Return{
			OrderID: order.ID,
			UserID:  user.ID,
			Reason:  strings.TrimSpace(req.Reason),
			Status:  models.ReturnPending,
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update("status", models.OrderReturnRequested).Error
	})
	if err != nil {
		return dbError(c, err, "")
	}

	metrics.ReturnsRequested.Inc()
	cache.Invalidate(c.Context(), dashboardCacheKey)
	events.Publish(c.Context(), events.ReturnRequested, fiber.Map{
		"return_id": ret.ID,
		"order_id":  order.ID,
		"user_id":   user.ID,
	})

	return respond(c, fiber.StatusCreated, ret, "Return requested")
}

// PendingReturns lists returns awaiting a decision (admin)
func PendingReturns(c *fiber.Ctx) error {
	db := database.GetDB()

	var returns []models.Return
	if err := db.Preload("Order").Preload("User").
		Where("status = ?", models.ReturnPending).
		Order("created_at").
		Find(&returns).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, returns, "")
}

type resolveReturnRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// ResolveReturn approves or rejects a pending return (admin). The return
// status and the mirrored order status commit together or not at all.
func ResolveReturn(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid return ID")
	}

	var req resolveReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	var ret models.Return
	if err := db.First(&ret, id).Error; err != nil {
		return dbError(c, err, "Return not found")
	}
	if ret.Status != models.ReturnPending {
		return fail(c, fiber.StatusConflict, "Return has already been resolved")
	}

	var order models.Order
	if err := db.First(&order, ret.OrderID).Error; err != nil {
		return dbError(c, err, "Order not found")
	}

	returnStatus := models.ReturnApproved
	orderStatus := models.OrderReturnApproved
	if req.Action == "reject" {
		returnStatus = models.ReturnRejected
		orderStatus = models.OrderReturnRejected
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ret).Update("status", returnStatus).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update("status", orderStatus).Error
	})
	if err != nil {
		return dbError(c, err, "")
	}

	cache.Invalidate(c.Context(), dashboardCacheKey)
	events.Publish(c.Context(), events.ReturnResolved, fiber.Map{
		"return_id": ret.ID,
		"order_id":  order.ID,
		"action":    req.Action,
	})

	return respond(c, fiber.StatusOK, fiber.Map{
		"return_status": returnStatus,
		"order_status":  orderStatus,
	}, "Return "+req.Action+"d")
}
