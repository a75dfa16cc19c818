package handlers

import (
	"errors"
	"time"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/events"
	"github.com/CaptnR/football-jersey-store/metrics"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutItem struct {
	JerseyID   *uint            `json:"jersey_id"`
	Quantity   int              `json:"quantity" validate:"required,min=1"`
	Size       string           `json:"size" validate:"omitempty,oneof=XS S M L XL XXL XXXL"`
	Type       string           `json:"type" validate:"omitempty,oneof=regular custom"`
	PlayerName string           `json:"player_name"`
	Price      *decimal.Decimal `json:"price"`
}

// checkoutRequest carries no required tag on TotalPrice: a cart of fully
// discounted items legitimately totals 0.00.
type checkoutRequest struct {
	Items      []checkoutItem  `json:"items" validate:"required,min=1,dive"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

var (
	errJerseyMissing     = errors.New("cart item does not reference a jersey")
	errInsufficientStock = errors.New("not enough stock for a cart item")
	errCustomPrice       = errors.New("custom item is missing a price")
)

// Checkout turns the cart into one order with immutable price snapshots.
// The order and every item are created in a single transaction; if any item
// fails, nothing is persisted. Each regular item's price is frozen at the
// effective sale price at this moment, and its stock is reserved with a
// compare-and-decrement so the jersey count never goes negative.
func Checkout(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)
	now := time.Now()

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		metrics.CheckoutFailures.WithLabelValues("validation").Inc()
		return failValidation(c, err)
	}
	if req.TotalPrice.IsNegative() {
		metrics.CheckoutFailures.WithLabelValues("validation").Inc()
		return fail(c, fiber.StatusBadRequest, "Total price must not be negative")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:     user.ID,
			Status:     models.OrderProcessing,
			TotalPrice: req.TotalPrice,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		sales, err := loadActiveSales(tx, now)
		if err != nil {
			return err
		}

		for _, ci := range req.Items {
			item, err := buildOrderItem(tx, order.ID, ci, sales, now)
			if err != nil {
				return err
			}
			if err := item.Validate(); err != nil {
				return err
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			metrics.CheckoutFailures.WithLabelValues("jersey_not_found").Inc()
			return fail(c, fiber.StatusNotFound, "Jersey in cart no longer exists")
		case errors.Is(err, errInsufficientStock):
			metrics.CheckoutFailures.WithLabelValues("out_of_stock").Inc()
			return fail(c, fiber.StatusBadRequest, "Not enough stock for an item in your cart")
		case errors.Is(err, errJerseyMissing), errors.Is(err, errCustomPrice):
			metrics.CheckoutFailures.WithLabelValues("validation").Inc()
			return fail(c, fiber.StatusBadRequest, err.Error())
		default:
			metrics.CheckoutFailures.WithLabelValues("internal").Inc()
			return dbError(c, err, "")
		}
	}

	metrics.OrdersCreated.Inc()
	events.Publish(c.Context(), events.OrderCreated, fiber.Map{
		"order_id":    order.ID,
		"user_id":     user.ID,
		"total_price": order.TotalPrice,
		"items":       len(req.Items),
	})

	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, order, "Order placed")
}

// buildOrderItem resolves one cart entry into a persisted-ready item with
// its price snapshot taken.
func buildOrderItem(tx *gorm.DB, orderID uint, ci checkoutItem, sales []models.Sale, now time.Time) (*models.OrderItem, error) {
	size := ci.Size
	if size == "" {
		size = "M"
	}

	if ci.Type == string(models.ItemCustom) {
		if ci.Price == nil {
			return nil, errCustomPrice
		}
		return &models.OrderItem{
			OrderID:    orderID,
			Quantity:   ci.Quantity,
			Price:      *ci.Price,
			Size:       size,
			Type:       models.ItemCustom,
			PlayerName: ci.PlayerName,
		}, nil
	}

	if ci.JerseyID == nil {
		return nil, errJerseyMissing
	}

	var jersey models.Jersey
	if err := tx.Preload("Player.Team").First(&jersey, *ci.JerseyID).Error; err != nil {
		return nil, err
	}

	price := jersey.Price
	if salePrice, ok := models.ResolveSalePrice(&jersey, sales, now); ok {
		price = salePrice
	}

	// Reserve stock inside the transaction. The WHERE guard makes
	// concurrent checkouts race safely: the loser sees zero rows.
	res := tx.Model(&models.Jersey{}).
		Where("id = ? AND stock >= ?", jersey.ID, ci.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", ci.Quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errInsufficientStock
	}

	return &models.OrderItem{
		OrderID:    orderID,
		JerseyID:   ci.JerseyID,
		Quantity:   ci.Quantity,
		Price:      price,
		Size:       size,
		Type:       models.ItemRegular,
		PlayerName: jersey.Player.Name,
	}, nil
}
