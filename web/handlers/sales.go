package handlers

import (
	"time"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ActiveSales returns the sales currently live, in precedence order
func ActiveSales(c *fiber.Ctx) error {
	sales, err := loadActiveSales(database.GetDB(), time.Now())
	if err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, sales, "")
}

// SaleList returns all sales for the admin screen
func SaleList(c *fiber.Ctx) error {
	db := database.GetDB()

	var sales []models.Sale
	if err := db.Order("id").Find(&sales).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, sales, "")
}

type saleRequest struct {
	SaleType      string          `json:"sale_type" validate:"required,oneof=PLAYER TEAM LEAGUE ALL"`
	TargetValue   string          `json:"target_value"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=FLAT PERCENTAGE"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"required"`
	StartDate     time.Time       `json:"start_date" validate:"required"`
	EndDate       time.Time       `json:"end_date" validate:"required"`
	IsActive      *bool           `json:"is_active"`
}

func (r *saleRequest) check() string {
	if r.DiscountValue.IsNegative() {
		return "Discount value must not be negative"
	}
	if r.DiscountType == string(models.DiscountPercentage) &&
		r.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return "Percentage discount cannot exceed 100"
	}
	if r.EndDate.Before(r.StartDate) {
		return "End date must not precede start date"
	}
	if models.SaleType(r.SaleType) != models.SaleAll && r.TargetValue == "" {
		return "Target value is required for this sale type"
	}
	return ""
}

func (r *saleRequest) apply(sale *models.Sale) {
	sale.SaleType = models.SaleType(r.SaleType)
	sale.TargetValue = r.TargetValue
	sale.DiscountType = models.DiscountType(r.DiscountType)
	sale.DiscountValue = r.DiscountValue
	sale.StartDate = r.StartDate
	sale.EndDate = r.EndDate
	if r.IsActive != nil {
		sale.IsActive = *r.IsActive
	} else {
		sale.IsActive = true
	}
}

// SaleCreate adds a sale (admin)
func SaleCreate(c *fiber.Ctx) error {
	db := database.GetDB()

	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}
	if msg := req.check(); msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}

	var sale models.Sale
	req.apply(&sale)
	if err := db.Create(&sale).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, sale, "Sale created")
}

// SaleUpdate edits a sale (admin)
func SaleUpdate(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}

	var sale models.Sale
	if err := db.First(&sale, id).Error; err != nil {
		return dbError(c, err, "Sale not found")
	}

	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}
	if msg := req.check(); msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}

	req.apply(&sale)
	if err := db.Save(&sale).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, sale, "Sale updated")
}

// SaleDelete removes a sale (admin)
func SaleDelete(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}

	res := db.Delete(&models.Sale{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Sale not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaleToggle flips a sale's active flag (admin)
func SaleToggle(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}

	var sale models.Sale
	if err := db.First(&sale, id).Error; err != nil {
		return dbError(c, err, "Sale not found")
	}

	sale.IsActive = !sale.IsActive
	if err := db.Save(&sale).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, sale, "Sale updated")
}
