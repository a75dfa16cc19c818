package handlers

import (
	"strings"
	"time"

	"github.com/CaptnR/football-jersey-store/config"
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// jerseyResponse decorates a catalog row with the computed fields the
// storefront renders: effective sale price, stock flags and the resolved
// primary image URL.
type jerseyResponse struct {
	models.Jersey
	SalePrice  *decimal.Decimal `json:"sale_price,omitempty"`
	OnSale     bool             `json:"on_sale"`
	IsLowStock bool             `json:"is_low_stock"`
	ImageURL   string           `json:"image_url,omitempty"`
}

func decorateJersey(j models.Jersey, sales []models.Sale, now time.Time) jerseyResponse {
	resp := jerseyResponse{
		Jersey:     j,
		IsLowStock: j.IsLowStock(),
	}
	if price, ok := models.ResolveSalePrice(&j, sales, now); ok {
		resp.SalePrice = &price
		resp.OnSale = true
	}
	if img := j.PrimaryImage(); img != nil {
		resp.ImageURL = mediaURL(img.Image)
	}
	return resp
}

// mediaURL resolves a stored image path against the media storage base URL.
func mediaURL(path string) string {
	base := config.Get().Media.BaseURL
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// loadActiveSales fetches sales live at now in id order. Query order is the
// precedence order of the promotion engine, so the ORDER BY matters.
func loadActiveSales(db *gorm.DB, now time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("id").
		Find(&sales).Error
	return sales, err
}

// JerseyList returns the catalog with optional filters
func JerseyList(c *fiber.Ctx) error {
	db := database.GetDB()
	now := time.Now()

	query := db.Model(&models.Jersey{}).
		Joins("JOIN players ON players.id = jerseys.player_id").
		Joins("JOIN teams ON teams.id = players.team_id").
		Preload("Player.Team").
		Preload("Images")

	if teamID := c.QueryInt("team", 0); teamID > 0 {
		query = query.Where("players.team_id = ?", teamID)
	}
	if playerID := c.QueryInt("player", 0); playerID > 0 {
		query = query.Where("jerseys.player_id = ?", playerID)
	}
	if league := c.Query("league"); league != "" {
		query = query.Where("teams.league = ?", league)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("players.name ILIKE ? OR teams.name ILIKE ?", pattern, pattern)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := decimal.NewFromString(minPrice); err == nil {
			query = query.Where("jerseys.price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := decimal.NewFromString(maxPrice); err == nil {
			query = query.Where("jerseys.price <= ?", v)
		}
	}

	var jerseys []models.Jersey
	if err := query.Order("jerseys.id").Find(&jerseys).Error; err != nil {
		return dbError(c, err, "")
	}

	sales, err := loadActiveSales(db, now)
	if err != nil {
		return dbError(c, err, "")
	}

	onSaleOnly := c.Query("on_sale") == "true"
	out := make([]jerseyResponse, 0, len(jerseys))
	for _, j := range jerseys {
		resp := decorateJersey(j, sales, now)
		if onSaleOnly && !resp.OnSale {
			continue
		}
		out = append(out, resp)
	}
	return respond(c, fiber.StatusOK, out, "")
}

// JerseyDetail returns one jersey with its images and sale price
func JerseyDetail(c *fiber.Ctx) error {
	db := database.GetDB()
	now := time.Now()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	var jersey models.Jersey
	if err := db.Preload("Player.Team").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	}).First(&jersey, id).Error; err != nil {
		return dbError(c, err, "Jersey not found")
	}

	sales, err := loadActiveSales(db, now)
	if err != nil {
		return dbError(c, err, "")
	}

	return respond(c, fiber.StatusOK, decorateJersey(jersey, sales, now), "")
}

type jerseyRequest struct {
	PlayerID          uint            `json:"player_id" validate:"required"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	Stock             int             `json:"stock" validate:"min=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"min=0"`
}

// JerseyCreate adds a jersey (admin)
func JerseyCreate(c *fiber.Ctx) error {
	db := database.GetDB()

	var req jerseyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}
	if req.Price.IsNegative() {
		return fail(c, fiber.StatusBadRequest, "Price must not be negative")
	}

	var player models.Player
	if err := db.First(&player, req.PlayerID).Error; err != nil {
		return dbError(c, err, "Player not found")
	}

	jersey := models.Jersey{
		PlayerID:          req.PlayerID,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := db.Create(&jersey).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, jersey, "Jersey created")
}

// JerseyUpdate edits a jersey (admin)
func JerseyUpdate(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	var jersey models.Jersey
	if err := db.First(&jersey, id).Error; err != nil {
		return dbError(c, err, "Jersey not found")
	}

	var req jerseyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}
	if req.Price.IsNegative() {
		return fail(c, fiber.StatusBadRequest, "Price must not be negative")
	}

	jersey.PlayerID = req.PlayerID
	jersey.Price = req.Price
	jersey.Stock = req.Stock
	jersey.LowStockThreshold = req.LowStockThreshold
	if err := db.Save(&jersey).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, jersey, "Jersey updated")
}

// JerseyDelete removes a jersey and its images (admin)
func JerseyDelete(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("jersey_id = ?", id).Delete(&models.JerseyImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Jersey{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return dbError(c, err, "Jersey not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// JerseyBulkDelete removes several jerseys atomically (admin). Either every
// listed jersey and its images go, or none do.
func JerseyBulkDelete(c *fiber.Ctx) error {
	db := database.GetDB()

	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("jersey_id IN ?", req.IDs).Delete(&models.JerseyImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", req.IDs).Delete(&models.Jersey{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(req.IDs)) {
			// Some listed ids no longer exist: abort the whole batch.
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return dbError(c, err, "One or more jerseys were not found")
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": len(req.IDs)}, "Jerseys deleted")
}

type stockRequest struct {
	Stock             *int `json:"stock"`
	LowStockThreshold *int `json:"low_stock_threshold"`
}

// JerseyUpdateStock adjusts stock levels (admin)
func JerseyUpdateStock(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	var jersey models.Jersey
	if err := db.First(&jersey, id).Error; err != nil {
		return dbError(c, err, "Jersey not found")
	}

	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Stock == nil && req.LowStockThreshold == nil {
		return fail(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return fail(c, fiber.StatusBadRequest, "Stock must not be negative")
		}
		jersey.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return fail(c, fiber.StatusBadRequest, "Threshold must not be negative")
		}
		jersey.LowStockThreshold = *req.LowStockThreshold
	}

	if err := db.Save(&jersey).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"id":                  jersey.ID,
		"stock":               jersey.Stock,
		"low_stock_threshold": jersey.LowStockThreshold,
		"is_low_stock":        jersey.IsLowStock(),
	}, "Stock updated")
}

// JerseySetPrimaryImage promotes one image and demotes the rest (admin)
func JerseySetPrimaryImage(c *fiber.Ctx) error {
	db := database.GetDB()

	jerseyID, err := c.ParamsInt("jerseyID")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}
	imageID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid image ID")
	}

	if err := models.SetPrimaryImage(db, uint(jerseyID), uint(imageID)); err != nil {
		return dbError(c, err, "Image not found")
	}
	return respond(c, fiber.StatusOK, nil, "Primary image updated")
}
