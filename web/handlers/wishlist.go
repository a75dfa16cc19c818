package handlers

import (
	"errors"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WishlistList returns the current user's wishlist with jerseys preloaded
func WishlistList(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	var entries []models.Wishlist
	if err := db.Preload("Jersey.Player.Team").Preload("Jersey.Images").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, entries, "")
}

type wishlistRequest struct {
	JerseyID uint `json:"jersey_id" validate:"required"`
}

// WishlistAdd puts a jersey on the wishlist. Adding a jersey that is
// already listed succeeds without creating a second row.
func WishlistAdd(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	var jersey models.Jersey
	if err := db.First(&jersey, req.JerseyID).Error; err != nil {
		return dbError(c, err, "Jersey not found")
	}

	var existing models.Wishlist
	err := db.Where("user_id = ? AND jersey_id = ?", user.ID, req.JerseyID).
		First(&existing).Error
	if err == nil {
		return respond(c, fiber.StatusOK, existing, "Already in wishlist")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dbError(c, err, "")
	}

	entry := models.Wishlist{UserID: user.ID, JerseyID: req.JerseyID}
	if err := db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against another add of the same pair; the row
			// that won carries the real ID, so hand that one back.
			if err := db.Where("user_id = ? AND jersey_id = ?", user.ID, req.JerseyID).
				First(&entry).Error; err != nil {
				return dbError(c, err, "")
			}
			return respond(c, fiber.StatusOK, entry, "Already in wishlist")
		}
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, entry, "Added to wishlist")
}

// WishlistRemove drops a jersey from the wishlist
func WishlistRemove(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	jerseyID, err := c.ParamsInt("jerseyID")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	res := db.Where("user_id = ? AND jersey_id = ?", user.ID, jerseyID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return dbError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Jersey is not in your wishlist")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
