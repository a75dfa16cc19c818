package handlers

import (
	"errors"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/metrics"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewList returns all reviews for a jersey with reviewer names
func ReviewList(c *fiber.Ctx) error {
	db := database.GetDB()

	jerseyID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	var reviews []models.Review
	if err := db.Preload("User").
		Where("jersey_id = ?", jerseyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, reviews, "")
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewCreate publishes a review. The caller must have bought the jersey
// and must not have reviewed it before; the cached average updates in the
// same transaction as the insert.
func ReviewCreate(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	jerseyID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.ValidateRating(req.Rating); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	// Purchase eligibility: at least one item for this jersey inside an
	// order in the purchased set.
	var purchases int64
	if err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.jersey_id = ? AND orders.user_id = ? AND orders.status IN ?",
			jerseyID, user.ID, models.ReviewEligibleStatuses).
		Count(&purchases).Error; err != nil {
		return dbError(c, err, "")
	}
	if purchases == 0 {
		return fail(c, fiber.StatusForbidden, "You can only review jerseys you have purchased")
	}

	// Checked up front for a clean conflict message; the unique index
	// still catches the loser of a concurrent double submit.
	var existing models.Review
	err = db.Where("user_id = ? AND jersey_id = ?", user.ID, jerseyID).First(&existing).Error
	if err == nil {
		return fail(c, fiber.StatusConflict, "You have already reviewed this jersey")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dbError(c, err, "")
	}

	review := models.Review{
		UserID:   user.ID,
		JerseyID: uint(jerseyID),
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return models.RecalculateAverageRating(tx, uint(jerseyID))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, fiber.StatusConflict, "You have already reviewed this jersey")
		}
		return dbError(c, err, "")
	}

	metrics.ReviewsCreated.Inc()
	return respond(c, fiber.StatusCreated, review, "Review published")
}

// ReviewUpdate edits the caller's review and marks it edited
func ReviewUpdate(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	jerseyID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}
	reviewID, err := c.ParamsInt("reviewID")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.ValidateRating(req.Rating); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var review models.Review
	if err := db.Where("id = ? AND jersey_id = ?", reviewID, jerseyID).
		First(&review).Error; err != nil {
		return dbError(c, err, "Review not found")
	}
	if review.UserID != user.ID {
		return fail(c, fiber.StatusForbidden, "You can only edit your own review")
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.IsEdited = true
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return models.RecalculateAverageRating(tx, review.JerseyID)
	})
	if err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, review, "Review updated")
}

// ReviewDelete removes a review; owners and staff only
func ReviewDelete(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	jerseyID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid jersey ID")
	}
	reviewID, err := c.ParamsInt("reviewID")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review models.Review
	if err := db.Where("id = ? AND jersey_id = ?", reviewID, jerseyID).
		First(&review).Error; err != nil {
		return dbError(c, err, "Review not found")
	}
	if review.UserID != user.ID && !user.IsStaff {
		return fail(c, fiber.StatusForbidden, "You can only delete your own review")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return models.RecalculateAverageRating(tx, review.JerseyID)
	})
	if err != nil {
		return dbError(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
