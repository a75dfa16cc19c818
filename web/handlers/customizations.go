package handlers

import (
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/fiber/v2"
)

type customizationRequest struct {
	JerseyID       *uint  `json:"jersey_id"`
	JerseyType     string `json:"jersey_type" validate:"omitempty,oneof=custom existing"`
	Name           string `json:"name" validate:"required,max=100"`
	Number         string `json:"number" validate:"required,max=2"`
	Design         string `json:"design" validate:"required"`
	PrimaryColor   string `json:"primary_color" validate:"max=50"`
	SecondaryColor string `json:"secondary_color" validate:"max=50"`
	Size           string `json:"size" validate:"omitempty,oneof=XS S M L XL XXL XXXL"`
	Quantity       int    `json:"quantity" validate:"omitempty,min=1"`
}

// CustomizationCreate saves a jersey customization for the current user
func CustomizationCreate(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	var req customizationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	jerseyType := models.JerseyType(req.JerseyType)
	if jerseyType == "" {
		jerseyType = models.JerseyExisting
	}
	if jerseyType == models.JerseyExisting {
		if req.JerseyID == nil {
			return fail(c, fiber.StatusBadRequest, "jersey_id is required for existing jerseys")
		}
		var jersey models.Jersey
		if err := db.First(&jersey, *req.JerseyID).Error; err != nil {
			return dbError(c, err, "Jersey not found")
		}
	}

	custom := models.Customization{
		UserID:         user.ID,
		JerseyID:       req.JerseyID,
		JerseyType:     jerseyType,
		Name:           req.Name,
		Number:         req.Number,
		Design:         req.Design,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Size:           req.Size,
		Quantity:       req.Quantity,
	}
	if custom.Size == "" {
		custom.Size = "M"
	}
	if custom.Quantity == 0 {
		custom.Quantity = 1
	}

	if err := db.Create(&custom).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, custom, "Customization saved successfully")
}

// CustomizationList returns the current user's customizations
func CustomizationList(c *fiber.Ctx) error {
	db := database.GetDB()
	user := middleware.CurrentUser(c)

	var customizations []models.Customization
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&customizations).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, customizations, "")
}
