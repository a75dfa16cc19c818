package handlers

import (
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
)

// TeamList returns all teams
func TeamList(c *fiber.Ctx) error {
	db := database.GetDB()

	var teams []models.Team
	query := db.Order("name")
	if league := c.Query("league"); league != "" {
		query = query.Where("league = ?", league)
	}
	if err := query.Find(&teams).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, teams, "")
}

// TeamDetail returns one team
func TeamDetail(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid team ID")
	}

	var team models.Team
	if err := db.First(&team, id).Error; err != nil {
		return dbError(c, err, "Team not found")
	}
	return respond(c, fiber.StatusOK, team, "")
}

type teamRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	League string `json:"league" validate:"required,max=100"`
	Logo   string `json:"logo"`
}

// TeamCreate adds a team (admin)
func TeamCreate(c *fiber.Ctx) error {
	db := database.GetDB()

	var req teamRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	team := models.Team{Name: req.Name, League: req.League, Logo: req.Logo}
	if err := db.Create(&team).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, team, "Team created")
}

// TeamUpdate edits a team (admin)
func TeamUpdate(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid team ID")
	}

	var team models.Team
	if err := db.First(&team, id).Error; err != nil {
		return dbError(c, err, "Team not found")
	}

	var req teamRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	team.Name = req.Name
	team.League = req.League
	team.Logo = req.Logo
	if err := db.Save(&team).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, team, "Team updated")
}

// TeamDelete removes a team (admin)
func TeamDelete(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid team ID")
	}

	res := db.Delete(&models.Team{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Team not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
