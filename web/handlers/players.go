package handlers

import (
	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
)

// PlayerList returns all players, optionally filtered by team
func PlayerList(c *fiber.Ctx) error {
	db := database.GetDB()

	var players []models.Player
	query := db.Preload("Team").Order("name")
	if teamID := c.QueryInt("team", 0); teamID > 0 {
		query = query.Where("team_id = ?", teamID)
	}
	if err := query.Find(&players).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, players, "")
}

// PlayerDetail returns one player
func PlayerDetail(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid player ID")
	}

	var player models.Player
	if err := db.Preload("Team").First(&player, id).Error; err != nil {
		return dbError(c, err, "Player not found")
	}
	return respond(c, fiber.StatusOK, player, "")
}

type playerRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	TeamID uint   `json:"team_id" validate:"required"`
}

// PlayerCreate adds a player (admin)
func PlayerCreate(c *fiber.Ctx) error {
	db := database.GetDB()

	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	var team models.Team
	if err := db.First(&team, req.TeamID).Error; err != nil {
		return dbError(c, err, "Team not found")
	}

	player := models.Player{Name: req.Name, TeamID: req.TeamID}
	if err := db.Create(&player).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusCreated, player, "Player created")
}

// PlayerUpdate edits a player (admin)
func PlayerUpdate(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid player ID")
	}

	var player models.Player
	if err := db.First(&player, id).Error; err != nil {
		return dbError(c, err, "Player not found")
	}

	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	player.Name = req.Name
	player.TeamID = req.TeamID
	if err := db.Save(&player).Error; err != nil {
		return dbError(c, err, "")
	}
	return respond(c, fiber.StatusOK, player, "Player updated")
}

// PlayerDelete removes a player (admin)
func PlayerDelete(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid player ID")
	}

	res := db.Delete(&models.Player{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Player not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
