package handlers

import (
	"errors"
	"strings"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a user and issues a token in one step.
func Signup(c *fiber.Ctx) error {
	db := database.GetDB()

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	var existing models.User
	err := db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return fail(c, fiber.StatusConflict, "Username is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dbError(c, err, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dbError(c, err, "")
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return dbError(c, err, "")
	}

	token, err := issueToken(db, &user)
	if err != nil {
		return dbError(c, err, "")
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"token":    token.Key,
		"username": user.Username,
		"is_staff": user.IsStaff,
	}, "Account created")
}

// Login verifies credentials and issues a fresh token.
func Login(c *fiber.Ctx) error {
	db := database.GetDB()

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return failValidation(c, err)
	}

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return dbError(c, err, "")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := issueToken(db, &user)
	if err != nil {
		return dbError(c, err, "")
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"token":    token.Key,
		"username": user.Username,
		"is_staff": user.IsStaff,
	}, "Logged in")
}

func issueToken(db *gorm.DB, user *models.User) (*models.AuthToken, error) {
	token := models.AuthToken{
		Key:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID: user.ID,
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
