package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// respond writes the standard response envelope used across the API.
func respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": status < 400,
		"message": message,
		"data":    data,
		"errors":  nil,
	})
}

// fail writes an error in the same envelope.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
		"errors":  message,
	})
}

// failValidation reports struct-tag validation errors field by field.
func failValidation(c *fiber.Ctx, err error) error {
	fields := fiber.Map{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid data provided",
		"data":    nil,
		"errors":  fields,
	})
}

// dbError maps a persistence error to a response: missing rows become 404,
// anything else is logged and surfaced as a generic 500.
func dbError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusNotFound, notFoundMsg)
	}
	log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, "Something went wrong")
}
