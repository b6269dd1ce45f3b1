// utils/response.go - JSON envelope helpers for Fiber
package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Success sends {"success": true, "data": data}.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Created sends a 201 with the success envelope.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Error sends {"success": false, "error": message} with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
