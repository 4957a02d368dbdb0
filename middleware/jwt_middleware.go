package middleware

import (
	"strings"

	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Protected guards a route group with JWT bearer authentication. The
// authenticated employee is stored in c.Locals("employee").
func Protected(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}

		claims, err := utils.ParseJWTToken(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		var employee models.Employee
		if err := db.First(&employee, claims.EmpID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Employee not found",
			})
		}

		c.Locals("employee", &employee)
		return c.Next()
	}
}
