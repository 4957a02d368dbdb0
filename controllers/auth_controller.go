package controllers

import (
	"errors"
	"log"

	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewAuthController(db *gorm.DB, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Role    models.Role `json:"role"`
	EmpID   uint        `json:"empId"`
	Token   string      `json:"token"`
}

// Login checks credentials with a plain comparison against the stored
// password, matching the legacy system this module replaces.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var employee models.Employee
	if err := ac.DB.Where("email = ?", req.Email).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up employee",
		})
	}

	if employee.Password != req.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := utils.GenerateJWTToken(&employee)
	if err != nil {
		ac.logger.Printf("failed to generate token for employee %d: %v", employee.EmpID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(LoginResponse{
		Message: "Login successful",
		Role:    employee.Role,
		EmpID:   employee.EmpID,
		Token:   token,
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logout successful"})
}
