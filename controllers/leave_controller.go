package controllers

import (
	"log"
	"time"

	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaveController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewLeaveController(db *gorm.DB, logger *log.Logger) *LeaveController {
	return &LeaveController{DB: db, logger: logger}
}

type LeaveRequest struct {
	EmpID       uint   `json:"empId" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	LeaveType   string `json:"leaveType" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type LeaveStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create files a leave request. The day count and the applied-at date are
// always computed server-side, never taken from the caller.
func (lc *LeaveController) Create(c *fiber.Ctx) error {
	var req LeaveRequest
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

	leaveType, err := models.ParseLeaveType(req.LeaveType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var employee models.Employee
	if err := lc.DB.First(&employee, req.EmpID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if endDate.Before(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "End date cannot be before start date",
		})
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1

	leave := models.EmployeeLeave{
		EmpID:       req.EmpID,
		StartDate:   startDate,
		EndDate:     endDate,
		LeaveType:   leaveType,
		Status:      models.LeavePending,
		Days:        days,
		Description: req.Description,
		AppliedAt:   utils.Today(time.Local),
	}

	if err := lc.DB.Create(&leave).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create leave",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(leave)
}

func (lc *LeaveController) List(c *fiber.Ctx) error {
	var leaves []models.EmployeeLeave
	if err := lc.DB.Preload("Employee").Find(&leaves).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list leaves",
		})
	}
	return c.JSON(leaves)
}

// UpdateStatus changes only the status of a leave request.
func (lc *LeaveController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid leave id",
		})
	}

	var leave models.EmployeeLeave
	if err := lc.DB.First(&leave, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Leave not found",
		})
	}

	var req LeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status, err := models.ParseLeaveStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	leave.Status = status
	if err := lc.DB.Save(&leave).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update leave",
		})
	}
	return c.JSON(leave)
}

func (lc *LeaveController) ByStatus(c *fiber.Ctx) error {
	status, err := models.ParseLeaveStatus(c.Params("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var leaves []models.EmployeeLeave
	if err := lc.DB.Preload("Employee").Where("status = ?", status).Find(&leaves).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list leaves",
		})
	}
	return c.JSON(leaves)
}
