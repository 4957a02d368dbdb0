package controllers

import (
	"errors"
	"log"
	"time"

	"ems/models"
	"ems/utils"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewEmployeeController(db *gorm.DB, logger *log.Logger) *EmployeeController {
	return &EmployeeController{DB: db, logger: logger}
}

type EmployeeRequest struct {
	Username    string `json:"username" validate:"required,max=50"`
	Password    string `json:"password" validate:"required,max=255"`
	Role        string `json:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
	Fname       string `json:"fname" validate:"required,max=50"`
	Lname       string `json:"lname" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	Dob         string `json:"dob"`
	Designation string `json:"designation" validate:"omitempty,max=100"`
}

func (ec *EmployeeController) Create(c *fiber.Ctx) error {
	var req EmployeeRequest
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

	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	var existing models.Employee
	if err := ec.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already in use.",
		})
	}
	if err := ec.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already in use.",
		})
	}

	var dob *time.Time
	if req.Dob != "" {
		parsed, err := utils.ParseDate(req.Dob)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		dob = &parsed
	}

	employee := models.Employee{
		Username:    req.Username,
		Password:    req.Password,
		Role:        models.Role(req.Role),
		Fname:       req.Fname,
		Lname:       req.Lname,
		Email:       req.Email,
		Phone:       req.Phone,
		Dob:         dob,
		Designation: req.Designation,
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create employee",
		})
	}

	ec.logger.Printf("employee %s created", employee.Username)
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (ec *EmployeeController) List(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := ec.DB.Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list employees",
		})
	}
	return c.JSON(employees)
}

func (ec *EmployeeController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}
	return c.JSON(employee)
}

func (ec *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	var req EmployeeRequest
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

	// The new email and username must not belong to a different employee
	var other models.Employee
	if err := ec.DB.Where("email = ? AND emp_id <> ?", req.Email, employee.EmpID).
		First(&other).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already in use.",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check email",
		})
	}
	if err := ec.DB.Where("username = ? AND emp_id <> ?", req.Username, employee.EmpID).
		First(&other).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already in use.",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check username",
		})
	}

	var dob *time.Time
	if req.Dob != "" {
		parsed, err := utils.ParseDate(req.Dob)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		dob = &parsed
	}

	employee.Username = req.Username
	employee.Password = req.Password
	employee.Role = models.Role(req.Role)
	employee.Fname = req.Fname
	employee.Lname = req.Lname
	employee.Email = req.Email
	employee.Phone = req.Phone
	employee.Dob = dob
	employee.Designation = req.Designation

	if err := ec.DB.Save(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update employee",
		})
	}
	return c.JSON(employee)
}

func (ec *EmployeeController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	if err := ec.DB.Delete(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete employee",
		})
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
