package controllers

import (
	"errors"
	"log"
	"time"

	"ems/config"
	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB     *gorm.DB
	logger *log.Logger
	loc    *time.Location
}

func NewAttendanceController(db *gorm.DB, logger *log.Logger) *AttendanceController {
	loc, err := time.LoadLocation(config.AppConfig.ReminderZone)
	if err != nil {
		loc = time.Local
	}
	return &AttendanceController{DB: db, logger: logger, loc: loc}
}

type AttendanceRequest struct {
	EmpID         uint       `json:"empId" validate:"required"`
	Date          string     `json:"date"`
	Status        string     `json:"status" validate:"required"`
	LoggedInTime  *time.Time `json:"loggedInTime"`
	LoggedOutTime *time.Time `json:"loggedOutTime"`
}

type AttendanceUpdateRequest struct {
	Status        *string    `json:"status"`
	LoggedInTime  *time.Time `json:"loggedInTime"`
	LoggedOutTime *time.Time `json:"loggedOutTime"`
}

type AttendanceRow struct {
	AttID         uint                    `json:"attId"`
	EmpID         uint                    `json:"empId"`
	Fname         string                  `json:"fname"`
	Lname         string                  `json:"lname"`
	Date          string                  `json:"date"`
	Status        models.AttendanceStatus `json:"status"`
	Designation   string                  `json:"designation"`
	LoggedInTime  *time.Time              `json:"loggedInTime"`
	LoggedOutTime *time.Time              `json:"loggedOutTime"`
}

// Save marks attendance for an employee. At most one record exists per
// (employee, date); ABSENT always clears both logged times regardless of
// what was supplied with it.
func (atc *AttendanceController) Save(c *fiber.Ctx) error {
	var req AttendanceRequest
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

	status, err := models.ParseAttendanceStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var employee models.Employee
	if err := atc.DB.First(&employee, req.EmpID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	date := utils.Today(atc.loc)
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		date = parsed
	}

	var existing models.Attendance
	err = atc.DB.Where("emp_id = ? AND date = ?", req.EmpID, date).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Attendance already marked for today.",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing attendance",
		})
	}

	attendance := models.Attendance{
		EmpID:         req.EmpID,
		Date:          date,
		Status:        status,
		LoggedInTime:  req.LoggedInTime,
		LoggedOutTime: req.LoggedOutTime,
	}

	if attendance.Status == models.AttendanceAbsent {
		attendance.LoggedInTime = nil
		attendance.LoggedOutTime = nil
	}

	if err := atc.DB.Create(&attendance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save attendance",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(attendance)
}

// Update changes status and logged times. Times only apply while the record
// is PRESENT; switching to ABSENT wipes them.
func (atc *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("attId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance id",
		})
	}

	var attendance models.Attendance
	if err := atc.DB.First(&attendance, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attendance not found",
		})
	}

	var req AttendanceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Status != nil {
		status, err := models.ParseAttendanceStatus(*req.Status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		attendance.Status = status

		if status == models.AttendanceAbsent {
			attendance.LoggedInTime = nil
			attendance.LoggedOutTime = nil
		}
	}

	if attendance.Status == models.AttendancePresent {
		if req.LoggedInTime != nil {
			attendance.LoggedInTime = req.LoggedInTime
		}
		if req.LoggedOutTime != nil {
			attendance.LoggedOutTime = req.LoggedOutTime
		}
	}

	if err := atc.DB.Save(&attendance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update attendance",
		})
	}
	return c.JSON(attendance)
}

// Logout stamps the logged-out time on today's attendance record. Only one
// logout is allowed per day.
func (atc *AttendanceController) Logout(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	today := utils.Today(atc.loc)
	var attendance models.Attendance
	if err := atc.DB.Where("emp_id = ? AND date = ?", empID, today).First(&attendance).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No attendance found for today.",
		})
	}

	if attendance.LoggedOutTime != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Logout time already recorded for today.",
		})
	}

	now := time.Now()
	attendance.LoggedOutTime = &now
	if err := atc.DB.Save(&attendance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update attendance",
		})
	}
	return c.JSON(attendance)
}

func (atc *AttendanceController) List(c *fiber.Ctx) error {
	var records []models.Attendance
	if err := atc.DB.Preload("Employee").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list attendance",
		})
	}

	rows := make([]AttendanceRow, 0, len(records))
	for _, att := range records {
		row := AttendanceRow{
			AttID:         att.AttID,
			EmpID:         att.EmpID,
			Date:          att.Date.Format("2006-01-02"),
			Status:        att.Status,
			LoggedInTime:  att.LoggedInTime,
			LoggedOutTime: att.LoggedOutTime,
		}
		if att.Employee != nil {
			row.Fname = att.Employee.Fname
			row.Lname = att.Employee.Lname
			row.Designation = att.Employee.Designation
		}
		rows = append(rows, row)
	}
	return c.JSON(rows)
}

func (atc *AttendanceController) ByDate(c *fiber.Ctx) error {
	date, err := utils.ParseDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var records []models.Attendance
	if err := atc.DB.Preload("Employee").Where("date = ?", date).Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list attendance",
		})
	}
	return c.JSON(records)
}
