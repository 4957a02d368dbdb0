package controllers

import (
	"errors"
	"log"
	"strings"

	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TimesheetController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewTimesheetController(db *gorm.DB, logger *log.Logger) *TimesheetController {
	return &TimesheetController{DB: db, logger: logger}
}

type TimesheetCreateRequest struct {
	EmpID        uint    `json:"empId" validate:"required"`
	Date         string  `json:"date" validate:"required"`
	StartTime    *string `json:"startTime"`
	LunchOutTime *string `json:"lunchOutTime"`
	LunchInTime  *string `json:"lunchInTime"`
	OutTime      *string `json:"outTime"`
	InTime       *string `json:"inTime"`
	EndTime      *string `json:"endTime"`
	WorkSummary  string  `json:"workSummary"`
}

type TimesheetAmendRequest struct {
	StartTime    *string `json:"startTime"`
	LunchOutTime *string `json:"lunchOutTime"`
	LunchInTime  *string `json:"lunchInTime"`
	OutTime      *string `json:"outTime"`
	InTime       *string `json:"inTime"`
	EndTime      *string `json:"endTime"`
	WorkSummary  *string `json:"workSummary"`
}

type TimesheetRow struct {
	TimesheetID  uint    `json:"timesheetId"`
	EmpID        uint    `json:"empId"`
	Fname        string  `json:"fname"`
	Lname        string  `json:"lname"`
	Date         string  `json:"date"`
	StartTime    *string `json:"startTime"`
	LunchOutTime *string `json:"lunchOutTime"`
	LunchInTime  *string `json:"lunchInTime"`
	OutTime      *string `json:"outTime"`
	InTime       *string `json:"inTime"`
	EndTime      *string `json:"endTime"`
	WorkHours    string  `json:"workHours"`
	WorkSummary  string  `json:"workSummary"`
}

// Create opens the timesheet for one employee and date. A second create for
// the same (employee, date) pair is rejected.
func (tc *TimesheetController) Create(c *fiber.Ctx) error {
	var req TimesheetCreateRequest
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

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var employee models.Employee
	if err := tc.DB.First(&employee, req.EmpID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	for _, punch := range []*string{req.StartTime, req.LunchOutTime, req.LunchInTime, req.OutTime, req.InTime, req.EndTime} {
		if punch == nil {
			continue
		}
		if _, err := utils.ParsePunch(*punch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	var existing models.Timesheet
	err = tc.DB.Where("emp_id = ? AND date = ?", req.EmpID, date).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Timesheet already exists for this date.",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing timesheet",
		})
	}

	timesheet := models.Timesheet{
		EmpID:        req.EmpID,
		Date:         date,
		StartTime:    req.StartTime,
		LunchOutTime: req.LunchOutTime,
		LunchInTime:  req.LunchInTime,
		OutTime:      req.OutTime,
		InTime:       req.InTime,
		EndTime:      req.EndTime,
		WorkSummary:  req.WorkSummary,
	}

	if timesheet.StartTime != nil && timesheet.EndTime != nil {
		hours, err := utils.ComputeWorkHours(*timesheet.StartTime, *timesheet.EndTime,
			timesheet.LunchOutTime, timesheet.LunchInTime, timesheet.OutTime, timesheet.InTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		timesheet.WorkHours = hours
	}

	if err := tc.DB.Create(&timesheet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create timesheet",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(timesheet)
}

// Amend applies a partial punch update. Every supplied punch whose field is
// already set produces a conflict; the conflicts for the whole request are
// collected and, if any, the entire update is rejected with no writes.
func (tc *TimesheetController) Amend(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timesheet id",
		})
	}

	var timesheet models.Timesheet
	if err := tc.DB.First(&timesheet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timesheet not found",
		})
	}

	var req TimesheetAmendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	punches := []struct {
		label    string
		supplied *string
		field    **string
	}{
		{"Start time", req.StartTime, &timesheet.StartTime},
		{"Lunch out time", req.LunchOutTime, &timesheet.LunchOutTime},
		{"Lunch in time", req.LunchInTime, &timesheet.LunchInTime},
		{"Out time", req.OutTime, &timesheet.OutTime},
		{"In time", req.InTime, &timesheet.InTime},
		{"End time", req.EndTime, &timesheet.EndTime},
	}

	var conflicts []string
	for _, p := range punches {
		if p.supplied == nil {
			continue
		}
		if _, err := utils.ParsePunch(*p.supplied); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if *p.field != nil {
			conflicts = append(conflicts, p.label+" cannot be updated again.")
		}
	}

	if len(conflicts) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.Join(conflicts, " "),
		})
	}

	for _, p := range punches {
		if p.supplied != nil {
			*p.field = p.supplied
		}
	}
	if req.WorkSummary != nil {
		timesheet.WorkSummary = *req.WorkSummary
	}

	if timesheet.StartTime != nil && timesheet.EndTime != nil {
		hours, err := utils.ComputeWorkHours(*timesheet.StartTime, *timesheet.EndTime,
			timesheet.LunchOutTime, timesheet.LunchInTime, timesheet.OutTime, timesheet.InTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		timesheet.WorkHours = hours
	}

	if err := tc.DB.Save(&timesheet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update timesheet",
		})
	}
	return c.JSON(timesheet)
}

// LookupID resolves the timesheet id for an employee and date.
func (tc *TimesheetController) LookupID(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	date, err := utils.ParseDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var timesheet models.Timesheet
	if err := tc.DB.Where("emp_id = ? AND date = ?", empID, date).First(&timesheet).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timesheet not found",
		})
	}
	return c.JSON(timesheet.TimesheetID)
}

// List returns all timesheets joined with employee names.
func (tc *TimesheetController) List(c *fiber.Ctx) error {
	var timesheets []models.Timesheet
	if err := tc.DB.Preload("Employee").Find(&timesheets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list timesheets",
		})
	}

	rows := make([]TimesheetRow, 0, len(timesheets))
	for _, ts := range timesheets {
		row := TimesheetRow{
			TimesheetID:  ts.TimesheetID,
			EmpID:        ts.EmpID,
			Date:         ts.Date.Format("2006-01-02"),
			StartTime:    ts.StartTime,
			LunchOutTime: ts.LunchOutTime,
			LunchInTime:  ts.LunchInTime,
			OutTime:      ts.OutTime,
			InTime:       ts.InTime,
			EndTime:      ts.EndTime,
			WorkHours:    ts.WorkHours,
			WorkSummary:  ts.WorkSummary,
		}
		if ts.Employee != nil {
			row.Fname = ts.Employee.Fname
			row.Lname = ts.Employee.Lname
		}
		rows = append(rows, row)
	}
	return c.JSON(rows)
}
