package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ems/config"
	"ems/models"
	"ems/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TaskController struct {
	DB     *gorm.DB
	logger *log.Logger
	loc    *time.Location
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	loc, err := time.LoadLocation(config.AppConfig.ReminderZone)
	if err != nil {
		logger.Printf("invalid reminder zone %q, using local time: %v", config.AppConfig.ReminderZone, err)
		loc = time.Local
	}
	return &TaskController{DB: db, logger: logger, loc: loc}
}

type TaskCreateRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	StartDate       string `json:"startDate"`
	DueDate         string `json:"dueDate"`
	ReminderDate    string `json:"reminderDate"`
	RejectingReason string `json:"rejectingReason"`
	OwnerID         uint   `json:"ownerId" validate:"required"`
	AssignedToID    *uint  `json:"assignedToId"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	AcceptingStatus string `json:"acceptingStatus"`
}

type TaskUpdateRequest struct {
	AssignedToID    *uint   `json:"assignedToId"`
	AcceptingStatus *string `json:"acceptingStatus"`
	RejectingReason *string `json:"rejectingReason"`
	Status          *string `json:"status"`
}

type TeamLeadDecisionRequest struct {
	Decision string `json:"decision" validate:"required"`
	Reason   string `json:"reason"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persists a new task. When the reminder date is already today the
// reminder notification is emitted immediately instead of waiting for the
// next sweep.
func (tc *TaskController) Create(c *fiber.Ctx) error {
	var req TaskCreateRequest
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

	var owner models.Employee
	if err := tc.DB.First(&owner, req.OwnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Owner employee not found",
		})
	}

	if req.AssignedToID != nil {
		var assignee models.Employee
		if err := tc.DB.First(&assignee, *req.AssignedToID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Assigned employee not found",
			})
		}
	}

	status := models.TaskStatusPending
	if req.Status != "" {
		parsed, err := models.ParseTaskStatus(req.Status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		status = parsed
	}

	priority := models.TaskPriorityMedium
	if req.Priority != "" {
		parsed, err := models.ParseTaskPriority(req.Priority)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		priority = parsed
	}

	accepting := models.AcceptingStatusPending
	if req.AcceptingStatus != "" {
		parsed, err := models.ParseAcceptingStatus(req.AcceptingStatus)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		accepting = parsed
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	reminderDate, err := parseOptionalDate(req.ReminderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task := models.Task{
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       startDate,
		DueDate:         dueDate,
		ReminderDate:    reminderDate,
		RejectingReason: req.RejectingReason,
		CreatedAt:       time.Now(),
		OwnerID:         owner.EmpID,
		AssignedToID:    req.AssignedToID,
		Status:          status,
		Priority:        priority,
		AcceptingStatus: accepting,
	}

	if err := tc.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task",
		})
	}

	if task.ReminderDate != nil && task.ReminderDate.Equal(utils.Today(tc.loc)) {
		if err := utils.SendTaskReminder(tc.DB, &task); err != nil {
			tc.logger.Printf("failed to send immediate reminder for task %d: %v", task.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update applies an independent partial update: accepting status, assignee
// and status may each be present or absent; absent fields stay untouched.
func (tc *TaskController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	var task models.Task
	if err := tc.DB.First(&task, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	var req TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.AcceptingStatus != nil {
		accepting, err := models.ParseAcceptingStatus(*req.AcceptingStatus)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		task.AcceptingStatus = accepting

		if accepting == models.AcceptingStatusRejected && req.RejectingReason != nil {
			task.RejectingReason = *req.RejectingReason
		}
	}

	if req.AssignedToID != nil {
		var assignee models.Employee
		if err := tc.DB.First(&assignee, *req.AssignedToID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Assigned employee not found",
			})
		}
		task.AssignedToID = &assignee.EmpID
	}

	if req.Status != nil {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		task.Status = status
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}
	return c.JSON(task)
}

// TeamLeadRespond records the team lead's accept/reject decision and
// notifies the task owner.
func (tc *TaskController) TeamLeadRespond(c *fiber.Ctx) error {
	id, err := c.ParamsInt("taskId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	var task models.Task
	if err := tc.DB.Preload("Team").First(&task, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	var req TeamLeadDecisionRequest
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

	if task.Team == nil || task.Team.TeamLeadID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Task is not assigned to a team with a lead.",
		})
	}

	if strings.EqualFold(req.Decision, "ACCEPT") {
		task.AcceptingStatus = models.AcceptingStatusAccepted
		task.RejectingReason = ""
	} else {
		task.AcceptingStatus = models.AcceptingStatusRejected
		if req.Reason != "" {
			task.RejectingReason = req.Reason
		} else {
			task.RejectingReason = "No reason provided"
		}
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}

	decision := strings.ToLower(req.Decision)
	taskID := task.ID
	message := fmt.Sprintf("Your task '%s' was %sed by the team lead.", task.Name, decision)
	if _, err := utils.SendNotification(tc.DB, task.OwnerID, &taskID, models.NotifyAccepted, message); err != nil {
		tc.logger.Printf("failed to notify owner of task %d: %v", task.ID, err)
		sentry.CaptureException(err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Task has been %sed by the team lead.", decision),
	})
}

// AssignTeam links a task to a team and notifies every current member.
// A failed dispatch for one member does not stop the fan-out.
func (tc *TaskController) AssignTeam(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("taskId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}
	teamID, err := c.ParamsInt("teamId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team id",
		})
	}

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	var team models.Team
	if err := tc.DB.Preload("Members").First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load team",
		})
	}

	task.TeamID = &team.ID

	message := fmt.Sprintf("A new task %q has been assigned to your team: %s", task.Name, team.Name)
	id := task.ID
	for _, member := range team.Members {
		if _, err := utils.SendNotification(tc.DB, member.EmpID, &id, models.NotifyAssigned, message); err != nil {
			tc.logger.Printf("failed to notify member %d for task %d: %v", member.EmpID, task.ID, err)
			sentry.CaptureException(err)
		}
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save task",
		})
	}
	return c.JSON(task)
}

func (tc *TaskController) List(c *fiber.Ctx) error {
	var tasks []models.Task
	if err := tc.DB.Preload("Owner").Preload("AssignedTo").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tasks",
		})
	}
	return c.JSON(tasks)
}

func (tc *TaskController) ListForEmployee(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var tasks []models.Task
	if err := tc.DB.Preload("Owner").Preload("AssignedTo").
		Where("assigned_to_id = ?", empID).Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tasks",
		})
	}
	return c.JSON(tasks)
}
