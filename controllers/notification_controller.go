package controllers

import (
	"errors"
	"log"
	"time"

	"ems/models"
	"ems/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewNotificationController(db *gorm.DB, logger *log.Logger) *NotificationController {
	return &NotificationController{DB: db, logger: logger}
}

type NotificationRequest struct {
	RecipientID uint   `json:"recipientId" validate:"required"`
	TaskID      *uint  `json:"taskId"`
	Type        string `json:"type" validate:"required"`
	Message     string `json:"message" validate:"required,max=500"`
}

func (nc *NotificationController) Send(c *fiber.Ctx) error {
	var req NotificationRequest
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

	typ, err := models.ParseNotificationType(req.Type)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	notification, err := utils.SendNotification(nc.DB, req.RecipientID, req.TaskID, typ, req.Message)
	if err != nil {
		if errors.Is(err, utils.ErrRecipientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Recipient not found",
			})
		}
		if errors.Is(err, utils.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send notification",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (nc *NotificationController) ListForRecipient(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := nc.DB.First(&employee, empID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	var notifications []models.Notification
	if err := nc.DB.Where("recipient_id = ?", employee.EmpID).Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}
	return c.JSON(notifications)
}

// MarkAllRead flips every notification for the recipient inside a single
// transaction so a mid-batch failure marks nothing.
func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := nc.DB.First(&employee, empID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	err = nc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Notification{}).
			Where("recipient_id = ?", employee.EmpID).
			Update("is_read", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark notifications as read",
		})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

// Feed streams unread-notification snapshots over a websocket. The client
// opens the socket with {"employeeId": N}; a snapshot is pushed immediately
// and then every few seconds until the connection drops.
func (nc *NotificationController) Feed(c *websocket.Conn) {
	defer c.Close()

	var input struct {
		EmployeeID uint `json:"employeeId"`
	}
	if err := c.ReadJSON(&input); err != nil {
		nc.logger.Printf("notification feed: error reading JSON: %v", err)
		return
	}

	for {
		var unread []models.Notification
		if err := nc.DB.Where("recipient_id = ? AND is_read = ?", input.EmployeeID, false).
			Find(&unread).Error; err != nil {
			nc.logger.Printf("notification feed: query failed: %v", err)
			return
		}

		snapshot := struct {
			Unread      []models.Notification `json:"unread"`
			Count       int                   `json:"count"`
			GeneratedAt time.Time             `json:"generatedAt"`
		}{
			Unread:      unread,
			Count:       len(unread),
			GeneratedAt: time.Now(),
		}

		if err := c.WriteJSON(snapshot); err != nil {
			return
		}
		time.Sleep(5 * time.Second)
	}
}
