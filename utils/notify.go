package utils

import (
	"errors"
	"fmt"

	"ems/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrTaskNotFound      = errors.New("task not found")
)

// SendNotification persists a notification for the given recipient. Both the
// recipient and, when set, the referenced task must exist. When SMTP is
// configured the notification is also mirrored to the recipient's email;
// a mail failure is logged and never fails the dispatch.
func SendNotification(db *gorm.DB, recipientID uint, taskID *uint, typ models.NotificationType, message string) (*models.Notification, error) {
	var recipient models.Employee
	if err := db.First(&recipient, recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if taskID != nil {
		var task models.Task
		if err := db.First(&task, *taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, err
		}
	}

	notification := models.Notification{
		Message:     message,
		IsRead:      false,
		Type:        typ,
		RecipientID: recipient.EmpID,
		TaskID:      taskID,
	}
	if err := db.Create(&notification).Error; err != nil {
		return nil, err
	}

	if err := MailNotification(recipient.Email, &notification); err != nil {
		logrus.WithError(err).WithField("recipient", recipient.EmpID).
			Warn("failed to mirror notification to email")
	}

	return &notification, nil
}

// SendTaskReminder emits a REMINDER notification to the task's assignee.
// Tasks without an assignee are skipped silently.
func SendTaskReminder(db *gorm.DB, task *models.Task) error {
	if task.AssignedToID == nil {
		logrus.WithField("task", task.ID).Debug("task has no assigned employee, skipping reminder")
		return nil
	}

	message := fmt.Sprintf("Reminder: Task '%s' is due soon!", task.Name)
	taskID := task.ID
	if _, err := SendNotification(db, *task.AssignedToID, &taskID, models.NotifyReminder, message); err != nil {
		return err
	}

	logrus.WithField("task", task.ID).Info("sent reminder notification")
	return nil
}
