package models

import (
	"fmt"
	"strings"
	"time"
)

type NotificationType string

const (
	NotifyAssigned   NotificationType = "ASSIGNED"
	NotifyAccepted   NotificationType = "ACCEPTED"
	NotifyRejected   NotificationType = "REJECTED"
	NotifyCompleted  NotificationType = "COMPLETED"
	NotifyInProgress NotificationType = "IN_PROGRESS"
	NotifyReminder   NotificationType = "REMINDER"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(strings.ToUpper(strings.TrimSpace(s))) {
	case NotifyAssigned:
		return NotifyAssigned, nil
	case NotifyAccepted:
		return NotifyAccepted, nil
	case NotifyRejected:
		return NotifyRejected, nil
	case NotifyCompleted:
		return NotifyCompleted, nil
	case NotifyInProgress:
		return NotifyInProgress, nil
	case NotifyReminder:
		return NotifyReminder, nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

// Notification is only ever created as a side effect of a workflow transition.
// It is never deleted; the single mutation is flipping IsRead.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Message     string           `gorm:"not null;size:500" json:"message"`
	IsRead      bool             `gorm:"default:false" json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
	Type        NotificationType `gorm:"not null;size:20" json:"type"`
	RecipientID uint             `gorm:"not null;index" json:"recipientId"`
	Recipient   *Employee        `gorm:"foreignKey:RecipientID;references:EmpID" json:"recipient,omitempty"`
	TaskID      *uint            `gorm:"index" json:"taskId"`
	Task        *Task            `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
