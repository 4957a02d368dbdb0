package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

type AcceptingStatus string

const (
	AcceptingStatusPending  AcceptingStatus = "PENDING"
	AcceptingStatusAccepted AcceptingStatus = "ACCEPTED"
	AcceptingStatusRejected AcceptingStatus = "REJECTED"
)

// ParseTaskStatus normalizes a free-text status token. Unknown tokens are an
// error, never a silent default.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskStatusPending:
		return TaskStatusPending, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusCompleted:
		return TaskStatusCompleted, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskPriorityLow:
		return TaskPriorityLow, nil
	case TaskPriorityMedium:
		return TaskPriorityMedium, nil
	case TaskPriorityHigh:
		return TaskPriorityHigh, nil
	}
	return "", fmt.Errorf("unknown task priority %q", s)
}

func ParseAcceptingStatus(s string) (AcceptingStatus, error) {
	switch AcceptingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case AcceptingStatusPending:
		return AcceptingStatusPending, nil
	case AcceptingStatusAccepted:
		return AcceptingStatusAccepted, nil
	case AcceptingStatusRejected:
		return AcceptingStatusRejected, nil
	}
	return "", fmt.Errorf("unknown accepting status %q", s)
}

type Task struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null;size:200" json:"name"`
	Description     string          `gorm:"size:1000" json:"description"`
	StartDate       *time.Time      `gorm:"type:date" json:"startDate"`
	DueDate         *time.Time      `gorm:"type:date" json:"dueDate"`
	ReminderDate    *time.Time      `gorm:"type:date;index" json:"reminderDate"`
	RejectingReason string          `gorm:"size:500" json:"rejectingReason"`
	CreatedAt       time.Time       `json:"createdAt"`
	OwnerID         uint            `gorm:"not null;index" json:"ownerId"`
	Owner           *Employee       `gorm:"foreignKey:OwnerID;references:EmpID" json:"owner,omitempty"`
	AssignedToID    *uint           `gorm:"index" json:"assignedToId"`
	AssignedTo      *Employee       `gorm:"foreignKey:AssignedToID;references:EmpID" json:"assignedTo,omitempty"`
	TeamID          *uint           `gorm:"index" json:"teamId"`
	Team            *Team           `gorm:"foreignKey:TeamID" json:"-"`
	Status          TaskStatus      `gorm:"not null;size:20" json:"status"`
	Priority        TaskPriority    `gorm:"not null;size:20" json:"priority"`
	AcceptingStatus AcceptingStatus `gorm:"not null;size:20" json:"acceptingStatus"`
}
