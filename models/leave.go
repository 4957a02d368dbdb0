package models

import (
	"fmt"
	"strings"
	"time"
)

type LeaveType string

const (
	LeaveCasual  LeaveType = "CASUAL"
	LeaveMedical LeaveType = "MEDICAL"
)

type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "APPROVED"
	LeavePending  LeaveStatus = "PENDING"
	LeaveRejected LeaveStatus = "REJECTED"
)

func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(strings.ToUpper(strings.TrimSpace(s))) {
	case LeaveCasual:
		return LeaveCasual, nil
	case LeaveMedical:
		return LeaveMedical, nil
	}
	return "", fmt.Errorf("unknown leave type %q", s)
}

func ParseLeaveStatus(s string) (LeaveStatus, error) {
	switch LeaveStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case LeaveApproved:
		return LeaveApproved, nil
	case LeavePending:
		return LeavePending, nil
	case LeaveRejected:
		return LeaveRejected, nil
	}
	return "", fmt.Errorf("unknown leave status %q", s)
}

type EmployeeLeave struct {
	LeaveID     uint        `gorm:"primaryKey;column:leave_id" json:"leaveId"`
	EmpID       uint        `gorm:"column:emp_id;not null;index" json:"empId"`
	Employee    *Employee   `gorm:"foreignKey:EmpID;references:EmpID" json:"employee,omitempty"`
	StartDate   time.Time   `gorm:"type:date;not null" json:"startDate"`
	EndDate     time.Time   `gorm:"type:date;not null" json:"endDate"`
	LeaveType   LeaveType   `gorm:"column:leave_type;not null;size:20" json:"leaveType"`
	Status      LeaveStatus `gorm:"not null;size:20" json:"status"`
	Days        int         `gorm:"not null" json:"days"`
	Description string      `gorm:"size:500" json:"description"`
	AppliedAt   time.Time   `gorm:"type:date" json:"appliedAt"`
}

func (EmployeeLeave) TableName() string {
	return "employee_leave"
}
