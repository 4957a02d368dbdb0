package models

import (
	"fmt"
	"strings"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case AttendancePresent:
		return AttendancePresent, nil
	case AttendanceAbsent:
		return AttendanceAbsent, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

type Attendance struct {
	AttID         uint             `gorm:"primaryKey;column:att_id" json:"attId"`
	EmpID         uint             `gorm:"column:emp_id;not null;uniqueIndex:idx_attendance_emp_date" json:"empId"`
	Employee      *Employee        `gorm:"foreignKey:EmpID;references:EmpID" json:"employee,omitempty"`
	Date          time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_emp_date" json:"date"`
	Status        AttendanceStatus `gorm:"not null;size:20" json:"status"`
	LoggedInTime  *time.Time       `json:"loggedInTime"`
	LoggedOutTime *time.Time       `json:"loggedOutTime"`
}
