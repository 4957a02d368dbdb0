package models

import "time"

// Timesheet holds one workday of time punches for an employee. Each punch
// field is write-once: once non-null it may never be overwritten.
type Timesheet struct {
	TimesheetID  uint      `gorm:"primaryKey;column:timesheet_id" json:"timesheetId"`
	EmpID        uint      `gorm:"column:emp_id;not null;uniqueIndex:idx_timesheet_emp_date" json:"empId"`
	Employee     *Employee `gorm:"foreignKey:EmpID;references:EmpID" json:"employee,omitempty"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_timesheet_emp_date" json:"date"`
	StartTime    *string   `gorm:"column:start_time;size:8" json:"startTime"`
	LunchOutTime *string   `gorm:"column:lunch_out_time;size:8" json:"lunchOutTime"`
	LunchInTime  *string   `gorm:"column:lunch_in_time;size:8" json:"lunchInTime"`
	OutTime      *string   `gorm:"column:out_time;size:8" json:"outTime"`
	InTime       *string   `gorm:"column:in_time;size:8" json:"inTime"`
	EndTime      *string   `gorm:"column:end_time;size:8" json:"endTime"`
	WorkHours    string    `gorm:"column:work_hours;size:8" json:"workHours"`
	WorkSummary  string    `gorm:"column:work_summary;size:1000" json:"workSummary"`
}

func (Timesheet) TableName() string {
	return "timesheet"
}
