package models

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type Employee struct {
	EmpID       uint       `gorm:"primaryKey;column:emp_id" json:"empId"`
	Username    string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Password    string     `gorm:"not null;size:255" json:"-"`
	Role        Role       `gorm:"not null;size:20" json:"role"`
	Fname       string     `gorm:"not null;size:50" json:"fname"`
	Lname       string     `gorm:"not null;size:50" json:"lname"`
	Email       string     `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Phone       string     `gorm:"size:15" json:"phone"`
	Dob         *time.Time `gorm:"type:date" json:"dob"`
	Designation string     `gorm:"size:100" json:"designation"`
}

func (Employee) TableName() string {
	return "employee"
}

func (e *Employee) FullName() string {
	return e.Fname + " " + e.Lname
}
