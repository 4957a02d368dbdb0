package models

import "time"

type Team struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Name       string     `gorm:"uniqueIndex;not null;size:100" json:"name"`
	TeamLeadID *uint      `gorm:"index" json:"teamLeadId"`
	TeamLead   *Employee  `gorm:"foreignKey:TeamLeadID;references:EmpID" json:"teamLead,omitempty"`
	Members    []Employee `gorm:"many2many:team_members" json:"members,omitempty"`
}
