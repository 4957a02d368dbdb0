package models

import "time"

// CandidateDocument records an onboarding candidate's submitted paperwork.
// The files themselves live outside the database; only their paths are kept.
type CandidateDocument struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Name                  string     `gorm:"not null;size:100" json:"name"`
	Email                 string     `gorm:"not null;size:100" json:"email"`
	JoiningDate           *time.Time `gorm:"type:date" json:"joiningDate"`
	NdaFilePath           string     `gorm:"size:255" json:"ndaFilePath"`
	UniIDFilePath         string     `gorm:"column:uni_id_file_path;size:255" json:"uniIdFilePath"`
	RequestLetterFilePath string     `gorm:"size:255" json:"requestLetterFilePath"`
	UploadedAt            time.Time  `json:"uploadedAt"`
}

func (CandidateDocument) TableName() string {
	return "candidate_document"
}
