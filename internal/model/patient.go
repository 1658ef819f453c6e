package model

import (
	"time"

	"gorm.io/gorm"
)

// Patient is a clinic's patient record. Name holds first and last name joined.
type Patient struct {
	ID                     uint           `json:"id" gorm:"primaryKey"`
	ClinicID               uint           `json:"clinicId" gorm:"index;not null"`
	Name                   string         `json:"name" gorm:"type:varchar(255);not null"`
	Phone                  string         `json:"phone" gorm:"type:varchar(50)"`
	DateOfBirth            string         `json:"dateOfBirth" gorm:"type:varchar(32)"`
	Gender                 string         `json:"gender" gorm:"type:varchar(32)"`
	Condition              string         `json:"condition" gorm:"type:text"`
	Address                string         `json:"address" gorm:"type:text"`
	EmergencyContactName   string         `json:"emergencyContactName" gorm:"type:varchar(255)"`
	EmergencyContactNumber string         `json:"emergencyContactNumber" gorm:"type:varchar(50)"`
	Notes                  string         `json:"notes" gorm:"type:text"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              gorm.DeletedAt `json:"-" gorm:"index"`
}
