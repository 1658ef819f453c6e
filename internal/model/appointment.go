package model

import (
	"time"

	"gorm.io/gorm"
)

// Appointment is a scheduled visit. PatientID and Doctor are free-text
// references and are not checked against any other table.
type Appointment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ClinicID  uint           `json:"clinicId" gorm:"index;not null"`
	PatientID string         `json:"patientId" gorm:"type:varchar(255);not null"`
	Doctor    string         `json:"doctor" gorm:"type:varchar(255)"`
	Date      time.Time      `json:"date" gorm:"index;not null"`
	Type      string         `json:"type" gorm:"type:varchar(100);not null"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
