package model

import "time"

// User represents a clinic login stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	ClinicID  uint      `json:"clinicId" gorm:"index;not null"`
	Clinic    *Clinic   `json:"-" gorm:"foreignKey:ClinicID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
