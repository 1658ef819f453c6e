package model

import (
	"time"

	"gorm.io/gorm"
)

// Equipment statuses
const (
	StatusOperational         = "Operational"
	StatusMaintenanceRequired = "Maintenance Required"
	StatusUnderMaintenance    = "Under Maintenance"
	StatusRetired             = "Retired"
	StatusNotPossible         = "Not Possible"
)

// CustomMaintenanceInterval is the form value that selects a non-standard interval
const CustomMaintenanceInterval = "custom"

// EquipmentStatuses lists every accepted status
var EquipmentStatuses = []string{
	StatusOperational,
	StatusMaintenanceRequired,
	StatusUnderMaintenance,
	StatusRetired,
	StatusNotPossible,
}

// MaintenanceStatuses are the statuses that count as needing maintenance
var MaintenanceStatuses = []string{StatusMaintenanceRequired, StatusUnderMaintenance}

// StandardMaintenanceIntervals are the preset maintenance gaps in days
var StandardMaintenanceIntervals = []string{"30", "60", "90", "180", "365"}

// Equipment is a tracked device or asset of a clinic
type Equipment struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	ClinicID            uint   `json:"clinicId" gorm:"index;not null"`
	Name                string `json:"name" gorm:"type:varchar(255);not null"`
	Model               string `json:"model" gorm:"type:varchar(255)"`
	Manufacturer        string `json:"manufacturer" gorm:"type:varchar(255)"`
	SerialNumber        string `json:"serialNumber" gorm:"type:varchar(255)"`
	PurchaseDate        string `json:"purchaseDate" gorm:"type:varchar(32)"`
	WarrantyExpiry      string `json:"warrantyExpiry" gorm:"type:varchar(32)"`
	Status              string `json:"status" gorm:"type:varchar(50);index;not null"`
	Location            string `json:"location" gorm:"type:varchar(255)"`
	MaintenanceInterval string `json:"maintenanceInterval" gorm:"type:varchar(16)"`
	// CustomMaintenanceDays mirrors MaintenanceInterval when it is not a preset.
	// Only the service writes it.
	CustomMaintenanceDays string         `json:"customMaintenanceDays" gorm:"type:varchar(16)"`
	Notes                 string         `json:"notes" gorm:"type:text"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName keeps the singular/plural form stable
func (Equipment) TableName() string {
	return "equipment"
}

// IsValidEquipmentStatus reports whether s is one of EquipmentStatuses
func IsValidEquipmentStatus(s string) bool {
	return contains(EquipmentStatuses, s)
}

// IsStandardMaintenanceInterval reports whether days is one of the presets
func IsStandardMaintenanceInterval(days string) bool {
	return contains(StandardMaintenanceIntervals, days)
}

// NeedsMaintenance reports whether the equipment status is a maintenance status
func (e *Equipment) NeedsMaintenance() bool {
	return contains(MaintenanceStatuses, e.Status)
}

// SyncMaintenanceBookkeeping recomputes CustomMaintenanceDays from MaintenanceInterval
func (e *Equipment) SyncMaintenanceBookkeeping() {
	if e.MaintenanceInterval == "" || IsStandardMaintenanceInterval(e.MaintenanceInterval) {
		e.CustomMaintenanceDays = ""
		return
	}
	e.CustomMaintenanceDays = e.MaintenanceInterval
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
