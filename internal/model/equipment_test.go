package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEquipmentStatus(t *testing.T) {
	for _, s := range EquipmentStatuses {
		assert.True(t, IsValidEquipmentStatus(s), s)
	}
	assert.False(t, IsValidEquipmentStatus("Broken"))
	assert.False(t, IsValidEquipmentStatus("operational"))
}

func TestNeedsMaintenance(t *testing.T) {
	assert.True(t, (&Equipment{Status: StatusMaintenanceRequired}).NeedsMaintenance())
	assert.True(t, (&Equipment{Status: StatusUnderMaintenance}).NeedsMaintenance())
	assert.False(t, (&Equipment{Status: StatusOperational}).NeedsMaintenance())
	assert.False(t, (&Equipment{Status: StatusRetired}).NeedsMaintenance())
}

func TestSyncMaintenanceBookkeeping(t *testing.T) {
	e := &Equipment{MaintenanceInterval: "45", CustomMaintenanceDays: ""}
	e.SyncMaintenanceBookkeeping()
	assert.Equal(t, "45", e.CustomMaintenanceDays)

	e.MaintenanceInterval = "90"
	e.SyncMaintenanceBookkeeping()
	assert.Empty(t, e.CustomMaintenanceDays)

	e.MaintenanceInterval = ""
	e.CustomMaintenanceDays = "stale"
	e.SyncMaintenanceBookkeeping()
	assert.Empty(t, e.CustomMaintenanceDays)
}
