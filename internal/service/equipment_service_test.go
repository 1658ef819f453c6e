package service

import (
	"context"
	"testing"
	"time"

	"clinic-service/internal/model"
	"clinic-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ultrasound() EquipmentInput {
	return EquipmentInput{
		Name:                "Ultrasound",
		Model:               "U-200",
		Manufacturer:        "Acme",
		SerialNumber:        "SN-1",
		PurchaseDate:        "15-03-2024",
		Status:              model.StatusOperational,
		Location:            "Room 1",
		MaintenanceInterval: "90",
	}
}

func TestEquipmentCreate(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	e, err := s.equipment.Create(ctx, Scope{ClinicID: 1}, ultrasound())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", e.PurchaseDate)
	assert.Equal(t, "90", e.MaintenanceInterval)
	assert.Empty(t, e.CustomMaintenanceDays)

	in := ultrasound()
	in.MaintenanceInterval = model.CustomMaintenanceInterval
	in.CustomMaintenanceDays = "45"
	custom, err := s.equipment.Create(ctx, Scope{ClinicID: 1}, in)
	require.NoError(t, err)
	assert.Equal(t, "45", custom.MaintenanceInterval)
	assert.Equal(t, "45", custom.CustomMaintenanceDays)
}

func TestEquipmentCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	tests := []struct {
		name   string
		mutate func(*EquipmentInput)
	}{
		{"missing location", func(in *EquipmentInput) { in.Location = "" }},
		{"missing serial", func(in *EquipmentInput) { in.SerialNumber = " " }},
		{"unknown status", func(in *EquipmentInput) { in.Status = "Broken" }},
		{"custom without days", func(in *EquipmentInput) { in.MaintenanceInterval = model.CustomMaintenanceInterval }},
		{"non-numeric interval", func(in *EquipmentInput) { in.MaintenanceInterval = "monthly" }},
		{"zero interval", func(in *EquipmentInput) { in.MaintenanceInterval = "0" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ultrasound()
			tt.mutate(&in)
			_, err := s.equipment.Create(ctx, Scope{ClinicID: 1}, in)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	list, err := s.equipment.List(ctx, Scope{ClinicID: 1})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEquipmentPatchKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	owner := Scope{ClinicID: 1}

	e, err := s.equipment.Create(ctx, owner, ultrasound())
	require.NoError(t, err)
	createdAt := e.CreatedAt

	updated, err := s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{
		Status:   strPtr(model.StatusUnderMaintenance),
		Location: strPtr("Room 2"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderMaintenance, updated.Status)
	assert.Equal(t, "Room 2", updated.Location)
	assert.Equal(t, "Ultrasound", updated.Name, "untouched fields keep their values")

	stored, err := s.store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.ClinicID)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
	assert.False(t, stored.CreatedAt.After(time.Now()))
}

func TestEquipmentPatchValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	owner := Scope{ClinicID: 1}

	e, err := s.equipment.Create(ctx, owner, ultrasound())
	require.NoError(t, err)

	var verr *ValidationError
	_, err = s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{Name: strPtr("  ")})
	assert.ErrorAs(t, err, &verr)
	_, err = s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{Status: strPtr("Gone")})
	assert.ErrorAs(t, err, &verr)

	custom, err := s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{
		MaintenanceInterval: strPtr(model.CustomMaintenanceInterval),
		CustomDays:          strPtr("120"),
	})
	require.NoError(t, err)
	assert.Equal(t, "120", custom.CustomMaintenanceDays)

	// stored bookkeeping follows the interval, never the client's value
	back, err := s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{
		MaintenanceInterval: strPtr("30"),
		CustomDays:          strPtr("999"),
	})
	require.NoError(t, err)
	assert.Equal(t, "30", back.MaintenanceInterval)
	assert.Empty(t, back.CustomMaintenanceDays)
}

func TestEquipmentCrossTenant(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	e, err := s.equipment.Create(ctx, Scope{ClinicID: 1}, ultrasound())
	require.NoError(t, err)

	intruder := Scope{ClinicID: 2}
	_, err = s.equipment.Update(ctx, intruder, e.ID, EquipmentPatch{Name: strPtr("Stolen")})
	assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	assert.ErrorIs(t, s.equipment.Delete(ctx, intruder, e.ID), ErrNotFoundOrUnauthorized)

	stored, err := s.store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ultrasound", stored.Name)
}

func TestEquipmentMaintenanceFlagLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))
	s := newServices(t)
	owner := Scope{ClinicID: 1}

	e, err := s.equipment.Create(ctx, owner, ultrasound())
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("Equipment flagged for maintenance").Len())

	_, err = s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{Status: strPtr(model.StatusMaintenanceRequired)})
	require.NoError(t, err)
	// already flagged, no second line
	_, err = s.equipment.Update(ctx, owner, e.ID, EquipmentPatch{Status: strPtr(model.StatusUnderMaintenance)})
	require.NoError(t, err)

	flagged := logs.FilterMessage("Equipment flagged for maintenance").All()
	require.Len(t, flagged, 1)
	assert.EqualValues(t, e.ID, flagged[0].ContextMap()["equipment_id"])
}
