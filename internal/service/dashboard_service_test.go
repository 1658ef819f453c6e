package service

import (
	"context"
	"testing"

	"clinic-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummarize(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	scope := Scope{ClinicID: 1}

	statuses := []string{
		model.StatusOperational, model.StatusOperational, model.StatusOperational,
		model.StatusRetired, model.StatusNotPossible,
		model.StatusMaintenanceRequired, model.StatusMaintenanceRequired,
	}
	for _, st := range statuses {
		in := ultrasound()
		in.Status = st
		_, err := s.equipment.Create(ctx, scope, in)
		require.NoError(t, err)
	}
	_, err := s.equipment.Create(ctx, Scope{ClinicID: 2}, ultrasound())
	require.NoError(t, err)

	_, err = s.patients.Create(ctx, scope, janeDoe())
	require.NoError(t, err)

	for _, day := range []string{"2030-06-15", "2030-06-14", "2030-06-13", "2030-06-12", "2030-06-11", "2030-06-10"} {
		_, err := s.appointments.Create(ctx, scope, AppointmentInput{PatientID: "p", Date: day, Time: "09:00", Type: "t"})
		require.NoError(t, err)
	}

	d, err := s.dashboard.Summarize(ctx, scope)
	require.NoError(t, err)
	assert.EqualValues(t, 7, d.TotalEquipment)
	assert.Len(t, d.EquipmentNeedingMaintenance, 2)
	assert.EqualValues(t, 1, d.Patients)
	require.Len(t, d.UpcomingAppointments, UpcomingOnDashboard)
	assert.Equal(t, 10, d.UpcomingAppointments[0].Date.Day())
	for i := 1; i < len(d.UpcomingAppointments); i++ {
		assert.True(t, d.UpcomingAppointments[i-1].Date.Before(d.UpcomingAppointments[i].Date))
	}
}
