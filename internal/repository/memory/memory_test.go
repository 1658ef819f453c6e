package memory

import (
	"context"
	"testing"
	"time"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithClinic(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewDB())

	clinic := &model.Clinic{Name: "Sunrise"}
	user := &model.User{Email: "a@b.c", Password: "hash"}
	require.NoError(t, store.Users.CreateWithClinic(ctx, clinic, user))
	assert.NotZero(t, clinic.ID)
	assert.Equal(t, clinic.ID, user.ClinicID)

	got, err := store.Users.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	err = store.Users.CreateWithClinic(ctx, &model.Clinic{Name: "Other"}, &model.User{Email: "a@b.c"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = store.Clinics.GetByID(ctx, clinic.ID+1)
	assert.ErrorIs(t, err, repository.ErrNotFound, "failed registration must not leave a clinic behind")
}

func TestDeleteIsScopedByClinic(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewDB())

	p := &model.Patient{ClinicID: 1, Name: "Jane Doe"}
	require.NoError(t, store.Patients.Create(ctx, p))

	assert.ErrorIs(t, store.Patients.Delete(ctx, 2, p.ID), repository.ErrNotFound)
	_, err := store.Patients.GetByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, store.Patients.Delete(ctx, 1, p.ID))
	_, err = store.Patients.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListUpcoming(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewDB())
	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	for _, offset := range []int{5, -1, 2, 0, 3, 1, 4} {
		require.NoError(t, store.Appointments.Create(ctx, &model.Appointment{
			ClinicID: 1, PatientID: "p", Type: "checkup", Date: base.AddDate(0, 0, offset),
		}))
	}
	require.NoError(t, store.Appointments.Create(ctx, &model.Appointment{ClinicID: 2, Date: base}))

	upcoming, err := store.Appointments.ListUpcoming(ctx, 1, base, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 5)
	for i, a := range upcoming {
		assert.Equal(t, base.AddDate(0, 0, i), a.Date)
	}

	all, err := store.Appointments.ListByClinic(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, base.AddDate(0, 0, -1), all[0].Date)
}

func TestEquipmentCounts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewDB())

	for _, e := range []model.Equipment{
		{ClinicID: 1, Name: "a", Status: model.StatusOperational},
		{ClinicID: 1, Name: "b", Status: model.StatusUnderMaintenance},
		{ClinicID: 2, Name: "c", Status: model.StatusMaintenanceRequired},
		{ClinicID: 2, Name: "d", Status: model.StatusMaintenanceRequired},
	} {
		e := e
		require.NoError(t, store.Equipment.Create(ctx, &e))
	}

	counts, err := store.Equipment.CountByStatusPerClinic(ctx, model.MaintenanceStatuses)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{1: 1, 2: 2}, counts)

	list, err := store.Equipment.ListByStatus(ctx, 1, model.MaintenanceStatuses)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)

	total, err := store.Equipment.CountByClinic(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestEquipmentUpdateKeepsOwnership(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewDB())

	e := &model.Equipment{ClinicID: 1, Name: "x", Status: model.StatusOperational}
	require.NoError(t, store.Equipment.Create(ctx, e))
	created := e.CreatedAt

	changed := *e
	changed.ClinicID = 9
	changed.CreatedAt = time.Time{}
	changed.Name = "y"
	require.NoError(t, store.Equipment.Update(ctx, &changed))

	got, err := store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ClinicID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "y", got.Name)
}
