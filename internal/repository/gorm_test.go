package repository

import (
	"context"
	"testing"
	"time"

	"clinic-service/internal/model"
	"clinic-service/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the service schema.
// A single connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models...))
	return db
}

func TestGormCreateWithClinicRollsBackOnDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewGormStore(db)

	clinic := &model.Clinic{Name: "Sunrise"}
	user := &model.User{Email: "owner@sunrise.test", Password: "hash"}
	require.NoError(t, store.Users.CreateWithClinic(ctx, clinic, user))
	assert.NotZero(t, clinic.ID)
	assert.Equal(t, clinic.ID, user.ClinicID)

	err := store.Users.CreateWithClinic(ctx,
		&model.Clinic{Name: "Copycat"},
		&model.User{Email: "owner@sunrise.test", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)

	var clinics int64
	require.NoError(t, db.Model(&model.Clinic{}).Count(&clinics).Error)
	assert.EqualValues(t, 1, clinics)

	got, err := store.Users.GetByEmail(ctx, "owner@sunrise.test")
	require.NoError(t, err)
	assert.Equal(t, clinic.ID, got.ClinicID)
}

func TestGormEquipmentUpdateKeepsOwnership(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))

	e := &model.Equipment{ClinicID: 1, Name: "Ultrasound", Status: model.StatusOperational}
	require.NoError(t, store.Equipment.Create(ctx, e))
	before, err := store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)

	changed := *before
	changed.ClinicID = 9
	changed.CreatedAt = before.CreatedAt.Add(-48 * time.Hour)
	changed.Name = "Ultrasound X"
	changed.Status = model.StatusUnderMaintenance
	require.NoError(t, store.Equipment.Update(ctx, &changed))

	after, err := store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, after.ClinicID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt), "created_at changed to %v", after.CreatedAt)
	assert.Equal(t, "Ultrasound X", after.Name)
	assert.Equal(t, model.StatusUnderMaintenance, after.Status)
}

func TestGormDeleteIsScopedByClinic(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))

	p := &model.Patient{ClinicID: 1, Name: "Jane Doe"}
	require.NoError(t, store.Patients.Create(ctx, p))
	e := &model.Equipment{ClinicID: 1, Name: "ECG", Status: model.StatusOperational}
	require.NoError(t, store.Equipment.Create(ctx, e))
	a := &model.Appointment{ClinicID: 1, PatientID: "1", Type: "checkup", Date: time.Now().UTC()}
	require.NoError(t, store.Appointments.Create(ctx, a))

	assert.ErrorIs(t, store.Patients.Delete(ctx, 2, p.ID), ErrNotFound)
	assert.ErrorIs(t, store.Equipment.Delete(ctx, 2, e.ID), ErrNotFound)
	assert.ErrorIs(t, store.Appointments.Delete(ctx, 2, a.ID), ErrNotFound)

	_, err := store.Patients.GetByID(ctx, p.ID)
	require.NoError(t, err)
	_, err = store.Equipment.GetByID(ctx, e.ID)
	require.NoError(t, err)
	_, err = store.Appointments.GetByID(ctx, a.ID)
	require.NoError(t, err)
}

func TestGormDeletedRowsAreHidden(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))

	p := &model.Patient{ClinicID: 1, Name: "Jane Doe"}
	require.NoError(t, store.Patients.Create(ctx, p))
	e := &model.Equipment{ClinicID: 1, Name: "ECG", Status: model.StatusMaintenanceRequired}
	require.NoError(t, store.Equipment.Create(ctx, e))

	require.NoError(t, store.Patients.Delete(ctx, 1, p.ID))
	require.NoError(t, store.Equipment.Delete(ctx, 1, e.ID))

	_, err := store.Patients.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Equipment.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Patients.Delete(ctx, 1, p.ID), ErrNotFound)

	count, err := store.Patients.CountByClinic(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
	counts, err := store.Equipment.CountByStatusPerClinic(ctx, model.MaintenanceStatuses)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestGormListUpcoming(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))
	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	for _, offset := range []int{5, -1, 2, 0, 3, 1, 4} {
		require.NoError(t, store.Appointments.Create(ctx, &model.Appointment{
			ClinicID: 1, PatientID: "p", Type: "checkup", Date: base.AddDate(0, 0, offset),
		}))
	}
	require.NoError(t, store.Appointments.Create(ctx, &model.Appointment{
		ClinicID: 2, PatientID: "p", Type: "checkup", Date: base,
	}))

	upcoming, err := store.Appointments.ListUpcoming(ctx, 1, base, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 5)
	for i, a := range upcoming {
		assert.EqualValues(t, 1, a.ClinicID)
		assert.True(t, base.AddDate(0, 0, i).Equal(a.Date), "position %d has %v", i, a.Date)
	}

	unlimited, err := store.Appointments.ListUpcoming(ctx, 1, base, 0)
	require.NoError(t, err)
	assert.Len(t, unlimited, 6)

	all, err := store.Appointments.ListByClinic(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.True(t, base.AddDate(0, 0, -1).Equal(all[0].Date))
}

func TestGormEquipmentCounts(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))

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
