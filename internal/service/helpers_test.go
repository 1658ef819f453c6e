package service

import (
	"fmt"
	"testing"
	"time"

	"clinic-service/internal/repository"
	"clinic-service/internal/repository/memory"

	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2030, time.June, 9, 10, 0, 0, 0, time.UTC)

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID, clinicID uint) (string, error) {
	return fmt.Sprintf("token-%d-%d", userID, clinicID), nil
}

type services struct {
	store        *repository.Store
	auth         *AuthService
	clinics      *ClinicService
	patients     *PatientService
	appointments *AppointmentService
	equipment    *EquipmentService
	dashboard    *DashboardService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := memory.NewStore(memory.NewDB())

	auth := NewAuthService(store.Users, store.Clinics, fakeTokens{})
	auth.cost = bcrypt.MinCost

	appointments := NewAppointmentService(store.Appointments, time.UTC)
	appointments.now = func() time.Time { return fixedNow }

	patients := NewPatientService(store.Patients)
	equipment := NewEquipmentService(store.Equipment)

	return &services{
		store:        store,
		auth:         auth,
		clinics:      NewClinicService(store.Clinics),
		patients:     patients,
		appointments: appointments,
		equipment:    equipment,
		dashboard:    NewDashboardService(patients, appointments, equipment),
	}
}

func strPtr(s string) *string { return &s }
