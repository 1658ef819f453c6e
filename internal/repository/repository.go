// Package repository holds the persistence contracts used by the services
// and their gorm implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"clinic-service/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate record")
)

// ClinicRepository persists clinics
type ClinicRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
}

// UserRepository persists users
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// CreateWithClinic stores clinic and user atomically and sets user.ClinicID.
	CreateWithClinic(ctx context.Context, clinic *model.Clinic, user *model.User) error
}

// PatientRepository persists patients
type PatientRepository interface {
	ListByClinic(ctx context.Context, clinicID uint) ([]model.Patient, error)
	CountByClinic(ctx context.Context, clinicID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, clinicID, id uint) error
}

// AppointmentRepository persists appointments
type AppointmentRepository interface {
	// ListByClinic returns every appointment of the clinic ordered by date.
	ListByClinic(ctx context.Context, clinicID uint) ([]model.Appointment, error)
	// ListUpcoming returns appointments at or after from, ordered by date.
	// A limit of zero or less returns all of them.
	ListUpcoming(ctx context.Context, clinicID uint, from time.Time, limit int) ([]model.Appointment, error)
	GetByID(ctx context.Context, id uint) (*model.Appointment, error)
	Create(ctx context.Context, appointment *model.Appointment) error
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, clinicID, id uint) error
}

// EquipmentRepository persists equipment
type EquipmentRepository interface {
	ListByClinic(ctx context.Context, clinicID uint) ([]model.Equipment, error)
	ListByStatus(ctx context.Context, clinicID uint, statuses []string) ([]model.Equipment, error)
	CountByClinic(ctx context.Context, clinicID uint) (int64, error)
	// CountByStatusPerClinic counts matching equipment for every clinic that has any.
	CountByStatusPerClinic(ctx context.Context, statuses []string) (map[uint]int64, error)
	GetByID(ctx context.Context, id uint) (*model.Equipment, error)
	Create(ctx context.Context, equipment *model.Equipment) error
	Update(ctx context.Context, equipment *model.Equipment) error
	Delete(ctx context.Context, clinicID, id uint) error
}

// Store bundles every repository the service layer needs
type Store struct {
	Clinics      ClinicRepository
	Users        UserRepository
	Patients     PatientRepository
	Appointments AppointmentRepository
	Equipment    EquipmentRepository
}

// NewGormStore builds a Store backed by db
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Clinics:      NewClinicRepository(db),
		Users:        NewUserRepository(db),
		Patients:     NewPatientRepository(db),
		Appointments: NewAppointmentRepository(db),
		Equipment:    NewEquipmentRepository(db),
	}
}

// translate maps gorm errors onto the package sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
