package service

import (
	"context"
	"errors"
	"strings"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/pkg/dateutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"

	"go.uber.org/zap"
)

// PatientInput is the create and update payload for patients
type PatientInput struct {
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Phone                  string `json:"phone"`
	DateOfBirth            string `json:"dateOfBirth"`
	Gender                 string `json:"gender"`
	Condition              string `json:"condition"`
	Address                string `json:"address"`
	EmergencyContactName   string `json:"emergencyContactName"`
	EmergencyContactNumber string `json:"emergencyContactNumber"`
	Notes                  string `json:"notes"`
}

// Validate checks required fields in the order clients report them
func (in PatientInput) Validate() error {
	switch {
	case strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "":
		return invalid("name", "Name is required")
	case strings.TrimSpace(in.Phone) == "":
		return invalid("phone", "Phone is required")
	case strings.TrimSpace(in.DateOfBirth) == "":
		return invalid("dateOfBirth", "Date of birth is required")
	case strings.TrimSpace(in.Gender) == "":
		return invalid("gender", "Gender is required")
	}
	return nil
}

func (in PatientInput) apply(p *model.Patient) {
	p.Name = strings.TrimSpace(in.FirstName + " " + in.LastName)
	p.Phone = in.Phone
	p.DateOfBirth = dateutil.Normalize(in.DateOfBirth)
	p.Gender = in.Gender
	p.Condition = in.Condition
	p.Address = in.Address
	p.EmergencyContactName = in.EmergencyContactName
	p.EmergencyContactNumber = in.EmergencyContactNumber
	p.Notes = in.Notes
}

// PatientService manages patients of the caller's clinic
type PatientService struct {
	patients repository.PatientRepository
}

// NewPatientService creates a PatientService
func NewPatientService(patients repository.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// List returns every patient of the clinic
func (s *PatientService) List(ctx context.Context, scope Scope) ([]model.Patient, error) {
	return s.patients.ListByClinic(ctx, scope.ClinicID)
}

// Count returns the number of patients of the clinic
func (s *PatientService) Count(ctx context.Context, scope Scope) (int64, error) {
	return s.patients.CountByClinic(ctx, scope.ClinicID)
}

// Create validates and stores a new patient
func (s *PatientService) Create(ctx context.Context, scope Scope, in PatientInput) (*model.Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	patient := &model.Patient{ClinicID: scope.ClinicID}
	in.apply(patient)
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("patient", "create")
	logger.FromContext(ctx).Debug("Patient created", zap.Uint("clinic_id", scope.ClinicID), zap.Uint("patient_id", patient.ID))
	return patient, nil
}

// Update replaces the editable fields of a patient owned by the clinic
func (s *PatientService) Update(ctx context.Context, scope Scope, id uint, in PatientInput) (*model.Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	patient, err := s.owned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	in.apply(patient)
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("patient", "update")
	return patient, nil
}

// Delete removes a patient owned by the clinic
func (s *PatientService) Delete(ctx context.Context, scope Scope, id uint) error {
	if err := s.patients.Delete(ctx, scope.ClinicID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	prometheus.RecordOperation("patient", "delete")
	return nil
}

func (s *PatientService) owned(ctx context.Context, scope Scope, id uint) (*model.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if patient.ClinicID != scope.ClinicID {
		return nil, ErrNotFoundOrUnauthorized
	}
	return patient, nil
}
