package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/pkg/dateutil"
	"clinic-service/prometheus"
)

// AppointmentInput is the create and update payload for appointments.
// DoctorID is stored in the appointment's doctor field.
type AppointmentInput struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
}

func (in AppointmentInput) missing(requireDoctor bool) bool {
	return blank(in.PatientID) || blank(in.Date) || blank(in.Time) || blank(in.Type) ||
		(requireDoctor && blank(in.DoctorID))
}

// AppointmentService manages appointments of the caller's clinic
type AppointmentService struct {
	appointments repository.AppointmentRepository
	now          func() time.Time
	loc          *time.Location
}

// NewAppointmentService creates an AppointmentService. Date and time inputs
// are interpreted in loc; nil means time.Local.
func NewAppointmentService(appointments repository.AppointmentRepository, loc *time.Location) *AppointmentService {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentService{
		appointments: appointments,
		now:          time.Now,
		loc:          loc,
	}
}

// List returns every appointment of the clinic in date order
func (s *AppointmentService) List(ctx context.Context, scope Scope) ([]model.Appointment, error) {
	return s.appointments.ListByClinic(ctx, scope.ClinicID)
}

// ListUpcoming returns appointments from now on in date order.
// limit <= 0 returns all of them.
func (s *AppointmentService) ListUpcoming(ctx context.Context, scope Scope, limit int) ([]model.Appointment, error) {
	return s.appointments.ListUpcoming(ctx, scope.ClinicID, s.now(), limit)
}

// Create schedules a new appointment; it must not lie in the past
func (s *AppointmentService) Create(ctx context.Context, scope Scope, in AppointmentInput) (*model.Appointment, error) {
	if in.missing(false) {
		return nil, invalid("", "Missing required fields")
	}

	at, err := dateutil.CombineDateTime(in.Date, in.Time, s.loc)
	if err != nil {
		return nil, invalid("date", "Invalid date or time")
	}
	if at.Before(s.now()) {
		return nil, invalid("date", "Cannot schedule appointment in the past")
	}

	appointment := &model.Appointment{
		ClinicID:  scope.ClinicID,
		PatientID: strings.TrimSpace(in.PatientID),
		Doctor:    strings.TrimSpace(in.DoctorID),
		Date:      at,
		Type:      in.Type,
		Notes:     in.Notes,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("appointment", "create")
	return appointment, nil
}

// Update reschedules or edits an appointment owned by the clinic
func (s *AppointmentService) Update(ctx context.Context, scope Scope, id uint, in AppointmentInput) (*model.Appointment, error) {
	if in.missing(true) {
		return nil, invalid("", "Missing required fields")
	}

	at, err := dateutil.CombineDateTime(in.Date, in.Time, s.loc)
	if err != nil {
		return nil, invalid("date", "Invalid date or time")
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if appointment.ClinicID != scope.ClinicID {
		return nil, ErrNotFoundOrUnauthorized
	}

	appointment.PatientID = strings.TrimSpace(in.PatientID)
	appointment.Doctor = strings.TrimSpace(in.DoctorID)
	appointment.Date = at
	appointment.Type = in.Type
	appointment.Notes = in.Notes
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("appointment", "update")
	return appointment, nil
}

// Delete removes an appointment owned by the clinic
func (s *AppointmentService) Delete(ctx context.Context, scope Scope, id uint) error {
	if err := s.appointments.Delete(ctx, scope.ClinicID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	prometheus.RecordOperation("appointment", "delete")
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
