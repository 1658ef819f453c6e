package service

import (
	"context"

	"clinic-service/internal/model"
)

// UpcomingOnDashboard caps the appointments shown on the dashboard
const UpcomingOnDashboard = 5

// Dashboard is the clinic overview
type Dashboard struct {
	Patients                    int64
	UpcomingAppointments        []model.Appointment
	EquipmentNeedingMaintenance []model.Equipment
	TotalEquipment              int64
}

// DashboardService composes the record services into one overview
type DashboardService struct {
	patients     *PatientService
	appointments *AppointmentService
	equipment    *EquipmentService
}

// NewDashboardService creates a DashboardService
func NewDashboardService(patients *PatientService, appointments *AppointmentService, equipment *EquipmentService) *DashboardService {
	return &DashboardService{patients: patients, appointments: appointments, equipment: equipment}
}

// Summarize collects the counts and lists shown on the clinic dashboard
func (s *DashboardService) Summarize(ctx context.Context, scope Scope) (*Dashboard, error) {
	patients, err := s.patients.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.appointments.ListUpcoming(ctx, scope, UpcomingOnDashboard)
	if err != nil {
		return nil, err
	}
	needing, err := s.equipment.ListNeedingMaintenance(ctx, scope)
	if err != nil {
		return nil, err
	}
	total, err := s.equipment.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Patients:                    patients,
		UpcomingAppointments:        upcoming,
		EquipmentNeedingMaintenance: needing,
		TotalEquipment:              total,
	}, nil
}
