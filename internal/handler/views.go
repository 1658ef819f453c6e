package handler

import (
	"clinic-service/internal/model"
	"clinic-service/pkg/dateutil"
)

type patientView struct {
	model.Patient
	DateOfBirthDisplay string `json:"dateOfBirthDisplay"`
}

func newPatientView(p model.Patient) patientView {
	return patientView{Patient: p, DateOfBirthDisplay: dateutil.ToDisplayLong(p.DateOfBirth)}
}

func newPatientViews(patients []model.Patient) []patientView {
	out := make([]patientView, 0, len(patients))
	for _, p := range patients {
		out = append(out, newPatientView(p))
	}
	return out
}

type appointmentView struct {
	model.Appointment
	DisplayDate string `json:"displayDate"`
	DisplayTime string `json:"displayTime"`
}

func newAppointmentView(a model.Appointment) appointmentView {
	return appointmentView{
		Appointment: a,
		DisplayDate: dateutil.ToDisplayLong(a.Date.Format("2006-01-02")),
		DisplayTime: dateutil.To12Hour(a.Date.Format("15:04")),
	}
}

func newAppointmentViews(appointments []model.Appointment) []appointmentView {
	out := make([]appointmentView, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, newAppointmentView(a))
	}
	return out
}

func equipmentList(equipment []model.Equipment) []model.Equipment {
	if equipment == nil {
		return []model.Equipment{}
	}
	return equipment
}
