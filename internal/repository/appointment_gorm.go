package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-service/internal/model"
	"clinic-service/prometheus"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository returns a gorm backed AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) ListByClinic(ctx context.Context, clinicID uint) ([]model.Appointment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, clinicID uint, from time.Time, limit int) ([]model.Appointment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.WithContext(ctx).
		Where("clinic_id = ? AND date >= ?", clinicID, from).
		Order("date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var appointments []model.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*model.Appointment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var appointment model.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("create appointment: %w", translate(err))
	}
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("update appointment %d: %w", appointment.ID, translate(err))
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, clinicID, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&model.Appointment{})
	if result.Error != nil {
		return fmt.Errorf("delete appointment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
