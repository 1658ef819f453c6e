package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-service/internal/model"
	"clinic-service/prometheus"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository returns a gorm backed PatientRepository
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) ListByClinic(ctx context.Context, clinicID uint) ([]model.Patient, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var patients []model.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Patient{}).Where("clinic_id = ?", clinicID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*model.Patient, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("create patient: %w", translate(err))
	}
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("update patient %d: %w", patient.ID, translate(err))
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, clinicID, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&model.Patient{})
	if result.Error != nil {
		return fmt.Errorf("delete patient %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
