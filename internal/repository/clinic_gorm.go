package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-service/internal/model"
	"clinic-service/prometheus"

	"gorm.io/gorm"
)

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository returns a gorm backed ClinicRepository
func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) GetByID(ctx context.Context, id uint) (*model.Clinic, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var clinic model.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, translate(err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := r.db.WithContext(ctx).Model(clinic).Update("name", clinic.Name)
	if result.Error != nil {
		return fmt.Errorf("update clinic %d: %w", clinic.ID, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
