package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-service/internal/model"
	"clinic-service/prometheus"

	"gorm.io/gorm"
)

type equipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository returns a gorm backed EquipmentRepository
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) ListByClinic(ctx context.Context, clinicID uint) ([]model.Equipment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var equipment []model.Equipment
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Order("id").Find(&equipment).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}

func (r *equipmentRepository) ListByStatus(ctx context.Context, clinicID uint, statuses []string) ([]model.Equipment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var equipment []model.Equipment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND status IN ?", clinicID, statuses).
		Order("id").
		Find(&equipment).Error
	if err != nil {
		return nil, fmt.Errorf("list equipment by status: %w", err)
	}
	return equipment, nil
}

func (r *equipmentRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Equipment{}).Where("clinic_id = ?", clinicID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return count, nil
}

func (r *equipmentRepository) CountByStatusPerClinic(ctx context.Context, statuses []string) (map[uint]int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var rows []struct {
		ClinicID uint
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Select("clinic_id, COUNT(*) AS total").
		Where("status IN ?", statuses).
		Group("clinic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count equipment per clinic: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ClinicID] = row.Total
	}
	return counts, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id uint) (*model.Equipment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var equipment model.Equipment
	if err := r.db.WithContext(ctx).First(&equipment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &equipment, nil
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := r.db.WithContext(ctx).Create(equipment).Error; err != nil {
		return fmt.Errorf("create equipment: %w", translate(err))
	}
	return nil
}

// Update writes every column except clinic_id and created_at
func (r *equipmentRepository) Update(ctx context.Context, equipment *model.Equipment) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	err := r.db.WithContext(ctx).
		Model(equipment).
		Select("*").
		Omit("clinic_id", "created_at").
		Updates(equipment).Error
	if err != nil {
		return fmt.Errorf("update equipment %d: %w", equipment.ID, translate(err))
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, clinicID, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&model.Equipment{})
	if result.Error != nil {
		return fmt.Errorf("delete equipment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
