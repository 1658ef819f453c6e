package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/pkg/dateutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"

	"go.uber.org/zap"
)

// EquipmentInput is the create payload for equipment.
// CustomMaintenanceDays is read only when MaintenanceInterval is "custom".
type EquipmentInput struct {
	Name                  string `json:"name"`
	Model                 string `json:"model"`
	Manufacturer          string `json:"manufacturer"`
	SerialNumber          string `json:"serialNumber"`
	PurchaseDate          string `json:"purchaseDate"`
	WarrantyExpiry        string `json:"warrantyExpiry"`
	Status                string `json:"status"`
	Location              string `json:"location"`
	MaintenanceInterval   string `json:"maintenanceInterval"`
	CustomMaintenanceDays string `json:"customMaintenanceDays"`
	Notes                 string `json:"notes"`
}

// EquipmentPatch is a partial update; nil fields are left untouched.
// There is no way to set clinicId, createdAt or customMaintenanceDays through it.
type EquipmentPatch struct {
	Name                *string `json:"name"`
	Model               *string `json:"model"`
	Manufacturer        *string `json:"manufacturer"`
	SerialNumber        *string `json:"serialNumber"`
	PurchaseDate        *string `json:"purchaseDate"`
	WarrantyExpiry      *string `json:"warrantyExpiry"`
	Status              *string `json:"status"`
	Location            *string `json:"location"`
	MaintenanceInterval *string `json:"maintenanceInterval"`
	Notes               *string `json:"notes"`

	// CustomDays resolves a "custom" MaintenanceInterval; it is never stored as is
	CustomDays *string `json:"customMaintenanceDays"`
}

// EquipmentService manages equipment of the caller's clinic
type EquipmentService struct {
	equipment repository.EquipmentRepository
}

// NewEquipmentService creates an EquipmentService
func NewEquipmentService(equipment repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{equipment: equipment}
}

// List returns every piece of equipment of the clinic
func (s *EquipmentService) List(ctx context.Context, scope Scope) ([]model.Equipment, error) {
	return s.equipment.ListByClinic(ctx, scope.ClinicID)
}

// ListNeedingMaintenance returns equipment whose status is a maintenance status
func (s *EquipmentService) ListNeedingMaintenance(ctx context.Context, scope Scope) ([]model.Equipment, error) {
	return s.equipment.ListByStatus(ctx, scope.ClinicID, model.MaintenanceStatuses)
}

// Count returns the number of equipment records of the clinic
func (s *EquipmentService) Count(ctx context.Context, scope Scope) (int64, error) {
	return s.equipment.CountByClinic(ctx, scope.ClinicID)
}

// Create validates and stores new equipment
func (s *EquipmentService) Create(ctx context.Context, scope Scope, in EquipmentInput) (*model.Equipment, error) {
	for _, v := range []string{in.Name, in.Model, in.Manufacturer, in.SerialNumber, in.PurchaseDate, in.Status, in.Location} {
		if blank(v) {
			return nil, invalid("", "Missing required fields")
		}
	}
	if !model.IsValidEquipmentStatus(in.Status) {
		return nil, invalid("status", "Invalid status")
	}
	interval, err := resolveInterval(in.MaintenanceInterval, in.CustomMaintenanceDays)
	if err != nil {
		return nil, err
	}

	equipment := &model.Equipment{
		ClinicID:            scope.ClinicID,
		Name:                strings.TrimSpace(in.Name),
		Model:               in.Model,
		Manufacturer:        in.Manufacturer,
		SerialNumber:        in.SerialNumber,
		PurchaseDate:        dateutil.Normalize(in.PurchaseDate),
		WarrantyExpiry:      dateutil.Normalize(in.WarrantyExpiry),
		Status:              in.Status,
		Location:            in.Location,
		MaintenanceInterval: interval,
		Notes:               in.Notes,
	}
	equipment.SyncMaintenanceBookkeeping()

	if err := s.equipment.Create(ctx, equipment); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("equipment", "create")
	if equipment.NeedsMaintenance() {
		logMaintenanceFlag(ctx, equipment)
	}
	return equipment, nil
}

// Update applies a partial patch to equipment owned by the clinic
func (s *EquipmentService) Update(ctx context.Context, scope Scope, id uint, patch EquipmentPatch) (*model.Equipment, error) {
	equipment, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if equipment.ClinicID != scope.ClinicID {
		return nil, ErrNotFoundOrUnauthorized
	}
	wasFlagged := equipment.NeedsMaintenance()

	if patch.Name != nil {
		if blank(*patch.Name) {
			return nil, invalid("name", "Name is required")
		}
		equipment.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Status != nil {
		if !model.IsValidEquipmentStatus(*patch.Status) {
			return nil, invalid("status", "Invalid status")
		}
		equipment.Status = *patch.Status
	}
	if patch.MaintenanceInterval != nil {
		custom := ""
		if patch.CustomDays != nil {
			custom = *patch.CustomDays
		}
		interval, err := resolveInterval(*patch.MaintenanceInterval, custom)
		if err != nil {
			return nil, err
		}
		equipment.MaintenanceInterval = interval
	}
	setString(&equipment.Model, patch.Model)
	setString(&equipment.Manufacturer, patch.Manufacturer)
	setString(&equipment.SerialNumber, patch.SerialNumber)
	setString(&equipment.Location, patch.Location)
	setString(&equipment.Notes, patch.Notes)
	if patch.PurchaseDate != nil {
		equipment.PurchaseDate = dateutil.Normalize(*patch.PurchaseDate)
	}
	if patch.WarrantyExpiry != nil {
		equipment.WarrantyExpiry = dateutil.Normalize(*patch.WarrantyExpiry)
	}
	equipment.SyncMaintenanceBookkeeping()

	if err := s.equipment.Update(ctx, equipment); err != nil {
		return nil, err
	}

	prometheus.RecordOperation("equipment", "update")
	if !wasFlagged && equipment.NeedsMaintenance() {
		logMaintenanceFlag(ctx, equipment)
	}
	return equipment, nil
}

// Delete removes equipment owned by the clinic
func (s *EquipmentService) Delete(ctx context.Context, scope Scope, id uint) error {
	if err := s.equipment.Delete(ctx, scope.ClinicID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	prometheus.RecordOperation("equipment", "delete")
	return nil
}

// resolveInterval turns the submitted interval into the stored day count
func resolveInterval(interval, customDays string) (string, error) {
	interval = strings.TrimSpace(interval)
	if interval == model.CustomMaintenanceInterval {
		interval = strings.TrimSpace(customDays)
		if interval == "" {
			return "", invalid("customMaintenanceDays", "Custom maintenance days are required")
		}
	}
	if interval == "" {
		return "", nil
	}
	if days, err := strconv.Atoi(interval); err != nil || days <= 0 {
		return "", invalid("maintenanceInterval", "Maintenance interval must be a positive number of days")
	}
	return interval, nil
}

func logMaintenanceFlag(ctx context.Context, e *model.Equipment) {
	logger.FromContext(ctx).Info("Equipment flagged for maintenance",
		zap.Uint("clinic_id", e.ClinicID),
		zap.Uint("equipment_id", e.ID),
		zap.String("status", e.Status))
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
