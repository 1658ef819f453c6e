package service

import (
	"context"
	"errors"
	"strings"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/prometheus"
)

// ClinicInput is the profile update payload
type ClinicInput struct {
	Name string `json:"name"`
}

// ClinicService manages the clinic profile of the caller
type ClinicService struct {
	clinics repository.ClinicRepository
}

// NewClinicService creates a ClinicService
func NewClinicService(clinics repository.ClinicRepository) *ClinicService {
	return &ClinicService{clinics: clinics}
}

// Get returns the caller's clinic
func (s *ClinicService) Get(ctx context.Context, scope Scope) (*model.Clinic, error) {
	clinic, err := s.clinics.GetByID(ctx, scope.ClinicID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return clinic, err
}

// Update renames the caller's clinic
func (s *ClinicService) Update(ctx context.Context, scope Scope, in ClinicInput) (*model.Clinic, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "Clinic name is required")
	}

	clinic := &model.Clinic{ID: scope.ClinicID, Name: name}
	if err := s.clinics.Update(ctx, clinic); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	prometheus.RecordOperation("clinic", "update")

	// re-read so timestamps reflect the stored row
	return s.Get(ctx, scope)
}
