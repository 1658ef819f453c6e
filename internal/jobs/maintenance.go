// Package jobs runs the service's scheduled background work
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/prometheus"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 30 * time.Second

// MaintenanceSweep publishes, per clinic, how much equipment is waiting for maintenance
type MaintenanceSweep struct {
	equipment repository.EquipmentRepository
	log       *zap.Logger
	publish   func(clinicID uint, count int64)

	mu   sync.Mutex
	last map[uint]int64
}

// NewMaintenanceSweep creates a sweep that reports through the prometheus gauge
func NewMaintenanceSweep(equipment repository.EquipmentRepository, log *zap.Logger) *MaintenanceSweep {
	return &MaintenanceSweep{
		equipment: equipment,
		log:       log,
		publish:   prometheus.SetEquipmentNeedingMaintenance,
		last:      make(map[uint]int64),
	}
}

// Run counts equipment needing maintenance across all clinics once.
// Clinics that dropped out since the previous run are reset to zero.
func (s *MaintenanceSweep) Run(ctx context.Context) error {
	counts, err := s.equipment.CountByStatusPerClinic(ctx, model.MaintenanceStatuses)
	if err != nil {
		return fmt.Errorf("count equipment needing maintenance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for clinicID := range s.last {
		if _, ok := counts[clinicID]; !ok {
			s.publish(clinicID, 0)
		}
	}
	for clinicID, n := range counts {
		s.publish(clinicID, n)
	}
	s.last = counts

	s.log.Debug("Maintenance sweep finished", zap.Int("clinics", len(counts)))
	return nil
}

// Start schedules the sweep with a standard five-field cron expression and
// runs it once immediately. An empty schedule returns a nil scheduler.
func (s *MaintenanceSweep) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		s.log.Info("Maintenance sweep disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, s.runScheduled); err != nil {
		return nil, fmt.Errorf("schedule maintenance sweep %q: %w", schedule, err)
	}

	go s.runScheduled()
	c.Start()
	s.log.Info("Maintenance sweep scheduled", zap.String("schedule", schedule))
	return c, nil
}

func (s *MaintenanceSweep) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		s.log.Error("Maintenance sweep failed", zap.Error(err))
	}
}
