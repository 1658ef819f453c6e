package jobs

import (
	"context"
	"sync"
	"testing"

	"clinic-service/internal/model"
	"clinic-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gaugeRecorder struct {
	mu     sync.Mutex
	values map[uint]int64
}

func (g *gaugeRecorder) set(clinicID uint, n int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[clinicID] = n
}

func TestMaintenanceSweepRun(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.NewDB())
	gauge := &gaugeRecorder{values: map[uint]int64{}}

	sweep := NewMaintenanceSweep(store.Equipment, zap.NewNop())
	sweep.publish = gauge.set

	broken := &model.Equipment{ClinicID: 1, Name: "a", Status: model.StatusMaintenanceRequired}
	require.NoError(t, store.Equipment.Create(ctx, broken))
	require.NoError(t, store.Equipment.Create(ctx, &model.Equipment{ClinicID: 1, Name: "b", Status: model.StatusUnderMaintenance}))
	require.NoError(t, store.Equipment.Create(ctx, &model.Equipment{ClinicID: 2, Name: "c", Status: model.StatusOperational}))
	require.NoError(t, store.Equipment.Create(ctx, &model.Equipment{ClinicID: 3, Name: "d", Status: model.StatusMaintenanceRequired}))

	require.NoError(t, sweep.Run(ctx))
	assert.Equal(t, map[uint]int64{1: 2, 3: 1}, gauge.values)

	require.NoError(t, store.Equipment.Delete(ctx, 3, 4))
	require.NoError(t, sweep.Run(ctx))
	assert.Equal(t, map[uint]int64{1: 2, 3: 0}, gauge.values)
}

func TestMaintenanceSweepStart(t *testing.T) {
	sweep := NewMaintenanceSweep(memory.NewStore(memory.NewDB()).Equipment, zap.NewNop())
	sweep.publish = func(uint, int64) {}

	c, err := sweep.Start("")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = sweep.Start("not a schedule")
	assert.Error(t, err)

	c, err = sweep.Start("*/5 * * * *")
	require.NoError(t, err)
	require.NotNil(t, c)
	<-c.Stop().Done()
}
