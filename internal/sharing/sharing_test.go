package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvidia/gpusim/internal/simconfig"
)

func testCfg() simconfig.SharingConfig {
	return simconfig.SharingConfig{
		Map:         map[int]float64{1: 1.0, 2: 0.9, 3: 0.8},
		Floor:       0.5,
		Aggregation: "min",
	}
}

func TestGPUEfficiencyLookup(t *testing.T) {
	cfg := testCfg()
	assert.Equal(t, 1.0, GPUEfficiency(cfg, 1))
	assert.Equal(t, 0.9, GPUEfficiency(cfg, 2))
	assert.Equal(t, 0.8, GPUEfficiency(cfg, 3))
}

func TestGPUEfficiencyBeyondMaxKeyReusesMax(t *testing.T) {
	cfg := testCfg()
	assert.Equal(t, 0.8, GPUEfficiency(cfg, 10))
}

func TestGPUEfficiencyClampsToFloor(t *testing.T) {
	cfg := testCfg()
	cfg.Map[2] = 0.1
	assert.Equal(t, 0.5, GPUEfficiency(cfg, 2))
}

func TestGPUEfficiencyCustomFnOverridesMap(t *testing.T) {
	cfg := testCfg()
	cfg.Fn = func(k int) float64 { return 0.42 }
	assert.Equal(t, 0.5, GPUEfficiency(cfg, 2)) // 0.42 clamped up to floor 0.5
}

func TestGPUEfficiencyCustomFnConsultedAtSingleOccupant(t *testing.T) {
	cfg := testCfg()
	cfg.Fn = func(k int) float64 { return 0.7 }
	assert.Equal(t, 0.7, GPUEfficiency(cfg, 1))
	assert.Equal(t, 0.7, GPUEfficiency(cfg, 0))
}

func TestAggregateMin(t *testing.T) {
	cfg := testCfg()
	cfg.Aggregation = "min"
	assert.Equal(t, 0.7, Aggregate(cfg, []float64{0.9, 0.7, 1.0}))
}

func TestAggregateAverage(t *testing.T) {
	cfg := testCfg()
	cfg.Aggregation = "average"
	assert.InDelta(t, (0.9+0.7+1.0)/3, Aggregate(cfg, []float64{0.9, 0.7, 1.0}), 1e-9)
}

func TestAggregateEmptyDefaultsToOne(t *testing.T) {
	cfg := testCfg()
	assert.Equal(t, 1.0, Aggregate(cfg, nil))
}
