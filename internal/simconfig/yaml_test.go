package simconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
cluster:
  num_racks: 4
  gpus_per_rack: 8
  gpu_memory_gb: 80
  intra_rack_penalty: 1.2
  inter_rack_penalty: 1.8
simulator:
  max_time: "inf"
  starvation_threshold: "3600s"
  time_step: 2
  timeline_interval: 30
  sharing_penalty_map:
    1: 1.0
    2: 0.9
  sharing_penalty_floor: 0.5
  sharing_penalty_aggregation: min
  invert_efficiency: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.NotNil(t, fc.Cluster)
	require.NotNil(t, fc.Simulator)

	assert.Equal(t, 4, fc.Cluster.NumRacks)
	assert.Equal(t, 8, fc.Cluster.GPUsPerRack)
	assert.Equal(t, 80.0, fc.Cluster.GPUMemoryGB)
	assert.Equal(t, 1.2, fc.Cluster.IntraRackPenalty)
	assert.Equal(t, 1.8, fc.Cluster.InterRackPenalty)

	assert.Equal(t, "inf", fc.Simulator.MaxTime)
	assert.Equal(t, "3600s", fc.Simulator.StarvationThreshold)
	assert.Equal(t, 2.0, fc.Simulator.TimeStep)
	assert.Equal(t, 30.0, fc.Simulator.TimelineInterval)
	assert.Equal(t, 0.9, fc.Simulator.SharingPenaltyMap[2])
	assert.True(t, fc.Simulator.InvertEfficiency)
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWorkload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workload.yaml")
	content := `
- task_id: t0
  num_gpus: 2
  memory_per_gpu_gb: 40
  submission_time_s: 0
  estimated_duration_s: 100
- task_id: t1
  num_gpus: 1
  memory_per_gpu_gb: 20
  submission_time_s: 50
  estimated_duration_s: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	specs, err := LoadWorkload(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "t0", specs[0].TaskID)
	assert.Equal(t, 2, specs[0].NumGPUs)
	assert.Equal(t, "t1", specs[1].TaskID)
	assert.Equal(t, 50.0, specs[1].SubmissionTimeSec)
}

func TestLoadWorkloadMissingFile(t *testing.T) {
	_, err := LoadWorkload(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
