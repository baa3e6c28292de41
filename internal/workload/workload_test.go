package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsReproducibleForSameSeed(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.NumTasks = 20

	a := NewGenerator(42).Generate(cfg)
	b := NewGenerator(42).Generate(cfg)

	require.Equal(t, len(a), len(b))
	assert.Equal(t, a, b)
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.NumTasks = 20

	a := NewGenerator(1).Generate(cfg)
	b := NewGenerator(2).Generate(cfg)

	assert.NotEqual(t, a, b)
}

func TestGenerateRespectsRanges(t *testing.T) {
	cfg := GeneratorConfig{
		NumTasks:         50,
		MinGPUs:          2,
		MaxGPUs:          4,
		MinMemory:        10,
		MaxMemory:        20,
		MinDuration:      100,
		MaxDuration:      200,
		SubmissionWindow: 1000,
	}
	specs := NewGenerator(7).Generate(cfg)
	require.Len(t, specs, 50)

	for _, s := range specs {
		assert.GreaterOrEqual(t, s.NumGPUs, 2)
		assert.LessOrEqual(t, s.NumGPUs, 4)
		assert.GreaterOrEqual(t, s.MemoryPerGPUGB, 10.0)
		assert.LessOrEqual(t, s.MemoryPerGPUGB, 20.0)
		assert.GreaterOrEqual(t, s.EstimatedDurationS, 100.0)
		assert.LessOrEqual(t, s.EstimatedDurationS, 200.0)
		assert.GreaterOrEqual(t, s.SubmissionTimeSec, 0.0)
		assert.LessOrEqual(t, s.SubmissionTimeSec, 1000.0)
	}
}

func TestGenerateNamesTasksSequentially(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.NumTasks = 3
	specs := NewGenerator(1).Generate(cfg)
	assert.Equal(t, []string{"task-0", "task-1", "task-2"}, []string{specs[0].TaskID, specs[1].TaskID, specs[2].TaskID})
}

func TestJobSpecToJobAssignsUUIDWhenTaskIDEmpty(t *testing.T) {
	spec := JobSpec{NumGPUs: 1, MemoryPerGPUGB: 10, SubmissionTimeSec: 0, EstimatedDurationS: 50}
	j := spec.ToJob()
	assert.NotEmpty(t, j.ID)
}

func TestJobSpecToJobPreservesFields(t *testing.T) {
	spec := JobSpec{TaskID: "t0", NumGPUs: 2, MemoryPerGPUGB: 40, SubmissionTimeSec: 10, EstimatedDurationS: 100}
	j := spec.ToJob()
	assert.Equal(t, "t0", j.ID)
	assert.Equal(t, 2, j.RequestedGPUs)
	assert.Equal(t, 40.0, j.MemoryPerGPUGB)
}
