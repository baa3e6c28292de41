// Package workload synthesizes and loads job workloads. Per spec.md §1
// this is an external collaborator to the simulator core — it speaks
// only through JobSpec and the Generator's exported surface.
package workload

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/nvidia/gpusim/internal/job"
)

// JobSpec is the external workload-input shape of spec.md §6:
// (task_id, num_gpus, memory_per_gpu_gb, submission_time_s, estimated_duration_s).
type JobSpec struct {
	TaskID             string  `yaml:"task_id" json:"task_id"`
	NumGPUs            int     `yaml:"num_gpus" json:"num_gpus"`
	MemoryPerGPUGB     float64 `yaml:"memory_per_gpu_gb" json:"memory_per_gpu_gb"`
	SubmissionTimeSec  float64 `yaml:"submission_time_s" json:"submission_time_s"`
	EstimatedDurationS float64 `yaml:"estimated_duration_s" json:"estimated_duration_s"`
}

// ToJob constructs the simulator's internal Job from a JobSpec,
// assigning a random id via google/uuid if TaskID is empty.
func (s JobSpec) ToJob() *job.Job {
	id := s.TaskID
	if id == "" {
		id = uuid.NewString()
	}
	return job.New(id, s.NumGPUs, s.MemoryPerGPUGB, s.SubmissionTimeSec, s.EstimatedDurationS)
}

// GeneratorConfig mirrors the Python original's TaskGenerator.generate_tasks
// keyword arguments.
type GeneratorConfig struct {
	NumTasks         int
	MinGPUs, MaxGPUs int
	MinMemory        float64
	MaxMemory        float64
	MinDuration      float64
	MaxDuration      float64
	SubmissionWindow float64
}

// DefaultGeneratorConfig mirrors the original's generate_tasks defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NumTasks:         100,
		MinGPUs:          1,
		MaxGPUs:          8,
		MinMemory:        4.0,
		MaxMemory:        24.0,
		MinDuration:      100.0,
		MaxDuration:      3600.0,
		SubmissionWindow: 3600.0,
	}
}

// Generator produces synthetic workloads with a seeded, reproducible
// PRNG (spec.md §5: "Random workload generation is seeded externally;
// the core contains no other randomness").
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded deterministically from seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate produces cfg.NumTasks JobSpecs with uniformly distributed
// GPU count, per-GPU memory, duration, and submission time, named
// "task-0".."task-N-1" to match the Python original's naming.
func (g *Generator) Generate(cfg GeneratorConfig) []JobSpec {
	specs := make([]JobSpec, 0, cfg.NumTasks)
	for i := 0; i < cfg.NumTasks; i++ {
		specs = append(specs, JobSpec{
			TaskID:             taskName(i),
			NumGPUs:            intInRange(g.rng, cfg.MinGPUs, cfg.MaxGPUs),
			MemoryPerGPUGB:     floatInRange(g.rng, cfg.MinMemory, cfg.MaxMemory),
			SubmissionTimeSec:  floatInRange(g.rng, 0, cfg.SubmissionWindow),
			EstimatedDurationS: floatInRange(g.rng, cfg.MinDuration, cfg.MaxDuration),
		})
	}
	return specs
}

func taskName(i int) string {
	return "task-" + strconv.Itoa(i)
}

func intInRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func floatInRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
