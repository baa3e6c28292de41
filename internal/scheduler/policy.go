// Package scheduler defines the common scheduling-policy contract
// (spec.md §4.4) and the factory that selects among the closed set of
// policy keys (spec.md §6). Each policy (first-fit, best-fit,
// rack-aware, min-gpu-time, pollux, pollux-patient) implements Policy
// the way the teacher's scheduler plugins implement a small capability
// interface instead of an inheritance tree (spec.md §9).
package scheduler

import (
	"fmt"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/simconfig"
)

// Policy is a pluggable scheduling policy: a (mostly) pure function of
// current cluster occupancy and the pending queue, per spec.md §4.4.
type Policy interface {
	// Name returns the policy's scheduler key.
	Name() string

	// Schedule considers pending jobs (all in PENDING state) at virtual
	// time now and returns a map of job id to the ordered GPU ids it
	// placed that job on. Implementations MUST apply every returned
	// allocation to the cluster (GPU reserved memory + occupancy)
	// before returning, and MUST NOT place the same GPU id in more than
	// one placement within a single call. Implementations MUST NOT
	// mutate job state; that is the simulator's job.
	Schedule(pending []*job.Job, now float64) map[string][]string

	// Deallocate releases j's placement from the cluster. Called by the
	// simulator exactly once per completed job.
	Deallocate(j *job.Job)
}

// Config aggregates every policy-specific parameter set so the
// factory can build any policy from one value, the way the teacher's
// options.ServerOption aggregates every plugin's flags in one struct.
type Config struct {
	MinGPUTime    simconfig.MinGPUTimeConfig
	Pollux        simconfig.PolluxConfig
	PolluxPatient simconfig.PolluxPatientConfig
	Sharing       simconfig.SharingConfig
}

// New builds the Policy for key, or a *simconfig.ValidationError if key
// is not in simconfig.SchedulerKeys.
func New(key string, c *cluster.Cluster, cfg Config) (Policy, error) {
	switch key {
	case "first-fit":
		return newFirstFit(c), nil
	case "best-fit":
		return newBestFit(c), nil
	case "rack-aware":
		return newRackAware(c), nil
	case "min-gpu-time":
		return newMinGPUTime(c, cfg.MinGPUTime), nil
	case "pollux":
		return newPollux(c, cfg.Pollux), nil
	case "pollux-patient":
		return newPolluxPatient(c, cfg.PolluxPatient, cfg.Sharing), nil
	default:
		return nil, &simconfig.ValidationError{
			Field:  "scheduler",
			Reason: fmt.Sprintf("unknown scheduler key %q, must be one of %v", key, simconfig.SchedulerKeys),
		}
	}
}
