// Package runner orchestrates one or many simulator runs against a
// fixed workload, the Go counterpart of the Python original's
// --run-all loop over every scheduler key (SPEC_FULL.md's supplemented
// run-all feature).
package runner

import (
	"fmt"
	"strings"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/metrics"
	"github.com/nvidia/gpusim/internal/report"
	"github.com/nvidia/gpusim/internal/scheduler"
	"github.com/nvidia/gpusim/internal/simconfig"
	"github.com/nvidia/gpusim/internal/simlog"
	"github.com/nvidia/gpusim/internal/simulator"
	"github.com/nvidia/gpusim/internal/workload"
)

var log = simlog.Named("runner")

// RunResult pairs a scheduler's Summary with its full metrics, so
// callers can write per-scheduler CSVs and an aggregate comparison.
type RunResult struct {
	SchedulerKey string
	Collector    *metrics.Collector
	Summary      report.Summary
}

// Options bundles everything one or more simulator runs need, built
// once by cmd/gpusim from CLI flags and/or a YAML config file.
type Options struct {
	Cluster   cluster.Config
	Simulator simconfig.SimulatorConfig
	Policies  scheduler.Config
	Specs     []workload.JobSpec
}

// buildJobs converts specs to fresh Job values. Called once per
// scheduler run so no job carries state across runs.
func buildJobs(specs []workload.JobSpec) []*job.Job {
	jobs := make([]*job.Job, 0, len(specs))
	for _, s := range specs {
		jobs = append(jobs, s.ToJob())
	}
	return jobs
}

// Run executes a single scheduler key against opts.Specs and returns
// its RunResult.
func Run(key string, opts Options) (RunResult, error) {
	c, err := cluster.New(opts.Cluster)
	if err != nil {
		return RunResult{}, fmt.Errorf("building cluster: %w", err)
	}

	policy, err := scheduler.New(key, c, opts.Policies)
	if err != nil {
		return RunResult{}, fmt.Errorf("building scheduler %q: %w", key, err)
	}

	collector := metrics.NewCollector()
	sim := simulator.New(c, policy, opts.Simulator, collector)

	jobs := buildJobs(opts.Specs)
	log.Infof("running scheduler %s over %d jobs", key, len(jobs))
	result := sim.Run(jobs)
	log.Infof("scheduler %s finished at t=%.2f after %d ticks", key, result.FinalTime, result.Ticks)

	summary := report.SummaryOf(collector, key, opts.Simulator.Sharing.InvertEfficiency)
	return RunResult{SchedulerKey: key, Collector: collector, Summary: summary}, nil
}

// RunAll runs every key in simconfig.SchedulerKeys against the same
// workload and cluster/simulator configuration, the closed-set sweep
// spec.md §6 names comparison.csv for.
func RunAll(opts Options) ([]RunResult, error) {
	results := make([]RunResult, 0, len(simconfig.SchedulerKeys))
	for _, key := range simconfig.SchedulerKeys {
		r, err := Run(key, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// WriteArtifacts writes summary/tasks/timeline CSVs for one RunResult
// into dir, tagging filenames with the scheduler key (hyphens replaced
// with underscores, matching the original's file-naming convention).
func WriteArtifacts(dir string, r RunResult) error {
	tag := strings.ReplaceAll(r.SchedulerKey, "-", "_")
	if err := report.WriteSummary(dir, tag, r.Summary); err != nil {
		return err
	}
	if err := report.WriteTasks(dir, tag, r.Collector.Completions); err != nil {
		return err
	}
	return report.WriteTimeline(dir, tag, r.Collector.Timeline)
}

// WriteComparison writes comparison.csv aggregating every result's
// summary.
func WriteComparison(dir string, results []RunResult) error {
	summaries := make([]report.Summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Summary)
	}
	return report.WriteComparison(dir, summaries)
}
