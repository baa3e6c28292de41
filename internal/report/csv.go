// Package report renders a completed run's metrics.Collector to the
// CSV artifacts and console tables of spec.md §6, kept as a swappable
// collaborator distinct from internal/metrics per SPEC_FULL.md's
// external-interfaces expansion.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvidia/gpusim/internal/metrics"
)

const naValue = "N/A"

// Summary is the key/value view of a completed run, per spec.md §6.
type Summary struct {
	Scheduler        string
	TotalTasks       int
	Completed        int
	Starved          int
	TotalGPUTime     float64
	AverageJCT       float64
	HasAverageJCT    bool
	AverageWait      float64
	HasAverageWait   bool
	TotalJCT         float64
	SharingSemantics string // "efficiency-as-written" or "inverted"
}

// SummaryOf builds a Summary from a collector, per spec.md §6's field
// list, tagging the sharing-semantics interpretation used per
// SPEC_FULL.md's supplemented inversion flag.
func SummaryOf(c *metrics.Collector, schedulerName string, invertEfficiency bool) Summary {
	s := Summary{
		Scheduler:    schedulerName,
		TotalTasks:   len(c.Completions),
		Completed:    c.CompletedCount(),
		Starved:      c.StarvedCount(),
		TotalGPUTime: c.TotalGPUTime,
		TotalJCT:     c.TotalJCT(),
	}
	if s.Completed > 0 {
		s.AverageJCT = c.AverageJCT()
		s.HasAverageJCT = true
		s.AverageWait = c.AverageWait()
		s.HasAverageWait = true
	}
	if invertEfficiency {
		s.SharingSemantics = "inverted"
	} else {
		s.SharingSemantics = "efficiency-as-written"
	}
	return s
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

func f2OrNA(v float64, has bool) string {
	if !has {
		return naValue
	}
	return f2(v)
}

// WriteSummary writes summary_<tag>.csv.
func WriteSummary(dir, tag string, s Summary) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("summary_%s.csv", tag)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"scheduler", s.Scheduler},
		{"total_tasks", fmt.Sprintf("%d", s.TotalTasks)},
		{"completed", fmt.Sprintf("%d", s.Completed)},
		{"starved", fmt.Sprintf("%d", s.Starved)},
		{"total_gpu_time", f2(s.TotalGPUTime)},
		{"average_jct", f2OrNA(s.AverageJCT, s.HasAverageJCT)},
		{"average_wait", f2OrNA(s.AverageWait, s.HasAverageWait)},
		{"total_jct", f2(s.TotalJCT)},
		{"sharing_semantics", s.SharingSemantics},
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteTasks writes tasks_<tag>.csv, one row per recorded job.
func WriteTasks(dir, tag string, completions []metrics.JobSnapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("tasks_%s.csv", tag)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"task_id", "status", "num_gpus", "memory_per_gpu",
		"submission_time", "start_time", "completion_time",
		"estimated_duration", "actual_duration", "jct", "wait_time",
		"allocated_gpus",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range completions {
		gpus := ""
		for i, id := range m.AllocatedGPUs {
			if i > 0 {
				gpus += ","
			}
			gpus += id
		}
		row := []string{
			m.TaskID,
			m.Status,
			fmt.Sprintf("%d", m.NumGPUs),
			f2(m.MemoryPerGPU),
			f2(m.SubmissionTime),
			f2OrNA(m.StartTime, m.HasStartTime),
			f2OrNA(m.CompletionTime, m.HasCompletionTime),
			f2(m.EstimatedDuration),
			f2OrNA(m.ActualDuration, m.HasActualDuration),
			f2OrNA(m.JCT, m.HasJCT),
			f2OrNA(m.Wait, m.HasWait),
			gpus,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteTimeline writes timeline_<tag>.csv, one row per sampled tick.
func WriteTimeline(dir, tag string, timeline []metrics.TimelineSnapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("timeline_%s.csv", tag)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"time", "total_gpu_time", "cluster_utilization", "running_tasks", "pending_tasks", "completed_tasks"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range timeline {
		row := []string{
			f2(t.Time),
			f2(t.TotalGPUTime),
			f2(t.Utilization),
			fmt.Sprintf("%d", t.RunningTasks),
			fmt.Sprintf("%d", t.PendingTasks),
			fmt.Sprintf("%d", t.CompletedTasks),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteComparison writes comparison.csv, one row per scheduler run,
// aggregating every summary produced in a --run-all invocation
// (SPEC_FULL.md's supplemented run-all feature).
func WriteComparison(dir string, summaries []Summary) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "comparison.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"scheduler", "total_tasks", "completed", "starved",
		"total_gpu_time", "average_jct", "average_wait", "total_jct", "sharing_semantics",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		row := []string{
			s.Scheduler,
			fmt.Sprintf("%d", s.TotalTasks),
			fmt.Sprintf("%d", s.Completed),
			fmt.Sprintf("%d", s.Starved),
			f2(s.TotalGPUTime),
			f2OrNA(s.AverageJCT, s.HasAverageJCT),
			f2OrNA(s.AverageWait, s.HasAverageWait),
			f2(s.TotalJCT),
			s.SharingSemantics,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
