// Package simulator implements the fixed-time-step main loop of
// spec.md §4.11: pending-set computation, starvation sweeps,
// scheduling, running-job progress under time-varying co-tenancy
// efficiency, GPU busy accounting, and metrics emission.
package simulator

import (
	"math"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/metrics"
	"github.com/nvidia/gpusim/internal/scheduler"
	"github.com/nvidia/gpusim/internal/sharing"
	"github.com/nvidia/gpusim/internal/simconfig"
	"github.com/nvidia/gpusim/internal/simlog"
	"github.com/nvidia/gpusim/internal/simqueue"
)

var log = simlog.Named("simulator")

// Simulator runs one scheduling policy against one workload over one
// cluster. It owns no state across Run calls; build a fresh Simulator
// (and fresh Cluster/Policy) per run, matching the teacher's pattern of
// constructing a fresh session per scheduling cycle rather than
// resetting shared state.
type Simulator struct {
	cluster *cluster.Cluster
	policy  scheduler.Policy
	cfg     simconfig.SimulatorConfig
	sink    metrics.Sink
}

// New builds a Simulator over an already-constructed cluster and
// policy. Both are expected to be freshly built (no prior allocations)
// so that Run starts from an empty cluster.
func New(c *cluster.Cluster, policy scheduler.Policy, cfg simconfig.SimulatorConfig, sink metrics.Sink) *Simulator {
	return &Simulator{cluster: c, policy: policy, cfg: cfg, sink: sink}
}

// Result summarizes a completed run.
type Result struct {
	FinalTime float64
	Ticks     int
}

// Run executes the main loop over jobs until every job reaches a
// terminal state or max_time is hit, per spec.md §4.11.
func (s *Simulator) Run(jobs []*job.Job) Result {
	byID := make(map[string]*job.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	notYetSubmitted := simqueue.NewPendingQueue(simqueue.BySubmissionTime)
	for _, j := range jobs {
		notYetSubmitted.Push(j)
	}

	active := make([]*job.Job, 0, len(jobs))
	now := 0.0
	ticks := 0

	for {
		for notYetSubmitted.Len() > 0 && notYetSubmitted.Peek().SubmissionTime <= now {
			active = append(active, notYetSubmitted.Pop())
		}

		pending := pendingOf(active)

		for _, j := range pending {
			wait := now - j.SubmissionTime
			if wait > s.cfg.StarvationThreshold {
				j.MarkStarved()
				s.sink.RecordCompletion(snapshotOf(j))
			}
		}
		pending = pendingOf(active)

		placements := s.policy.Schedule(pending, now)
		for jobID, placement := range placements {
			j, ok := byID[jobID]
			if !ok {
				log.Warnf("scheduler returned placement for unknown job id %s", jobID)
				continue
			}
			j.Start(now, placement)
		}

		for _, j := range runningOf(active) {
			dEff := s.effectiveDuration(j)
			startTime, _ := j.StartTime()
			if now-startTime >= dEff {
				j.Complete(now)
				s.policy.Deallocate(j)
				s.sink.RecordCompletion(snapshotOf(j))
			}
		}

		for _, g := range s.cluster.AllGPUs() {
			if g.OccupantCount() > 0 {
				g.Tick(s.cfg.TimeStep)
			}
		}
		s.sink.UpdateTotalGPUTime(s.cluster.TotalBusyTime())

		if int64(math.Floor(now))%int64(math.Floor(s.cfg.TimelineInterval)) == 0 {
			running := runningOf(active)
			stillPending := pendingOf(active)
			s.sink.RecordTimeline(metrics.TimelineSnapshot{
				Time:           now,
				TotalGPUTime:   s.cluster.TotalBusyTime(),
				Utilization:    s.cluster.Utilization(),
				RunningTasks:   len(running),
				PendingTasks:   len(stillPending),
				CompletedTasks: completedCount(jobs),
			})
		}

		ticks++

		if allTerminal(jobs) {
			break
		}

		now += s.cfg.TimeStep
		if now >= s.cfg.MaxTime {
			break
		}
	}

	for _, j := range jobs {
		if j.Status() == job.Pending {
			j.MarkStarved()
			s.sink.RecordCompletion(snapshotOf(j))
		}
	}

	return Result{FinalTime: now, Ticks: ticks}
}

// effectiveDuration computes D_eff for a running job per spec.md
// §4.11: base duration scaled by the current topology penalty of its
// placement and its current co-tenancy sharing factor, recomputed
// fresh every tick from live occupancy.
func (s *Simulator) effectiveDuration(j *job.Job) float64 {
	placement := j.Placement()
	topoPenalty := s.cluster.Penalty(placement)
	factor := s.sharingFactor(placement)

	if s.cfg.Sharing.InvertEfficiency {
		return j.BaseDurationSec * topoPenalty / factor
	}
	return j.BaseDurationSec * topoPenalty * factor
}

// sharingFactor aggregates each placement GPU's current co-tenancy
// efficiency (its actual occupant count, not a prediction), per
// spec.md §4.11's sharing_factor(j).
func (s *Simulator) sharingFactor(placement []string) float64 {
	if len(placement) == 0 {
		return 1.0
	}
	effs := make([]float64, 0, len(placement))
	for _, id := range placement {
		g := s.cluster.GPUByID(id)
		if g == nil {
			continue
		}
		effs = append(effs, sharing.GPUEfficiency(s.cfg.Sharing, g.OccupantCount()))
	}
	if len(effs) == 0 {
		return 1.0
	}
	return sharing.Aggregate(s.cfg.Sharing, effs)
}

func pendingOf(active []*job.Job) []*job.Job {
	out := make([]*job.Job, 0, len(active))
	for _, j := range active {
		if j.Status() == job.Pending {
			out = append(out, j)
		}
	}
	return out
}

func runningOf(active []*job.Job) []*job.Job {
	out := make([]*job.Job, 0, len(active))
	for _, j := range active {
		if j.Status() == job.Running {
			out = append(out, j)
		}
	}
	return out
}

func completedCount(jobs []*job.Job) int {
	n := 0
	for _, j := range jobs {
		if j.Status() == job.Completed {
			n++
		}
	}
	return n
}

func allTerminal(jobs []*job.Job) bool {
	for _, j := range jobs {
		st := j.Status()
		if st != job.Completed && st != job.Starved {
			return false
		}
	}
	return true
}

// snapshotOf builds the metrics.JobSnapshot for j's current (terminal)
// state.
func snapshotOf(j *job.Job) metrics.JobSnapshot {
	snap := metrics.JobSnapshot{
		TaskID:            j.ID,
		Status:            j.Status().String(),
		NumGPUs:           j.RequestedGPUs,
		MemoryPerGPU:      j.MemoryPerGPUGB,
		SubmissionTime:    j.SubmissionTime,
		EstimatedDuration: j.BaseDurationSec,
		AllocatedGPUs:     j.Placement(),
	}
	if st, ok := j.StartTime(); ok {
		snap.StartTime = st
		snap.HasStartTime = true
	}
	if ct, ok := j.CompletionTime(); ok {
		snap.CompletionTime = ct
		snap.HasCompletionTime = true
	}
	if ad, ok := j.ActualDuration(); ok {
		snap.ActualDuration = ad
		snap.HasActualDuration = true
	}
	if jct, ok := j.JCT(); ok {
		snap.JCT = jct
		snap.HasJCT = true
	}
	if wait, ok := j.Wait(); ok {
		snap.Wait = wait
		snap.HasWait = true
	}
	return snap
}
