package scheduler

import (
	"math"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/simconfig"
)

// minGPUTime implements spec.md §4.8: the patient, topology-aware
// policy. It finds the single best (minimum-penalty) placement for
// each job in input order and only commits to it if the penalty is
// within patience, or the job has waited long enough to force
// placement. Otherwise it leaves the job pending, preferring to wait
// for better defragmentation.
type minGPUTime struct {
	cluster *cluster.Cluster
	cfg     simconfig.MinGPUTimeConfig
}

func newMinGPUTime(c *cluster.Cluster, cfg simconfig.MinGPUTimeConfig) *minGPUTime {
	return &minGPUTime{cluster: c, cfg: cfg}
}

func (s *minGPUTime) Name() string { return "min-gpu-time" }

func (s *minGPUTime) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()

	for _, j := range pending {
		if j.Status() != job.Pending {
			continue
		}

		best, bestPenalty := s.bestPlacement(j, cl)
		if best == nil {
			continue
		}

		wait := now - j.SubmissionTime
		goodPlacement := bestPenalty <= s.cfg.PatienceThreshold
		starving := wait > s.cfg.StarvationLimit

		if !goodPlacement && !starving {
			log.Debugf("min-gpu-time: job %s waiting, penalty %.3f > patience %.3f, wait %.1f <= limit %.1f",
				j.ID, bestPenalty, s.cfg.PatienceThreshold, wait, s.cfg.StarvationLimit)
			continue
		}

		if allocateOnto(s.cluster, j, best, cl) {
			placements[j.ID] = best
		}
	}

	return placements
}

// bestPlacement finds the minimum-penalty placement of j.RequestedGPUs
// qualifying, unclaimed GPUs: the best single-rack option, or a flat
// global fallback if no rack has enough.
func (s *minGPUTime) bestPlacement(j *job.Job, cl claimed) ([]string, float64) {
	var best []string
	bestPenalty := math.Inf(1)

	for _, rack := range s.cluster.Racks() {
		ids := qualifying(rack.GPUs, j.MemoryPerGPUGB, cl)
		if len(ids) < j.RequestedGPUs {
			continue
		}
		candidate := ids[:j.RequestedGPUs]
		penalty := s.cluster.Penalty(candidate)
		if penalty < bestPenalty {
			bestPenalty = penalty
			best = candidate
		}
	}

	if best == nil {
		ids := qualifying(s.cluster.AvailableGPUs(), j.MemoryPerGPUGB, cl)
		if len(ids) >= j.RequestedGPUs {
			candidate := ids[:j.RequestedGPUs]
			best = candidate
			bestPenalty = s.cluster.Penalty(candidate)
		}
	}

	return best, bestPenalty
}

func (s *minGPUTime) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }
