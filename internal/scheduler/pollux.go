package scheduler

import (
	"math"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/simconfig"
)

// pollux implements spec.md §4.9: the Pollux-style elastic policy.
// Instead of a fixed GPU count it searches every width n in
// [1, requested_gpus] for the highest n^alpha/penalty score and commits
// immediately — no patience, no waiting for better fragmentation.
type pollux struct {
	cluster *cluster.Cluster
	cfg     simconfig.PolluxConfig
}

func newPollux(c *cluster.Cluster, cfg simconfig.PolluxConfig) *pollux {
	return &pollux{cluster: c, cfg: cfg}
}

func (s *pollux) Name() string { return "pollux" }

func (s *pollux) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()

	for _, j := range pending {
		if j.Status() != job.Pending {
			continue
		}

		best, _, _ := bestElasticPlacement(s.cluster, j, cl, s.cfg.Alpha)
		if best == nil {
			continue
		}

		if allocateOnto(s.cluster, j, best, cl) {
			placements[j.ID] = best
		}
	}

	return placements
}

func (s *pollux) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }

// bestElasticPlacement searches every candidate width n in
// [1, min(requested_gpus, qualifying-GPU-count)] for the placement and
// topology penalty maximizing n^alpha/penalty, per spec.md §4.9 step 2.
// It returns the winning placement, its chosen width, and the clamped
// topology penalty at that width (>= 1.0), or (nil, 0, 0) if not even a
// single GPU qualifies.
func bestElasticPlacement(c *cluster.Cluster, j *job.Job, cl claimed, alpha float64) ([]string, int, float64) {
	available := qualifying(c.AllGPUs(), j.MemoryPerGPUGB, cl)
	if len(available) == 0 {
		return nil, 0, 0
	}

	maxN := j.RequestedGPUs
	k := len(available)
	limit := maxN
	if k < limit {
		limit = k
	}

	var bestPlacement []string
	bestN := 0
	bestPenalty := 0.0
	bestScore := math.Inf(-1)

	for n := 1; n <= limit; n++ {
		candidate := electWidth(c, j, cl, available, n)
		if candidate == nil {
			continue
		}
		penalty := math.Max(1.0, c.Penalty(candidate))
		score := math.Pow(float64(n), alpha) / penalty

		if score > bestScore {
			bestScore = score
			bestPlacement = candidate
			bestN = n
			bestPenalty = penalty
		}
	}

	return bestPlacement, bestN, bestPenalty
}

// electWidth picks the placement of exactly n GPUs for n qualifying
// GPUs: the first rack with >= n qualifying, unclaimed GPUs, else the
// first n of the flat qualifying list.
func electWidth(c *cluster.Cluster, j *job.Job, cl claimed, flatQualifying []string, n int) []string {
	for _, rack := range c.Racks() {
		ids := qualifying(rack.GPUs, j.MemoryPerGPUGB, cl)
		if len(ids) >= n {
			return ids[:n]
		}
	}
	if len(flatQualifying) >= n {
		return append([]string(nil), flatQualifying[:n]...)
	}
	return nil
}
