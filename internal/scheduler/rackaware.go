package scheduler

import (
	"math"
	"sort"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
)

// rackAware implements spec.md §4.7: prefer in-rack placements (lowest
// penalty wins, first qualifying option wins ties), falling back to a
// flat first-fit across the cluster when no single rack has enough
// qualifying GPUs.
type rackAware struct {
	cluster *cluster.Cluster
}

func newRackAware(c *cluster.Cluster) *rackAware {
	return &rackAware{cluster: c}
}

func (s *rackAware) Name() string { return "rack-aware" }

func (s *rackAware) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()

	sorted := append([]*job.Job(nil), pending...)
	sort.SliceStable(sorted, func(i, k int) bool {
		return sorted[i].RequestedGPUs < sorted[k].RequestedGPUs
	})

	for _, j := range sorted {
		if j.Status() != job.Pending {
			continue
		}

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
				best = ids[:j.RequestedGPUs]
			}
		}

		if best != nil && allocateOnto(s.cluster, j, best, cl) {
			placements[j.ID] = best
		}
	}

	return placements
}

func (s *rackAware) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }
