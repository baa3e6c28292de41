package scheduler

import (
	"sort"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
)

// bestFit implements spec.md §4.6: identical to first-fit but GPUs are
// considered in descending utilization order, packing new jobs onto
// already-busy GPUs to preserve contiguous free GPUs for later.
type bestFit struct {
	cluster *cluster.Cluster
}

func newBestFit(c *cluster.Cluster) *bestFit {
	return &bestFit{cluster: c}
}

func (s *bestFit) Name() string { return "best-fit" }

func (s *bestFit) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()

	available := s.cluster.AvailableGPUs()
	sort.SliceStable(available, func(i, k int) bool {
		return available[i].Utilization() > available[k].Utilization()
	})

	for _, j := range pending {
		if j.Status() != job.Pending {
			continue
		}

		ids := qualifying(available, j.MemoryPerGPUGB, cl)
		if len(ids) < j.RequestedGPUs {
			continue
		}
		ids = ids[:j.RequestedGPUs]

		if allocateOnto(s.cluster, j, ids, cl) {
			placements[j.ID] = ids
		}
	}

	return placements
}

func (s *bestFit) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }
