package scheduler

import (
	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
)

// firstFit implements spec.md §4.5: walk available GPUs in flat order,
// take the first N that each satisfy can_allocate; skip the job if
// fewer than N qualify.
type firstFit struct {
	cluster *cluster.Cluster
}

func newFirstFit(c *cluster.Cluster) *firstFit {
	return &firstFit{cluster: c}
}

func (s *firstFit) Name() string { return "first-fit" }

func (s *firstFit) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()
	available := s.cluster.AvailableGPUs()

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

func (s *firstFit) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }
