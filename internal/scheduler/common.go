package scheduler

import (
	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/gpu"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/simlog"
)

var log = simlog.Named("scheduler")

// baseDeallocate releases every GPU in j's placement. It is shared by
// every policy since deallocation semantics never vary across
// scheduling strategies (spec.md §4.4: "Releasing resources on
// completion is performed by the simulator via scheduler.deallocate").
func baseDeallocate(c *cluster.Cluster, j *job.Job) {
	for _, gpuID := range j.Placement() {
		g := c.GPUByID(gpuID)
		if g == nil {
			continue
		}
		g.Deallocate(j.ID, j.MemoryPerGPUGB)
	}
}

// claimed is a per-Schedule-call bookkeeping set tracking GPU ids this
// call has already placed a job on, so a single invocation never
// double-books a GPU (spec.md §4.4, §5).
type claimed map[string]struct{}

func newClaimed() claimed { return make(claimed) }

func (c claimed) has(id string) bool { _, ok := c[id]; return ok }
func (c claimed) add(id string)      { c[id] = struct{}{} }

// qualifying returns, from gpus (already in the desired order), the
// ids that qualify for mem and are not already claimed this call.
func qualifying(gpus []*gpu.GPU, mem float64, cl claimed) []string {
	out := make([]string, 0, len(gpus))
	for _, g := range gpus {
		if cl.has(g.ID) {
			continue
		}
		if g.CanAllocate(mem) {
			out = append(out, g.ID)
		}
	}
	return out
}

// allocateOnto reserves mem on every GPU in ids on behalf of j and
// marks them claimed. Returns false (with no partial allocation left
// behind) if any GPU cannot actually accept the reservation at
// apply-time — the "allocation race within a tick" case of spec.md §7,
// which is logged here as a scheduler bug; the job is left out of the
// returned placements, so it stays PENDING.
func allocateOnto(c *cluster.Cluster, j *job.Job, ids []string, cl claimed) bool {
	allocated := make([]string, 0, len(ids))
	for _, id := range ids {
		g := c.GPUByID(id)
		if g == nil || !g.Allocate(j.ID, j.MemoryPerGPUGB) {
			for _, done := range allocated {
				c.GPUByID(done).Deallocate(j.ID, j.MemoryPerGPUGB)
			}
			log.Warnf("scheduler bug: placement for job %s rejected at apply time on gpu %s", j.ID, id)
			return false
		}
		allocated = append(allocated, id)
	}
	for _, id := range ids {
		cl.add(id)
	}
	return true
}
