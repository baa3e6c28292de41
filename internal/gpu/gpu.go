// Package gpu models a single physical accelerator: its memory capacity
// and the multiset of jobs currently resident on it.
package gpu

// GPU is one physical accelerator inside a Rack. Identity is a stable
// string key of the form "rack-R-G" assigned by the owning Rack; GPU
// itself has no notion of its own position.
type GPU struct {
	ID       string
	Capacity float64 // total memory in GB

	reserved  float64
	occupancy map[string]struct{} // job id set

	busyTime float64 // accumulated_busy_time, seconds
}

// New returns an empty GPU with the given id and memory capacity.
func New(id string, capacityGB float64) *GPU {
	return &GPU{
		ID:        id,
		Capacity:  capacityGB,
		occupancy: make(map[string]struct{}),
	}
}

// Reserved returns the current reserved memory in GB.
func (g *GPU) Reserved() float64 { return g.reserved }

// FreeMemory returns Capacity - Reserved, never negative.
func (g *GPU) FreeMemory() float64 {
	free := g.Capacity - g.reserved
	if free < 0 {
		return 0
	}
	return free
}

// BusyTime returns the accumulated busy time in seconds.
func (g *GPU) BusyTime() float64 { return g.busyTime }

// OccupantCount returns the number of distinct jobs currently resident.
func (g *GPU) OccupantCount() int { return len(g.occupancy) }

// Occupants returns a snapshot of the resident job ids. The returned
// slice is owned by the caller; mutating it does not affect the GPU.
func (g *GPU) Occupants() []string {
	ids := make([]string, 0, len(g.occupancy))
	for id := range g.occupancy {
		ids = append(ids, id)
	}
	return ids
}

// Has reports whether jobID is currently resident on this GPU.
func (g *GPU) Has(jobID string) bool {
	_, ok := g.occupancy[jobID]
	return ok
}

// CanAllocate reports whether mem additional GB can be reserved without
// exceeding Capacity.
func (g *GPU) CanAllocate(mem float64) bool {
	return g.reserved+mem <= g.Capacity
}

// Allocate reserves mem GB on behalf of jobID and adds jobID to the
// occupancy set. Calling it again for a jobID already resident still
// adds mem again — reservation is not deduplicated by job id, matching
// the original's per-call accounting. Returns false, with no state
// change, if the allocation would exceed Capacity.
func (g *GPU) Allocate(jobID string, mem float64) bool {
	if !g.CanAllocate(mem) {
		return false
	}
	g.reserved += mem
	g.occupancy[jobID] = struct{}{}
	return true
}

// Deallocate releases jobID's reservation of mem GB. It is a no-op if
// jobID is not currently resident, and never drives Reserved below zero.
func (g *GPU) Deallocate(jobID string, mem float64) {
	if _, ok := g.occupancy[jobID]; !ok {
		return
	}
	delete(g.occupancy, jobID)
	g.reserved -= mem
	if g.reserved < 0 {
		g.reserved = 0
	}
}

// Tick advances the GPU's busy-time accounting by dt seconds, only if
// the GPU is currently occupied.
func (g *GPU) Tick(dt float64) {
	if len(g.occupancy) > 0 {
		g.busyTime += dt
	}
}

// Utilization returns Reserved/Capacity, or 0 if Capacity is 0.
func (g *GPU) Utilization() float64 {
	if g.Capacity <= 0 {
		return 0
	}
	return g.reserved / g.Capacity
}
