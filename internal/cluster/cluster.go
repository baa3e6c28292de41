// Package cluster models the rack/GPU topology and the single
// authoritative placement-penalty function schedulers and the
// simulator both consult.
package cluster

import (
	"fmt"

	"github.com/nvidia/gpusim/internal/gpu"
)

// Rack is an ordered collection of GPUs that share a "same-rack"
// locality class.
type Rack struct {
	Ordinal int
	GPUs    []*gpu.GPU
}

// Config describes the fixed shape of a Cluster, per spec.md §6.
type Config struct {
	NumRacks         int     `yaml:"num_racks"`
	GPUsPerRack      int     `yaml:"gpus_per_rack"`
	GPUMemoryGB      float64 `yaml:"gpu_memory_gb"`
	IntraRackPenalty float64 `yaml:"intra_rack_penalty"`
	InterRackPenalty float64 `yaml:"inter_rack_penalty"`
}

// Validate checks the numeric constraints spec.md §6 requires
// (1.0 ≤ intra ≤ inter, positive counts and capacity).
func (c Config) Validate() error {
	if c.NumRacks <= 0 {
		return fmt.Errorf("num_racks must be positive, got %d", c.NumRacks)
	}
	if c.GPUsPerRack <= 0 {
		return fmt.Errorf("gpus_per_rack must be positive, got %d", c.GPUsPerRack)
	}
	if c.GPUMemoryGB <= 0 {
		return fmt.Errorf("gpu_memory_gb must be positive, got %v", c.GPUMemoryGB)
	}
	if c.IntraRackPenalty < 1.0 {
		return fmt.Errorf("intra_rack_penalty must be >= 1.0, got %v", c.IntraRackPenalty)
	}
	if c.InterRackPenalty < c.IntraRackPenalty {
		return fmt.Errorf("inter_rack_penalty (%v) must be >= intra_rack_penalty (%v)",
			c.InterRackPenalty, c.IntraRackPenalty)
	}
	return nil
}

// Cluster is an ordered collection of Racks with a flat GPU index and
// the penalty function over placement sets.
type Cluster struct {
	cfg      Config
	racks    []*Rack
	gpuByID  map[string]*gpu.GPU
	rackOfID map[string]int // gpu id -> rack ordinal
	flatIDs  []string       // flat order: rack ordinal, then gpu ordinal
}

// New builds a Cluster of cfg.NumRacks racks, each with cfg.GPUsPerRack
// GPUs of cfg.GPUMemoryGB capacity, named "rack-R-G".
func New(cfg Config) (*Cluster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cluster{
		cfg:      cfg,
		racks:    make([]*Rack, 0, cfg.NumRacks),
		gpuByID:  make(map[string]*gpu.GPU),
		rackOfID: make(map[string]int),
		flatIDs:  make([]string, 0, cfg.NumRacks*cfg.GPUsPerRack),
	}

	for r := 0; r < cfg.NumRacks; r++ {
		rack := &Rack{Ordinal: r, GPUs: make([]*gpu.GPU, 0, cfg.GPUsPerRack)}
		for g := 0; g < cfg.GPUsPerRack; g++ {
			id := fmt.Sprintf("rack-%d-%d", r, g)
			dev := gpu.New(id, cfg.GPUMemoryGB)
			rack.GPUs = append(rack.GPUs, dev)
			c.gpuByID[id] = dev
			c.rackOfID[id] = r
			c.flatIDs = append(c.flatIDs, id)
		}
		c.racks = append(c.racks, rack)
	}

	return c, nil
}

// Racks returns the ordered rack list.
func (c *Cluster) Racks() []*Rack { return c.racks }

// GPUByID returns the GPU for id, or nil if absent.
func (c *Cluster) GPUByID(id string) *gpu.GPU { return c.gpuByID[id] }

// RackOf returns the owning rack ordinal for a GPU id, or -1 if unknown.
func (c *Cluster) RackOf(gpuID string) int {
	r, ok := c.rackOfID[gpuID]
	if !ok {
		return -1
	}
	return r
}

// AllGPUs returns every GPU in flat order (rack ordinal, then GPU
// ordinal within rack).
func (c *Cluster) AllGPUs() []*gpu.GPU {
	out := make([]*gpu.GPU, 0, len(c.flatIDs))
	for _, id := range c.flatIDs {
		out = append(out, c.gpuByID[id])
	}
	return out
}

// AvailableGPUs returns every GPU with FreeMemory() > 0, in flat order.
func (c *Cluster) AvailableGPUs() []*gpu.GPU {
	out := make([]*gpu.GPU, 0, len(c.flatIDs))
	for _, id := range c.flatIDs {
		g := c.gpuByID[id]
		if g.FreeMemory() > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Penalty computes the topology penalty of a placement set per spec.md
// §3: 1.0 for singletons, IntraRackPenalty if all GPUs share one rack,
// InterRackPenalty otherwise. GPU ids not found in the cluster are
// ignored for the rack-membership test (a defensive no-op; schedulers
// are expected never to pass unknown ids).
func (c *Cluster) Penalty(placement []string) float64 {
	if len(placement) <= 1 {
		return 1.0
	}

	racksUsed := make(map[int]struct{})
	for _, id := range placement {
		if r, ok := c.rackOfID[id]; ok {
			racksUsed[r] = struct{}{}
		}
	}

	if len(racksUsed) <= 1 {
		return c.cfg.IntraRackPenalty
	}
	return c.cfg.InterRackPenalty
}

// TotalCapacity returns the cluster-wide sum of GPU memory capacity.
func (c *Cluster) TotalCapacity() float64 {
	return float64(len(c.flatIDs)) * c.cfg.GPUMemoryGB
}

// TotalReserved returns the cluster-wide sum of reserved GPU memory.
func (c *Cluster) TotalReserved() float64 {
	var sum float64
	for _, id := range c.flatIDs {
		sum += c.gpuByID[id].Reserved()
	}
	return sum
}

// TotalBusyTime returns the cluster-wide sum of accumulated GPU busy time.
func (c *Cluster) TotalBusyTime() float64 {
	var sum float64
	for _, id := range c.flatIDs {
		sum += c.gpuByID[id].BusyTime()
	}
	return sum
}

// Utilization returns TotalReserved/TotalCapacity, or 0 if capacity is 0.
func (c *Cluster) Utilization() float64 {
	total := c.TotalCapacity()
	if total <= 0 {
		return 0
	}
	return c.TotalReserved() / total
}
