// Package sharing implements the co-tenancy efficiency model shared by
// the scheduler (predicting the cost of packing a job onto an already
// occupied GPU) and the simulator (computing a running job's actual
// effective duration). Keeping one copy of the lookup-and-clamp logic
// means both call sites agree on what "efficiency" means for a given
// occupant count, per spec.md §4.10/§4.11.
package sharing

import "github.com/nvidia/gpusim/internal/simconfig"

// GPUEfficiency returns the co-tenancy efficiency, in (0,1], for a GPU
// hosting occupantCount jobs. cfg.Fn, if set, overrides cfg.Map
// entirely. Counts above the highest configured key reuse the highest
// key's efficiency (the Python original's behavior, not extrapolation).
// The result is always clamped to [cfg.Floor, 1.0].
func GPUEfficiency(cfg simconfig.SharingConfig, occupantCount int) float64 {
	if occupantCount < 1 {
		occupantCount = 1
	}

	if cfg.Fn != nil {
		return clamp(cfg.Fn(occupantCount), cfg.Floor)
	}

	if occupantCount <= 1 {
		return clamp(1.0, cfg.Floor)
	}

	if eff, ok := cfg.Map[occupantCount]; ok {
		return clamp(eff, cfg.Floor)
	}

	if len(cfg.Map) == 0 {
		return clamp(1.0, cfg.Floor)
	}
	maxKey := 0
	for k := range cfg.Map {
		if k > maxKey {
			maxKey = k
		}
	}
	return clamp(cfg.Map[maxKey], cfg.Floor)
}

// Aggregate combines the per-GPU efficiencies of a multi-GPU placement
// into one job-level efficiency, per cfg.Aggregation ("min" or
// "average").
func Aggregate(cfg simconfig.SharingConfig, effs []float64) float64 {
	if len(effs) == 0 {
		return 1.0
	}

	switch cfg.Aggregation {
	case "min":
		min := effs[0]
		for _, e := range effs[1:] {
			if e < min {
				min = e
			}
		}
		return min
	default: // "average"
		sum := 0.0
		for _, e := range effs {
			sum += e
		}
		return sum / float64(len(effs))
	}
}

func clamp(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
