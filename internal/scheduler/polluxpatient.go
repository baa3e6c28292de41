package scheduler

import (
	"math"
	"sort"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/job"
	"github.com/nvidia/gpusim/internal/sharing"
	"github.com/nvidia/gpusim/internal/simconfig"
)

// polluxPatient implements spec.md §4.10: Pollux's elastic width search
// extended with a predicted co-tenancy efficiency cost and a patience
// gate on the resulting efficiency, instead of a patience gate on raw
// topology penalty alone.
type polluxPatient struct {
	cluster *cluster.Cluster
	cfg     simconfig.PolluxPatientConfig
	sharing simconfig.SharingConfig
}

func newPolluxPatient(c *cluster.Cluster, cfg simconfig.PolluxPatientConfig, sharingCfg simconfig.SharingConfig) *polluxPatient {
	return &polluxPatient{cluster: c, cfg: cfg, sharing: sharingCfg}
}

func (s *polluxPatient) Name() string { return "pollux-patient" }

func (s *polluxPatient) Schedule(pending []*job.Job, now float64) map[string][]string {
	placements := make(map[string][]string)
	cl := newClaimed()

	for _, j := range pending {
		if j.Status() != job.Pending {
			continue
		}

		best, bestN, totalCost := s.bestPlacement(j, cl)
		if best == nil {
			continue
		}

		wait := now - j.SubmissionTime
		efficiency := 1.0 / totalCost
		efficientEnough := efficiency >= s.cfg.EfficiencyThreshold
		starving := wait > s.cfg.StarvationLimit

		if !efficientEnough && !starving {
			log.Debugf("pollux-patient: job %s waiting, width %d efficiency %.3f < threshold %.3f, wait %.1f <= limit %.1f",
				j.ID, bestN, efficiency, s.cfg.EfficiencyThreshold, wait, s.cfg.StarvationLimit)
			continue
		}

		if allocateOnto(s.cluster, j, best, cl) {
			placements[j.ID] = best
		}
	}

	return placements
}

func (s *polluxPatient) Deallocate(j *job.Job) { baseDeallocate(s.cluster, j) }

// bestPlacement mirrors pollux's width search but scores each candidate
// by n^alpha / (topology_penalty / avg_sharing_efficiency), favoring
// widths and placements that land on lightly shared GPUs. It returns
// the winning placement, its width, and the total cost (>= 1.0) at that
// width, for the caller's efficiency-based patience decision.
func (s *polluxPatient) bestPlacement(j *job.Job, cl claimed) ([]string, int, float64) {
	available := qualifying(s.cluster.AllGPUs(), j.MemoryPerGPUGB, cl)
	if len(available) == 0 {
		return nil, 0, 0
	}

	limit := j.RequestedGPUs
	if len(available) < limit {
		limit = len(available)
	}

	var bestPlacement []string
	bestN := 0
	bestCost := 0.0
	bestScore := math.Inf(-1)

	for n := 1; n <= limit; n++ {
		for _, candidate := range s.candidatesForWidth(j, cl, available, n) {
			topoPenalty := s.cluster.Penalty(candidate)
			avgEff := meanEfficiency(s.predictedEfficiencies(candidate))
			totalCost := topoPenalty / avgEff
			score := math.Pow(float64(n), s.cfg.Alpha) / totalCost

			if score > bestScore {
				bestScore = score
				bestPlacement = candidate
				bestN = n
				bestCost = totalCost
			}
		}
	}

	return bestPlacement, bestN, bestCost
}

// candidatesForWidth builds the per-rack candidates (each rack with >=
// n qualifying GPUs, choosing the n with the highest predicted
// efficiency first) plus one global candidate (the n
// highest-predicted-efficiency qualifying GPUs cluster-wide).
func (s *polluxPatient) candidatesForWidth(j *job.Job, cl claimed, flatQualifying []string, n int) [][]string {
	var candidates [][]string

	for _, rack := range s.cluster.Racks() {
		ids := qualifying(rack.GPUs, j.MemoryPerGPUGB, cl)
		if len(ids) < n {
			continue
		}
		sorted := append([]string(nil), ids...)
		s.sortByPredictedEfficiencyDesc(sorted)
		candidates = append(candidates, sorted[:n])
	}

	if len(flatQualifying) >= n {
		global := append([]string(nil), flatQualifying...)
		s.sortByPredictedEfficiencyDesc(global)
		candidates = append(candidates, global[:n])
	}

	return candidates
}

func (s *polluxPatient) sortByPredictedEfficiencyDesc(ids []string) {
	sort.SliceStable(ids, func(i, k int) bool {
		return s.predictedEfficiency(ids[i]) > s.predictedEfficiency(ids[k])
	})
}

// predictedEfficiency is the co-tenancy efficiency the GPU would have
// if one more job were placed on it right now.
func (s *polluxPatient) predictedEfficiency(gpuID string) float64 {
	g := s.cluster.GPUByID(gpuID)
	if g == nil {
		return 1.0
	}
	return sharing.GPUEfficiency(s.sharing, g.OccupantCount()+1)
}

func (s *polluxPatient) predictedEfficiencies(ids []string) []float64 {
	effs := make([]float64, len(ids))
	for i, id := range ids {
		effs[i] = s.predictedEfficiency(id)
	}
	return effs
}

// meanEfficiency is the pollux-patient cost model's aggregate efficiency
// E = mean_g(E_gpu(g)), always an arithmetic mean regardless of
// SharingConfig.Aggregation: that field governs only the simulator's
// sharing_factor, not the scheduler's placement cost.
func meanEfficiency(effs []float64) float64 {
	if len(effs) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, e := range effs {
		sum += e
	}
	return sum / float64(len(effs))
}
