// Package metrics defines the write-only sink the Simulator reports
// through (spec.md §4.12) and an in-memory collector implementation.
// Snapshots are plain values; a Sink must never retain references into
// live cluster or job state.
package metrics

// JobSnapshot is a point-in-time copy of a job's terminal state,
// recorded once per COMPLETED or STARVED transition.
type JobSnapshot struct {
	TaskID             string
	Status             string
	NumGPUs            int
	MemoryPerGPU       float64
	SubmissionTime     float64
	StartTime          float64
	HasStartTime       bool
	CompletionTime     float64
	HasCompletionTime  bool
	EstimatedDuration  float64
	ActualDuration     float64
	HasActualDuration  bool
	JCT                float64
	HasJCT             bool
	Wait               float64
	HasWait            bool
	AllocatedGPUs      []string
}

// TimelineSnapshot is one sampled row of cluster-wide state, emitted on
// the configured cadence.
type TimelineSnapshot struct {
	Time            float64
	TotalGPUTime    float64
	Utilization     float64
	RunningTasks    int
	PendingTasks    int
	CompletedTasks  int
}

// Sink is the interface the Simulator reports through.
type Sink interface {
	RecordCompletion(snapshot JobSnapshot)
	RecordTimeline(snapshot TimelineSnapshot)
	UpdateTotalGPUTime(totalBusy float64)
}

// Collector is an in-memory Sink, the only implementation the core
// needs; reporting packages consume its accumulated slices directly.
type Collector struct {
	Completions  []JobSnapshot
	Timeline     []TimelineSnapshot
	TotalGPUTime float64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) RecordCompletion(snapshot JobSnapshot) {
	c.Completions = append(c.Completions, snapshot)
}

func (c *Collector) RecordTimeline(snapshot TimelineSnapshot) {
	c.Timeline = append(c.Timeline, snapshot)
}

func (c *Collector) UpdateTotalGPUTime(totalBusy float64) {
	c.TotalGPUTime = totalBusy
}

// CompletedCount returns the number of recorded completions with
// Status == "completed".
func (c *Collector) CompletedCount() int {
	n := 0
	for _, s := range c.Completions {
		if s.Status == "completed" {
			n++
		}
	}
	return n
}

// StarvedCount returns the number of recorded completions with
// Status == "starved".
func (c *Collector) StarvedCount() int {
	n := 0
	for _, s := range c.Completions {
		if s.Status == "starved" {
			n++
		}
	}
	return n
}

// AverageJCT returns the mean job completion time over completions that
// have one, or 0 if none do.
func (c *Collector) AverageJCT() float64 {
	sum, n := 0.0, 0
	for _, s := range c.Completions {
		if s.HasJCT {
			sum += s.JCT
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AverageWait returns the mean wait time over completions that have
// one, or 0 if none do.
func (c *Collector) AverageWait() float64 {
	sum, n := 0.0, 0
	for _, s := range c.Completions {
		if s.HasWait {
			sum += s.Wait
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TotalJCT returns the sum of JCT over completions that have one.
func (c *Collector) TotalJCT() float64 {
	sum := 0.0
	for _, s := range c.Completions {
		if s.HasJCT {
			sum += s.JCT
		}
	}
	return sum
}
