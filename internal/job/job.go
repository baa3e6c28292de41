// Package job models a scheduled request and its lifecycle.
package job

// Status is a job's lifecycle state: PENDING -> RUNNING -> COMPLETED,
// with the alternate terminal STARVED reachable only from PENDING.
type Status int

const (
	Pending Status = iota
	Running
	Completed
	Starved
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Starved:
		return "starved"
	default:
		return "unknown"
	}
}

// Job is an immutable request plus mutable lifecycle state. Immutable
// fields are set once at construction; Start/Complete/MarkStarved are
// the only way to mutate lifecycle fields, matching the ownership rule
// that schedulers and GPUs hold only id-based back-references.
type Job struct {
	ID              string
	RequestedGPUs   int
	MemoryPerGPUGB  float64
	SubmissionTime  float64
	BaseDurationSec float64

	status         Status
	startTime      *float64
	completionTime *float64
	placement      []string
	actualDuration *float64
}

// New constructs a PENDING job. Panics are never used for input
// validation here; callers (workload.Generator, simconfig loaders) are
// responsible for rejecting malformed specs before constructing jobs.
func New(id string, requestedGPUs int, memoryPerGPUGB, submissionTime, baseDurationSec float64) *Job {
	return &Job{
		ID:              id,
		RequestedGPUs:   requestedGPUs,
		MemoryPerGPUGB:  memoryPerGPUGB,
		SubmissionTime:  submissionTime,
		BaseDurationSec: baseDurationSec,
		status:          Pending,
	}
}

func (j *Job) Status() Status { return j.status }

// StartTime returns the start time and true, or (0, false) if the job
// has never started.
func (j *Job) StartTime() (float64, bool) {
	if j.startTime == nil {
		return 0, false
	}
	return *j.startTime, true
}

// CompletionTime returns the completion time and true, or (0, false)
// if the job has not completed.
func (j *Job) CompletionTime() (float64, bool) {
	if j.completionTime == nil {
		return 0, false
	}
	return *j.completionTime, true
}

// ActualDuration returns the measured run time and true, or (0, false)
// if the job has not completed.
func (j *Job) ActualDuration() (float64, bool) {
	if j.actualDuration == nil {
		return 0, false
	}
	return *j.actualDuration, true
}

// Placement returns the ordered list of GPU ids the job currently
// occupies. Empty for PENDING/STARVED jobs. The returned slice is a
// copy; mutating it does not affect the job.
func (j *Job) Placement() []string {
	out := make([]string, len(j.placement))
	copy(out, j.placement)
	return out
}

// Start transitions PENDING -> RUNNING, recording start time and
// placement. Calling Start on a job not in PENDING state is a caller
// bug; it is a silent no-op to keep the simulator's placement-rejection
// path (spec.md §7) simple, but callers must only ever call it for jobs
// returned from a scheduler's placement map, which are always PENDING.
func (j *Job) Start(now float64, placement []string) {
	if j.status != Pending {
		return
	}
	j.status = Running
	t := now
	j.startTime = &t
	j.placement = append([]string(nil), placement...)
}

// Complete transitions RUNNING -> COMPLETED, recording completion time
// and actual duration.
func (j *Job) Complete(now float64) {
	if j.status != Running {
		return
	}
	j.status = Completed
	t := now
	j.completionTime = &t
	if j.startTime != nil {
		d := now - *j.startTime
		j.actualDuration = &d
	}
}

// MarkStarved transitions PENDING -> STARVED, a terminal state.
func (j *Job) MarkStarved() {
	if j.status != Pending {
		return
	}
	j.status = Starved
	j.placement = nil
}

// JCT returns completion_time - submission_time, or (0, false) if the
// job has not completed.
func (j *Job) JCT() (float64, bool) {
	ct, ok := j.CompletionTime()
	if !ok {
		return 0, false
	}
	return ct - j.SubmissionTime, true
}

// Wait returns start_time - submission_time, or (0, false) if the job
// has never started.
func (j *Job) Wait() (float64, bool) {
	st, ok := j.StartTime()
	if !ok {
		return 0, false
	}
	return st - j.SubmissionTime, true
}

// TotalMemoryRequired returns RequestedGPUs * MemoryPerGPUGB.
func (j *Job) TotalMemoryRequired() float64 {
	return float64(j.RequestedGPUs) * j.MemoryPerGPUGB
}
