// Package simqueue provides a submission-time-ordered priority queue of
// jobs, used by the fixed-step simulator loop to admit jobs as their
// submission time arrives (spec.md §9, "Running/pending indexing")
// without rescanning the full job list for submissions on every tick.
package simqueue

import (
	"container/heap"

	"github.com/nvidia/gpusim/internal/job"
)

// LessFn orders two jobs; the lower one pops first.
type LessFn func(a, b *job.Job) bool

// BySubmissionTime orders jobs by ascending submission time, matching
// the determinism requirement of spec.md §5 ("Pending queue ordering is
// by insertion / submission-time sort").
func BySubmissionTime(a, b *job.Job) bool {
	return a.SubmissionTime < b.SubmissionTime
}

// PendingQueue is a min-heap of jobs ordered by a LessFn.
type PendingQueue struct {
	items innerHeap
}

// NewPendingQueue returns an empty queue ordered by lessFn.
func NewPendingQueue(lessFn LessFn) *PendingQueue {
	return &PendingQueue{items: innerHeap{lessFn: lessFn}}
}

// Push adds j to the queue.
func (q *PendingQueue) Push(j *job.Job) {
	heap.Push(&q.items, j)
}

// Pop removes and returns the lowest-ordered job, or nil if empty.
func (q *PendingQueue) Pop() *job.Job {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.items).(*job.Job)
}

// Peek returns the lowest-ordered job without removing it, or nil if empty.
func (q *PendingQueue) Peek() *job.Job {
	if q.Len() == 0 {
		return nil
	}
	return q.items.jobs[0]
}

// Len returns the number of jobs currently queued.
func (q *PendingQueue) Len() int { return q.items.Len() }

// Drain removes and returns every job in ascending order.
func (q *PendingQueue) Drain() []*job.Job {
	out := make([]*job.Job, 0, q.Len())
	for q.Len() > 0 {
		out = append(out, q.Pop())
	}
	return out
}

type innerHeap struct {
	jobs   []*job.Job
	lessFn LessFn
}

func (h innerHeap) Len() int { return len(h.jobs) }

func (h innerHeap) Less(i, j int) bool {
	if h.lessFn == nil {
		return i < j
	}
	return h.lessFn(h.jobs[i], h.jobs[j])
}

func (h innerHeap) Swap(i, j int) { h.jobs[i], h.jobs[j] = h.jobs[j], h.jobs[i] }

func (h *innerHeap) Push(x interface{}) {
	h.jobs = append(h.jobs, x.(*job.Job))
}

func (h *innerHeap) Pop() interface{} {
	old := h.jobs
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.jobs = old[:n-1]
	return item
}
