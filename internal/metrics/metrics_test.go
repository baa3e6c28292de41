package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCountsByStatus(t *testing.T) {
	c := NewCollector()
	c.RecordCompletion(JobSnapshot{TaskID: "t0", Status: "completed", HasJCT: true, JCT: 100})
	c.RecordCompletion(JobSnapshot{TaskID: "t1", Status: "starved"})
	c.RecordCompletion(JobSnapshot{TaskID: "t2", Status: "completed", HasJCT: true, JCT: 50})

	assert.Equal(t, 2, c.CompletedCount())
	assert.Equal(t, 1, c.StarvedCount())
}

func TestCollectorAverageJCTIgnoresMissing(t *testing.T) {
	c := NewCollector()
	c.RecordCompletion(JobSnapshot{TaskID: "t0", HasJCT: true, JCT: 100})
	c.RecordCompletion(JobSnapshot{TaskID: "t1", Status: "starved"})
	c.RecordCompletion(JobSnapshot{TaskID: "t2", HasJCT: true, JCT: 50})

	assert.Equal(t, 75.0, c.AverageJCT())
	assert.Equal(t, 150.0, c.TotalJCT())
}

func TestCollectorAverageJCTZeroWhenNone(t *testing.T) {
	c := NewCollector()
	c.RecordCompletion(JobSnapshot{TaskID: "t0", Status: "starved"})
	assert.Equal(t, 0.0, c.AverageJCT())
	assert.Equal(t, 0.0, c.TotalJCT())
}

func TestCollectorAverageWaitIgnoresMissing(t *testing.T) {
	c := NewCollector()
	c.RecordCompletion(JobSnapshot{TaskID: "t0", HasWait: true, Wait: 10})
	c.RecordCompletion(JobSnapshot{TaskID: "t1", HasWait: true, Wait: 30})

	assert.Equal(t, 20.0, c.AverageWait())
}

func TestCollectorRecordsTimelineAndGPUTime(t *testing.T) {
	c := NewCollector()
	c.RecordTimeline(TimelineSnapshot{Time: 0, Utilization: 0.5})
	c.RecordTimeline(TimelineSnapshot{Time: 60, Utilization: 0.8})
	c.UpdateTotalGPUTime(123.0)

	assert.Len(t, c.Timeline, 2)
	assert.Equal(t, 123.0, c.TotalGPUTime)
	assert.Equal(t, 0.8, c.Timeline[1].Utilization)
}
