package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsPending(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	assert.Equal(t, Pending, j.Status())
	_, ok := j.StartTime()
	assert.False(t, ok)
}

func TestStartTransitionsToRunning(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.Start(5, []string{"g0", "g1"})

	assert.Equal(t, Running, j.Status())
	st, ok := j.StartTime()
	assert.True(t, ok)
	assert.Equal(t, 5.0, st)
	assert.Equal(t, []string{"g0", "g1"}, j.Placement())
}

func TestStartIsNoOpUnlessPending(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.Start(5, []string{"g0"})
	j.Start(10, []string{"g1"}) // already running; must not overwrite

	st, _ := j.StartTime()
	assert.Equal(t, 5.0, st)
	assert.Equal(t, []string{"g0"}, j.Placement())
}

func TestCompleteRecordsJCTAndActualDuration(t *testing.T) {
	j := New("t0", 2, 40, 10, 100)
	j.Start(20, []string{"g0"})
	j.Complete(140)

	assert.Equal(t, Completed, j.Status())
	jct, ok := j.JCT()
	assert.True(t, ok)
	assert.Equal(t, 130.0, jct)

	ad, ok := j.ActualDuration()
	assert.True(t, ok)
	assert.Equal(t, 120.0, ad)

	wait, ok := j.Wait()
	assert.True(t, ok)
	assert.Equal(t, 10.0, wait)
}

func TestCompleteIsNoOpUnlessRunning(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.Complete(50)
	assert.Equal(t, Pending, j.Status())
	_, ok := j.CompletionTime()
	assert.False(t, ok)
}

func TestMarkStarvedClearsPlacement(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.MarkStarved()
	assert.Equal(t, Starved, j.Status())
	assert.Empty(t, j.Placement())
}

func TestMarkStarvedIsNoOpUnlessPending(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.Start(0, []string{"g0"})
	j.MarkStarved()
	assert.Equal(t, Running, j.Status())
}

func TestPlacementReturnsCopy(t *testing.T) {
	j := New("t0", 2, 40, 0, 100)
	j.Start(0, []string{"g0", "g1"})

	p := j.Placement()
	p[0] = "mutated"

	assert.Equal(t, []string{"g0", "g1"}, j.Placement())
}

func TestTotalMemoryRequired(t *testing.T) {
	j := New("t0", 4, 20, 0, 100)
	assert.Equal(t, 80.0, j.TotalMemoryRequired())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "starved", Starved.String())
	assert.Equal(t, "unknown", Status(99).String())
}
