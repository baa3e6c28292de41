package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAllocate(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		reserve  float64
		request  float64
		want     bool
	}{
		{"fits exactly", 80, 0, 80, true},
		{"fits with room", 80, 40, 20, true},
		{"does not fit", 80, 60, 40, false},
		{"zero request always fits", 80, 80, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("g0", tt.capacity)
			if tt.reserve > 0 {
				g.Allocate("warmup", tt.reserve)
			}
			assert.Equal(t, tt.want, g.CanAllocate(tt.request))
		})
	}
}

func TestAllocateRejectsOverCapacity(t *testing.T) {
	g := New("g0", 80)
	assert.True(t, g.Allocate("j0", 60))
	assert.False(t, g.Allocate("j1", 30))
	assert.Equal(t, 60.0, g.Reserved())
	assert.False(t, g.Has("j1"))
}

func TestAllocateSameJobAddsMemoryAgain(t *testing.T) {
	g := New("g0", 80)
	assert.True(t, g.Allocate("j0", 30))
	assert.True(t, g.Allocate("j0", 30))
	assert.Equal(t, 60.0, g.Reserved())
	assert.Equal(t, 1, g.OccupantCount())
}

func TestDeallocateIsIdempotent(t *testing.T) {
	g := New("g0", 80)
	g.Allocate("j0", 40)
	g.Deallocate("j0", 40)
	g.Deallocate("j0", 40)
	assert.Equal(t, 0.0, g.Reserved())
	assert.False(t, g.Has("j0"))
}

func TestDeallocateNeverGoesNegative(t *testing.T) {
	g := New("g0", 80)
	g.Deallocate("nonexistent", 1000)
	assert.Equal(t, 0.0, g.Reserved())
}

func TestTickOnlyAccumulatesWhenOccupied(t *testing.T) {
	g := New("g0", 80)
	g.Tick(10)
	assert.Equal(t, 0.0, g.BusyTime())

	g.Allocate("j0", 10)
	g.Tick(10)
	assert.Equal(t, 10.0, g.BusyTime())

	g.Deallocate("j0", 10)
	g.Tick(10)
	assert.Equal(t, 10.0, g.BusyTime())
}

func TestUtilization(t *testing.T) {
	g := New("g0", 80)
	assert.Equal(t, 0.0, g.Utilization())
	g.Allocate("j0", 40)
	assert.Equal(t, 0.5, g.Utilization())
}

func TestUtilizationZeroCapacity(t *testing.T) {
	g := New("g0", 0)
	assert.Equal(t, 0.0, g.Utilization())
}
