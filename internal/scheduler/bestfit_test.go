package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvidia/gpusim/internal/job"
)

func TestBestFitPacksOntoAlreadyBusyGPU(t *testing.T) {
	c := newTestCluster(t, 1, 3, 80, 1.2, 1.5)
	// Pre-occupy rack-0-1 partially so it's not empty.
	c.GPUByID("rack-0-1").Allocate("warmup", 40)

	s := newBestFit(c)
	j := job.New("t0", 1, 40, 0, 100)
	placements := s.Schedule([]*job.Job{j}, 0)

	assert.Equal(t, []string{"rack-0-1"}, placements["t0"])
}

func TestBestFitSkipsJobThatDoesNotFit(t *testing.T) {
	c := newTestCluster(t, 1, 1, 80, 1.2, 1.5)
	s := newBestFit(c)

	j := job.New("t0", 2, 40, 0, 100)
	placements := s.Schedule([]*job.Job{j}, 0)
	assert.Empty(t, placements)
}
