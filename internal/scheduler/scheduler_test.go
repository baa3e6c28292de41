package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvidia/gpusim/internal/cluster"
)

// newTestCluster builds a racks x gpusPerRack cluster of the given
// per-GPU memory, used across every policy's tests.
func newTestCluster(t *testing.T, racks, gpusPerRack int, memGB, intra, inter float64) *cluster.Cluster {
	t.Helper()
	c, err := cluster.New(cluster.Config{
		NumRacks:         racks,
		GPUsPerRack:      gpusPerRack,
		GPUMemoryGB:      memGB,
		IntraRackPenalty: intra,
		InterRackPenalty: inter,
	})
	require.NoError(t, err)
	return c
}
