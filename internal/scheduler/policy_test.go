package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvidia/gpusim/internal/simconfig"
)

func TestNewBuildsEveryKnownKey(t *testing.T) {
	c := newTestCluster(t, 1, 1, 80, 1.2, 1.5)
	cfg := Config{
		MinGPUTime:    simconfig.DefaultMinGPUTimeConfig(),
		Pollux:        simconfig.DefaultPolluxConfig(),
		PolluxPatient: simconfig.DefaultPolluxPatientConfig(),
		Sharing:       simconfig.DefaultSharingConfig(),
	}

	for _, key := range simconfig.SchedulerKeys {
		p, err := New(key, c, cfg)
		require.NoError(t, err, key)
		assert.Equal(t, key, p.Name())
	}
}

func TestNewRejectsUnknownKey(t *testing.T) {
	c := newTestCluster(t, 1, 1, 80, 1.2, 1.5)
	_, err := New("bogus", c, Config{})
	assert.Error(t, err)
	assert.IsType(t, &simconfig.ValidationError{}, err)
}
