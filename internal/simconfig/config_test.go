package simconfig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationSecondsInf(t *testing.T) {
	for _, s := range []string{"inf", "infinite", ""} {
		v, err := ParseDurationSeconds(s)
		assert.NoError(t, err)
		assert.True(t, math.IsInf(v, 1))
	}
}

func TestParseDurationSecondsBareSeconds(t *testing.T) {
	v, err := ParseDurationSeconds("120")
	assert.NoError(t, err)
	assert.Equal(t, 120.0, v)
}

func TestParseDurationSecondsGoDuration(t *testing.T) {
	v, err := ParseDurationSeconds("2m")
	assert.NoError(t, err)
	assert.Equal(t, 120.0, v)
}

func TestParseDurationSecondsRejectsGarbage(t *testing.T) {
	_, err := ParseDurationSeconds("not-a-duration")
	assert.Error(t, err)
}

func TestSimulatorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimulatorConfig)
		wantErr bool
	}{
		{"defaults ok", func(c *SimulatorConfig) {}, false},
		{"zero time step", func(c *SimulatorConfig) { c.TimeStep = 0 }, true},
		{"zero timeline interval", func(c *SimulatorConfig) { c.TimelineInterval = 0 }, true},
		{"zero max time", func(c *SimulatorConfig) { c.MaxTime = 0 }, true},
		{"inf max time ok", func(c *SimulatorConfig) { c.MaxTime = math.Inf(1) }, false},
		{"zero starvation threshold", func(c *SimulatorConfig) { c.StarvationThreshold = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimulatorConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSharingConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SharingConfig)
		wantErr bool
	}{
		{"defaults ok", func(c *SharingConfig) {}, false},
		{"floor above 1", func(c *SharingConfig) { c.Floor = 1.5 }, true},
		{"floor below 0", func(c *SharingConfig) { c.Floor = -0.1 }, true},
		{"bad aggregation", func(c *SharingConfig) { c.Aggregation = "max" }, true},
		{"non-positive map key", func(c *SharingConfig) { c.Map[0] = 0.5 }, true},
		{"map value above 1", func(c *SharingConfig) { c.Map[4] = 1.5 }, true},
		{"map value non-positive", func(c *SharingConfig) { c.Map[4] = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSharingConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidSchedulerKey(t *testing.T) {
	assert.True(t, IsValidSchedulerKey("first-fit"))
	assert.True(t, IsValidSchedulerKey("pollux-patient"))
	assert.False(t, IsValidSchedulerKey("bogus"))
}

func TestMinGPUTimeConfigValidate(t *testing.T) {
	cfg := DefaultMinGPUTimeConfig()
	assert.NoError(t, cfg.Validate())

	cfg.PatienceThreshold = 0.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultMinGPUTimeConfig()
	cfg.StarvationLimit = 0
	assert.Error(t, cfg.Validate())
}

func TestPolluxPatientConfigValidate(t *testing.T) {
	cfg := DefaultPolluxPatientConfig()
	assert.NoError(t, cfg.Validate())

	cfg.EfficiencyThreshold = 1.5
	assert.Error(t, cfg.Validate())
}
