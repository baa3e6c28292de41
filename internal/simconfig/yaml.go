package simconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/workload"
)

// FileConfig is the YAML-decodable shape of --config, overlaying the
// flag defaults the same way the teacher's options layering does.
type FileConfig struct {
	Cluster   *cluster.Config      `yaml:"cluster"`
	Simulator *FileSimulatorConfig `yaml:"simulator"`
}

// FileSimulatorConfig mirrors SimulatorConfig but with string duration
// fields, so "inf" round-trips through YAML the way the Python
// original's float('inf') did through its dataclasses.
type FileSimulatorConfig struct {
	MaxTime             string         `yaml:"max_time"`
	StarvationThreshold string         `yaml:"starvation_threshold"`
	TimeStep            float64        `yaml:"time_step"`
	TimelineInterval    float64        `yaml:"timeline_interval"`
	SharingPenaltyMap   map[int]float64 `yaml:"sharing_penalty_map"`
	SharingPenaltyFloor float64        `yaml:"sharing_penalty_floor"`
	SharingAggregation  string         `yaml:"sharing_penalty_aggregation"`
	InvertEfficiency    bool           `yaml:"invert_efficiency"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

// LoadWorkload reads a YAML workload file: a top-level list of JobSpec.
func LoadWorkload(path string) ([]workload.JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload file %s: %w", path, err)
	}
	var specs []workload.JobSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing workload file %s: %w", path, err)
	}
	return specs, nil
}
