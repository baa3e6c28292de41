// Package simconfig holds the flat configuration structs for the
// cluster, simulator, and scheduler family, following the teacher's
// cmd/scheduler/app/options shape: a plain struct, a block of defaults,
// and pflag registration, plus a validation pass that surfaces
// configuration errors (spec.md §7) instead of panicking.
package simconfig

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/pflag"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// ValidationError is returned for configuration errors per spec.md §7:
// an unknown scheduler key and invalid simulator, sharing, or policy
// parameters, all "fail early, surface to caller" conditions. Cluster
// shape errors from cluster.Config.Validate (including non-positive
// capacities) are plain errors, not ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// Default values, mirroring the teacher's defaultXxx constant block.
const (
	defaultTimeStep            = 1.0
	defaultTimelineInterval    = 60.0
	defaultMaxTime             = 0 // not used by RegisterFlags, whose max-time default is the string "inf"
	defaultStarvationThreshold = 0 // not used by RegisterFlags, whose starvation-threshold default is "inf"
	defaultSharingFloor        = 0.5
	defaultSharingAggregation  = "min"

	defaultPatienceThreshold    = 1.1
	defaultMinGPUStarvationSec  = 2000.0
	defaultAlpha                = 0.5
	defaultEfficiencyThreshold  = 0.8
	defaultPolluxStarvationSec  = 2000.0
	defaultSchedulerKey         = "first-fit"
)

// SharingConfig describes the co-tenancy sharing model of spec.md §4.11.
type SharingConfig struct {
	// Map is sharing_penalty_map: job-count -> efficiency in (0,1].
	Map map[int]float64
	// Floor clamps any looked-up or custom efficiency to [Floor, 1.0].
	Floor float64
	// Fn, if set, overrides Map for computing a GPU's sharing
	// efficiency given its current occupant count.
	Fn func(occupantCount int) float64
	// Aggregation is "min" (default) or "average" across a job's GPUs.
	Aggregation string
	// InvertEfficiency selects the spec.md §9 open-question behavior:
	// false (default) preserves the original's duration *= E, which
	// shortens co-tenant jobs; true switches to duration *= 1/E, a
	// genuine slowdown.
	InvertEfficiency bool
}

// DefaultSharingConfig mirrors the Python original's SimulatorConfig
// default sharing_penalty_map.
func DefaultSharingConfig() SharingConfig {
	return SharingConfig{
		Map: map[int]float64{
			1: 1.0,
			2: 0.9,
			3: 0.8,
		},
		Floor:       defaultSharingFloor,
		Aggregation: defaultSharingAggregation,
	}
}

// Validate checks SharingConfig invariants.
func (s SharingConfig) Validate() error {
	if s.Floor < 0 || s.Floor > 1 {
		return &ValidationError{Field: "sharing_penalty_floor", Reason: "must be within [0, 1]"}
	}
	if s.Aggregation != "min" && s.Aggregation != "average" {
		return &ValidationError{Field: "sharing_penalty_aggregation", Reason: `must be "min" or "average"`}
	}
	for k, v := range s.Map {
		if k <= 0 {
			return &ValidationError{Field: "sharing_penalty_map", Reason: "keys must be positive job counts"}
		}
		if v <= 0 || v > 1 {
			return &ValidationError{Field: "sharing_penalty_map", Reason: "values must be within (0, 1]"}
		}
	}
	return nil
}

// SimulatorConfig is the Simulator input of spec.md §6.
type SimulatorConfig struct {
	MaxTime             float64 // +Inf means "never stop on time"
	StarvationThreshold float64 // +Inf means "never starve"
	TimeStep            float64
	TimelineInterval    float64
	Sharing             SharingConfig
}

// DefaultSimulatorConfig mirrors the Python original's defaults
// (max_time and starvation_threshold default to +Inf).
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		MaxTime:             inf(),
		StarvationThreshold: inf(),
		TimeStep:            defaultTimeStep,
		TimelineInterval:    defaultTimelineInterval,
		Sharing:             DefaultSharingConfig(),
	}
}

// Validate checks SimulatorConfig invariants. +Inf is valid for
// MaxTime/StarvationThreshold per spec.md §7 ("numeric degeneracies").
func (c SimulatorConfig) Validate() error {
	if c.TimeStep <= 0 {
		return &ValidationError{Field: "time_step", Reason: "must be positive"}
	}
	if c.TimelineInterval <= 0 {
		return &ValidationError{Field: "timeline_interval", Reason: "must be positive"}
	}
	if c.MaxTime <= 0 {
		return &ValidationError{Field: "max_time", Reason: "must be positive (or +Inf)"}
	}
	if c.StarvationThreshold <= 0 {
		return &ValidationError{Field: "starvation_threshold", Reason: "must be positive (or +Inf)"}
	}
	return c.Sharing.Validate()
}

// MinGPUTimeConfig parameterizes the patient topology-aware scheduler (§4.8).
type MinGPUTimeConfig struct {
	PatienceThreshold float64
	StarvationLimit   float64 // seconds; must be < simulator StarvationThreshold
}

func DefaultMinGPUTimeConfig() MinGPUTimeConfig {
	return MinGPUTimeConfig{
		PatienceThreshold: defaultPatienceThreshold,
		StarvationLimit:   defaultMinGPUStarvationSec,
	}
}

func (c MinGPUTimeConfig) Validate() error {
	if c.PatienceThreshold < 1.0 {
		return &ValidationError{Field: "patience_threshold", Reason: "must be >= 1.0"}
	}
	if c.StarvationLimit <= 0 {
		return &ValidationError{Field: "starvation_limit", Reason: "must be positive"}
	}
	return nil
}

// PolluxConfig parameterizes the elastic scheduler (§4.9).
type PolluxConfig struct {
	Alpha float64 // in [0, 1]
}

func DefaultPolluxConfig() PolluxConfig {
	return PolluxConfig{Alpha: defaultAlpha}
}

func (c PolluxConfig) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return &ValidationError{Field: "alpha", Reason: "must be within [0, 1]"}
	}
	return nil
}

// PolluxPatientConfig parameterizes the elastic+patience+sharing
// scheduler (§4.10).
type PolluxPatientConfig struct {
	Alpha               float64
	EfficiencyThreshold float64
	StarvationLimit     float64
}

func DefaultPolluxPatientConfig() PolluxPatientConfig {
	return PolluxPatientConfig{
		Alpha:               defaultAlpha,
		EfficiencyThreshold: defaultEfficiencyThreshold,
		StarvationLimit:     defaultPolluxStarvationSec,
	}
}

func (c PolluxPatientConfig) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return &ValidationError{Field: "alpha", Reason: "must be within [0, 1]"}
	}
	if c.EfficiencyThreshold <= 0 || c.EfficiencyThreshold > 1 {
		return &ValidationError{Field: "efficiency_threshold", Reason: "must be within (0, 1]"}
	}
	if c.StarvationLimit <= 0 {
		return &ValidationError{Field: "starvation_limit", Reason: "must be positive"}
	}
	return nil
}

// CLIOptions is the full set of flags cmd/gpusim registers, following
// the teacher's ServerOption + RegisterFlags idiom.
type CLIOptions struct {
	Scheduler string
	RunAll    bool
	Plot      bool
	Verbose   bool
	OutputDir string

	WorkloadFile string
	ConfigFile   string

	NumRacks         int
	GPUsPerRack      int
	GPUMemoryGB      float64
	IntraRackPenalty float64
	InterRackPenalty float64

	MaxTimeStr             string
	StarvationThresholdStr string
	TimeStep               float64
	TimelineInterval       float64

	PatienceThreshold   float64
	MinGPUStarvationSec float64
	Alpha               float64
	EfficiencyThreshold float64
	PolluxStarvationSec float64
}

// SchedulerKeys is the closed set of valid --scheduler values (spec.md §6).
var SchedulerKeys = []string{
	"first-fit", "best-fit", "rack-aware", "min-gpu-time", "pollux", "pollux-patient",
}

// IsValidSchedulerKey reports whether key is in the closed set.
func IsValidSchedulerKey(key string) bool {
	for _, k := range SchedulerKeys {
		if k == key {
			return true
		}
	}
	return false
}

// RegisterFlags registers every CLI flag on fs, mirroring
// cmd/scheduler/app/options.ServerOption.AddFlags.
func RegisterFlags(fs *pflag.FlagSet, o *CLIOptions) {
	fs.StringVar(&o.Scheduler, "scheduler", defaultSchedulerKey,
		fmt.Sprintf("scheduling policy: one of %v", SchedulerKeys))
	fs.BoolVar(&o.RunAll, "run-all", false, "run every scheduler in the closed set and emit comparison.csv")
	fs.BoolVar(&o.Plot, "plot", false, "hand the recorded timeline off to an external plotting collaborator")
	fs.BoolVar(&o.Verbose, "verbose", false, "print human-readable summary and task tables to stdout")
	fs.StringVar(&o.OutputDir, "output-dir", "results", "directory to write summary/tasks/timeline CSVs into")

	fs.StringVar(&o.WorkloadFile, "workload", "", "path to a YAML workload file; if empty, a synthetic workload is generated")
	fs.StringVar(&o.ConfigFile, "config", "", "path to a YAML config file overriding cluster/simulator defaults")

	fs.IntVar(&o.NumRacks, "num-racks", 8, "number of racks")
	fs.IntVar(&o.GPUsPerRack, "gpus-per-rack", 8, "GPUs per rack")
	fs.Float64Var(&o.GPUMemoryGB, "gpu-memory-gb", 80.0, "memory per GPU, in GB")
	fs.Float64Var(&o.IntraRackPenalty, "intra-rack-penalty", 1.4, "same-rack placement penalty")
	fs.Float64Var(&o.InterRackPenalty, "inter-rack-penalty", 2.1, "cross-rack placement penalty")

	fs.StringVar(&o.MaxTimeStr, "max-time", "inf", "maximum simulated time (duration string or \"inf\")")
	fs.StringVar(&o.StarvationThresholdStr, "starvation-threshold", "inf", "starvation threshold (duration string or \"inf\")")
	fs.Float64Var(&o.TimeStep, "time-step", defaultTimeStep, "simulated seconds advanced per tick")
	fs.Float64Var(&o.TimelineInterval, "timeline-interval", defaultTimelineInterval, "seconds between timeline snapshots")

	fs.Float64Var(&o.PatienceThreshold, "patience-threshold", defaultPatienceThreshold, "min-gpu-time: max acceptable topology penalty before waiting")
	fs.Float64Var(&o.MinGPUStarvationSec, "min-gpu-time-starvation-limit", defaultMinGPUStarvationSec, "min-gpu-time: forced-placement wait limit, seconds")
	fs.Float64Var(&o.Alpha, "alpha", defaultAlpha, "pollux/pollux-patient: parallelism vs. cost tradeoff, in [0,1]")
	fs.Float64Var(&o.EfficiencyThreshold, "efficiency-threshold", defaultEfficiencyThreshold, "pollux-patient: min acceptable efficiency before waiting")
	fs.Float64Var(&o.PolluxStarvationSec, "pollux-starvation-limit", defaultPolluxStarvationSec, "pollux-patient: forced-placement wait limit, seconds")
}

// ParseDurationSeconds parses a duration string (accepting both bare
// seconds like "120" and Go duration strings like "2m") or the literal
// "inf"/"infinite", returning seconds. This is the Go analogue of the
// Python original's float('inf') sentinel for max_time/starvation_threshold.
func ParseDurationSeconds(s string) (float64, error) {
	switch s {
	case "inf", "infinite", "":
		return inf(), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", s, err)
	}
	return d.Seconds(), nil
}

func inf() float64 {
	return math.Inf(1)
}
