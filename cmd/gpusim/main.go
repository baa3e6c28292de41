// Command gpusim runs one scheduling policy (or every policy, with
// --run-all) against a workload over a simulated GPU cluster and
// writes the CSV artifacts spec.md §6 defines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nvidia/gpusim/internal/cluster"
	"github.com/nvidia/gpusim/internal/report"
	"github.com/nvidia/gpusim/internal/runner"
	"github.com/nvidia/gpusim/internal/scheduler"
	"github.com/nvidia/gpusim/internal/simconfig"
	"github.com/nvidia/gpusim/internal/simlog"
	"github.com/nvidia/gpusim/internal/workload"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("gpusim", pflag.ContinueOnError)
	opts := &simconfig.CLIOptions{}
	simconfig.RegisterFlags(fs, opts)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	configureLogging(opts.Verbose)
	log := simlog.Named("cmd")

	if !opts.RunAll && !simconfig.IsValidSchedulerKey(opts.Scheduler) {
		log.Errorf("unknown scheduler key %q, must be one of %v", opts.Scheduler, simconfig.SchedulerKeys)
		return 1
	}

	runnerOpts, err := buildRunnerOptions(fs, opts)
	if err != nil {
		log.Errorf("building configuration: %v", err)
		return 1
	}

	if opts.RunAll {
		results, err := runner.RunAll(runnerOpts)
		if err != nil {
			log.Errorf("run-all failed: %v", err)
			return 1
		}
		for _, r := range results {
			if opts.Verbose {
				report.PrintSummary(r.Summary)
				report.PrintTaskTable(r.Collector.Completions)
			}
			if err := runner.WriteArtifacts(opts.OutputDir, r); err != nil {
				log.Errorf("writing artifacts for %s: %v", r.SchedulerKey, err)
				return 1
			}
		}
		if err := runner.WriteComparison(opts.OutputDir, results); err != nil {
			log.Errorf("writing comparison.csv: %v", err)
			return 1
		}
		return 0
	}

	result, err := runner.Run(opts.Scheduler, runnerOpts)
	if err != nil {
		log.Errorf("run failed: %v", err)
		return 1
	}
	if opts.Verbose {
		report.PrintSummary(result.Summary)
		report.PrintTaskTable(result.Collector.Completions)
	}
	if err := runner.WriteArtifacts(opts.OutputDir, result); err != nil {
		log.Errorf("writing artifacts: %v", err)
		return 1
	}
	if opts.Plot {
		log.Infof("timeline_%s.csv is ready for an external plotting collaborator", opts.Scheduler)
	}
	return 0
}

func configureLogging(verbose bool) {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		l = zap.NewNop()
	}
	simlog.Configure(l)
}

// buildRunnerOptions merges CLI flags and an optional YAML config file
// into the flat option structs the core packages consume. A file value
// only fills a field the caller did not explicitly set on the command
// line; an explicitly-passed flag always wins, per SPEC_FULL.md §6.
func buildRunnerOptions(fs *pflag.FlagSet, opts *simconfig.CLIOptions) (runner.Options, error) {
	clusterCfg := cluster.Config{
		NumRacks:         opts.NumRacks,
		GPUsPerRack:      opts.GPUsPerRack,
		GPUMemoryGB:      opts.GPUMemoryGB,
		IntraRackPenalty: opts.IntraRackPenalty,
		InterRackPenalty: opts.InterRackPenalty,
	}

	maxTime, err := simconfig.ParseDurationSeconds(opts.MaxTimeStr)
	if err != nil {
		return runner.Options{}, err
	}
	starvation, err := simconfig.ParseDurationSeconds(opts.StarvationThresholdStr)
	if err != nil {
		return runner.Options{}, err
	}

	simCfg := simconfig.SimulatorConfig{
		MaxTime:             maxTime,
		StarvationThreshold: starvation,
		TimeStep:            opts.TimeStep,
		TimelineInterval:    opts.TimelineInterval,
		Sharing:             simconfig.DefaultSharingConfig(),
	}

	policyCfg := scheduler.Config{
		MinGPUTime: simconfig.MinGPUTimeConfig{
			PatienceThreshold: opts.PatienceThreshold,
			StarvationLimit:   opts.MinGPUStarvationSec,
		},
		Pollux: simconfig.PolluxConfig{Alpha: opts.Alpha},
		PolluxPatient: simconfig.PolluxPatientConfig{
			Alpha:               opts.Alpha,
			EfficiencyThreshold: opts.EfficiencyThreshold,
			StarvationLimit:     opts.PolluxStarvationSec,
		},
	}

	if opts.ConfigFile != "" {
		fc, err := simconfig.LoadFileConfig(opts.ConfigFile)
		if err != nil {
			return runner.Options{}, err
		}
		if fc.Cluster != nil {
			applyFileClusterConfig(fs, &clusterCfg, fc.Cluster)
		}
		if fc.Simulator != nil {
			if err := applyFileSimulatorConfig(fs, &simCfg, fc.Simulator); err != nil {
				return runner.Options{}, err
			}
		}
	}
	policyCfg.Sharing = simCfg.Sharing

	if err := clusterCfg.Validate(); err != nil {
		return runner.Options{}, err
	}
	if err := simCfg.Validate(); err != nil {
		return runner.Options{}, err
	}

	var specs []workload.JobSpec
	if opts.WorkloadFile != "" {
		specs, err = simconfig.LoadWorkload(opts.WorkloadFile)
		if err != nil {
			return runner.Options{}, err
		}
	} else {
		gen := workload.NewGenerator(1)
		specs = gen.Generate(workload.DefaultGeneratorConfig())
	}

	return runner.Options{
		Cluster:   clusterCfg,
		Simulator: simCfg,
		Policies:  policyCfg,
		Specs:     specs,
	}, nil
}

// applyFileClusterConfig fills clusterCfg fields from the config file,
// skipping any field whose flag was explicitly passed on the command
// line — an explicit flag always beats the file.
func applyFileClusterConfig(fs *pflag.FlagSet, dst *cluster.Config, fc *cluster.Config) {
	if !fs.Changed("num-racks") {
		dst.NumRacks = fc.NumRacks
	}
	if !fs.Changed("gpus-per-rack") {
		dst.GPUsPerRack = fc.GPUsPerRack
	}
	if !fs.Changed("gpu-memory-gb") {
		dst.GPUMemoryGB = fc.GPUMemoryGB
	}
	if !fs.Changed("intra-rack-penalty") {
		dst.IntraRackPenalty = fc.IntraRackPenalty
	}
	if !fs.Changed("inter-rack-penalty") {
		dst.InterRackPenalty = fc.InterRackPenalty
	}
}

func applyFileSimulatorConfig(fs *pflag.FlagSet, dst *simconfig.SimulatorConfig, fc *simconfig.FileSimulatorConfig) error {
	if fc.MaxTime != "" && !fs.Changed("max-time") {
		v, err := simconfig.ParseDurationSeconds(fc.MaxTime)
		if err != nil {
			return err
		}
		dst.MaxTime = v
	}
	if fc.StarvationThreshold != "" && !fs.Changed("starvation-threshold") {
		v, err := simconfig.ParseDurationSeconds(fc.StarvationThreshold)
		if err != nil {
			return err
		}
		dst.StarvationThreshold = v
	}
	if fc.TimeStep > 0 && !fs.Changed("time-step") {
		dst.TimeStep = fc.TimeStep
	}
	if fc.TimelineInterval > 0 && !fs.Changed("timeline-interval") {
		dst.TimelineInterval = fc.TimelineInterval
	}
	if fc.SharingPenaltyMap != nil {
		dst.Sharing.Map = fc.SharingPenaltyMap
	}
	if fc.SharingPenaltyFloor > 0 {
		dst.Sharing.Floor = fc.SharingPenaltyFloor
	}
	if fc.SharingAggregation != "" {
		dst.Sharing.Aggregation = fc.SharingAggregation
	}
	dst.Sharing.InvertEfficiency = fc.InvertEfficiency
	return nil
}
