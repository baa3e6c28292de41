package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nvidia/gpusim/internal/metrics"
)

// PrintSummary renders Summary as a human-readable console report,
// the Go counterpart of the Python original's print_summary. Carried
// forward per SPEC_FULL.md's supplemented-features list, gated behind
// --verbose in cmd/gpusim.
func PrintSummary(s Summary) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Run summary")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Scheduler:        %s\n", s.Scheduler)
	fmt.Printf("Total tasks:      %s\n", humanize.Comma(int64(s.TotalTasks)))
	fmt.Printf("Completed:        %s\n", humanize.Comma(int64(s.Completed)))
	fmt.Printf("Starved:          %s\n", humanize.Comma(int64(s.Starved)))
	fmt.Printf("Total GPU time:   %s sec\n", f2(s.TotalGPUTime))
	fmt.Printf("Average JCT:      %s sec\n", f2OrNA(s.AverageJCT, s.HasAverageJCT))
	fmt.Printf("Average wait:     %s sec\n", f2OrNA(s.AverageWait, s.HasAverageWait))
	fmt.Printf("Total JCT:        %s sec\n", f2(s.TotalJCT))
	fmt.Printf("Sharing semantics: %s\n", s.SharingSemantics)
	fmt.Println(strings.Repeat("=", 50))
}

// PrintTaskTable renders one row per job, the Go counterpart of the
// Python original's print_task_table.
func PrintTaskTable(completions []metrics.JobSnapshot) {
	if len(completions) == 0 {
		fmt.Println("no task data")
		return
	}

	fmt.Println(strings.Repeat("=", 110))
	fmt.Println("Task detail")
	fmt.Println(strings.Repeat("=", 110))
	fmt.Printf("%-14s %-10s %-6s %-10s %-10s %-10s %-10s %-10s %-10s\n",
		"task_id", "status", "gpus", "mem/gpu", "submitted", "started", "completed", "jct", "wait")
	fmt.Println(strings.Repeat("-", 110))

	for _, m := range completions {
		fmt.Printf("%-14s %-10s %-6d %-10s %-10s %-10s %-10s %-10s %-10s\n",
			m.TaskID,
			m.Status,
			m.NumGPUs,
			fmt.Sprintf("%.1f", m.MemoryPerGPU),
			fmt.Sprintf("%.1f", m.SubmissionTime),
			f1OrNA(m.StartTime, m.HasStartTime),
			f1OrNA(m.CompletionTime, m.HasCompletionTime),
			f1OrNA(m.JCT, m.HasJCT),
			f1OrNA(m.Wait, m.HasWait),
		)
	}
	fmt.Println(strings.Repeat("=", 110))
}

func f1OrNA(v float64, has bool) string {
	if !has {
		return naValue
	}
	return fmt.Sprintf("%.1f", v)
}
