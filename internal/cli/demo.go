package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/thruflo/whirl/internal/pool"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run two demo batches of sleep jobs",
	Long: `Runs two consecutive batches of four jobs of varying duration with at
most three running at once, demonstrating that the display resets cleanly
between batches.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	jobs := []struct {
		name     string
		duration time.Duration
	}{
		{"Alpha", 2500 * time.Millisecond},
		{"Beta", 1500 * time.Millisecond},
		{"Gamma", 3 * time.Second},
		{"Delta", 2 * time.Second},
	}

	specs := make([]pool.JobSpec, 0, len(jobs))
	for _, job := range jobs {
		name, duration := job.name, job.duration
		specs = append(specs, pool.JobSpec{
			Label: name,
			Fn: func() (any, error) {
				time.Sleep(duration)
				return name + " finished", nil
			},
		})
	}

	out := cmd.OutOrStdout()
	for run := 1; run <= 2; run++ {
		results, err := pool.RunJobs(specs, pool.WithMaxWorkers(3))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run %d:\n", run)
		labels := make([]string, 0, len(results))
		for label := range results {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(out, "  %s: %v\n", label, results[label].Result)
		}
	}
	return nil
}
