package cli

import (
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thruflo/whirl/internal/config"
	"github.com/thruflo/whirl/internal/pool"
	"github.com/thruflo/whirl/internal/spin"
)

var (
	runWorkers int
	runMessage string
)

var runCmd = &cobra.Command{
	Use:   "run <jobs.yaml>",
	Short: "Run the jobs in a yaml job file",
	Long: `Runs every job in the given yaml file concurrently, one spinner per job.

The file holds a list of labeled shell commands:

    jobs:
      - label: lint
        command: make lint
      - label: tests
        command: go test ./...
        dir: backend

A failing command marks its job failed without affecting sibling jobs.
The exit code is non-zero if any job failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "max concurrent jobs (0 = unbounded)")
	runCmd.Flags().StringVar(&runMessage, "message", "", "spinner line prefix")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jobs, err := config.LoadJobs(args[0])
	if err != nil {
		return err
	}
	if runWorkers > 0 {
		cfg.MaxWorkers = runWorkers
	}
	if runMessage != "" {
		cfg.Message = runMessage
	}

	specs := make([]pool.JobSpec, 0, len(jobs))
	for _, job := range jobs {
		specs = append(specs, pool.JobSpec{Label: job.Label, Fn: commandFunc(job)})
	}

	opts := []pool.Option{
		pool.WithMaxWorkers(cfg.MaxWorkers),
		pool.WithMessage(cfg.Message),
	}
	if cfg.IntervalMS != config.DefaultIntervalMS {
		interval := time.Duration(cfg.IntervalMS) * time.Millisecond
		opts = append(opts, pool.WithController(spin.NewController(interval)))
	}

	results, err := pool.RunJobs(specs, opts...)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), results)
}

// commandFunc wraps a job definition as a pool job running via the shell.
// The command's combined output becomes the job's result on success, or
// part of its error message on failure.
func commandFunc(job config.JobDef) pool.JobFunc {
	return func() (any, error) {
		c := exec.Command("sh", "-c", job.Command)
		c.Dir = job.Dir
		out, err := c.CombinedOutput()
		text := strings.TrimSpace(string(out))
		if err != nil {
			if text != "" {
				return nil, fmt.Errorf("%w: %s", err, text)
			}
			return nil, err
		}
		return text, nil
	}
}

// printSummary writes one line per job in label order and returns an error
// when any job failed, so the process exits non-zero.
func printSummary(w io.Writer, results map[string]pool.JobResult) error {
	labels := make([]string, 0, len(results))
	for label := range results {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	failed := 0
	for _, label := range labels {
		res := results[label]
		if res.OK {
			fmt.Fprintf(w, "  %s: ok\n", label)
		} else {
			failed++
			fmt.Fprintf(w, "  %s: failed: %s\n", label, res.Error.Message)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}
