package pool

// JobFunc is the body of a submitted job. A nil error means success; any
// returned error or panic is captured in the job's result, never propagated.
type JobFunc func() (any, error)

// JobSpec describes one job for RunJobs. Label must be unique within a run;
// Fn must be non-nil.
type JobSpec struct {
	Label string
	Fn    JobFunc
}

// JobError captures why a job failed.
type JobError struct {
	Kind    string
	Message string
}

// JobResult is the immutable outcome of one job. Result is only meaningful
// when OK is true; Error is only set when OK is false.
type JobResult struct {
	OK     bool
	Result any
	Error  *JobError
}

// RunJobs validates the given specs, runs them all on a fresh Pool, and
// returns the label -> result mapping. An empty spec list returns an empty
// map without starting anything. The Pool is shut down on every exit path.
func RunJobs(specs []JobSpec, opts ...Option) (map[string]JobResult, error) {
	for _, spec := range specs {
		if spec.Label == "" {
			return nil, ValidationError{Field: "label"}
		}
		if spec.Fn == nil {
			return nil, ValidationError{Field: "fn"}
		}
	}
	if len(specs) == 0 {
		return map[string]JobResult{}, nil
	}

	p := New(opts...)
	defer p.Shutdown(true)
	for _, spec := range specs {
		if err := p.Submit(spec.Label, spec.Fn); err != nil {
			return nil, err
		}
	}
	return p.WaitAll(), nil
}
