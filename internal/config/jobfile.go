package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobDef is one entry in a job file: a labeled shell command.
type JobDef struct {
	Label   string `yaml:"label"`
	Command string `yaml:"command"`
	// Dir is the working directory for the command; empty means inherit.
	Dir string `yaml:"dir"`
}

// jobFile is the on-disk format accepted by "whirl run".
type jobFile struct {
	Jobs []JobDef `yaml:"jobs"`
}

// LoadJobs reads and validates a yaml job file.
func LoadJobs(path string) ([]JobDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	var jf jobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	for i, job := range jf.Jobs {
		if job.Label == "" {
			return nil, ValidationError{
				Field:   fmt.Sprintf("jobs[%d].label", i),
				Message: "must not be empty",
			}
		}
		if job.Command == "" {
			return nil, ValidationError{
				Field:   fmt.Sprintf("jobs[%d].command", i),
				Message: "must not be empty",
			}
		}
	}
	return jf.Jobs, nil
}
