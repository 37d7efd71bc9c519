package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJobsEmptyInput(t *testing.T) {
	t.Parallel()

	results, err := RunJobs(nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = RunJobs([]JobSpec{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunJobsValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		specs     []JobSpec
		wantField string
	}{
		{
			name:      "missing label",
			specs:     []JobSpec{{Fn: func() (any, error) { return nil, nil }}},
			wantField: "label",
		},
		{
			name:      "missing fn",
			specs:     []JobSpec{{Label: "a"}},
			wantField: "fn",
		},
		{
			name: "bad spec after good one",
			specs: []JobSpec{
				{Label: "ok", Fn: func() (any, error) { return nil, nil }},
				{Label: "broken"},
			},
			wantField: "fn",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := RunJobs(tt.specs)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestRunJobsCollectsAllResults(t *testing.T) {
	t.Parallel()

	specs := []JobSpec{
		{Label: "A", Fn: func() (any, error) { return 42, nil }},
		{Label: "B", Fn: func() (any, error) { return nil, errors.New("boom") }},
		{Label: "C", Fn: func() (any, error) { return "done", nil }},
	}

	results, err := RunJobs(specs, testOpts(WithMaxWorkers(2))...)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results["A"].OK)
	assert.Equal(t, 42, results["A"].Result)
	assert.False(t, results["B"].OK)
	assert.Equal(t, "boom", results["B"].Error.Message)
	assert.True(t, results["C"].OK)
	assert.Equal(t, "done", results["C"].Result)
}

func TestRunJobsDuplicateLabel(t *testing.T) {
	t.Parallel()

	specs := []JobSpec{
		{Label: "same", Fn: func() (any, error) { return 1, nil }},
		{Label: "same", Fn: func() (any, error) { return 2, nil }},
	}

	_, err := RunJobs(specs, testOpts()...)
	assert.ErrorIs(t, err, ErrDuplicateLabel)
}
