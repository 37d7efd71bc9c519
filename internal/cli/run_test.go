package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/whirl/internal/config"
	"github.com/thruflo/whirl/internal/pool"
)

func TestRunCommand_RequiresOneArg(t *testing.T) {
	assert.Equal(t, "run <jobs.yaml>", runCmd.Use)

	assert.Error(t, runCmd.Args(runCmd, []string{}))
	assert.NoError(t, runCmd.Args(runCmd, []string{"jobs.yaml"}))
	assert.Error(t, runCmd.Args(runCmd, []string{"a.yaml", "b.yaml"}))
}

func TestDemoCommand_TakesNoArgs(t *testing.T) {
	assert.Equal(t, "demo", demoCmd.Use)

	assert.NoError(t, demoCmd.Args(demoCmd, []string{}))
	assert.Error(t, demoCmd.Args(demoCmd, []string{"extra"}))
}

func TestCommandFunc_CapturesOutput(t *testing.T) {
	t.Parallel()

	fn := commandFunc(config.JobDef{Label: "greet", Command: "echo hello"})
	value, err := fn()
	require.NoError(t, err)
	assert.Equal(t, "hello", value)
}

func TestCommandFunc_FailureIncludesOutput(t *testing.T) {
	t.Parallel()

	fn := commandFunc(config.JobDef{Label: "fail", Command: "echo bad >&2; exit 3"})
	_, err := fn()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCommandFunc_RunsInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fn := commandFunc(config.JobDef{Label: "where", Command: "pwd", Dir: dir})
	value, err := fn()
	require.NoError(t, err)
	assert.Contains(t, value.(string), filepath.Base(dir))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	results := map[string]pool.JobResult{
		"build": {OK: true, Result: "artifacts written"},
		"lint":  {Error: &pool.JobError{Kind: "exitError", Message: "exit status 1"}},
		"tests": {OK: true, Result: "ok"},
	}

	var buf bytes.Buffer
	err := printSummary(&buf, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 jobs failed")

	want := "  build: ok\n  lint: failed: exit status 1\n  tests: ok\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummaryAllOK(t *testing.T) {
	t.Parallel()

	results := map[string]pool.JobResult{
		"a": {OK: true},
		"b": {OK: true},
	}

	var buf bytes.Buffer
	assert.NoError(t, printSummary(&buf, results))
	assert.Equal(t, "  a: ok\n  b: ok\n", buf.String())
}
