package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/layerlint/internal/cli"
	"github.com/leapstack-labs/layerlint/internal/cli/config"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
)

// runCommand executes the root command with a temp project config and
// returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "layerlint.yaml")
	content := fmt.Sprintf("architecture: medallion\nstate_path: %s\n",
		filepath.Join(dir, "state.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCheckValidIdentifiers(t *testing.T) {
	out, err := runCommand(t, "check", "--no-save",
		"raw_acme__salesforce__account", "dim_customers")
	require.NoError(t, err)
	assert.Contains(t, out, "All 2 identifiers follow the medallion conventions")
}

func TestCheckViolationsExitError(t *testing.T) {
	out, err := runCommand(t, "check", "--no-save", "anl_sales__f_orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming violations found")
	assert.Contains(t, out, "NC04")
	assert.Contains(t, out, "fact_orders")
}

func TestCheckColumnsFlag(t *testing.T) {
	_, err := runCommand(t, "check", "--no-save", "--columns", "customer_key")
	require.NoError(t, err)

	_, err = runCommand(t, "check", "--no-save", "--columns", "customer_id")
	require.Error(t, err)
}

func TestCheckJSONOutput(t *testing.T) {
	out, err := runCommand(t, "check", "--no-save", "-o", "json", "customer_id", "--columns")
	require.Error(t, err)

	var decoded output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "medallion", decoded.Architecture)
	assert.Equal(t, 1, decoded.Summary.Failed)
	require.Len(t, decoded.Violations, 1)
	assert.Equal(t, "NC05", decoded.Violations[0].RuleID)
	assert.Equal(t, "customer_key", decoded.Violations[0].Expected)
}

func TestCheckDisableFlag(t *testing.T) {
	_, err := runCommand(t, "check", "--no-save", "--disable", "NC04,NC03", "anl_sales__f_orders")
	require.NoError(t, err)
}

func TestCheckSeverityThreshold(t *testing.T) {
	// NC05 is a warning; an error-only run ignores it.
	_, err := runCommand(t, "check", "--no-save", "--severity", "error", "--columns", "customer_id")
	require.NoError(t, err)
}

func TestCheckSavesRuns(t *testing.T) {
	config.ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "layerlint.yaml")
	content := fmt.Sprintf("state_path: %s\n", filepath.Join(dir, "state.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	run := func(args ...string) (string, error) {
		config.ResetConfig()
		var out bytes.Buffer
		cmd := cli.NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	_, err := run("check", "dim_customers")
	require.NoError(t, err)

	out, err := run("runs", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "medallion")
	assert.Contains(t, out, `"total": 1`)
}

func TestBaselineSuppression(t *testing.T) {
	config.ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "layerlint.yaml")
	modelsDir := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(modelsDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(modelsDir, "anl_sales__f_orders.sql"), []byte("select 1"), 0o644))
	content := fmt.Sprintf("state_path: %s\n", filepath.Join(dir, "state.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	run := func(args ...string) (string, error) {
		config.ResetConfig()
		var out bytes.Buffer
		cmd := cli.NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	// The project scan finds the violation.
	_, err := run("check", "--no-save")
	require.Error(t, err)

	// Accept it, then the check passes.
	out, err := run("baseline", "update")
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline updated")

	_, err = run("check", "--no-save")
	require.NoError(t, err)

	// --no-baseline reports it again.
	_, err = run("check", "--no-save", "--no-baseline")
	require.Error(t, err)
}

func TestRulesListAndShow(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)
	for _, id := range []string{"NC01", "NC02", "NC03", "NC04", "NC05"} {
		assert.Contains(t, out, id)
	}

	out, err = runCommand(t, "rules", "NC05")
	require.NoError(t, err)
	assert.Contains(t, out, "naming.key-naming")

	_, err = runCommand(t, "rules", "NC99")
	require.Error(t, err)
}

func TestInitScaffoldsProject(t *testing.T) {
	config.ResetConfig()

	target := filepath.Join(t.TempDir(), "proj")
	out, err := runCommand(t, "init", target, "--example")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized")

	assert.FileExists(t, filepath.Join(target, "layerlint.yaml"))
	assert.FileExists(t, filepath.Join(target, "models", "schema.yml"))

	// Running init again without --force fails.
	_, err = runCommand(t, "init", target)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "layerlint v")
}
