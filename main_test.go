package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute(), "Command should succeed, output:\n%s", buf.String())
	return buf.String()
}

func TestCommands(t *testing.T) {
	t.Run("listing variables", func(t *testing.T) {
		out := execute(t, "variables", "testdata/invest.yaml")

		require.Contains(t, out, "Name: market")
		require.Contains(t, out, "Expr: (cumulative)")
	})

	t.Run("evaluating the optimal strategy", func(t *testing.T) {
		out := execute(t, "evaluate", "testdata/drill.yaml")

		require.Contains(t, out, "Expected value: 30.0000")
		require.Contains(t, out, "Optimal choice: test=0 (branch 1)")
		require.Contains(t, out, "    130.00    50.00")
	})

	t.Run("printing a forced strategy", func(t *testing.T) {
		out := execute(t, "tree", "testdata/invest.yaml", "--force", "0=1", "--selected")

		require.Contains(t, out, "(forced branch = 1)")
		require.Contains(t, out, "[T] #4 invest=0")
		require.NotContains(t, out, "[C] #1")
	})

	t.Run("sweeping decisions", func(t *testing.T) {
		out := execute(t, "sweep", "testdata/invest.yaml")

		require.Contains(t, out, "invest")
		require.Contains(t, out, "40.0000")
	})

	t.Run("simulating the strategy", func(t *testing.T) {
		out := execute(t, "simulate", "testdata/invest.yaml", "--episodes", "1000", "--seed", "3")

		require.Contains(t, out, "Sampled 1000 episodes (seed 3)")
		require.Contains(t, out, "Exact:")
	})
}

func TestConfigErrors(t *testing.T) {
	modelPath, err := filepath.Abs("testdata/invest.yaml")
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "decide.yaml"), []byte("log: [unclosed"), 0644))
	chdir(t, dir)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"variables", modelPath})

	err = rootCmd.Execute()

	require.ErrorContains(t, err, "load config")
	require.ErrorContains(t, err, "config: read file")
}

func TestParseForce(t *testing.T) {
	id, branch, err := parseForce("12=3")
	require.NoError(t, err)
	require.Equal(t, 12, id)
	require.Equal(t, 3, branch)

	_, _, err = parseForce("12")
	require.Error(t, err)
	_, _, err = parseForce("a=1")
	require.Error(t, err)
	_, _, err = parseForce("1=b")
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
