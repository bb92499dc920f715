package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/itree/cmd/itree/commands"
	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/repl"
)

// Test fixtures.
const (
	sampleFile     = "testdata/sample.txt"
	sampleJSONFile = "testdata/sample.json"
	sampleEcho     = "Read the following intervals:\n[1,5] a\n[4,9] b\n[10,12] c\n[6,8] d\n"
)

// execute runs the root command with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"query", "find", "stats", "convert", "serve", "mcp", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "input-format", "verbose", "quiet", "no-color", "log-json"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "itree "))
	assert.Contains(t, out, "commit:")
}

func TestFindCommand_Text(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "find", sampleFile, "7", "7", "--sort", "-q")
	require.NoError(t, err)

	assert.Equal(t, "[4,9] b\n[6,8] d\n", out)
}

func TestFindCommand_JSONInputAndOutput(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "find", sampleJSONFile, "0", "100", "--format", "json", "--limit", "3", "--sort", "-q")
	require.NoError(t, err)

	var rs intervalio.ResultSet

	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	assert.Equal(t, 4, rs.Count)
	assert.True(t, rs.Truncated)
	assert.Equal(t, []string{"a", "b", "d"}, []string{rs.Intervals[0].Label, rs.Intervals[1].Label, rs.Intervals[2].Label})
}

func TestFindCommand_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "find", sampleFile, "9", "3", "-q")
	require.ErrorIs(t, err, interval.ErrInvertedInterval)

	_, _, err = execute(t, "", "find", sampleFile, "x", "3", "-q")
	require.ErrorIs(t, err, intervalio.ErrBadEndpoint)

	_, _, err = execute(t, "", "find", "testdata/missing.txt", "1", "3", "-q")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "", "find", sampleFile, "1", "3", "--format", "xml", "-q")
	require.ErrorIs(t, err, intervalio.ErrUnknownFormat)
}

func TestFindCommand_LogsBuildSummary(t *testing.T) {
	t.Parallel()

	_, logs, err := execute(t, "", "find", sampleFile, "1", "1", "--log-json")
	require.NoError(t, err)

	assert.Contains(t, logs, `"msg":"interval tree built"`)
	assert.Contains(t, logs, `"intervals":4`)
	assert.Contains(t, logs, `"service":"itree"`)
}

func TestQueryCommand_Transcript(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "7 7\nquit\n", "query", sampleFile, "-q")
	require.NoError(t, err)

	want := sampleEcho + repl.DefaultPrompt + "[4,9] b\n[6,8] d\n" + repl.DefaultPrompt
	assert.Equal(t, want, out)
}

func TestQueryCommand_PromptsForFileName(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, sampleFile+"\n12 13\n", "query", "-q")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Enter intervals file name => "+sampleEcho))
	assert.Contains(t, out, "[10,12] c\n")
}

func TestQueryCommand_NoFileName(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "query", "-q")
	require.ErrorIs(t, err, commands.ErrNoFileName)
}

func TestStatsCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "stats", sampleFile, "-q")
	require.NoError(t, err)

	assert.Contains(t, out, "Intervals")
	assert.Contains(t, strings.ToLower(out), "depth")

	out, _, err = execute(t, "", "stats", sampleFile, "--format", "json", "-q")
	require.NoError(t, err)

	var stats interval.Stats

	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 15, stats.Nodes)
}

func TestStatsCommand_Plot(t *testing.T) {
	t.Parallel()

	plot := filepath.Join(t.TempDir(), "depth.html")

	_, _, err := execute(t, "", "stats", sampleFile, "--plot", plot, "-q")
	require.NoError(t, err)

	html, err := os.ReadFile(plot)
	require.NoError(t, err)
	assert.Contains(t, string(html), "itree depth profile")
}

func TestConvertCommand_RoundTripThroughLZ4(t *testing.T) {
	t.Parallel()

	compressed := filepath.Join(t.TempDir(), "sample.txt.lz4")

	_, _, err := execute(t, "", "convert", sampleJSONFile, compressed, "-q")
	require.NoError(t, err)

	out, _, err := execute(t, "", "find", compressed, "4", "5", "--sort", "-q")
	require.NoError(t, err)

	assert.Equal(t, "[1,5] a\n[4,9] b\n", out)
}

func TestServeAndMCPCommands_Flags(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("port"))
	assert.NotNil(t, serve.Flags().Lookup("max-results"))
	assert.NotEmpty(t, serve.Long)

	mcpCmd, _, err := root.Find([]string{"mcp"})
	require.NoError(t, err)
	assert.Contains(t, mcpCmd.Long, "interval_find")

	_, _, err = execute(t, "", "serve")
	require.Error(t, err)
}
