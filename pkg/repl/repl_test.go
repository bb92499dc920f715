package repl_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/repl"
)

const testPrompt = "> "

func sampleTree(t *testing.T) *interval.Tree[int] {
	t.Helper()

	tree, err := interval.Build([]intervalio.Interval{
		interval.New(1, 5, "a"),
		interval.New(4, 9, "b"),
		interval.New(10, 12, "c"),
		interval.New(6, 8, "d"),
	})
	require.NoError(t, err)

	return tree
}

func run(t *testing.T, input string) (string, *repl.Session, error) {
	t.Helper()

	var out bytes.Buffer

	session := repl.New(sampleTree(t), repl.Config{
		In:     strings.NewReader(input),
		Out:    &out,
		Prompt: testPrompt,
		Sort:   true,
	})

	err := session.Run(context.Background())

	return out.String(), session, err
}

func TestRun_PointQueryThenQuit(t *testing.T) {
	t.Parallel()

	out, session, err := run(t, "7 7\nquit\n1 100\n")
	require.NoError(t, err)

	assert.Equal(t, "> [4,9] b\n[6,8] d\n> ", out)
	assert.Equal(t, 1, session.Queries())
}

func TestRun_NoMatchPrintsNothing(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "13 20\nquit\n")
	require.NoError(t, err)

	assert.Equal(t, "> > ", out)
}

func TestRun_EOFEndsLoop(t *testing.T) {
	t.Parallel()

	out, session, err := run(t, "12 12")
	require.NoError(t, err)

	assert.Equal(t, "> [10,12] c\n> ", out)
	assert.Equal(t, 1, session.Queries())
}

func TestRun_MalformedLineContinues(t *testing.T) {
	t.Parallel()

	out, session, err := run(t, "seven 7\n\n5 5\nquit\n")
	require.NoError(t, err)

	assert.Contains(t, out, `invalid query "seven 7"`)
	assert.Contains(t, out, "[1,5] a\n[4,9] b\n")
	assert.Equal(t, 1, session.Queries())
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := repl.New(sampleTree(t), repl.Config{In: strings.NewReader("7 7\n"), Out: &bytes.Buffer{}})

	err := session.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, session.Queries())
}

func TestRun_DefaultPrompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	session := repl.New(sampleTree(t), repl.Config{In: strings.NewReader("quit\n"), Out: &out})
	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, repl.DefaultPrompt, out.String())
}
