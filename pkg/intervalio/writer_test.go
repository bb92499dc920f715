package intervalio_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
)

func TestSortResults(t *testing.T) {
	t.Parallel()

	got := []intervalio.Interval{
		interval.New(4, 9, "b"),
		interval.New(1, 5, "z"),
		interval.New(1, 5, "a"),
		interval.New(1, 2, "q"),
	}

	intervalio.SortResults(got)

	assert.Equal(t, []intervalio.Interval{
		interval.New(1, 2, "q"),
		interval.New(1, 5, "a"),
		interval.New(1, 5, "z"),
		interval.New(4, 9, "b"),
	}, got)
}

func TestNewResultSet_Truncation(t *testing.T) {
	t.Parallel()

	q := interval.New(0, 100, "")

	rs := intervalio.NewResultSet(q, sampleSet(), 2)
	assert.Len(t, rs.Intervals, 2)
	assert.Equal(t, 4, rs.Count)
	assert.True(t, rs.Truncated)

	rs = intervalio.NewResultSet(q, sampleSet(), 0)
	assert.Len(t, rs.Intervals, 4)
	assert.False(t, rs.Truncated)

	rs = intervalio.NewResultSet(q, nil, 0)
	assert.NotNil(t, rs.Intervals)
	assert.Equal(t, 0, rs.Count)
}

func TestWriteResults_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rs := intervalio.NewResultSet(interval.New(7, 7, ""), sampleSet()[1:2], 0)
	require.NoError(t, intervalio.WriteResults(&buf, intervalio.FormatText, rs))

	assert.Equal(t, "[4,9] b\n", buf.String())
}

func TestWriteResults_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rs := intervalio.NewResultSet(interval.New(7, 7, ""), sampleSet()[1:2], 0)
	require.NoError(t, intervalio.WriteResults(&buf, intervalio.FormatJSON, rs))

	var decoded intervalio.ResultSet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rs, decoded)
	assert.NotContains(t, buf.String(), "truncated")
}

func TestWriteResults_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rs := intervalio.NewResultSet(interval.New(0, 100, ""), sampleSet(), 3)
	require.NoError(t, intervalio.WriteResults(&buf, intervalio.FormatYAML, rs))

	var decoded intervalio.ResultSet
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rs, decoded)
	assert.Contains(t, buf.String(), "truncated: true")
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := intervalio.WriteResults(&bytes.Buffer{}, intervalio.Format("xml"), intervalio.ResultSet{})
	require.ErrorIs(t, err, intervalio.ErrUnknownFormat)
}

func TestWriteIntervals_ReadBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, intervalio.WriteIntervals(&buf, sampleSet()))
	assert.Equal(t, "1 5 a\n4 9 b\n10 12 c\n6 8 d\n", buf.String())

	got, err := intervalio.ReadText(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, sampleSet(), got)
}
