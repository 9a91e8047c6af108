package querycontext

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCoversEveryColumn(t *testing.T) {
	q := newSensorsContext(t)

	payload, err := q.Summary()
	require.NoError(t, err)

	var summary struct {
		Summary map[string]map[string]any `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &summary))

	require.Len(t, summary.Summary, len(sensorColumns))
	for _, col := range sensorColumns {
		stats, ok := summary.Summary[col]
		require.True(t, ok, "missing summary for %s", col)
		assert.Len(t, stats, len(StatisticKeys))
	}

	height := summary.Summary["Height"]
	assert.Equal(t, float64(500), height[StatCount])
	assert.Equal(t, "", height[StatTop])
	assert.IsType(t, float64(0), height[StatMean])
	assert.Greater(t, height[StatMax].(float64), 372.997)

	name := summary.Summary["name"]
	assert.Equal(t, float64(25), name[StatUnique])
	assert.Equal(t, "sensor_00", name[StatTop])
	assert.Equal(t, float64(20), name[StatFreq])
	assert.Equal(t, "", name[StatMean])

	timeStats := summary.Summary["time"]
	assert.Equal(t, "2024-03-01T00:00:00Z", timeStats[StatMin])
	assert.Equal(t, "", timeStats[StatStd])

	assert.True(t, strings.HasPrefix(payload, `{"summary":{"name":{"count":500,"unique":25,`), payload)

	again, err := q.Summary()
	require.NoError(t, err)
	assert.Equal(t, payload, again)
}

func TestDescribeNumeric(t *testing.T) {
	stats := describeNumeric([]any{int64(4), int64(1), nil, int64(3), int64(2)})

	assert.Equal(t, 4, stats[StatCount])
	assert.Equal(t, 2.5, stats[StatMean])
	assert.InDelta(t, 1.2909944, stats[StatStd].(float64), 1e-6)
	assert.Equal(t, 1.0, stats[StatMin])
	assert.Equal(t, 1.75, stats[StatQ1])
	assert.Equal(t, 2.5, stats[StatMedian])
	assert.Equal(t, 3.25, stats[StatQ3])
	assert.Equal(t, 4.0, stats[StatMax])
}

func TestDescribeNumericEdgeCases(t *testing.T) {
	single := describeNumeric([]any{7.5})
	assert.Equal(t, 1, single[StatCount])
	assert.Equal(t, 7.5, single[StatMedian])
	_, hasStd := single[StatStd]
	assert.False(t, hasStd)

	empty := describeNumeric([]any{nil, nil})
	assert.Equal(t, map[string]any{StatCount: 0}, empty)
}

func TestDescribeCategorical(t *testing.T) {
	stats := describeCategorical([]any{"b", "a", nil, "a", "b", "c"})

	assert.Equal(t, 5, stats[StatCount])
	assert.Equal(t, 3, stats[StatUnique])
	assert.Equal(t, "b", stats[StatTop], "ties go to the first value seen")
	assert.Equal(t, 2, stats[StatFreq])

	bools := describeCategorical([]any{true, false, false})
	assert.Equal(t, false, bools[StatTop])
	assert.Equal(t, 2, bools[StatFreq])

	empty := describeCategorical([]any{nil})
	assert.Equal(t, 0, empty[StatCount])
	assert.Equal(t, 0, empty[StatUnique])
	_, hasTop := empty[StatTop]
	assert.False(t, hasTop)
}

func TestDescribeTemporal(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := describeTemporal([]any{base.Add(2 * time.Hour), base, nil, base.Add(4 * time.Hour)})

	assert.Equal(t, 3, stats[StatCount])
	assert.Equal(t, "2024-01-01T00:00:00Z", stats[StatMin])
	assert.Equal(t, "2024-01-01T02:00:00Z", stats[StatMean])
	assert.Equal(t, "2024-01-01T01:00:00Z", stats[StatQ1])
	assert.Equal(t, "2024-01-01T02:00:00Z", stats[StatMedian])
	assert.Equal(t, "2024-01-01T04:00:00Z", stats[StatMax])
}

func TestDescribeFillsMissingStatistics(t *testing.T) {
	stats := describe(dataset.Column{Name: "label", Type: dataset.TypeObject, Values: []any{"x"}})

	assert.Equal(t, StatisticKeys, stats.Keys())
	mean, _ := stats.Get(StatMean)
	assert.Equal(t, "", mean)
	top, _ := stats.Get(StatTop)
	assert.Equal(t, "x", top)
}
