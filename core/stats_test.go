package core

import (
	"testing"
	"time"

	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := []schema.Sample{
		{Time: base.Add(1 * time.Hour), Value: 100},
		{Time: base.Add(2 * time.Hour), Value: 300},
		{Time: base.Add(3 * time.Hour), Value: 300},
		{Time: base.Add(4 * time.Hour), Value: 200},
	}

	stats := AggregateWindow(samples, base, base.Add(24*time.Hour))

	require.Equal(t, 4, stats.Count)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 225.0, *stats.Average, 1e-9)
	require.NotNil(t, stats.Min)
	assert.Equal(t, 100, *stats.Min)
	require.NotNil(t, stats.Max)
	assert.Equal(t, 300, *stats.Max)
	// 100->300 and 300->200 differ; 300->300 does not.
	assert.Equal(t, 2, stats.ChangeCount)
}

func TestAggregateWindowEmpty(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	stats := AggregateWindow(nil, base, base.Add(time.Hour))

	assert.Equal(t, 0, stats.Count)
	assert.Nil(t, stats.Average)
	assert.Nil(t, stats.Min)
	assert.Nil(t, stats.Max)
	assert.Equal(t, 0, stats.ChangeCount)
}

func TestAggregateWindowBounds(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	samples := []schema.Sample{
		{Time: start.Add(-time.Minute), Value: 1}, // before start, excluded
		{Time: start, Value: 2},                   // at start, included
		{Time: end.Add(-time.Minute), Value: 3},   // just before end, included
		{Time: end, Value: 4},                     // at end, excluded
	}

	stats := AggregateWindow(samples, start, end)

	require.Equal(t, 2, stats.Count)
	assert.Equal(t, 2, *stats.Min)
	assert.Equal(t, 3, *stats.Max)
	assert.Equal(t, 1, stats.ChangeCount)
}

func TestAggregateWindowSingleSample(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	samples := []schema.Sample{{Time: at, Value: 42}}

	stats := AggregateWindow(samples, at.Add(-time.Hour), at.Add(time.Hour))

	require.Equal(t, 1, stats.Count)
	assert.Equal(t, 42.0, *stats.Average)
	assert.Equal(t, 42, *stats.Min)
	assert.Equal(t, 42, *stats.Max)
	assert.Equal(t, 0, stats.ChangeCount)
}
