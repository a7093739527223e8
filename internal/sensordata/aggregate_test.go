package sensordata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

func f(v float64) *float64 { return &v }

func sample(ts string, temp, hum *float64) messages.RawSample {
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return messages.RawSample{Timestamp: when, Temperature: temp, Humidity: hum}
}

func TestAggregateSingleMonthMeans(t *testing.T) {
	samples := []messages.RawSample{
		sample("2024-03-01T06:00:00Z", f(4), f(80)),
		sample("2024-03-10T12:00:00Z", f(10), f(60)),
		sample("2024-03-28T18:00:00Z", f(7), nil), // humidity missing: mean ignores it
	}

	months := Aggregate(samples)
	require.Len(t, months, 1)

	m := months[0]
	require.Equal(t, 2024, m.Year)
	require.Equal(t, 3, m.Month)
	require.Equal(t, 3, m.Samples)
	require.InDelta(t, 4.0, m.TmpMin, 1e-9)
	require.InDelta(t, 10.0, m.TmpMax, 1e-9)
	require.InDelta(t, 7.0, m.TmpMean, 1e-9)
	require.InDelta(t, 70.0, m.HumidityMean, 1e-9)
}

func TestAggregateAllMissingVariableIsNaN(t *testing.T) {
	samples := []messages.RawSample{
		sample("2024-05-01T00:00:00Z", f(12), nil),
		sample("2024-05-02T00:00:00Z", f(14), nil),
	}

	months := Aggregate(samples)
	require.Len(t, months, 1)
	require.True(t, math.IsNaN(months[0].HumidityMean))
	require.True(t, math.IsNaN(months[0].LightVisMean))
	// the variable that WAS reported still aggregates normally
	require.InDelta(t, 13.0, months[0].TmpMean, 1e-9)
}

func TestAggregateSplitsAndOrdersMonths(t *testing.T) {
	samples := []messages.RawSample{
		sample("2024-02-15T00:00:00Z", f(2), f(75)),
		sample("2023-12-03T00:00:00Z", f(1), f(85)),
		sample("2024-01-20T00:00:00Z", f(-3), f(90)),
	}

	months := Aggregate(samples)
	require.Len(t, months, 3)
	require.Equal(t, [2]int{2023, 12}, [2]int{months[0].Year, months[0].Month})
	require.Equal(t, [2]int{2024, 1}, [2]int{months[1].Year, months[1].Month})
	require.Equal(t, [2]int{2024, 2}, [2]int{months[2].Year, months[2].Month})
}
