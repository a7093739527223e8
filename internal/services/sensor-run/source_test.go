package sensor_run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

func ptr(v float64) *float64 { return &v }

func TestClimateFromSamples(t *testing.T) {
	mk := func(ts string, temp float64) messages.RawSample {
		when, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
		return messages.RawSample{
			Timestamp:   when,
			Temperature: ptr(temp),
			Humidity:    ptr(65),
			LightVis:    ptr(120),
			LightIR:     ptr(60),
		}
	}

	records, err := ClimateFromSamples([]messages.RawSample{
		mk("2024-01-05T08:00:00Z", -4),
		mk("2024-01-20T14:00:00Z", 3),
		mk("2024-02-10T12:00:00Z", 5),
	}, 42)
	require.NoError(t, err)
	require.Len(t, records, 2)

	jan, feb := records[0], records[1]
	require.Equal(t, 1, jan.Month)
	require.Equal(t, 5, jan.FrostDays, "january min was sub-zero")
	require.Equal(t, 0, feb.FrostDays)
	require.True(t, jan.Estimated)

	// 0.15*(120+60) = 27 MJ/m²/day from the light channels
	require.InDelta(t, 27.0, jan.SolarRad, 1e-9)
}

func TestClimateFromSamplesEmpty(t *testing.T) {
	_, err := ClimateFromSamples(nil, 42)
	require.Error(t, err)
}
