package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextCarriesAllChannels(t *testing.T) {
	g := NewGenerator(7)
	now := time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC)

	s := g.Next("station-1", now)
	require.Equal(t, "station-1", s.StationID)
	require.Equal(t, now, s.Timestamp)
	require.NotNil(t, s.Temperature)
	require.NotNil(t, s.Humidity)
	require.NotNil(t, s.LightVis)
	require.NotNil(t, s.SoilMoist)

	require.GreaterOrEqual(t, *s.Humidity, humidityMin)
	require.LessOrEqual(t, *s.Humidity, humidityMax)
	require.Positive(t, *s.LightVis, "daylight at 13:00")
}

func TestNextNightHasNoLight(t *testing.T) {
	g := NewGenerator(7)
	s := g.Next("station-1", time.Date(2024, 7, 15, 2, 0, 0, 0, time.UTC))
	// only the small sensor noise floor remains at night
	require.Less(t, *s.LightVis, 6.0)
}

func TestSamplesAreIndependent(t *testing.T) {
	g := NewGenerator(7)
	now := time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC)

	a := g.Next("station-1", now)
	before := *a.Humidity
	g.Next("station-1", now.Add(time.Minute))
	require.Equal(t, before, *a.Humidity, "later samples must not mutate earlier ones")
}
