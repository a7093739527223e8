package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/model"
)

func date(y, m int) time.Time {
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}

func TestSeriesOneRecordPerMonth(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{date(2021, 1), date(2023, 12), 36},
		{date(2021, 1), date(2021, 1), 1},
		{date(2021, 11), date(2022, 2), 4},
	}
	g := NewGenerator(42)
	for _, tc := range cases {
		got, err := g.Series(tc.from, tc.to)
		require.NoError(t, err)
		require.Len(t, got, tc.want)
		require.NoError(t, model.ValidateClimate(got))
		require.Equal(t, tc.from.Year(), got[0].Year)
		require.Equal(t, int(tc.from.Month()), got[0].Month)
	}
}

func TestSeriesSolarFloorAndFrost(t *testing.T) {
	g := NewGenerator(7)
	series, err := g.Series(date(2020, 1), date(2029, 12))
	require.NoError(t, err)

	for _, c := range series {
		require.GreaterOrEqual(t, c.SolarRad, model.MinSolarRad)
		require.Greater(t, c.TmpMax, c.TmpMin)
		if c.TmpMin >= 0 {
			require.Zero(t, c.FrostDays, "%d-%02d: frost with tmin %g", c.Year, c.Month, c.TmpMin)
		} else {
			require.Positive(t, c.FrostDays, "%d-%02d: no frost with tmin %g", c.Year, c.Month, c.TmpMin)
		}
		require.Equal(t, model.DefaultCO2PPM, c.CO2)
	}
}

func TestSeriesDeterministicForSeed(t *testing.T) {
	a, err := NewGenerator(99).Series(date(2022, 1), date(2022, 12))
	require.NoError(t, err)
	b, err := NewGenerator(99).Series(date(2022, 1), date(2022, 12))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSeriesEmptyRange(t *testing.T) {
	_, err := NewGenerator(1).Series(date(2023, 5), date(2023, 4))
	require.Error(t, err)
}
