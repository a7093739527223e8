package sensordata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/model"
)

func month(tmpMin, hum, vis, ir float64) MonthlyAggregate {
	return MonthlyAggregate{
		Year: 2024, Month: 6,
		TmpMin: tmpMin, TmpMax: tmpMin + 10, TmpMean: tmpMin + 5,
		HumidityMean: hum, LightVisMean: vis, LightIRMean: ir,
		Samples: 1,
	}
}

func TestFillFrostDaysBinary(t *testing.T) {
	g := NewGapFiller(1)
	cases := []struct {
		tmpMin float64
		want   int
	}{
		{-12.5, 5},
		{-0.1, 5},
		{0, 0},
		{4.2, 0},
	}
	for _, tc := range cases {
		recs := g.Fill([]MonthlyAggregate{month(tc.tmpMin, 60, 40, 30)})
		require.Len(t, recs, 1)
		require.Equal(t, tc.want, recs[0].FrostDays, "tmpMin=%g", tc.tmpMin)
		require.True(t, recs[0].Estimated)
	}
}

func TestFillSolarFloor(t *testing.T) {
	g := NewGapFiller(1)

	// 0.15*(4+2) = 0.9, well under the floor
	recs := g.Fill([]MonthlyAggregate{month(10, 60, 4, 2)})
	require.Equal(t, model.MinSolarRad, recs[0].SolarRad)

	// 0.15*(100+60) = 24, above the floor
	recs = g.Fill([]MonthlyAggregate{month(10, 60, 100, 60)})
	require.InDelta(t, 24.0, recs[0].SolarRad, 1e-9)
}

func TestFillPrecipEstimate(t *testing.T) {
	g := NewGapFiller(5)
	// noise is seeded, so the estimate stays within a bounded band of the
	// deterministic part 20 + 1.5*70 = 125
	recs := g.Fill([]MonthlyAggregate{month(10, 70, 40, 30)})
	require.InDelta(t, 125.0, recs[0].Precip, 50.0)
}

func TestFillEstimatorOverride(t *testing.T) {
	g := NewGapFiller(1)
	g.Precip = func(hum float64) float64 { return hum * 2 }

	recs := g.Fill([]MonthlyAggregate{month(10, 33, 40, 30)})
	require.InDelta(t, 66.0, recs[0].Precip, 1e-9)
}

func TestFillCarriesAtmosphericDefaults(t *testing.T) {
	g := NewGapFiller(1)
	recs := g.Fill([]MonthlyAggregate{month(10, 60, 40, 30)})
	require.Equal(t, model.DefaultCO2PPM, recs[0].CO2)
	require.Equal(t, model.DefaultD13CPerMil, recs[0].D13CAtm)
}
