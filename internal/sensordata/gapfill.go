package sensordata

import (
	"math"
	"math/rand"

	"github.com/mfalchetti/standgrow/internal/model"
)

// ====== Estimator defaults ======
const (
	// precipitation ≈ 20 + 1.5·humidity + noise. A placeholder regression,
	// not a calibrated one; see the estimator funcs below for overriding.
	precipIntercept = 20.0
	precipHumCoeff  = 1.5
	precipNoiseSD   = 10.0

	// solar radiation ≈ 0.15·(visible + infrared), floored at the model
	// minimum.
	solarLightCoeff = 0.15

	// A month with any sub-zero minimum gets a flat 5 frost days. A coarse
	// binary estimate, never an actual count.
	frostDaysEstimate = 5
)

// GapFiller derives the climate variables the sensors do not measure.
// Every estimator is a replaceable func; the defaults are the fixed,
// explicitly approximate formulas this pipeline has always used, with
// seeded noise for reproducibility.
type GapFiller struct {
	Precip func(humidityMean float64) float64    // mm/month
	Solar  func(visMean, irMean float64) float64 // MJ/m²/day
	Frost  func(tmpMin float64) int              // days/month
}

func NewGapFiller(seed int64) *GapFiller {
	rng := rand.New(rand.NewSource(seed))
	return &GapFiller{
		Precip: func(hum float64) float64 {
			return precipIntercept + precipHumCoeff*hum + rng.NormFloat64()*precipNoiseSD
		},
		Solar: func(vis, ir float64) float64 {
			return math.Max(model.MinSolarRad, solarLightCoeff*(vis+ir))
		},
		Frost: func(tmpMin float64) int {
			if tmpMin < 0 {
				return frostDaysEstimate
			}
			return 0
		},
	}
}

// Fill turns monthly aggregates into model-ready climate records, one per
// aggregated month in order. Records are flagged Estimated because the
// precipitation, radiation and frost-day values are derived, not measured.
// NaN aggregates (all-missing months) propagate into the estimates
// unguarded.
func (g *GapFiller) Fill(months []MonthlyAggregate) []model.ClimateRecord {
	out := make([]model.ClimateRecord, 0, len(months))
	for _, m := range months {
		out = append(out, model.ClimateRecord{
			Year:      m.Year,
			Month:     m.Month,
			TmpMin:    m.TmpMin,
			TmpMax:    m.TmpMax,
			TmpAve:    m.TmpMean,
			Precip:    g.Precip(m.HumidityMean),
			SolarRad:  g.Solar(m.LightVisMean, m.LightIRMean),
			FrostDays: g.Frost(m.TmpMin),
			CO2:       model.DefaultCO2PPM,
			D13CAtm:   model.DefaultD13CPerMil,
			Estimated: true,
		})
	}
	return out
}
