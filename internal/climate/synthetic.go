// Package climate builds monthly climate tables for the growth model,
// synthesizing them from seasonal curves when no sensor record is available.
package climate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mfalchetti/standgrow/internal/model"
)

// ====== Tunables ======
const (
	// Seasonal temperature curve (°C), peaking mid-year.
	baseTemp = 12.0
	ampTemp  = 9.0

	// Daily min/max offsets from the monthly mean: fixed part plus a
	// bounded random margin.
	tmpOffsetBase = 3.0
	tmpOffsetRand = 4.0

	// Precipitation curve (mm/month), phase-shifted toward winter.
	basePrecip  = 80.0
	ampPrecip   = 40.0
	noisePrecip = 20.0
	minPrecip   = 10.0

	// Solar radiation curve (MJ/m²/day), in phase with temperature.
	baseSolar  = 14.0
	ampSolar   = 9.0
	noiseSolar = 2.0
)

// Generator produces deterministic synthetic climate series. The same seed
// always yields the same series.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Series returns one ClimateRecord per calendar month in [from, to]
// inclusive. Solar radiation is never below model.MinSolarRad and frost days
// are nonzero only in months whose minimum temperature is negative.
func (g *Generator) Series(from, to time.Time) ([]model.ClimateRecord, error) {
	n := model.MonthsBetween(from, to)
	if n == 0 {
		return nil, fmt.Errorf("climate: empty range %s..%s",
			from.Format("2006-01"), to.Format("2006-01"))
	}

	out := make([]model.ClimateRecord, 0, n)
	year, month := from.Year(), int(from.Month())
	for i := 0; i < n; i++ {
		out = append(out, g.record(year, month))
		year, month = model.NextMonth(year, month)
	}
	return out, nil
}

func (g *Generator) record(year, month int) model.ClimateRecord {
	// Annual phase: 0 at the July peak.
	phase := 2 * math.Pi * float64(month-7) / 12

	tave := baseTemp + ampTemp*math.Cos(phase)
	tmin := tave - (tmpOffsetBase + g.rng.Float64()*tmpOffsetRand)
	tmax := tave + (tmpOffsetBase + g.rng.Float64()*tmpOffsetRand)

	// Precipitation peaks four months after the temperature peak.
	precipPhase := 2 * math.Pi * float64(month-11) / 12
	precip := basePrecip + ampPrecip*math.Cos(precipPhase) + (g.rng.Float64()*2-1)*noisePrecip
	precip = math.Max(minPrecip, precip)

	solar := baseSolar + ampSolar*math.Cos(phase) + (g.rng.Float64()*2-1)*noiseSolar
	solar = math.Max(model.MinSolarRad, solar)

	frost := 0
	if tmin < 0 {
		frost = 1 + int(math.Min(-tmin*2, 20))
	}

	return model.ClimateRecord{
		Year:      year,
		Month:     month,
		TmpMin:    tmin,
		TmpMax:    tmax,
		TmpAve:    tave,
		Precip:    precip,
		SolarRad:  solar,
		FrostDays: frost,
		CO2:       model.DefaultCO2PPM,
		D13CAtm:   model.DefaultD13CPerMil,
	}
}
