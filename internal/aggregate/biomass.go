// Package aggregate reduces the growth model's long-form output into
// species and stand biomass series and carbon estimates.
package aggregate

import (
	"sort"
	"time"

	"github.com/mfalchetti/standgrow/internal/model"
)

// SpeciesPoint is the total biomass (stem+root+foliage, Mg/ha) of one
// species at one time step.
type SpeciesPoint struct {
	Date    time.Time
	Species string
	Biomass float64
}

// StandPoint is the whole stand's biomass at one time step, Mg/ha.
type StandPoint struct {
	Date    time.Time
	Biomass float64
}

// SpeciesBiomass filters the model output to the three biomass components
// and sums them per (date, species). Points come back ordered by date,
// then species name.
func SpeciesBiomass(rows []model.ModelOutputRow) []SpeciesPoint {
	type key struct {
		date    time.Time
		species string
	}
	totals := make(map[key]float64)
	for _, r := range rows {
		if !r.IsBiomassComponent() {
			continue
		}
		totals[key{r.Date, r.Species}] += r.Value
	}

	out := make([]SpeciesPoint, 0, len(totals))
	for k, v := range totals {
		out = append(out, SpeciesPoint{Date: k.date, Species: k.species, Biomass: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Species < out[j].Species
	})
	return out
}

// StandBiomass sums per-species totals across species at each date.
func StandBiomass(points []SpeciesPoint) []StandPoint {
	totals := make(map[time.Time]float64)
	for _, p := range points {
		totals[p.Date] += p.Biomass
	}

	out := make([]StandPoint, 0, len(totals))
	for d, v := range totals {
		out = append(out, StandPoint{Date: d, Biomass: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
