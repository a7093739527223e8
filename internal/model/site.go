package model

import (
	"fmt"
	"time"
)

// SoilClass is the categorical soil texture the growth model expects.
type SoilClass string

const (
	SoilSand      SoilClass = "sand"
	SoilSandyLoam SoilClass = "sandy-loam"
	SoilClayLoam  SoilClass = "clay-loam"
	SoilClay      SoilClass = "clay"
)

func (s SoilClass) Valid() bool {
	switch s {
	case SoilSand, SoilSandyLoam, SoilClayLoam, SoilClay:
		return true
	}
	return false
}

// SiteConfig describes the plot being simulated. Immutable for a run.
type SiteConfig struct {
	Latitude float64   `json:"latitude"`
	Altitude float64   `json:"altitude"` // m a.s.l.
	Soil     SoilClass `json:"soil_class"`

	// Available soil water pool (mm).
	ASWInitial float64 `json:"asw_i"`
	ASWMin     float64 `json:"asw_min"`
	ASWMax     float64 `json:"asw_max"`

	From time.Time `json:"from"` // first simulated month
	To   time.Time `json:"to"`   // last simulated month
}

func (s SiteConfig) Validate() error {
	if !s.Soil.Valid() {
		return fmt.Errorf("site: unknown soil class %q", s.Soil)
	}
	if s.ASWMin > s.ASWMax {
		return fmt.Errorf("site: asw_min %g above asw_max %g", s.ASWMin, s.ASWMax)
	}
	if s.ASWInitial < s.ASWMin || s.ASWInitial > s.ASWMax {
		return fmt.Errorf("site: asw_i %g outside [%g, %g]", s.ASWInitial, s.ASWMin, s.ASWMax)
	}
	if s.To.Before(s.From) {
		return fmt.Errorf("site: simulation end %s precedes start %s",
			s.To.Format("2006-01"), s.From.Format("2006-01"))
	}
	return nil
}

// CheckCoverage verifies the climate series spans the simulation window.
func (s SiteConfig) CheckCoverage(climate []ClimateRecord) error {
	if len(climate) == 0 {
		return fmt.Errorf("site: no climate records")
	}
	first, last := climate[0].Date(), climate[len(climate)-1].Date()
	if s.From.Before(first) || s.To.After(last) {
		return fmt.Errorf("site: simulation window %s..%s outside climate coverage %s..%s",
			s.From.Format("2006-01"), s.To.Format("2006-01"),
			first.Format("2006-01"), last.Format("2006-01"))
	}
	return nil
}
