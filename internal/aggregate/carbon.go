package aggregate

import "time"

// Fixed conversion constants. Named so every estimation assumption is
// auditable rather than buried where it is applied.
const (
	// CarbonFraction is the assumed elemental-carbon share of dry biomass.
	// A standard approximation, not calibrated per species.
	CarbonFraction = 0.5

	// AcreToHectare converts plot areas quoted in acres.
	AcreToHectare = 0.4046856

	// MgToShortTon converts metric tonnes to US short tons.
	MgToShortTon = 1.10231

	// CO2PerCarbon converts carbon mass to the mass of CO2 holding it.
	CO2PerCarbon = 44.0 / 12.0
)

// Conversion carries the constants applied when turning biomass into
// carbon figures for a concrete plot.
type Conversion struct {
	CarbonFraction float64
	PlotAreaHa     float64 // absolute plot size; 0 disables area scaling
	ShortTonPerMg  float64
	CO2PerCarbon   float64
}

// DefaultConversion describes the standard 0.1-acre study plot.
func DefaultConversion() Conversion {
	return Conversion{
		CarbonFraction: CarbonFraction,
		PlotAreaHa:     0.1 * AcreToHectare,
		ShortTonPerMg:  MgToShortTon,
		CO2PerCarbon:   CO2PerCarbon,
	}
}

// CarbonPoint is the stand's carbon stock at one time step, per hectare
// and scaled to the plot.
type CarbonPoint struct {
	Date time.Time

	CarbonMgPerHa float64 // Mg C / ha
	PlotCarbonMg  float64 // Mg C on the plot (0 when scaling disabled)
	PlotCarbonTon float64 // short tons C on the plot
	PlotCO2eMg    float64 // Mg CO2-equivalent on the plot
}

// CarbonSeries converts a stand biomass series into carbon estimates.
func CarbonSeries(stand []StandPoint, conv Conversion) []CarbonPoint {
	out := make([]CarbonPoint, 0, len(stand))
	for _, p := range stand {
		c := CarbonPoint{
			Date:          p.Date,
			CarbonMgPerHa: p.Biomass * conv.CarbonFraction,
		}
		if conv.PlotAreaHa > 0 {
			c.PlotCarbonMg = c.CarbonMgPerHa * conv.PlotAreaHa
			c.PlotCarbonTon = c.PlotCarbonMg * conv.ShortTonPerMg
			c.PlotCO2eMg = c.PlotCarbonMg * conv.CO2PerCarbon
		}
		out = append(out, c)
	}
	return out
}
