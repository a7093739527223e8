package model

import (
	"fmt"
	"time"
)

// MinSolarRad is the floor applied to solar radiation (MJ/m²/day). The growth
// model rejects non-positive radiation, so every record is clamped to this.
const MinSolarRad = 5.0

// ClimateRecord holds one month of model-ready climate input.
type ClimateRecord struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`   // 1..12
	TmpMin    float64 `json:"tmp_min"` // °C
	TmpMax    float64 `json:"tmp_max"` // °C
	TmpAve    float64 `json:"tmp_ave"` // °C
	Precip    float64 `json:"prcp"`    // mm/month
	SolarRad  float64 `json:"srad"`    // MJ/m²/day, > 0
	FrostDays int     `json:"frost_days"`
	CO2       float64 `json:"co2"`  // ppm
	D13CAtm   float64 `json:"d13c"` // ‰

	// Estimated marks records whose precipitation, radiation and frost-day
	// values came from the gap-filling estimators rather than measurement.
	Estimated bool `json:"estimated,omitempty"`
}

// Date returns the first day of the record's month (UTC).
func (c ClimateRecord) Date() time.Time {
	return time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.UTC)
}

func (c ClimateRecord) Validate() error {
	if c.Month < 1 || c.Month > 12 {
		return fmt.Errorf("climate %d-%02d: month out of range", c.Year, c.Month)
	}
	if c.SolarRad <= 0 {
		return fmt.Errorf("climate %d-%02d: solar radiation must be positive, got %g", c.Year, c.Month, c.SolarRad)
	}
	if c.FrostDays < 0 {
		return fmt.Errorf("climate %d-%02d: negative frost days", c.Year, c.Month)
	}
	if c.TmpMin > c.TmpMax {
		return fmt.Errorf("climate %d-%02d: tmp_min %g above tmp_max %g", c.Year, c.Month, c.TmpMin, c.TmpMax)
	}
	return nil
}

// ValidateClimate checks a full series: every record valid, one record per
// month, chronological order with no gaps.
func ValidateClimate(series []ClimateRecord) error {
	if len(series) == 0 {
		return fmt.Errorf("climate series is empty")
	}
	for i, c := range series {
		if err := c.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := series[i-1]
		wantY, wantM := NextMonth(prev.Year, prev.Month)
		if c.Year != wantY || c.Month != wantM {
			return fmt.Errorf("climate series not contiguous: %d-%02d follows %d-%02d",
				c.Year, c.Month, prev.Year, prev.Month)
		}
	}
	return nil
}

// NextMonth advances a (year, month) pair by one calendar month.
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// MonthsBetween counts the calendar months in [from, to] inclusive.
// Returns 0 when to precedes from.
func MonthsBetween(from, to time.Time) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}
