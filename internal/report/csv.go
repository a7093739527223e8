// Package report exports pipeline results: CSV tables, PNG trajectory
// charts, and console summaries. Thin I/O over the aggregate types.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/model"
)

const dateLayout = "2006-01-02"

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteClimateCSV exports the processed climate table. The estimated
// column flags records whose derived variables came from the gap-filling
// estimators.
func WriteClimateCSV(path string, series []model.ClimateRecord) error {
	header := []string{"year", "month", "tmp_min", "tmp_max", "tmp_ave",
		"prcp", "srad", "frost_days", "co2", "d13c", "estimated"}
	rows := make([][]string, 0, len(series))
	for _, c := range series {
		rows = append(rows, []string{
			strconv.Itoa(c.Year), strconv.Itoa(c.Month),
			ftoa(c.TmpMin), ftoa(c.TmpMax), ftoa(c.TmpAve),
			ftoa(c.Precip), ftoa(c.SolarRad), strconv.Itoa(c.FrostDays),
			ftoa(c.CO2), ftoa(c.D13CAtm), strconv.FormatBool(c.Estimated),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteSpeciesBiomassCSV exports per-species total biomass over time.
func WriteSpeciesBiomassCSV(path string, points []aggregate.SpeciesPoint) error {
	header := []string{"date", "species", "biomass_mg_ha"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date.Format(dateLayout), p.Species, ftoa(p.Biomass)})
	}
	return writeCSV(path, header, rows)
}

// WriteStandBiomassCSV exports stand-level total biomass over time.
func WriteStandBiomassCSV(path string, points []aggregate.StandPoint) error {
	header := []string{"date", "biomass_mg_ha"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date.Format(dateLayout), ftoa(p.Biomass)})
	}
	return writeCSV(path, header, rows)
}

// WriteCarbonCSV exports the carbon series in metric and short-ton units.
func WriteCarbonCSV(path string, points []aggregate.CarbonPoint) error {
	header := []string{"date", "carbon_mg_ha", "plot_carbon_mg", "plot_carbon_short_ton", "plot_co2e_mg"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date.Format(dateLayout),
			ftoa(p.CarbonMgPerHa), ftoa(p.PlotCarbonMg), ftoa(p.PlotCarbonTon), ftoa(p.PlotCO2eMg),
		})
	}
	return writeCSV(path, header, rows)
}
