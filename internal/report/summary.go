package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/mfalchetti/standgrow/internal/aggregate"
)

// PrintSummary writes the run's headline figures to w: stand biomass and
// plot carbon at the first and last time step, with total and percent
// change. A zero initial value reports the percent change as unavailable
// instead of failing the run.
func PrintSummary(w io.Writer, stand []aggregate.StandPoint, carbon []aggregate.CarbonPoint) error {
	if len(stand) == 0 || len(carbon) == 0 {
		return fmt.Errorf("summary: no aggregated output")
	}

	biomass := make([]float64, len(stand))
	for i, p := range stand {
		biomass[i] = p.Biomass
	}
	carbonTon := make([]float64, len(carbon))
	for i, p := range carbon {
		carbonTon[i] = p.PlotCarbonTon
	}

	fmt.Fprintf(w, "period: %s .. %s (%d steps)\n",
		stand[0].Date.Format("2006-01"), stand[len(stand)-1].Date.Format("2006-01"), len(stand))

	if err := printSeries(w, "stand biomass (Mg/ha)", biomass); err != nil {
		return err
	}
	return printSeries(w, "plot carbon (short tons)", carbonTon)
}

func printSeries(w io.Writer, label string, values []float64) error {
	s, err := aggregate.Summarize(values)
	if errors.Is(err, aggregate.ErrZeroInitial) {
		fmt.Fprintf(w, "%s: initial 0, final %.3f, change %.3f, percent change n/a\n",
			label, values[len(values)-1], values[len(values)-1])
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: initial %.3f, final %.3f, change %.3f (%.1f%%)\n",
		label, s.Initial, s.Final, s.Change, s.PercentChange)
	return nil
}
