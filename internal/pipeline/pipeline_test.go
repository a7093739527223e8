package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/climate"
	"github.com/mfalchetti/standgrow/internal/growth"
	"github.com/mfalchetti/standgrow/internal/model"
)

// staticRunner reports constant initial biomass for every climate month,
// or fails a scripted number of times first.
type staticRunner struct {
	failures int
	calls    int
}

func (s *staticRunner) Run(_ context.Context, in growth.RunInput) ([]model.ModelOutputRow, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New("scripted model failure")
	}
	var rows []model.ModelOutputRow
	for _, c := range in.Climate {
		for _, sp := range in.Species {
			rows = append(rows,
				model.ModelOutputRow{Date: c.Date(), Species: sp.Name, Variable: model.VarBiomStem, Value: sp.BiomStem},
				model.ModelOutputRow{Date: c.Date(), Species: sp.Name, Variable: model.VarBiomRoot, Value: sp.BiomRoot},
				model.ModelOutputRow{Date: c.Date(), Species: sp.Name, Variable: model.VarBiomFoliage, Value: sp.BiomFoliage},
			)
		}
	}
	return rows, nil
}

func testRequest(t *testing.T) Request {
	t.Helper()
	from := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	series, err := climate.NewGenerator(42).Series(from, to)
	require.NoError(t, err)
	require.Len(t, series, 36)

	return Request{
		Kind: "synthetic",
		Site: model.SiteConfig{
			Latitude: 44.5, Altitude: 300, Soil: model.SoilSandyLoam,
			ASWInitial: 100, ASWMin: 0, ASWMax: 180,
			From: from, To: to,
		},
		Species: []model.SpeciesState{
			{Name: "oak", Planted: from.AddDate(-6, 0, 0), Fertility: 0.5, StemsPerHa: 900,
				BiomStem: 8, BiomRoot: 2.5, BiomFoliage: 1.5},
			{Name: "pine", Planted: from.AddDate(-6, 0, 0), Fertility: 0.4, StemsPerHa: 1100,
				BiomStem: 6, BiomRoot: 2, BiomFoliage: 1},
		},
		Climate: series,
	}
}

func TestExecuteWritesAllExports(t *testing.T) {
	dir := t.TempDir()
	p := &Pipeline{
		Invoker:    growth.NewInvoker(&staticRunner{}),
		Conversion: aggregate.DefaultConversion(),
		OutDir:     dir,
	}

	res, err := p.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)

	// 12+9 Mg/ha initial stand biomass, exactly
	require.InDelta(t, 21.0, res.Stand[0].Biomass, 1e-12)

	for _, name := range []string{"climate.csv", "biomass_species.csv", "biomass_stand.csv", "carbon.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
}

func TestExecuteUsesFallbackCandidate(t *testing.T) {
	runner := &staticRunner{failures: 1}
	p := &Pipeline{
		Invoker:    growth.NewInvoker(runner),
		Conversion: aggregate.DefaultConversion(),
		OutDir:     t.TempDir(),
	}

	_, err := p.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Equal(t, 2, runner.calls)
}

func TestExecuteHaltLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	runner := &staticRunner{failures: 2} // both candidates fail
	p := &Pipeline{
		Invoker:    growth.NewInvoker(runner),
		Conversion: aggregate.DefaultConversion(),
		OutDir:     dir,
	}

	_, err := p.Execute(context.Background(), testRequest(t))
	var exhausted *growth.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 2, runner.calls)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries, "failed run must not write CSVs")
}
