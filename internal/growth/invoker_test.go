package growth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/model"
)

// fakeRunner scripts one result per call so tests can drive the
// candidate-fallback sequence.
type fakeRunner struct {
	results []fakeResult
	calls   []RunOptions
}

type fakeResult struct {
	rows []model.ModelOutputRow
	err  error
}

func (f *fakeRunner) Run(_ context.Context, in RunInput) ([]model.ModelOutputRow, error) {
	i := len(f.calls)
	f.calls = append(f.calls, in.Options)
	if i >= len(f.results) {
		return nil, errors.New("unexpected extra call")
	}
	return f.results[i].rows, f.results[i].err
}

func validInput() RunInput {
	var climate []model.ClimateRecord
	year, month := 2021, 1
	for i := 0; i < 36; i++ {
		climate = append(climate, model.ClimateRecord{
			Year: year, Month: month,
			TmpMin: 2, TmpMax: 18, TmpAve: 10,
			Precip: 60, SolarRad: 12,
			CO2: model.DefaultCO2PPM, D13CAtm: model.DefaultD13CPerMil,
		})
		year, month = model.NextMonth(year, month)
	}
	return RunInput{
		Site: model.SiteConfig{
			Latitude: 45.1, Altitude: 220, Soil: model.SoilClayLoam,
			ASWInitial: 120, ASWMin: 0, ASWMax: 200,
			From: climate[0].Date(), To: climate[len(climate)-1].Date(),
		},
		Climate: climate,
		Species: []model.SpeciesState{
			{Name: "oak", Planted: time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC),
				Fertility: 0.5, StemsPerHa: 900, BiomStem: 8, BiomRoot: 2.5, BiomFoliage: 1.5},
		},
		Parameters: DefaultParameters("oak"),
	}
}

func someRows() []model.ModelOutputRow {
	return []model.ModelOutputRow{
		{Date: time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), Species: "oak", Variable: model.VarBiomStem, Value: 8.1},
	}
}

func TestInvokerFirstCandidateSucceeds(t *testing.T) {
	fake := &fakeRunner{results: []fakeResult{{rows: someRows()}}}
	inv := NewInvoker(fake)

	rows, err := inv.Run(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, fake.calls, 1)

	primary := DefaultCandidates()[0]
	require.Equal(t, primary, fake.calls[0])
	require.True(t, fake.calls[0].CorrectBias)
	require.True(t, fake.calls[0].CalculateD13C)
}

func TestInvokerFallsBackOnce(t *testing.T) {
	fake := &fakeRunner{results: []fakeResult{
		{err: errors.New("numerical failure")},
		{rows: someRows()},
	}}
	inv := NewInvoker(fake)

	rows, err := inv.Run(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, fake.calls, 2)

	fallback := DefaultCandidates()[1]
	require.Equal(t, fallback, fake.calls[1])
	require.False(t, fake.calls[1].CorrectBias)
	require.False(t, fake.calls[1].CalculateD13C)
}

func TestInvokerExhaustsCandidates(t *testing.T) {
	fake := &fakeRunner{results: []fakeResult{
		{err: errors.New("boom 1")},
		{err: errors.New("boom 2")},
	}}
	inv := NewInvoker(fake)

	rows, err := inv.Run(context.Background(), validInput())
	require.Nil(t, rows)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	// exactly one alternate attempt after the primary, never more
	require.Len(t, exhausted.Attempts, 2)
	require.Len(t, fake.calls, 2)
}

func TestInvokerEmptyTableIsFailure(t *testing.T) {
	fake := &fakeRunner{results: []fakeResult{
		{rows: nil},
		{rows: someRows()},
	}}
	inv := NewInvoker(fake)

	rows, err := inv.Run(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, fake.calls, 2)
}

func TestInvokerRejectsBrokenClimate(t *testing.T) {
	fake := &fakeRunner{}
	inv := NewInvoker(fake)

	in := validInput()
	in.Climate[5].SolarRad = 0

	_, err := inv.Run(context.Background(), in)
	require.Error(t, err)
	require.Empty(t, fake.calls, "model must not be called with invalid climate")
}
