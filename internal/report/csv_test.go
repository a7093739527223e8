package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/model"
)

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteClimateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climate.csv")
	series := []model.ClimateRecord{
		{Year: 2021, Month: 1, TmpMin: -2, TmpMax: 6, TmpAve: 2, Precip: 70,
			SolarRad: 5, FrostDays: 5, CO2: 410, D13CAtm: -8, Estimated: true},
		{Year: 2021, Month: 2, TmpMin: 0, TmpMax: 9, TmpAve: 4.5, Precip: 55,
			SolarRad: 7.2, FrostDays: 0, CO2: 410, D13CAtm: -8},
	}
	require.NoError(t, WriteClimateCSV(path, series))

	rows := readBack(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, "estimated", rows[0][10])
	require.Equal(t, "true", rows[1][10])
	require.Equal(t, "false", rows[2][10])
	require.Equal(t, "5", rows[1][7]) // frost days
}

func TestWriteCarbonCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carbon.csv")
	points := []aggregate.CarbonPoint{
		{Date: time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC),
			CarbonMgPerHa: 10.5, PlotCarbonMg: 0.425, PlotCarbonTon: 0.468, PlotCO2eMg: 1.558},
	}
	require.NoError(t, WriteCarbonCSV(path, points))

	rows := readBack(t, path)
	require.Len(t, rows, 2)
	require.Equal(t, "2021-01-31", rows[1][0])
	require.Equal(t, "10.5", rows[1][1])
}
