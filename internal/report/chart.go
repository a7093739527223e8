package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mfalchetti/standgrow/internal/aggregate"
)

// BiomassChart renders per-species lines plus the stand total to a PNG.
func BiomassChart(path string, species []aggregate.SpeciesPoint, stand []aggregate.StandPoint) error {
	p := plot.New()
	p.Title.Text = "Stand biomass"
	p.X.Label.Text = "date"
	p.Y.Label.Text = "biomass (Mg/ha)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	bySpecies := make(map[string]plotter.XYs)
	var names []string
	for _, sp := range species {
		if _, ok := bySpecies[sp.Species]; !ok {
			names = append(names, sp.Species)
		}
		bySpecies[sp.Species] = append(bySpecies[sp.Species], plotter.XY{
			X: float64(sp.Date.Unix()), Y: sp.Biomass,
		})
	}

	palette := []color.RGBA{
		{R: 0x2e, G: 0x7d, B: 0x32, A: 255},
		{R: 0x15, G: 0x65, B: 0xc0, A: 255},
		{R: 0xc6, G: 0x28, B: 0x28, A: 255},
		{R: 0x6a, G: 0x1b, B: 0x9a, A: 255},
	}
	for i, name := range names {
		line, err := plotter.NewLine(bySpecies[name])
		if err != nil {
			return fmt.Errorf("chart %s: %w", name, err)
		}
		line.Color = palette[i%len(palette)]
		p.Add(line)
		p.Legend.Add(name, line)
	}

	standXY := make(plotter.XYs, 0, len(stand))
	for _, st := range stand {
		standXY = append(standXY, plotter.XY{X: float64(st.Date.Unix()), Y: st.Biomass})
	}
	standLine, err := plotter.NewLine(standXY)
	if err != nil {
		return fmt.Errorf("chart stand: %w", err)
	}
	standLine.Width = vg.Points(2)
	p.Add(standLine)
	p.Legend.Add("stand total", standLine)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

// CarbonChart renders the plot-level carbon trajectory to a PNG.
func CarbonChart(path string, carbon []aggregate.CarbonPoint) error {
	p := plot.New()
	p.Title.Text = "Plot carbon stock"
	p.X.Label.Text = "date"
	p.Y.Label.Text = "carbon (Mg)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	xy := make(plotter.XYs, 0, len(carbon))
	for _, c := range carbon {
		xy = append(xy, plotter.XY{X: float64(c.Date.Unix()), Y: c.PlotCarbonMg})
	}
	line, err := plotter.NewLine(xy)
	if err != nil {
		return fmt.Errorf("chart carbon: %w", err)
	}
	line.Color = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 255}
	p.Add(line)
	p.Legend.Add("carbon", line)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
