// Package pipeline runs one simulation end to end: assemble model input,
// invoke the growth model, aggregate the output, export reports, and
// record the run. Both the synthetic-climate and the sensor-derived
// executables drive this same path; they differ only in where the climate
// table comes from.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/growth"
	"github.com/mfalchetti/standgrow/internal/model"
	"github.com/mfalchetti/standgrow/internal/report"
	"github.com/mfalchetti/standgrow/internal/runlog"
)

// Request is one simulation to execute.
type Request struct {
	Kind    string // "synthetic" | "sensor", used for the run log
	Site    model.SiteConfig
	Species []model.SpeciesState
	Climate []model.ClimateRecord

	// Parameters overrides the library defaults when non-nil.
	Parameters growth.ParameterTable
}

// Result is the aggregated outcome of a successful run.
type Result struct {
	Species []aggregate.SpeciesPoint
	Stand   []aggregate.StandPoint
	Carbon  []aggregate.CarbonPoint
}

// Pipeline wires the model invoker to aggregation, reporting and the run
// log. Runs is optional; Charts disables PNG rendering when false.
type Pipeline struct {
	Invoker    *growth.Invoker
	Conversion aggregate.Conversion
	OutDir     string
	Charts     bool
	Runs       runlog.Repository
}

// Execute runs the request. Nothing is exported unless the model call
// succeeds, so a halted run leaves no partial CSV output behind.
func (p *Pipeline) Execute(ctx context.Context, req Request) (Result, error) {
	started := time.Now()

	params := req.Parameters
	if params == nil {
		names := make([]string, len(req.Species))
		for i, sp := range req.Species {
			names[i] = sp.Name
		}
		params = growth.DefaultParameters(names...)
	}

	rows, err := p.Invoker.Run(ctx, growth.RunInput{
		Site:       req.Site,
		Climate:    req.Climate,
		Species:    req.Species,
		Parameters: params,
	})
	if err != nil {
		p.record(req, runlog.Record{Status: "failed", Error: err.Error()}, started)
		return Result{}, err
	}

	res := Result{}
	res.Species = aggregate.SpeciesBiomass(rows)
	res.Stand = aggregate.StandBiomass(res.Species)
	res.Carbon = aggregate.CarbonSeries(res.Stand, p.Conversion)
	if len(res.Stand) == 0 {
		err := fmt.Errorf("pipeline: model output has no biomass rows")
		p.record(req, runlog.Record{Status: "failed", Error: err.Error()}, started)
		return Result{}, err
	}

	if err := p.export(req, res); err != nil {
		p.record(req, runlog.Record{Status: "failed", Error: err.Error()}, started)
		return Result{}, err
	}

	rec := runlog.Record{
		Status:       "ok",
		FinalBiomass: res.Stand[len(res.Stand)-1].Biomass,
		FinalCarbon:  res.Carbon[len(res.Carbon)-1].PlotCarbonTon,
	}
	p.record(req, rec, started)

	if err := report.PrintSummary(os.Stdout, res.Stand, res.Carbon); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (p *Pipeline) export(req Request, res Result) error {
	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return err
	}
	out := func(name string) string { return filepath.Join(p.OutDir, name) }

	if err := report.WriteClimateCSV(out("climate.csv"), req.Climate); err != nil {
		return err
	}
	if err := report.WriteSpeciesBiomassCSV(out("biomass_species.csv"), res.Species); err != nil {
		return err
	}
	if err := report.WriteStandBiomassCSV(out("biomass_stand.csv"), res.Stand); err != nil {
		return err
	}
	if err := report.WriteCarbonCSV(out("carbon.csv"), res.Carbon); err != nil {
		return err
	}
	if p.Charts {
		if err := report.BiomassChart(out("biomass.png"), res.Species, res.Stand); err != nil {
			return err
		}
		if err := report.CarbonChart(out("carbon.png"), res.Carbon); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) record(req Request, rec runlog.Record, started time.Time) {
	if p.Runs == nil {
		return
	}
	rec.Pipeline = req.Kind
	rec.From = req.Site.From
	rec.To = req.Site.To
	rec.StartedAt = started
	rec.FinishedAt = time.Now()
	if _, err := p.Runs.Save(rec); err != nil {
		log.Printf("pipeline: run log save failed: %v", err)
	}
}
