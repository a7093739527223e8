package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/climate"
	"github.com/mfalchetti/standgrow/internal/growth"
	"github.com/mfalchetti/standgrow/internal/model"
	"github.com/mfalchetti/standgrow/internal/pipeline"
	"github.com/mfalchetti/standgrow/internal/runlog"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	cfg := struct {
		SitePath    string
		SpeciesPath string
		ParamsPath  string

		ModelURL     string
		ModelTimeout time.Duration

		OutDir     string
		Charts     bool
		RunLogPath string
		Seed       int64

		PlotAreaAcres float64
	}{
		SitePath:    envStr("SITE_PATH", "config/site.json"),
		SpeciesPath: envStr("SPECIES_PATH", "config/species.json"),
		ParamsPath:  envStr("PARAMS_PATH", ""),

		ModelURL:     envStr("MODEL_URL", "http://localhost:8100"),
		ModelTimeout: time.Duration(envInt("MODEL_TIMEOUT_MS", 30000)) * time.Millisecond,

		OutDir:     envStr("OUT_DIR", "out/synthetic"),
		Charts:     envStr("CHARTS", "true") == "true",
		RunLogPath: envStr("RUNLOG_PATH", ""),
		Seed:       int64(envInt("CLIMATE_SEED", 42)),

		PlotAreaAcres: envFloat("PLOT_AREA_ACRES", 0.1),
	}

	site, err := model.LoadSite(cfg.SitePath)
	if err != nil {
		log.Fatalf("synthetic-run: %v", err)
	}
	species, err := model.LoadSpecies(cfg.SpeciesPath)
	if err != nil {
		log.Fatalf("synthetic-run: %v", err)
	}

	var params growth.ParameterTable
	if cfg.ParamsPath != "" {
		if params, err = growth.LoadParameters(cfg.ParamsPath); err != nil {
			log.Fatalf("synthetic-run: %v", err)
		}
	}

	series, err := climate.NewGenerator(cfg.Seed).Series(site.From, site.To)
	if err != nil {
		log.Fatalf("synthetic-run: %v", err)
	}

	conv := aggregate.DefaultConversion()
	conv.PlotAreaHa = cfg.PlotAreaAcres * aggregate.AcreToHectare

	p := &pipeline.Pipeline{
		Invoker:    growth.NewInvoker(growth.NewRemoteRunner(cfg.ModelURL, cfg.ModelTimeout)),
		Conversion: conv,
		OutDir:     cfg.OutDir,
		Charts:     cfg.Charts,
	}
	if cfg.RunLogPath != "" {
		repo, err := runlog.NewSQLiteRepository(cfg.RunLogPath)
		if err != nil {
			log.Fatalf("synthetic-run: open run log: %v", err)
		}
		defer repo.Close()
		p.Runs = repo
	}

	_, err = p.Execute(context.Background(), pipeline.Request{
		Kind:       "synthetic",
		Site:       site,
		Species:    species,
		Climate:    series,
		Parameters: params,
	})
	if err != nil {
		log.Printf("synthetic-run: %v", err)
		var exhausted *growth.ExhaustedError
		if errors.As(err, &exhausted) {
			for _, hint := range growth.DiagnosticHints {
				log.Printf("synthetic-run: hint: %s", hint)
			}
		}
		os.Exit(1)
	}
}
