package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mfalchetti/standgrow/internal/aggregate"
	"github.com/mfalchetti/standgrow/internal/growth"
	"github.com/mfalchetti/standgrow/internal/model"
	"github.com/mfalchetti/standgrow/internal/pipeline"
	"github.com/mfalchetti/standgrow/internal/runlog"
	sensorrun "github.com/mfalchetti/standgrow/internal/services/sensor-run"
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

type config struct {
	SitePath    string
	SpeciesPath string
	ParamsPath  string

	Source    string // "csv" | "influx"
	SensorCSV string

	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string

	ModelURL     string
	ModelTimeout time.Duration

	OutDir     string
	Charts     bool
	RunLogPath string
	Schedule   string // cron expression; empty = run once
	Seed       int64

	PlotAreaAcres float64
}

func loadConfig() config {
	return config{
		SitePath:    envStr("SITE_PATH", "config/site.json"),
		SpeciesPath: envStr("SPECIES_PATH", "config/species.json"),
		ParamsPath:  envStr("PARAMS_PATH", ""),

		Source:    strings.ToLower(envStr("CLIMATE_SOURCE", "csv")),
		SensorCSV: envStr("SENSOR_CSV", "data/sensor_readings.csv"),

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "standgrow"),
		InfluxBucket: envStr("INFLUX_BUCKET", "sensors"),

		ModelURL:     envStr("MODEL_URL", "http://localhost:8100"),
		ModelTimeout: time.Duration(envInt("MODEL_TIMEOUT_MS", 30000)) * time.Millisecond,

		OutDir:     envStr("OUT_DIR", "out/sensor"),
		Charts:     envStr("CHARTS", "true") == "true",
		RunLogPath: envStr("RUNLOG_PATH", ""),
		Schedule:   strings.TrimSpace(os.Getenv("RUN_SCHEDULE")),
		Seed:       int64(envInt("NOISE_SEED", 42)),

		PlotAreaAcres: envFloat("PLOT_AREA_ACRES", 0.1),
	}
}

func buildClimate(ctx context.Context, cfg config, site model.SiteConfig) ([]model.ClimateRecord, error) {
	switch cfg.Source {
	case "influx":
		influx := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		defer influx.Close()
		return sensorrun.ClimateFromInflux(ctx, influx, cfg.InfluxOrg, cfg.InfluxBucket,
			site.From, site.To, cfg.Seed)
	default:
		return sensorrun.ClimateFromCSV(cfg.SensorCSV, cfg.Seed)
	}
}

func run(ctx context.Context, cfg config, p *pipeline.Pipeline) error {
	site, err := model.LoadSite(cfg.SitePath)
	if err != nil {
		return err
	}
	species, err := model.LoadSpecies(cfg.SpeciesPath)
	if err != nil {
		return err
	}

	var params growth.ParameterTable
	if cfg.ParamsPath != "" {
		if params, err = growth.LoadParameters(cfg.ParamsPath); err != nil {
			return err
		}
	}

	climate, err := buildClimate(ctx, cfg, site)
	if err != nil {
		return err
	}

	_, err = p.Execute(ctx, pipeline.Request{
		Kind:       "sensor",
		Site:       site,
		Species:    species,
		Climate:    climate,
		Parameters: params,
	})
	return err
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

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
			log.Fatalf("sensor-run: open run log: %v", err)
		}
		defer repo.Close()
		p.Runs = repo
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule == "" {
		if err := run(ctx, cfg, p); err != nil {
			fail(err)
		}
		return
	}

	// Scheduled mode: re-run the pipeline on the cron expression until
	// interrupted. A failed run logs and waits for the next tick.
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if err := run(ctx, cfg, p); err != nil {
			logFailure(err)
		}
	}); err != nil {
		log.Fatalf("sensor-run: bad RUN_SCHEDULE %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Printf("sensor-run: scheduled with %q", cfg.Schedule)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	<-c.Stop().Done()
}

func logFailure(err error) {
	log.Printf("sensor-run: %v", err)
	var exhausted *growth.ExhaustedError
	if errors.As(err, &exhausted) {
		for _, hint := range growth.DiagnosticHints {
			log.Printf("sensor-run: hint: %s", hint)
		}
	}
}

func fail(err error) {
	logFailure(err)
	os.Exit(1)
}
