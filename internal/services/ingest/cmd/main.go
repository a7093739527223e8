package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfalchetti/standgrow/internal/services/ingest"
	"github.com/mfalchetti/standgrow/pkg/mqttbus"
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

func main() {
	_ = godotenv.Load()

	cfg := struct {
		Broker mqttbus.Config
		Topic  string

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string

		BatchSize     int
		FlushInterval time.Duration

		HTTPPort int
	}{
		Broker: mqttbus.Config{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", ""),
			Password: envStr("MQTT_PASSWORD", ""),
			ClientID: envStr("HOSTNAME", "standgrow-ingest"),
		},
		Topic: envStr("SENSOR_TOPIC", "sensor/raw/#"),

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "standgrow"),
		InfluxBucket: envStr("INFLUX_BUCKET", "sensors"),

		BatchSize:     envInt("WRITE_BATCH_SIZE", 50),
		FlushInterval: time.Duration(envInt("WRITE_FLUSH_INTERVAL_MS", 500)) * time.Millisecond,

		HTTPPort: envInt("HTTP_PORT", 8080),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === InfluxDB ===
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	influx := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	defer influx.Close()
	writer := ingest.NewWriter(influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket))

	// === MQTT ===
	mqttClient, err := mqttbus.Connect(ctx, &cfg.Broker)
	if err != nil {
		log.Fatalf("mqtt connection error: %v", err)
	}
	consumer := mqttbus.NewConsumer(mqttClient, cfg.Topic, 1, nil)

	// === Metrics + service ===
	reg := prometheus.NewRegistry()
	metrics := ingest.NewMetrics(reg)
	svc := ingest.NewService(consumer, writer, metrics)

	// === HTTP ===
	mux := http.NewServeMux()
	mux.Handle("/healthz", ingest.NewHealthHandler(mqttClient, influx, writer))
	mux.Handle("/readyz", ingest.NewReadyHandler(mqttClient, influx, writer, 2*time.Second))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("ingest: http listening on %s", hs.Addr)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ingest: http server error: %v", err)
		}
	}()

	go svc.Start(ctx)

	// === Shutdown ===
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("ingest: shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = hs.Shutdown(shutdownCtx)
}
