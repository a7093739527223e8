package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfalchetti/standgrow/internal/services/simulator"
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
		Broker   mqttbus.Config
		Topic    string
		Stations []string
		Interval time.Duration
		Seed     int64
	}{
		Broker: mqttbus.Config{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", ""),
			Password: envStr("MQTT_PASSWORD", ""),
			ClientID: envStr("HOSTNAME", "standgrow-simulator"),
		},
		Topic: envStr("SENSOR_TOPIC", "sensor/raw/sim"),
		Stations: func() []string {
			raw := envStr("STATIONS", "station-1")
			parts := strings.Split(raw, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if s := strings.TrimSpace(p); s != "" {
					out = append(out, s)
				}
			}
			return out
		}(),
		Interval: time.Duration(envInt("SAMPLE_INTERVAL_S", 60)) * time.Second,
		Seed:     int64(envInt("SEED", 42)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mqttbus.Connect(ctx, &cfg.Broker)
	if err != nil {
		log.Fatalf("simulator: mqtt connection error: %v", err)
	}

	svc := simulator.NewService(
		mqttbus.NewPublisher(client, cfg.Topic, 1),
		simulator.NewGenerator(cfg.Seed),
		cfg.Stations,
		cfg.Interval,
	)
	go svc.Start(ctx)
	log.Printf("simulator: publishing %d station(s) to %s every %s",
		len(cfg.Stations), cfg.Topic, cfg.Interval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
}
