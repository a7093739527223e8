// Package sensor_run builds the climate table for the sensor-derived
// pipeline, from a raw-sample CSV export or from the InfluxDB measurement
// the ingest service fills.
package sensor_run

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/mfalchetti/standgrow/internal/model"
	"github.com/mfalchetti/standgrow/internal/model/messages"
	"github.com/mfalchetti/standgrow/internal/sensordata"
	"github.com/mfalchetti/standgrow/internal/services/ingest"
)

// ClimateFromSamples aggregates raw samples into months and estimates the
// derived variables, returning model-ready climate records.
func ClimateFromSamples(samples []messages.RawSample, seed int64) ([]model.ClimateRecord, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no sensor samples in source")
	}
	months := sensordata.Aggregate(samples)
	records := sensordata.NewGapFiller(seed).Fill(months)
	log.Printf("sensor-run: %d samples aggregated into %d months (derived variables are estimated)",
		len(samples), len(records))
	return records, nil
}

// ClimateFromCSV reads a sensor export file and derives the climate table.
func ClimateFromCSV(path string, seed int64) ([]model.ClimateRecord, error) {
	samples, err := sensordata.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return ClimateFromSamples(samples, seed)
}

// ClimateFromInflux pulls raw samples back out of InfluxDB for a time
// window and derives the climate table.
func ClimateFromInflux(ctx context.Context, client influxdb2.Client, org, bucket string,
	from, to time.Time, seed int64) ([]model.ClimateRecord, error) {

	flux := fmt.Sprintf(`
from(bucket: %q)
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == %q)
  |> keep(columns: ["_time","_field","_value","station_id"])
`, bucket, from.UTC().Format(time.RFC3339), to.UTC().AddDate(0, 1, 0).Format(time.RFC3339), ingest.Measurement)

	res, err := client.QueryAPI(org).Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("influx query: %w", err)
	}
	defer res.Close()

	type key struct {
		station string
		when    time.Time
	}
	byTime := make(map[key]*messages.RawSample)
	for res.Next() {
		rec := res.Record()
		v, ok := rec.Value().(float64)
		if !ok {
			continue
		}
		station, _ := rec.ValueByKey("station_id").(string)
		k := key{station: station, when: rec.Time()}
		s := byTime[k]
		if s == nil {
			s = &messages.RawSample{StationID: station, Timestamp: rec.Time()}
			byTime[k] = s
		}
		val := v
		switch rec.Field() {
		case "temperature":
			s.Temperature = &val
		case "humidity":
			s.Humidity = &val
		case "light_vis":
			s.LightVis = &val
		case "light_ir":
			s.LightIR = &val
		case "soil_moisture":
			s.SoilMoist = &val
		case "soil_temp":
			s.SoilTemp = &val
		}
	}
	if res.Err() != nil {
		return nil, fmt.Errorf("influx result: %w", res.Err())
	}

	samples := make([]messages.RawSample, 0, len(byTime))
	for _, s := range byTime {
		samples = append(samples, *s)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Timestamp.Before(samples[j].Timestamp) })

	return ClimateFromSamples(samples, seed)
}
