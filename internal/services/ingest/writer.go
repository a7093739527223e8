package ingest

import (
	"log"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

// Measurement is where raw samples land in InfluxDB. The sensor pipeline
// reads the same measurement back when its climate source is "influx".
const Measurement = "sensor_raw"

// Writer wraps the async Influx WriteAPI and tracks the last write error
// for the health endpoints.
type Writer struct {
	api     api.WriteAPI
	mu      sync.RWMutex
	lastErr time.Time
}

// NewWriter starts the listener draining the API's async error channel.
func NewWriter(w api.WriteAPI) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour),
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("ingest: influx write error: %v", err)
			}
		}
	}()
	return ww
}

// WriteSample queues one raw sample. Only the readings the sample actually
// carries become fields.
func (w *Writer) WriteSample(s messages.RawSample) {
	tags := map[string]string{}
	if s.StationID != "" {
		tags["station_id"] = s.StationID
	}

	fields := map[string]interface{}{}
	add := func(name string, v *float64) {
		if v != nil {
			fields[name] = *v
		}
	}
	add("temperature", s.Temperature)
	add("humidity", s.Humidity)
	add("light_vis", s.LightVis)
	add("light_ir", s.LightIR)
	add("soil_moisture", s.SoilMoist)
	add("soil_temp", s.SoilTemp)
	if len(fields) == 0 {
		return // nothing measured, nothing to store
	}

	w.api.WritePoint(influxdb2.NewPoint(Measurement, tags, fields, s.Timestamp))
}

// LastErrorAge reports how long writes have gone without an error.
func (w *Writer) LastErrorAge() time.Duration {
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// Flush forces pending points out, for shutdown.
func (w *Writer) Flush() { w.api.Flush() }
