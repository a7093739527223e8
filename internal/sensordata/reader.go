// Package sensordata turns raw high-frequency sensor samples into the
// monthly climate table the growth model consumes: CSV/stream decoding,
// per-month aggregation, and estimation of the variables the sensors do
// not measure directly.
package sensordata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

// Expected CSV header. Every reading column may be empty (missing value);
// the timestamp may not.
var csvColumns = []string{
	"timestamp", "temperature", "humidity",
	"light_vis", "light_ir", "soil_moisture", "soil_temp",
}

// ReadCSVFile loads raw samples from a sensor export file. Any absent or
// malformed timestamp aborts the whole read; there is no partial-record
// recovery.
func ReadCSVFile(path string) ([]messages.RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("sensor file %s: %w", path, err)
	}
	return samples, nil
}

// ReadCSV decodes raw samples from r. The first row must be the header.
func ReadCSV(r io.Reader) ([]messages.RawSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range csvColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], want)
		}
	}

	var out []messages.RawSample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ts := strings.TrimSpace(rec[0])
		if ts == "" {
			return nil, fmt.Errorf("line %d: missing timestamp", line)
		}
		when, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q: %w", line, ts, err)
		}

		s := messages.RawSample{Timestamp: when}
		if s.Temperature, err = optFloat(rec[1]); err != nil {
			return nil, fmt.Errorf("line %d: temperature: %w", line, err)
		}
		if s.Humidity, err = optFloat(rec[2]); err != nil {
			return nil, fmt.Errorf("line %d: humidity: %w", line, err)
		}
		if s.LightVis, err = optFloat(rec[3]); err != nil {
			return nil, fmt.Errorf("line %d: light_vis: %w", line, err)
		}
		if s.LightIR, err = optFloat(rec[4]); err != nil {
			return nil, fmt.Errorf("line %d: light_ir: %w", line, err)
		}
		if s.SoilMoist, err = optFloat(rec[5]); err != nil {
			return nil, fmt.Errorf("line %d: soil_moisture: %w", line, err)
		}
		if s.SoilTemp, err = optFloat(rec[6]); err != nil {
			return nil, fmt.Errorf("line %d: soil_temp: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func optFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
