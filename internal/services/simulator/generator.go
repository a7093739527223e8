// Package simulator emits synthetic raw sensor samples over MQTT, standing
// in for a weather station when no hardware is wired up.
package simulator

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

// ====== Tunables ======
const (
	// Diurnal temperature swing around the seasonal mean (°C).
	diurnalAmp = 5.0

	// Seasonal mean temperature curve (°C), peaking mid-year.
	seasonalBase = 12.0
	seasonalAmp  = 9.0

	// Humidity random walk bounds (%RH).
	humidityMin  = 25.0
	humidityMax  = 98.0
	humiditySeed = 65.0

	// Daylight light levels (lux) at noon.
	lightVisPeak = 160.0
	lightIRPeak  = 80.0
)

// Generator keeps the walk state between samples. Same seed, same stream.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	humidity float64
	moisture float64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		humidity: humiditySeed,
		moisture: 30.0,
	}
}

// Next produces the sample for the given instant.
func (g *Generator) Next(station string, now time.Time) messages.RawSample {
	g.mu.Lock()
	defer g.mu.Unlock()

	month := float64(now.Month())
	hour := float64(now.Hour()) + float64(now.Minute())/60

	seasonal := seasonalBase + seasonalAmp*math.Cos(2*math.Pi*(month-7)/12)
	// Coldest just before dawn, warmest mid-afternoon.
	diurnal := diurnalAmp * math.Cos(2*math.Pi*(hour-15)/24)
	temp := seasonal + diurnal + g.rng.NormFloat64()*0.8

	g.humidity = clamp(g.humidity+g.rng.NormFloat64()*2, humidityMin, humidityMax)
	g.moisture = clamp(g.moisture+g.rng.NormFloat64()*0.5, 5, 60)

	// Zero at night, peaking at solar noon.
	sun := math.Max(0, math.Sin(math.Pi*(hour-6)/12))
	vis := lightVisPeak*sun + g.rng.Float64()*5
	ir := lightIRPeak*sun + g.rng.Float64()*3

	soilTemp := seasonal*0.8 + g.rng.NormFloat64()*0.3

	hum, moist := g.humidity, g.moisture
	return messages.RawSample{
		StationID:   station,
		Timestamp:   now.UTC(),
		Temperature: &temp,
		Humidity:    &hum,
		LightVis:    &vis,
		LightIR:     &ir,
		SoilMoist:   &moist,
		SoilTemp:    &soilTemp,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
