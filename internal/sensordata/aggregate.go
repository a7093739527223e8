package sensordata

import (
	"math"
	"sort"

	"github.com/mfalchetti/standgrow/internal/model/messages"
)

// MonthlyAggregate holds one calendar month of reduced sensor readings.
// Each aggregate ignores missing values independently; a month where one
// variable was never reported carries NaN for that variable only.
type MonthlyAggregate struct {
	Year  int
	Month int

	TmpMin  float64 // °C, minimum over the month
	TmpMax  float64 // °C, maximum over the month
	TmpMean float64 // °C

	HumidityMean  float64 // %RH
	LightVisMean  float64 // lux
	LightIRMean   float64 // lux
	SoilMoistMean float64 // %vol
	SoilTempMean  float64 // °C

	Samples int // total samples seen in the month
}

type acc struct {
	sum float64
	n   int
}

func (a *acc) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.n++
}

func (a acc) mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.n)
}

// Aggregate groups raw samples by (year, month) and reduces every variable,
// returning the months in chronological order.
func Aggregate(samples []messages.RawSample) []MonthlyAggregate {
	type bucket struct {
		tmpMin, tmpMax                  float64
		tmpSeen                         bool
		tmp, hum, vis, ir, moist, soilT acc
		samples                         int
	}

	buckets := make(map[[2]int]*bucket)
	for _, s := range samples {
		key := [2]int{s.Timestamp.Year(), int(s.Timestamp.Month())}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.samples++

		if s.Temperature != nil {
			t := *s.Temperature
			if !b.tmpSeen || t < b.tmpMin {
				b.tmpMin = t
			}
			if !b.tmpSeen || t > b.tmpMax {
				b.tmpMax = t
			}
			b.tmpSeen = true
		}
		b.tmp.add(s.Temperature)
		b.hum.add(s.Humidity)
		b.vis.add(s.LightVis)
		b.ir.add(s.LightIR)
		b.moist.add(s.SoilMoist)
		b.soilT.add(s.SoilTemp)
	}

	out := make([]MonthlyAggregate, 0, len(buckets))
	for key, b := range buckets {
		ma := MonthlyAggregate{
			Year:          key[0],
			Month:         key[1],
			TmpMin:        math.NaN(),
			TmpMax:        math.NaN(),
			TmpMean:       b.tmp.mean(),
			HumidityMean:  b.hum.mean(),
			LightVisMean:  b.vis.mean(),
			LightIRMean:   b.ir.mean(),
			SoilMoistMean: b.moist.mean(),
			SoilTempMean:  b.soilT.mean(),
			Samples:       b.samples,
		}
		if b.tmpSeen {
			ma.TmpMin, ma.TmpMax = b.tmpMin, b.tmpMax
		}
		out = append(out, ma)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
