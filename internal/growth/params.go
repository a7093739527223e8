package growth

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParameterTable maps species name to the physiological parameter set the
// external model expects for it. The parameter names and values belong to
// the model's documentation; this repository passes them through untouched.
type ParameterTable map[string]map[string]float64

// defaultParams is a general-purpose temperate broadleaf parameter set,
// taken from the model library's shipped defaults.
var defaultParams = map[string]float64{
	"pFS2":       1.0,
	"pFS20":      0.3,
	"aWS":        0.095,
	"nWS":        2.4,
	"pRx":        0.8,
	"pRn":        0.25,
	"gammaF1":    0.015,
	"gammaR":     0.025,
	"tmin":       -2.0,
	"topt":       20.0,
	"tmax":       36.0,
	"kF":         1.0,
	"SLA1":       11.0,
	"alphaCx":    0.06,
	"Y":          0.47,
	"k":          0.5,
	"fullCanAge": 15.0,
	"MaxCond":    0.02,
	"CoeffCond":  0.05,
	"BLcond":     0.2,
	"wSx1000":    300.0,
	"thinPower":  1.5,
}

// DefaultParameters builds a table giving every named species the library's
// default parameter set.
func DefaultParameters(species ...string) ParameterTable {
	t := make(ParameterTable, len(species))
	for _, name := range species {
		p := make(map[string]float64, len(defaultParams))
		for k, v := range defaultParams {
			p[k] = v
		}
		t[name] = p
	}
	return t
}

// LoadParameters reads a per-species parameter table from a JSON file,
// for runs that override the shipped defaults.
func LoadParameters(path string) (ParameterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t ParameterTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse parameters %s: %w", path, err)
	}
	return t, nil
}
