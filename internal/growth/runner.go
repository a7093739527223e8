// Package growth wraps the external forest-growth model. The model itself
// (radiation-use efficiency, allocation, water balance, mortality) is a
// black box behind the Runner interface; this package only assembles its
// input, chooses a numerical-method configuration, and hands back its
// long-form output table.
package growth

import (
	"context"

	"github.com/mfalchetti/standgrow/internal/model"
)

// RunOptions selects the model's numerical methods. The three model codes
// are small integers defined by the external library.
type RunOptions struct {
	LightModel    int  `json:"light_model"`    // light interception
	TranspModel   int  `json:"transp_model"`   // transpiration
	PhysModel     int  `json:"phys_model"`     // physiological modifiers
	CorrectBias   bool `json:"correct_bias"`   // bias correction pass
	CalculateD13C bool `json:"calculate_d13c"` // isotope discrimination output
	Validate      bool `json:"validate"`       // library-side input validation
}

// DefaultCandidates is the ordered list of configurations tried in
// sequence until one succeeds: the full-featured setup first, then a
// conservative fallback with bias correction and isotope output disabled.
func DefaultCandidates() []RunOptions {
	return []RunOptions{
		{LightModel: 2, TranspModel: 2, PhysModel: 2, CorrectBias: true, CalculateD13C: true, Validate: true},
		{LightModel: 1, TranspModel: 1, PhysModel: 1, CorrectBias: false, CalculateD13C: false, Validate: true},
	}
}

// RunInput is everything one model invocation needs. Thinning events are
// never scheduled by this pipeline.
type RunInput struct {
	Site       model.SiteConfig      `json:"site"`
	Climate    []model.ClimateRecord `json:"climate"`
	Species    []model.SpeciesState  `json:"species"`
	Parameters ParameterTable        `json:"parameters"`
	Options    RunOptions            `json:"options"`
}

// Runner is the external model boundary: a pure call from assembled input
// to the model's output table, or a model-specific error.
type Runner interface {
	Run(ctx context.Context, in RunInput) ([]model.ModelOutputRow, error)
}
