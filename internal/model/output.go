package model

import "time"

// Output variable names reported by the growth model. The model reports many
// more; these are the ones the aggregation stage consumes.
const (
	VarBiomStem    = "biom_stem"
	VarBiomRoot    = "biom_root"
	VarBiomFoliage = "biom_foliage"
)

// ModelOutputRow is one row of the growth model's long-form result table:
// one value per (time step, species, variable). Consumed read-only; the
// table's full variable set is owned by the model, not by this repository.
type ModelOutputRow struct {
	Date     time.Time `json:"date"`
	Species  string    `json:"species"`
	Variable string    `json:"variable"`
	Value    float64   `json:"value"`
}

// IsBiomassComponent reports whether the row is one of the three biomass
// pools summed by the aggregator.
func (r ModelOutputRow) IsBiomassComponent() bool {
	switch r.Variable {
	case VarBiomStem, VarBiomRoot, VarBiomFoliage:
		return true
	}
	return false
}
