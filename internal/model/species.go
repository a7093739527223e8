package model

import (
	"fmt"
	"time"
)

// SpeciesState is the initial state of one species in the stand. All
// species share the same site and climate and compete inside the growth
// model; nothing in this repository resolves competition.
type SpeciesState struct {
	Name       string    `json:"name"`
	Planted    time.Time `json:"planted"`
	Fertility  float64   `json:"fertility"` // soil fertility rating, 0..1
	StemsPerHa float64   `json:"stems_n"`

	// Initial biomass pools, Mg/ha dry mass.
	BiomStem    float64 `json:"biom_stem"`
	BiomRoot    float64 `json:"biom_root"`
	BiomFoliage float64 `json:"biom_foliage"`
}

func (s SpeciesState) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("species: empty name")
	}
	if s.Fertility < 0 || s.Fertility > 1 {
		return fmt.Errorf("species %s: fertility %g outside [0,1]", s.Name, s.Fertility)
	}
	if s.StemsPerHa <= 0 {
		return fmt.Errorf("species %s: stems/ha must be positive", s.Name)
	}
	if s.BiomStem < 0 || s.BiomRoot < 0 || s.BiomFoliage < 0 {
		return fmt.Errorf("species %s: negative initial biomass", s.Name)
	}
	return nil
}

// TotalBiomass is the sum of the three initial pools, Mg/ha.
func (s SpeciesState) TotalBiomass() float64 {
	return s.BiomStem + s.BiomRoot + s.BiomFoliage
}
