package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSite reads a SiteConfig from a JSON file.
func LoadSite(path string) (SiteConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, err
	}
	var site SiteConfig
	if err := json.Unmarshal(raw, &site); err != nil {
		return SiteConfig{}, fmt.Errorf("parse site %s: %w", path, err)
	}
	if err := site.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return site, nil
}

// LoadSpecies reads the stand's species list from a JSON file.
func LoadSpecies(path string) ([]SpeciesState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []SpeciesState
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse species %s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("species file %s: no species defined", path)
	}
	for _, sp := range list {
		if err := sp.Validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}
