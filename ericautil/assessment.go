/*
Copyright © 2026 the erica authors.
This file is part of erica.

erica is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

erica is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with erica.  If not, see <http://www.gnu.org/licenses/>.
*/

package ericautil

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/erica"
)

// Assessment holds the measurements and site-specific parameters for an
// assessment, as read from a TOML file. Any value not given here is
// filled in from the reference table.
type Assessment struct {
	// Isotopes and Organisms are the isotopes and organisms to
	// assess, for example "Cs-137" and "Benthic fish".
	Isotopes, Organisms []string

	// PercentageDryWeight is the dry weight of sediment as a percentage
	// of wet weight. If it is not set, 100 is used.
	PercentageDryWeight *float64

	// RadiationWeightingFactors are the weighting factors for alpha,
	// beta/gamma, and low energy beta radiation. If it is not set,
	// the default factors of 10, 1, and 3 are used.
	RadiationWeightingFactors []float64

	// Activity holds measured activity concentrations [Bq/kg or Bq/L].
	// Object is a medium ("Water" or "Sediment") or an organism.
	Activity []struct {
		Isotope, Object string
		Value           float64
	}

	// Kd holds site-specific sediment/water distribution
	// coefficients [L/kg].
	Kd []struct {
		Nuclide string
		Value   float64
	}

	// CR holds site-specific concentration ratios.
	CR []struct {
		Nuclide, Organism string
		Value             float64
	}

	// DCC holds dose conversion coefficients [(Gy/yr)/(Bq/kg)].
	DCC []struct {
		Isotope, Organism string
		Values            []float64
	}

	// Occupancy holds the fraction of time that organisms spend in
	// each habitat.
	Occupancy []struct {
		Organism string
		Values   []float64
	}
}

// ReadAssessment reads an assessment in TOML format.
func ReadAssessment(r io.Reader) (*Assessment, error) {
	a := new(Assessment)
	if _, err := toml.DecodeReader(r, a); err != nil {
		return nil, fmt.Errorf("ericautil: problem decoding assessment file: %v", err)
	}
	return a, nil
}

// LoadAssessment reads the assessment in fileName, which can include
// environment variables.
func LoadAssessment(fileName string) (*Assessment, error) {
	f, err := os.Open(os.ExpandEnv(fileName))
	if err != nil {
		return nil, fmt.Errorf("ericautil: problem opening assessment file: %v", err)
	}
	defer f.Close()
	return ReadAssessment(f)
}

// Setting converts a into a Setting.
func (a *Assessment) Setting() (*erica.Setting, error) {
	if len(a.Isotopes) == 0 {
		return nil, fmt.Errorf("ericautil: %w: the assessment has no isotopes", erica.ErrInvalidParameter)
	}
	if len(a.Organisms) == 0 {
		return nil, fmt.Errorf("ericautil: %w: the assessment has no organisms", erica.ErrInvalidParameter)
	}
	s := erica.NewSetting()
	for _, iso := range a.Isotopes {
		s.AddIsotope(iso)
	}
	for _, org := range a.Organisms {
		s.AddOrganism(org)
	}
	if a.PercentageDryWeight != nil {
		if err := s.SetPercentageDryWeight(*a.PercentageDryWeight); err != nil {
			return nil, fmt.Errorf("ericautil: %w", err)
		}
	}
	if len(a.RadiationWeightingFactors) != 0 {
		w, err := erica.NewWeightingFactors(a.RadiationWeightingFactors)
		if err != nil {
			return nil, fmt.Errorf("ericautil: %w", err)
		}
		if err := s.SetRadiationWeightingFactors(w); err != nil {
			return nil, fmt.Errorf("ericautil: %w", err)
		}
	}
	for _, v := range a.Activity {
		s.SetActivityConcentration(v.Isotope, v.Object, v.Value)
	}
	for _, v := range a.Kd {
		s.SetDistributionCoefficient(v.Nuclide, v.Value)
	}
	for _, v := range a.CR {
		s.SetConcentrationRatio(v.Nuclide, v.Organism, v.Value)
	}
	for _, v := range a.DCC {
		d, err := erica.NewDCC(v.Values)
		if err != nil {
			return nil, fmt.Errorf("ericautil: %s in %s: %w", v.Isotope, v.Organism, err)
		}
		if err := s.SetDoseConversionCoefficients(v.Isotope, v.Organism, d); err != nil {
			return nil, fmt.Errorf("ericautil: %w", err)
		}
	}
	for _, v := range a.Occupancy {
		o, err := erica.NewOccupancyFactors(v.Values)
		if err != nil {
			return nil, fmt.Errorf("ericautil: occupancy for %s: %w", v.Organism, err)
		}
		if err := s.SetOccupancyFactors(v.Organism, o); err != nil {
			return nil, fmt.Errorf("ericautil: %w", err)
		}
	}
	return s, nil
}
