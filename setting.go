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

// Package erica calculates radiological dose rates to wildlife from
// activity concentrations of radionuclides in water and sediment,
// following the ERICA Integrated Approach.
package erica

import (
	"fmt"
	"math"

	"github.com/spatialmodel/erica/internal/hash"
)

// Version is the version of this software.
const Version = "0.1.0" // versioning scheme at: http://semver.org/

// Setting holds the user-supplied parameters for an assessment. Any
// value that is not set is filled in from a ReferenceTable when a
// Result is calculated.
//
// The zero value is not ready for use; create a Setting with
// NewSetting.
type Setting struct {
	isotopes  *OrderedSet
	organisms *OrderedSet

	// distributionCoefficients are sediment/water distribution
	// coefficients (Kd) by nuclide [L/kg].
	distributionCoefficients map[string]float64

	// concentrationRatios are whole-organism to water concentration
	// ratios by nuclide and organism [unitless].
	concentrationRatios map[string]map[string]float64

	occupancyFactors          map[string]OccupancyFactors
	radiationWeightingFactors WeightingFactors

	// activityConcentrations are by isotope and then by medium or
	// organism name [Bq/kg].
	activityConcentrations map[string]map[string]float64

	percentageDryWeight float64

	doseConversionCoefficients map[string]map[string]DCC
}

// NewSetting returns an empty Setting with default radiation weighting
// factors and a dry weight percentage of 100.
func NewSetting() *Setting {
	return &Setting{
		isotopes:                   NewOrderedSet(),
		organisms:                  NewOrderedSet(),
		distributionCoefficients:   make(map[string]float64),
		concentrationRatios:        make(map[string]map[string]float64),
		occupancyFactors:           make(map[string]OccupancyFactors),
		radiationWeightingFactors:  DefaultWeightingFactors,
		activityConcentrations:     make(map[string]map[string]float64),
		percentageDryWeight:        100,
		doseConversionCoefficients: make(map[string]map[string]DCC),
	}
}

// AddIsotope adds an isotope (e.g., "Cs-137") to the assessment.
func (s *Setting) AddIsotope(isotope string) { s.isotopes.Add(isotope) }

// AddOrganism adds an organism to the assessment.
func (s *Setting) AddOrganism(organism string) { s.organisms.Add(organism) }

// Isotopes returns the isotopes in the order they were added.
func (s *Setting) Isotopes() []string { return s.isotopes.Slice() }

// Organisms returns the organisms in the order they were added.
func (s *Setting) Organisms() []string { return s.organisms.Slice() }

// SetDistributionCoefficient sets the distribution coefficient for
// nuclide, overwriting any previous value.
func (s *Setting) SetDistributionCoefficient(nuclide string, kd float64) {
	s.distributionCoefficients[nuclide] = kd
}

// DistributionCoefficient returns the distribution coefficient for
// nuclide and whether one has been set.
func (s *Setting) DistributionCoefficient(nuclide string) (float64, bool) {
	v, ok := s.distributionCoefficients[nuclide]
	return v, ok
}

// SetConcentrationRatio sets the concentration ratio for nuclide and
// organism, keeping any ratios already set for other organisms.
func (s *Setting) SetConcentrationRatio(nuclide, organism string, v float64) {
	m, ok := s.concentrationRatios[nuclide]
	if !ok {
		m = make(map[string]float64)
		s.concentrationRatios[nuclide] = m
	}
	m[organism] = v
}

// ReplaceConcentrationRatios discards all concentration ratios for
// nuclide and then sets the one for organism.
func (s *Setting) ReplaceConcentrationRatios(nuclide, organism string, v float64) {
	s.concentrationRatios[nuclide] = map[string]float64{organism: v}
}

// ConcentrationRatio returns the concentration ratio for nuclide and
// organism and whether one has been set.
func (s *Setting) ConcentrationRatio(nuclide, organism string) (float64, bool) {
	v, ok := s.concentrationRatios[nuclide][organism]
	return v, ok
}

// SetOccupancyFactors sets the fraction of time that organism spends
// in each habitat.
func (s *Setting) SetOccupancyFactors(organism string, o OccupancyFactors) error {
	if err := o.check(); err != nil {
		return fmt.Errorf("organism %s: %w", organism, err)
	}
	s.occupancyFactors[organism] = o
	return nil
}

// OccupancyFactors returns the occupancy factors for organism and
// whether they have been set.
func (s *Setting) OccupancyFactors(organism string) (OccupancyFactors, bool) {
	o, ok := s.occupancyFactors[organism]
	return o, ok
}

// SetRadiationWeightingFactors replaces the radiation weighting factors.
func (s *Setting) SetRadiationWeightingFactors(w WeightingFactors) error {
	if err := w.check(); err != nil {
		return err
	}
	s.radiationWeightingFactors = w
	return nil
}

// RadiationWeightingFactors returns the radiation weighting factors.
func (s *Setting) RadiationWeightingFactors() WeightingFactors {
	return s.radiationWeightingFactors
}

// SetActivityConcentration sets the activity concentration of isotope
// in object, which is a medium (Water or Sediment) or an organism,
// keeping any other concentrations already set for the isotope.
func (s *Setting) SetActivityConcentration(isotope, object string, v float64) {
	m, ok := s.activityConcentrations[isotope]
	if !ok {
		m = make(map[string]float64)
		s.activityConcentrations[isotope] = m
	}
	m[object] = v
}

// ReplaceActivityConcentrations discards all activity concentrations
// for isotope and then sets the one for object.
func (s *Setting) ReplaceActivityConcentrations(isotope, object string, v float64) {
	s.activityConcentrations[isotope] = map[string]float64{object: v}
}

// ActivityConcentration returns the activity concentration of isotope
// in object and whether one has been set.
func (s *Setting) ActivityConcentration(isotope, object string) (float64, bool) {
	v, ok := s.activityConcentrations[isotope][object]
	return v, ok
}

// SetPercentageDryWeight sets the dry weight percentage, which must be
// between 0 and 100.
func (s *Setting) SetPercentageDryWeight(v float64) error {
	if !(v >= 0 && v <= 100) {
		return fmt.Errorf("%w: percentage dry weight = %g, must be in [0,100]", ErrInvalidParameter, v)
	}
	s.percentageDryWeight = v
	return nil
}

// PercentageDryWeight returns the dry weight percentage.
func (s *Setting) PercentageDryWeight() float64 { return s.percentageDryWeight }

// SetDoseConversionCoefficients sets the dose conversion coefficients for
// isotope and organism, keeping those already set for other organisms.
func (s *Setting) SetDoseConversionCoefficients(isotope, organism string, d DCC) error {
	if err := d.check(); err != nil {
		return fmt.Errorf("isotope %s, organism %s: %w", isotope, organism, err)
	}
	m, ok := s.doseConversionCoefficients[isotope]
	if !ok {
		m = make(map[string]DCC)
		s.doseConversionCoefficients[isotope] = m
	}
	m[organism] = d
	return nil
}

// ReplaceDoseConversionCoefficients discards all dose conversion
// coefficients for isotope and then sets the ones for organism.
func (s *Setting) ReplaceDoseConversionCoefficients(isotope, organism string, d DCC) error {
	if err := d.check(); err != nil {
		return fmt.Errorf("isotope %s, organism %s: %w", isotope, organism, err)
	}
	s.doseConversionCoefficients[isotope] = map[string]DCC{organism: d}
	return nil
}

// DoseConversionCoefficients returns the dose conversion coefficients
// for isotope and organism and whether they have been set.
func (s *Setting) DoseConversionCoefficients(isotope, organism string) (DCC, bool) {
	d, ok := s.doseConversionCoefficients[isotope][organism]
	return d, ok
}

// Fingerprint returns a key that is the same for any two Settings
// holding the same parameters.
func (s *Setting) Fingerprint() string {
	return hash.Hash(struct {
		Isotopes, Organisms        []string
		DistributionCoefficients   map[string]float64
		ConcentrationRatios        map[string]map[string]float64
		OccupancyFactors           map[string]OccupancyFactors
		RadiationWeightingFactors  WeightingFactors
		ActivityConcentrations     map[string]map[string]float64
		PercentageDryWeight        float64
		DoseConversionCoefficients map[string]map[string]DCC
	}{
		Isotopes:                   s.isotopes.Slice(),
		Organisms:                  s.organisms.Slice(),
		DistributionCoefficients:   s.distributionCoefficients,
		ConcentrationRatios:        s.concentrationRatios,
		OccupancyFactors:           s.occupancyFactors,
		RadiationWeightingFactors:  s.radiationWeightingFactors,
		ActivityConcentrations:     s.activityConcentrations,
		PercentageDryWeight:        s.percentageDryWeight,
		DoseConversionCoefficients: s.doseConversionCoefficients,
	})
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	o := make(map[string]float64, len(m))
	for k, v := range m {
		o[k] = v
	}
	return o
}

func copyNestedFloatMap(m map[string]map[string]float64) map[string]map[string]float64 {
	o := make(map[string]map[string]float64, len(m))
	for k, v := range m {
		o[k] = copyFloatMap(v)
	}
	return o
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
