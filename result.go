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

package erica

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Result holds a snapshot of a Setting along with the dose rates
// calculated from it. Create a Result with NewResult and then run
// Calculate before querying dose rates.
type Result struct {
	// Log receives warnings and gap-filling failures.
	Log logrus.FieldLogger

	table ReferenceTable

	isotopes, organisms        *OrderedSet
	distributionCoefficients   map[string]float64
	concentrationRatios        map[string]map[string]float64
	occupancyFactors           map[string]OccupancyFactors
	radiationWeightingFactors  WeightingFactors
	activityConcentrations     map[string]map[string]float64
	percentageDryWeight        float64
	doseConversionCoefficients map[string]map[string]DCC

	internalCoefficients map[string]map[string]float64 // [isotope][organism]
	externalCoefficients map[string]map[string]float64 // [isotope][organism]
	internalDoseRates    map[string]map[string]float64 // [isotope][organism]
	externalDoseRates    map[string]map[string][2]float64
	habitatDoseRates     map[string]map[string]map[string]float64 // [habitat][isotope][organism]
	totalDoseRates       map[string]map[string]float64            // [isotope][organism]

	// Problems found while filling gaps, keyed by the scope they apply to.
	isotopeErrs  map[string]error
	organismErrs map[string]error
	pairErrs     map[[2]string]error
	warnings     []error
	failures     []error

	calculated bool
}

// NewResult returns a Result holding an independent copy of s.
// table supplies values that are missing from s; it may be nil, in which
// case every missing value is a failure.
func NewResult(s *Setting, table ReferenceTable) *Result {
	if table == nil {
		table = noTable{}
	}
	r := &Result{
		Log:                       logrus.StandardLogger(),
		table:                     table,
		isotopes:                  s.isotopes.Clone(),
		organisms:                 s.organisms.Clone(),
		distributionCoefficients:  copyFloatMap(s.distributionCoefficients),
		concentrationRatios:       copyNestedFloatMap(s.concentrationRatios),
		occupancyFactors:          make(map[string]OccupancyFactors, len(s.occupancyFactors)),
		radiationWeightingFactors: s.radiationWeightingFactors,
		activityConcentrations:    copyNestedFloatMap(s.activityConcentrations),
		percentageDryWeight:       s.percentageDryWeight,
		doseConversionCoefficients: make(map[string]map[string]DCC,
			len(s.doseConversionCoefficients)),

		isotopeErrs:  make(map[string]error),
		organismErrs: make(map[string]error),
		pairErrs:     make(map[[2]string]error),
	}
	for org, o := range s.occupancyFactors {
		r.occupancyFactors[org] = o
	}
	for iso, m := range s.doseConversionCoefficients {
		mm := make(map[string]DCC, len(m))
		for org, d := range m {
			mm[org] = d
		}
		r.doseConversionCoefficients[iso] = mm
	}
	return r
}

// Calculate fills gaps in the input data and then calculates
// dose rates for every isotope/organism pair. Failures that only affect
// some pairs do not cause an error; they are available from Failures.
// Calculate can only be run once.
func (r *Result) Calculate() error {
	if r.calculated {
		return ErrAlreadyCalculated
	}
	r.calculated = true
	for _, f := range pipeline {
		if err := f(r); err != nil {
			return err
		}
	}
	return nil
}

// Isotopes returns the isotopes in the assessment.
func (r *Result) Isotopes() []string { return r.isotopes.Slice() }

// Organisms returns the organisms in the assessment.
func (r *Result) Organisms() []string { return r.organisms.Slice() }

// Warnings returns isotopes that were left out of the results because
// no activity concentrations were given for them. The errors wrap
// ErrMissingIsotopeData.
func (r *Result) Warnings() []error {
	return append([]error(nil), r.warnings...)
}

// Failures returns the *PairErrors for values that could not be
// calculated.
func (r *Result) Failures() []error {
	return append([]error(nil), r.failures...)
}

// PercentageDryWeight returns the dry weight percentage.
func (r *Result) PercentageDryWeight() float64 { return r.percentageDryWeight }

// RadiationWeightingFactors returns the radiation weighting factors.
func (r *Result) RadiationWeightingFactors() WeightingFactors {
	return r.radiationWeightingFactors
}

// DistributionCoefficient returns the distribution coefficient used for
// nuclide.
func (r *Result) DistributionCoefficient(nuclide string) (float64, error) {
	v, ok := r.distributionCoefficients[nuclide]
	if !ok {
		return 0, fmt.Errorf("%w: distribution coefficient for %s", ErrUnknownKey, nuclide)
	}
	return v, nil
}

// ConcentrationRatio returns the concentration ratio used for nuclide
// and organism.
func (r *Result) ConcentrationRatio(nuclide, organism string) (float64, error) {
	v, ok := r.concentrationRatios[nuclide][organism]
	if !ok {
		return 0, fmt.Errorf("%w: concentration ratio for %s in %s", ErrUnknownKey, nuclide, organism)
	}
	return v, nil
}

// ActivityConcentration returns the activity concentration [Bq/kg] of
// isotope in object, which is either a medium or an organism.
func (r *Result) ActivityConcentration(isotope, object string) (float64, error) {
	v, ok := r.activityConcentrations[isotope][object]
	if !ok {
		return 0, fmt.Errorf("%w: activity concentration of %s in %s", ErrUnknownKey, isotope, object)
	}
	return v, nil
}

// OccupancyFactors returns the habitat occupancy factors used for organism.
func (r *Result) OccupancyFactors(organism string) (OccupancyFactors, error) {
	o, ok := r.occupancyFactors[organism]
	if !ok {
		return o, fmt.Errorf("%w: occupancy factors for %s", ErrUnknownKey, organism)
	}
	return o, nil
}

// DoseConversionCoefficients returns the dose conversion coefficients used
// for isotope and organism.
func (r *Result) DoseConversionCoefficients(isotope, organism string) (DCC, error) {
	d, ok := r.doseConversionCoefficients[isotope][organism]
	if !ok {
		return d, fmt.Errorf("%w: dose conversion coefficients for %s in %s", ErrUnknownKey, isotope, organism)
	}
	return d, nil
}

// check returns an error if derived values for isotope and organism
// are not available.
func (r *Result) check(isotope, organism string) error {
	if !r.calculated {
		return ErrNotCalculated
	}
	if !r.isotopes.Contains(isotope) {
		return fmt.Errorf("%w: isotope %s", ErrUnknownKey, isotope)
	}
	if !r.organisms.Contains(organism) {
		return fmt.Errorf("%w: organism %s", ErrUnknownKey, organism)
	}
	return r.pairErr(isotope, organism)
}

// pairErr returns the problem, if any, that prevents calculation for
// isotope and organism.
func (r *Result) pairErr(isotope, organism string) error {
	if err, ok := r.isotopeErrs[isotope]; ok {
		return err
	}
	if err, ok := r.organismErrs[organism]; ok {
		return err
	}
	if err, ok := r.pairErrs[[2]string{isotope, organism}]; ok {
		return err
	}
	return nil
}

func derived(m map[string]map[string]float64, isotope, organism string) (float64, error) {
	v, ok := m[isotope][organism]
	if !ok {
		return 0, fmt.Errorf("%w: no value for %s in %s", ErrMissingReferenceData, isotope, organism)
	}
	return v, nil
}

// InternalCoefficient returns the radiation-weighted internal dose
// conversion coefficient [(Gy/yr)/(Bq/kg)].
func (r *Result) InternalCoefficient(isotope, organism string) (float64, error) {
	if err := r.check(isotope, organism); err != nil {
		return 0, err
	}
	return derived(r.internalCoefficients, isotope, organism)
}

// ExternalCoefficient returns the radiation-weighted external dose
// conversion coefficient [(Gy/yr)/(Bq/kg)].
func (r *Result) ExternalCoefficient(isotope, organism string) (float64, error) {
	if err := r.check(isotope, organism); err != nil {
		return 0, err
	}
	return derived(r.externalCoefficients, isotope, organism)
}

// InternalDoseRate returns the internal dose rate [Gy/yr].
func (r *Result) InternalDoseRate(isotope, organism string) (float64, error) {
	if err := r.check(isotope, organism); err != nil {
		return 0, err
	}
	return derived(r.internalDoseRates, isotope, organism)
}

// ExternalDoseRate returns the external dose rates [Gy/yr] that an
// organism would receive if fully immersed in water and in sediment,
// in the order of Media.
func (r *Result) ExternalDoseRate(isotope, organism string) ([2]float64, error) {
	if err := r.check(isotope, organism); err != nil {
		return [2]float64{}, err
	}
	v, ok := r.externalDoseRates[isotope][organism]
	if !ok {
		return v, fmt.Errorf("%w: no external dose rate for %s in %s", ErrMissingReferenceData, isotope, organism)
	}
	return v, nil
}

// HabitatDoseRate returns the external dose rate [Gy/yr] received while
// occupying the named habitat.
func (r *Result) HabitatDoseRate(habitat, isotope, organism string) (float64, error) {
	if habitatIndex(habitat) < 0 {
		return 0, fmt.Errorf("%w: habitat %s", ErrUnknownKey, habitat)
	}
	if err := r.check(isotope, organism); err != nil {
		return 0, err
	}
	return derived(r.habitatDoseRates[habitat], isotope, organism)
}

// TotalDoseRate returns the internal dose rate plus the occupancy-weighted
// external dose rate [Gy/yr].
func (r *Result) TotalDoseRate(isotope, organism string) (float64, error) {
	if err := r.check(isotope, organism); err != nil {
		return 0, err
	}
	return derived(r.totalDoseRates, isotope, organism)
}
