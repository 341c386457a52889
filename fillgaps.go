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

// stage is a step in the dose rate calculation.
type stage func(r *Result) error

// pipeline lists the calculation stages in the order they must run;
// each one uses the output of the ones before it.
var pipeline = []stage{
	fillGaps,
	coefficients,
	internalDoseRates,
	externalDoseRates,
	totalDoseRates,
}

// fillGaps fills in missing media and organism activity concentrations,
// concentration ratios, dose conversion coefficients and occupancy
// factors. User-supplied values are never replaced.
func fillGaps(r *Result) error {
	for _, iso := range r.isotopes.order {
		act, ok := r.activityConcentrations[iso]
		if !ok {
			r.warn(iso, &PairError{Isotope: iso, Err: ErrMissingIsotopeData})
			continue
		}
		nuclide := Nuclide(iso)
		if err := r.fillMedia(nuclide, act); err != nil {
			r.failIsotope(iso, err)
			continue
		}
		if _, ok := r.concentrationRatios[nuclide]; !ok {
			r.concentrationRatios[nuclide] = make(map[string]float64)
		}
		if _, ok := r.doseConversionCoefficients[iso]; !ok {
			r.doseConversionCoefficients[iso] = make(map[string]DCC)
		}
		for _, org := range r.organisms.order {
			if err := r.fillOrganism(iso, nuclide, org, act); err != nil {
				r.failPair(iso, org, err)
			}
		}
	}
	for _, org := range r.organisms.order {
		if _, ok := r.occupancyFactors[org]; ok {
			continue
		}
		o, err := r.table.OccupancyFactors(org)
		if err != nil {
			r.failOrganism(org, fmt.Errorf("occupancy factors: %w", missingReference(err)))
			continue
		}
		r.occupancyFactors[org] = o
	}
	return nil
}

// fillMedia derives whichever of the water and sediment activity
// concentrations is missing from the other one.
func (r *Result) fillMedia(nuclide string, act map[string]float64) error {
	water, hasWater := act[Water]
	sed, hasSed := act[Sediment]

	kd, ok := r.distributionCoefficients[nuclide]
	var kdErr error
	if !ok {
		kd, kdErr = r.table.DistributionCoefficient(nuclide)
		if kdErr == nil {
			r.distributionCoefficients[nuclide] = kd
		}
	}

	switch {
	case hasWater && hasSed:
		return nil
	case !hasWater && !hasSed:
		return fmt.Errorf("%w: no %s or %s activity concentration", ErrMissingReferenceData, Water, Sediment)
	case kdErr != nil:
		return fmt.Errorf("distribution coefficient: %w", missingReference(kdErr))
	case !hasWater:
		if !(kd > 0) || !finite(kd) {
			return fmt.Errorf("%w: distribution coefficient for %s is %g; can't calculate %s activity concentration",
				ErrMissingReferenceData, nuclide, kd, Water)
		}
		act[Water] = sed / kd
	default:
		if !(kd >= 0) || !finite(kd) {
			return fmt.Errorf("%w: distribution coefficient for %s is %g; can't calculate %s activity concentration",
				ErrMissingReferenceData, nuclide, kd, Sediment)
		}
		act[Sediment] = water * kd
	}
	return nil
}

// fillOrganism fills in the concentration ratio, activity concentration
// and dose conversion coefficients for isotope in organism. The water
// activity concentration must already be known.
func (r *Result) fillOrganism(iso, nuclide, org string, act map[string]float64) error {
	crs := r.concentrationRatios[nuclide]
	cr, hasCR := crs[org]
	var crErr error
	if !hasCR {
		cr, crErr = r.table.ConcentrationRatio(nuclide, org)
		if crErr == nil {
			crs[org] = cr
			hasCR = true
		}
	}
	if _, ok := act[org]; !ok {
		if !hasCR {
			return fmt.Errorf("concentration ratio: %w", missingReference(crErr))
		}
		if !(cr >= 0) || !finite(cr) {
			return fmt.Errorf("%w: concentration ratio for %s in %s is %g; can't calculate activity concentration",
				ErrMissingReferenceData, nuclide, org, cr)
		}
		act[org] = act[Water] * cr
	}

	dccs := r.doseConversionCoefficients[iso]
	if _, ok := dccs[org]; !ok {
		d, err := r.table.DoseConversionCoefficients(iso, org)
		if err != nil {
			return fmt.Errorf("dose conversion coefficients: %w", missingReference(err))
		}
		dccs[org] = d
	}
	return nil
}

func (r *Result) warn(iso string, err error) {
	r.isotopeErrs[iso] = err
	r.warnings = append(r.warnings, err)
	r.Log.WithFields(logrus.Fields{"isotope": iso}).Warn(err)
}

func (r *Result) failIsotope(iso string, err error) {
	pe := &PairError{Isotope: iso, Err: err}
	r.isotopeErrs[iso] = pe
	r.failures = append(r.failures, pe)
	r.Log.WithFields(logrus.Fields{"isotope": iso}).Error(err)
}

func (r *Result) failOrganism(org string, err error) {
	pe := &PairError{Organism: org, Err: err}
	r.organismErrs[org] = pe
	r.failures = append(r.failures, pe)
	r.Log.WithFields(logrus.Fields{"organism": org}).Error(err)
}

func (r *Result) failPair(iso, org string, err error) {
	pe := &PairError{Isotope: iso, Organism: org, Err: err}
	r.pairErrs[[2]string{iso, org}] = pe
	r.failures = append(r.failures, pe)
	r.Log.WithFields(logrus.Fields{"isotope": iso, "organism": org}).Error(err)
}
