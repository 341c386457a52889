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

	"github.com/gonum/floats"
)

// forEachPair calls f for every isotope/organism pair that gap filling
// succeeded for, in assessment order.
func (r *Result) forEachPair(f func(iso, org string) error) error {
	for _, iso := range r.isotopes.order {
		for _, org := range r.organisms.order {
			if r.pairErr(iso, org) != nil {
				continue
			}
			if err := f(iso, org); err != nil {
				r.failPair(iso, org, err)
			}
		}
	}
	return nil
}

func set(m map[string]map[string]float64, iso, org string, v float64) {
	mm, ok := m[iso]
	if !ok {
		mm = make(map[string]float64)
		m[iso] = mm
	}
	mm[org] = v
}

// coefficients weights the dose conversion coefficients by the radiation
// weighting factors and sums them into internal and external
// coefficients.
func coefficients(r *Result) error {
	r.internalCoefficients = make(map[string]map[string]float64)
	r.externalCoefficients = make(map[string]map[string]float64)
	w := r.radiationWeightingFactors
	return r.forEachPair(func(iso, org string) error {
		d := r.doseConversionCoefficients[iso][org]
		var internal, external float64
		for i, v := range d {
			if i < len(w) {
				internal += v * w[i%len(w)]
			} else {
				external += v * w[i%len(w)]
			}
		}
		set(r.internalCoefficients, iso, org, internal)
		set(r.externalCoefficients, iso, org, external)
		return nil
	})
}

// internalDoseRates multiplies organism activity concentrations by
// internal coefficients.
func internalDoseRates(r *Result) error {
	r.internalDoseRates = make(map[string]map[string]float64)
	return r.forEachPair(func(iso, org string) error {
		a, ok := r.activityConcentrations[iso][org]
		if !ok {
			return fmt.Errorf("%w: no activity concentration in organism", ErrMissingReferenceData)
		}
		set(r.internalDoseRates, iso, org, a*r.internalCoefficients[iso][org])
		return nil
	})
}

// externalDoseRates calculates external dose rates for full immersion in
// each medium and then weights them for each habitat.
func externalDoseRates(r *Result) error {
	r.externalDoseRates = make(map[string]map[string][2]float64)
	r.habitatDoseRates = make(map[string]map[string]map[string]float64, len(Habitats))
	for _, h := range Habitats {
		r.habitatDoseRates[h.Name] = make(map[string]map[string]float64)
	}
	return r.forEachPair(func(iso, org string) error {
		c := r.externalCoefficients[iso][org]
		act := r.activityConcentrations[iso]
		ext := [2]float64{act[Water] * c, act[Sediment] * c}
		m, ok := r.externalDoseRates[iso]
		if !ok {
			m = make(map[string][2]float64)
			r.externalDoseRates[iso] = m
		}
		m[org] = ext
		for _, h := range Habitats {
			set(r.habitatDoseRates[h.Name], iso, org, ext[0]*h.Water+ext[1]*h.Sediment)
		}
		return nil
	})
}

// totalDoseRates adds the occupancy-weighted habitat dose rates to the
// internal dose rates.
func totalDoseRates(r *Result) error {
	r.totalDoseRates = make(map[string]map[string]float64)
	return r.forEachPair(func(iso, org string) error {
		occ := r.occupancyFactors[org]
		habitat := make([]float64, len(Habitats))
		for i, h := range Habitats {
			habitat[i] = r.habitatDoseRates[h.Name][iso][org]
		}
		total := r.internalDoseRates[iso][org] + floats.Dot(habitat, occ[:])
		if !finite(total) {
			return fmt.Errorf("%w: total dose rate is %g; check activity concentrations", ErrInvalidParameter, total)
		}
		set(r.totalDoseRates, iso, org, total)
		return nil
	})
}
