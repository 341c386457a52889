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
	"math"
)

// DCC holds dose conversion coefficients [(Gy/yr)/(Bq/kg)] for one
// isotope and organism, in the order: internal alpha, internal
// beta/gamma, internal low beta, external alpha, external beta/gamma,
// external low beta.
type DCC [6]float64

// OccupancyFactors holds the fraction of time an organism spends in
// each of the Habitats, in the same order.
type OccupancyFactors [4]float64

// WeightingFactors holds radiation weighting factors for alpha,
// beta/gamma and low beta radiation.
type WeightingFactors [3]float64

// DefaultWeightingFactors are the radiation weighting factors used
// unless others are specified.
var DefaultWeightingFactors = WeightingFactors{10, 1, 3}

// occupancyTolerance allows for rounding in occupancy factors that
// are meant to sum to exactly one.
const occupancyTolerance = 1e-9

// NewDCC converts a slice of dose conversion coefficients to a DCC,
// returning an error if it is the wrong length or contains invalid
// values.
func NewDCC(v []float64) (DCC, error) {
	var d DCC
	if len(v) != len(d) {
		return d, fmt.Errorf("%w: %d dose conversion coefficients, want %d", ErrInvalidParameter, len(v), len(d))
	}
	copy(d[:], v)
	return d, d.check()
}

func (d DCC) check() error {
	for i, v := range d {
		if !(v >= 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: dose conversion coefficient %d = %g", ErrInvalidParameter, i, v)
		}
	}
	return nil
}

// NewOccupancyFactors converts a slice of occupancy factors to
// OccupancyFactors, returning an error if it is the wrong length or
// contains invalid values.
func NewOccupancyFactors(v []float64) (OccupancyFactors, error) {
	var o OccupancyFactors
	if len(v) != len(o) {
		return o, fmt.Errorf("%w: %d occupancy factors, want %d", ErrInvalidParameter, len(v), len(o))
	}
	copy(o[:], v)
	return o, o.check()
}

func (o OccupancyFactors) check() error {
	var sum float64
	for i, v := range o {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("%w: occupancy factor for habitat %s = %g, must be in [0,1]",
				ErrInvalidParameter, Habitats[i].Name, v)
		}
		sum += v
	}
	if sum > 1+occupancyTolerance {
		return fmt.Errorf("%w: occupancy factors sum to %g, must be <= 1", ErrInvalidParameter, sum)
	}
	return nil
}

// NewWeightingFactors converts a slice of radiation weighting factors
// to WeightingFactors, returning an error if it is the wrong length or
// contains negative values.
func NewWeightingFactors(v []float64) (WeightingFactors, error) {
	var w WeightingFactors
	if len(v) != len(w) {
		return w, fmt.Errorf("%w: %d radiation weighting factors, want %d", ErrInvalidParameter, len(v), len(w))
	}
	copy(w[:], v)
	return w, w.check()
}

func (w WeightingFactors) check() error {
	for i, v := range w {
		if !(v >= 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: radiation weighting factor %d = %g", ErrInvalidParameter, i, v)
		}
	}
	return nil
}
