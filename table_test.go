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

import "fmt"

// testTable is a ReferenceTable backed by maps.
type testTable struct {
	kd  map[string]float64
	cr  map[string]map[string]float64
	dcc map[string]map[string]DCC
	occ map[string]OccupancyFactors
}

func (t testTable) DistributionCoefficient(nuclide string) (float64, error) {
	v, ok := t.kd[nuclide]
	if !ok {
		return 0, fmt.Errorf("%w: Kd %s", ErrMissingReferenceData, nuclide)
	}
	return v, nil
}

func (t testTable) ConcentrationRatio(nuclide, organism string) (float64, error) {
	v, ok := t.cr[nuclide][organism]
	if !ok {
		return 0, fmt.Errorf("%w: CR %s %s", ErrMissingReferenceData, nuclide, organism)
	}
	return v, nil
}

func (t testTable) DoseConversionCoefficients(isotope, organism string) (DCC, error) {
	v, ok := t.dcc[isotope][organism]
	if !ok {
		return v, fmt.Errorf("%w: DCC %s %s", ErrMissingReferenceData, isotope, organism)
	}
	return v, nil
}

func (t testTable) OccupancyFactors(organism string) (OccupancyFactors, error) {
	v, ok := t.occ[organism]
	if !ok {
		// Unwrapped; Result adds ErrMissingReferenceData.
		return v, fmt.Errorf("no occupancy factors for %s", organism)
	}
	return v, nil
}

func (t testTable) Isotopes() []string {
	var o []string
	for iso := range t.dcc {
		o = append(o, iso)
	}
	return o
}

func (t testTable) Organisms() []string {
	var o []string
	for org := range t.occ {
		o = append(o, org)
	}
	return o
}

// newTestTable returns a small table for Cs-137 and Sr-90 in two organisms.
func newTestTable() testTable {
	return testTable{
		kd: map[string]float64{"Cs": 1000, "Sr": 200},
		cr: map[string]map[string]float64{
			"Cs": {"Worm": 0.5, "Fish": 2},
			"Sr": {"Worm": 0.1, "Fish": 0.3},
		},
		dcc: map[string]map[string]DCC{
			"Cs-137": {"Worm": {0, 0.1, 0, 0, 0.2, 0}, "Fish": {0, 0.3, 0, 0, 0.1, 0}},
			"Sr-90":  {"Worm": {0, 0.2, 0.01, 0, 0.05, 0}, "Fish": {0, 0.2, 0.02, 0, 0.01, 0}},
		},
		occ: map[string]OccupancyFactors{
			"Worm": {0, 0, 0, 1},
			"Fish": {0, 1, 0, 0},
		},
	}
}
