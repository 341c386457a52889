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

// Package reference holds default radioecological parameters used to
// fill gaps in an assessment, and reads them from TOML and Microsoft
// Excel files.
package reference

import (
	"fmt"
	"math"

	"github.com/spatialmodel/erica"
)

// Table is an in-memory erica.ReferenceTable. Once it has been filled,
// a Table may be read concurrently; the setters must not be called while
// it is being read.
type Table struct {
	kd  map[string]float64
	cr  map[string]map[string]float64
	dcc map[string]map[string]erica.DCC
	occ map[string]erica.OccupancyFactors

	isotopes, organisms *erica.OrderedSet
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		kd:        make(map[string]float64),
		cr:        make(map[string]map[string]float64),
		dcc:       make(map[string]map[string]erica.DCC),
		occ:       make(map[string]erica.OccupancyFactors),
		isotopes:  erica.NewOrderedSet(),
		organisms: erica.NewOrderedSet(),
	}
}

// SetDistributionCoefficient sets the Kd [L/kg] for nuclide.
func (t *Table) SetDistributionCoefficient(nuclide string, kd float64) {
	t.kd[nuclide] = kd
}

// SetConcentrationRatio sets the concentration ratio for nuclide in organism.
func (t *Table) SetConcentrationRatio(nuclide, organism string, cr float64) {
	m, ok := t.cr[nuclide]
	if !ok {
		m = make(map[string]float64)
		t.cr[nuclide] = m
	}
	m[organism] = cr
	t.organisms.Add(organism)
}

// SetDoseConversionCoefficients sets the dose conversion coefficients
// for isotope in organism.
func (t *Table) SetDoseConversionCoefficients(isotope, organism string, d erica.DCC) {
	m, ok := t.dcc[isotope]
	if !ok {
		m = make(map[string]erica.DCC)
		t.dcc[isotope] = m
	}
	m[organism] = d
	t.isotopes.Add(isotope)
	t.organisms.Add(organism)
}

// SetOccupancyFactors sets the default occupancy factors for organism.
func (t *Table) SetOccupancyFactors(organism string, o erica.OccupancyFactors) {
	t.occ[organism] = o
	t.organisms.Add(organism)
}

// DistributionCoefficient implements erica.ReferenceTable.
func (t *Table) DistributionCoefficient(nuclide string) (float64, error) {
	v, ok := t.kd[nuclide]
	if !ok {
		return 0, fmt.Errorf("reference: %w: no distribution coefficient for %s",
			erica.ErrMissingReferenceData, nuclide)
	}
	return v, nil
}

// ConcentrationRatio implements erica.ReferenceTable.
func (t *Table) ConcentrationRatio(nuclide, organism string) (float64, error) {
	v, ok := t.cr[nuclide][organism]
	if !ok {
		return 0, fmt.Errorf("reference: %w: no concentration ratio for %s in %s",
			erica.ErrMissingReferenceData, nuclide, organism)
	}
	return v, nil
}

// DoseConversionCoefficients implements erica.ReferenceTable.
func (t *Table) DoseConversionCoefficients(isotope, organism string) (erica.DCC, error) {
	d, ok := t.dcc[isotope][organism]
	if !ok {
		return d, fmt.Errorf("reference: %w: no dose conversion coefficients for %s in %s",
			erica.ErrMissingReferenceData, isotope, organism)
	}
	return d, nil
}

// OccupancyFactors implements erica.ReferenceTable.
func (t *Table) OccupancyFactors(organism string) (erica.OccupancyFactors, error) {
	o, ok := t.occ[organism]
	if !ok {
		return o, fmt.Errorf("reference: %w: no occupancy factors for %s",
			erica.ErrMissingReferenceData, organism)
	}
	return o, nil
}

// Isotopes returns the isotopes that the table has dose conversion
// coefficients for, in the order they were added.
func (t *Table) Isotopes() []string { return t.isotopes.Slice() }

// Organisms returns the organisms that the table has any data for, in
// the order they were added.
func (t *Table) Organisms() []string { return t.organisms.Slice() }

// checkRatio makes sure a Kd or concentration ratio is usable for
// scaling activity concentrations.
func checkRatio(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %g, must be finite and non-negative", erica.ErrInvalidParameter, name, v)
	}
	return nil
}
