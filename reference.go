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
	"errors"
	"fmt"
)

// ReferenceTable specifies the methods that a table of default
// radioecological parameters must have to fill gaps in a Setting.
// Implementations must be safe for concurrent reads.
//
// Methods return an error wrapping ErrMissingReferenceData when the
// table has no entry for the requested key.
type ReferenceTable interface {
	// DistributionCoefficient returns the sediment/water
	// distribution coefficient (Kd) [L/kg] for a nuclide.
	DistributionCoefficient(nuclide string) (float64, error)

	// ConcentrationRatio returns the organism/water concentration
	// ratio for a nuclide.
	ConcentrationRatio(nuclide, organism string) (float64, error)

	// DoseConversionCoefficients returns the dose conversion
	// coefficients for an isotope and organism.
	DoseConversionCoefficients(isotope, organism string) (DCC, error)

	// OccupancyFactors returns the default habitat occupancy factors
	// for an organism.
	OccupancyFactors(organism string) (OccupancyFactors, error)

	// Isotopes and Organisms list the names that the table has data for.
	Isotopes() []string
	Organisms() []string
}

// missingReference makes sure that err wraps ErrMissingReferenceData,
// so that failures from any table implementation can be identified.
func missingReference(err error) error {
	if errors.Is(err, ErrMissingReferenceData) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMissingReferenceData, err)
}

// noTable is used in place of a nil ReferenceTable.
type noTable struct{}

func (noTable) DistributionCoefficient(nuclide string) (float64, error) {
	return 0, fmt.Errorf("%w: no reference table for Kd of %s", ErrMissingReferenceData, nuclide)
}

func (noTable) ConcentrationRatio(nuclide, organism string) (float64, error) {
	return 0, fmt.Errorf("%w: no reference table for CR of %s in %s", ErrMissingReferenceData, nuclide, organism)
}

func (noTable) DoseConversionCoefficients(isotope, organism string) (DCC, error) {
	return DCC{}, fmt.Errorf("%w: no reference table for DCC of %s in %s", ErrMissingReferenceData, isotope, organism)
}

func (noTable) OccupancyFactors(organism string) (OccupancyFactors, error) {
	return OccupancyFactors{}, fmt.Errorf("%w: no reference table for occupancy of %s", ErrMissingReferenceData, organism)
}

func (noTable) Isotopes() []string  { return nil }
func (noTable) Organisms() []string { return nil }
