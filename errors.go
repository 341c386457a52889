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

var (
	// ErrMissingIsotopeData indicates that no activity concentration at
	// all was given for an isotope. The isotope is left out of the
	// results but the calculation continues.
	ErrMissingIsotopeData = errors.New("erica: no activity concentration data")

	// ErrMissingReferenceData indicates that a value needed to fill a
	// gap could not be found or derived.
	ErrMissingReferenceData = errors.New("erica: missing reference data")

	// ErrInvalidParameter indicates a parameter of the wrong length
	// or outside of its allowed range.
	ErrInvalidParameter = errors.New("erica: invalid parameter")

	// ErrUnknownKey is returned by Result queries for an isotope,
	// organism, medium or habitat that is not part of the assessment.
	ErrUnknownKey = errors.New("erica: unknown key")

	// ErrNotCalculated is returned when derived values are requested
	// before Calculate has been run.
	ErrNotCalculated = errors.New("erica: result has not been calculated")

	// ErrAlreadyCalculated is returned by a second call to Calculate.
	ErrAlreadyCalculated = errors.New("erica: result has already been calculated")
)

// PairError records a failure for a single isotope/organism pair.
// Organism is empty when the failure covers every organism for the
// isotope, and Isotope is empty when it covers every isotope for the
// organism.
type PairError struct {
	Isotope, Organism string
	Err               error
}

func (e *PairError) Error() string {
	switch {
	case e.Organism == "":
		return fmt.Sprintf("isotope %s: %v", e.Isotope, e.Err)
	case e.Isotope == "":
		return fmt.Sprintf("organism %s: %v", e.Organism, e.Err)
	default:
		return fmt.Sprintf("isotope %s, organism %s: %v", e.Isotope, e.Organism, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *PairError) Unwrap() error { return e.Err }
