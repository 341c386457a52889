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

package reference

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/erica"
)

// tomlTable is the layout of a reference table in TOML format:
//
//	[[Kd]]
//	Nuclide = "Cs"
//	Value = 9500.0
//
//	[[CR]]
//	Nuclide = "Cs"
//	Organism = "Benthic fish"
//	Value = 2500.0
//
//	[[DCC]]
//	Isotope = "Cs-137"
//	Organism = "Benthic fish"
//	Values = [0.0, 2.2e-6, 0.0, 0.0, 2.5e-6, 0.0]
//
//	[[Occupancy]]
//	Organism = "Benthic fish"
//	Values = [0.0, 0.0, 1.0, 0.0]
type tomlTable struct {
	Kd []struct {
		Nuclide string
		Value   float64
	}
	CR []struct {
		Nuclide, Organism string
		Value             float64
	}
	DCC []struct {
		Isotope, Organism string
		Values            []float64
	}
	Occupancy []struct {
		Organism string
		Values   []float64
	}
}

// ReadTOML reads a reference table in TOML format.
func ReadTOML(r io.Reader) (*Table, error) {
	var tt tomlTable
	if _, err := toml.DecodeReader(r, &tt); err != nil {
		return nil, fmt.Errorf("reference: decoding TOML: %v", err)
	}
	t := NewTable()
	for _, kd := range tt.Kd {
		if err := checkRatio("Kd", kd.Value); err != nil {
			return nil, fmt.Errorf("reference: %s: %w", kd.Nuclide, err)
		}
		t.SetDistributionCoefficient(kd.Nuclide, kd.Value)
	}
	for _, cr := range tt.CR {
		if err := checkRatio("CR", cr.Value); err != nil {
			return nil, fmt.Errorf("reference: %s in %s: %w", cr.Nuclide, cr.Organism, err)
		}
		t.SetConcentrationRatio(cr.Nuclide, cr.Organism, cr.Value)
	}
	for _, d := range tt.DCC {
		dcc, err := erica.NewDCC(d.Values)
		if err != nil {
			return nil, fmt.Errorf("reference: %s in %s: %w", d.Isotope, d.Organism, err)
		}
		t.SetDoseConversionCoefficients(d.Isotope, d.Organism, dcc)
	}
	for _, o := range tt.Occupancy {
		occ, err := erica.NewOccupancyFactors(o.Values)
		if err != nil {
			return nil, fmt.Errorf("reference: occupancy for %s: %w", o.Organism, err)
		}
		t.SetOccupancyFactors(o.Organism, occ)
	}
	return t, nil
}
