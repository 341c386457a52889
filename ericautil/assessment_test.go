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

package ericautil

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spatialmodel/erica"
)

func TestLoadAssessment(t *testing.T) {
	a, err := LoadAssessment("testdata/assessment.toml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := a.Setting()
	if err != nil {
		t.Fatal(err)
	}
	if have, want := s.Isotopes(), []string{"Cs-137", "Sr-90"}; !reflect.DeepEqual(have, want) {
		t.Errorf("isotopes = %v, want %v", have, want)
	}
	if have, want := s.Organisms(), []string{"Benthic fish", "Insect larvae"}; !reflect.DeepEqual(have, want) {
		t.Errorf("organisms = %v, want %v", have, want)
	}
	if v := s.PercentageDryWeight(); v != 35 {
		t.Errorf("percentage dry weight = %g", v)
	}
	if v, ok := s.ActivityConcentration("Cs-137", "Benthic fish"); !ok || v != 3000 {
		t.Errorf("Cs-137 in fish = %g, %v", v, ok)
	}
	if _, ok := s.ActivityConcentration("Sr-90", erica.Water); ok {
		t.Error("Sr-90 water concentration should not be set")
	}
	if o, ok := s.OccupancyFactors("Benthic fish"); !ok || o != (erica.OccupancyFactors{0, 0.5, 0.5, 0}) {
		t.Errorf("occupancy = %v, %v", o, ok)
	}
	if w := s.RadiationWeightingFactors(); w != erica.DefaultWeightingFactors {
		t.Errorf("weighting factors = %v", w)
	}
}

func TestAssessmentSetting(t *testing.T) {
	const header = "Isotopes = [\"Cs-137\"]\nOrganisms = [\"Fish\"]\n"
	var tests = []struct {
		name, in string
		err      error
	}{
		{
			name: "ok",
			in: header + `RadiationWeightingFactors = [20.0, 1.0, 3.0]
[[Kd]]
Nuclide = "Cs"
Value = 100.0
[[CR]]
Nuclide = "Cs"
Organism = "Fish"
Value = 2.0
[[DCC]]
Isotope = "Cs-137"
Organism = "Fish"
Values = [0.0, 1.0, 0.0, 0.0, 1.0, 0.0]
`,
		},
		{
			name: "no isotopes",
			in:   "Organisms = [\"Fish\"]\n",
			err:  erica.ErrInvalidParameter,
		},
		{
			name: "no organisms",
			in:   "Isotopes = [\"Cs-137\"]\n",
			err:  erica.ErrInvalidParameter,
		},
		{
			name: "dry weight",
			in:   header + "PercentageDryWeight = 120.0\n",
			err:  erica.ErrInvalidParameter,
		},
		{
			name: "weighting factors",
			in:   header + "RadiationWeightingFactors = [1.0, 1.0]\n",
			err:  erica.ErrInvalidParameter,
		},
		{
			name: "DCC length",
			in:   header + "[[DCC]]\nIsotope = \"Cs-137\"\nOrganism = \"Fish\"\nValues = [1.0]\n",
			err:  erica.ErrInvalidParameter,
		},
		{
			name: "occupancy sum",
			in:   header + "[[Occupancy]]\nOrganism = \"Fish\"\nValues = [0.5, 0.5, 0.5, 0.0]\n",
			err:  erica.ErrInvalidParameter,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := ReadAssessment(strings.NewReader(test.in))
			if err != nil {
				t.Fatal(err)
			}
			s, err := a.Setting()
			if !errors.Is(err, test.err) {
				t.Fatalf("err = %v, want %v", err, test.err)
			}
			if test.err != nil {
				return
			}
			if w := s.RadiationWeightingFactors(); w != (erica.WeightingFactors{20, 1, 3}) {
				t.Errorf("weighting factors = %v", w)
			}
			if kd, ok := s.DistributionCoefficient("Cs"); !ok || kd != 100 {
				t.Errorf("Kd = %g, %v", kd, ok)
			}
			if cr, ok := s.ConcentrationRatio("Cs", "Fish"); !ok || cr != 2 {
				t.Errorf("CR = %g, %v", cr, ok)
			}
			if d, ok := s.DoseConversionCoefficients("Cs-137", "Fish"); !ok || d != (erica.DCC{0, 1, 0, 0, 1, 0}) {
				t.Errorf("DCC = %v, %v", d, ok)
			}
		})
	}
}

func TestReadAssessmentInvalid(t *testing.T) {
	if _, err := ReadAssessment(strings.NewReader("Isotopes = 1.0\n")); err == nil {
		t.Error("wrong type should fail")
	}
	if _, err := LoadAssessment("testdata/nonexistent.toml"); err == nil {
		t.Error("missing file should fail")
	}
}
