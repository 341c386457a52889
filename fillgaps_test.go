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
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/sirupsen/logrus"
)

const tolerance = 1e-12

func similar(a, b float64) bool {
	return floats.EqualWithinAbsOrRel(a, b, tolerance, tolerance)
}

func TestFillGapsMediaRoundTrip(t *testing.T) {
	for _, kd := range []float64{0.1, 1, 1000, 4.8e4} {
		s := NewSetting()
		s.AddIsotope("Cs-137")
		s.SetDistributionCoefficient("Cs", kd)
		s.SetActivityConcentration("Cs-137", Sediment, 5000)
		r, _ := quietResult(s, newTestTable())
		if err := r.Calculate(); err != nil {
			t.Fatal(err)
		}
		water, err := r.ActivityConcentration("Cs-137", Water)
		if err != nil {
			t.Fatal(err)
		}
		if !similar(water, 5000/kd) {
			t.Errorf("Kd=%g: water = %g, want %g", kd, water, 5000/kd)
		}

		s2 := NewSetting()
		s2.AddIsotope("Cs-137")
		s2.SetDistributionCoefficient("Cs", kd)
		s2.SetActivityConcentration("Cs-137", Water, water)
		r2, _ := quietResult(s2, newTestTable())
		if err := r2.Calculate(); err != nil {
			t.Fatal(err)
		}
		sed, _ := r2.ActivityConcentration("Cs-137", Sediment)
		if !similar(sed, 5000) {
			t.Errorf("Kd=%g: round trip sediment = %g, want 5000", kd, sed)
		}
	}
}

func TestFillGapsKdFromTable(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Sr-90")
	s.SetActivityConcentration("Sr-90", Water, 3)
	r, _ := quietResult(s, newTestTable())
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if kd, err := r.DistributionCoefficient("Sr"); err != nil || kd != 200 {
		t.Errorf("Kd = %g, %v", kd, err)
	}
	if sed, _ := r.ActivityConcentration("Sr-90", Sediment); sed != 600 {
		t.Errorf("sediment = %g, want 600", sed)
	}
}

func TestFillGapsBothMediaUntouched(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.SetDistributionCoefficient("Cs", 1000)
	s.SetActivityConcentration("Cs-137", Water, 1)
	s.SetActivityConcentration("Cs-137", Sediment, 7)
	r, _ := quietResult(s, newTestTable())
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	w, _ := r.ActivityConcentration("Cs-137", Water)
	sed, _ := r.ActivityConcentration("Cs-137", Sediment)
	if w != 1 || sed != 7 {
		t.Errorf("water = %g, sediment = %g", w, sed)
	}
}

func TestFillGapsExplicitValuesWin(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 10)
	s.SetActivityConcentration("Cs-137", "Worm", 42)
	s.SetConcentrationRatio("Cs", "Worm", 9)
	s.SetDistributionCoefficient("Cs", 3)
	user := DCC{0, 1, 0, 0, 1, 0}
	if err := s.SetDoseConversionCoefficients("Cs-137", "Worm", user); err != nil {
		t.Fatal(err)
	}
	occ := OccupancyFactors{0.25, 0.25, 0.25, 0.25}
	if err := s.SetOccupancyFactors("Worm", occ); err != nil {
		t.Fatal(err)
	}
	r, _ := quietResult(s, newTestTable())
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.ActivityConcentration("Cs-137", "Worm"); v != 42 {
		t.Errorf("worm activity = %g, want 42", v)
	}
	if v, _ := r.ConcentrationRatio("Cs", "Worm"); v != 9 {
		t.Errorf("CR = %g, want 9", v)
	}
	if v, _ := r.DistributionCoefficient("Cs"); v != 3 {
		t.Errorf("Kd = %g, want 3", v)
	}
	if v, _ := r.ActivityConcentration("Cs-137", Sediment); v != 30 {
		t.Errorf("sediment = %g, want 30", v)
	}
	if d, _ := r.DoseConversionCoefficients("Cs-137", "Worm"); d != user {
		t.Errorf("DCC = %v", d)
	}
	if o, _ := r.OccupancyFactors("Worm"); o != occ {
		t.Errorf("occupancy = %v", o)
	}
}

func TestFillGapsOrganismFromTable(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Fish")
	s.SetActivityConcentration("Cs-137", Water, 10)
	r, _ := quietResult(s, newTestTable())
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.ActivityConcentration("Cs-137", "Fish"); v != 20 {
		t.Errorf("fish activity = %g, want 20", v)
	}
	if d, _ := r.DoseConversionCoefficients("Cs-137", "Fish"); d != (DCC{0, 0.3, 0, 0, 0.1, 0}) {
		t.Errorf("DCC = %v", d)
	}
	if o, _ := r.OccupancyFactors("Fish"); o != (OccupancyFactors{0, 1, 0, 0}) {
		t.Errorf("occupancy = %v", o)
	}
}

func TestFillGapsMissingIsotopeData(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Sr-90")
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 10)
	r, hook := quietResult(s, newTestTable())
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	warnings := r.Warnings()
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrMissingIsotopeData) {
		t.Fatalf("warnings = %v", warnings)
	}
	if len(r.Failures()) != 0 {
		t.Errorf("failures = %v", r.Failures())
	}
	if _, err := r.TotalDoseRate("Sr-90", "Worm"); !errors.Is(err, ErrMissingIsotopeData) {
		t.Errorf("skipped isotope: %v", err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Worm"); err != nil {
		t.Errorf("other isotope: %v", err)
	}
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.WarnLevel || e.Data["isotope"] != "Sr-90" {
		t.Errorf("log entry = %+v", e)
	}
}

func TestFillGapsMissingReferenceData(t *testing.T) {
	table := newTestTable()
	delete(table.dcc["Cs-137"], "Fish")
	delete(table.cr["Sr"], "Worm")

	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddIsotope("Sr-90")
	s.AddOrganism("Worm")
	s.AddOrganism("Fish")
	s.AddOrganism("Bird")
	s.SetActivityConcentration("Cs-137", Water, 10)
	s.SetActivityConcentration("Sr-90", Water, 2)
	if err := s.SetOccupancyFactors("Bird", OccupancyFactors{1, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}

	failed := map[[2]string]bool{
		{"Cs-137", "Fish"}: true, // no DCC
		{"Sr-90", "Worm"}:  true, // no CR
		{"Cs-137", "Bird"}: true, // nothing for birds
		{"Sr-90", "Bird"}:  true,
	}
	for _, iso := range r.Isotopes() {
		for _, org := range r.Organisms() {
			_, err := r.TotalDoseRate(iso, org)
			if failed[[2]string{iso, org}] {
				var pe *PairError
				if !errors.Is(err, ErrMissingReferenceData) || !errors.As(err, &pe) {
					t.Errorf("%s %s: err = %v", iso, org, err)
				} else if pe.Isotope != iso || pe.Organism != org {
					t.Errorf("%s %s: pair error for %s %s", iso, org, pe.Isotope, pe.Organism)
				}
			} else if err != nil {
				t.Errorf("%s %s: %v", iso, org, err)
			}
		}
	}
	if len(r.Failures()) != len(failed) {
		t.Errorf("%d failures, want %d: %v", len(r.Failures()), len(failed), r.Failures())
	}
}

func TestFillGapsCRNotNeeded(t *testing.T) {
	table := newTestTable()
	delete(table.cr["Cs"], "Worm")
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 10)
	s.SetActivityConcentration("Cs-137", "Worm", 4)
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Worm"); err != nil {
		t.Errorf("measured organism activity should not need a CR: %v", err)
	}
}

func TestFillGapsOccupancyMissing(t *testing.T) {
	table := newTestTable()
	delete(table.occ, "Worm")
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddIsotope("Sr-90")
	s.AddOrganism("Worm")
	s.AddOrganism("Fish")
	s.SetActivityConcentration("Cs-137", Water, 10)
	s.SetActivityConcentration("Sr-90", Water, 10)
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	for _, iso := range r.Isotopes() {
		if _, err := r.TotalDoseRate(iso, "Worm"); !errors.Is(err, ErrMissingReferenceData) {
			t.Errorf("%s Worm: %v", iso, err)
		}
		if _, err := r.TotalDoseRate(iso, "Fish"); err != nil {
			t.Errorf("%s Fish: %v", iso, err)
		}
	}
	if len(r.Failures()) != 1 {
		t.Errorf("failures = %v", r.Failures())
	}
}

func TestFillGapsMediaFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Setting)
	}{
		{
			name: "zero Kd",
			setup: func(s *Setting) {
				s.SetDistributionCoefficient("Cs", 0)
				s.SetActivityConcentration("Cs-137", Sediment, 100)
			},
		},
		{
			name: "no Kd",
			setup: func(s *Setting) {
				s.SetActivityConcentration("Pu-239", Sediment, 100)
			},
		},
		{
			name: "negative Kd",
			setup: func(s *Setting) {
				s.SetDistributionCoefficient("Cs", -1000)
				s.SetActivityConcentration("Cs-137", Water, 10)
			},
		},
		{
			name: "infinite Kd",
			setup: func(s *Setting) {
				s.SetDistributionCoefficient("Cs", math.Inf(1))
				s.SetActivityConcentration("Cs-137", Water, 10)
			},
		},
		{
			name: "no media",
			setup: func(s *Setting) {
				s.SetActivityConcentration("Cs-137", "Worm", 100)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSetting()
			s.AddIsotope("Cs-137")
			s.AddIsotope("Pu-239")
			s.AddIsotope("Sr-90")
			s.AddOrganism("Worm")
			s.SetActivityConcentration("Sr-90", Water, 1)
			test.setup(s)
			r, _ := quietResult(s, newTestTable())
			if err := r.Calculate(); err != nil {
				t.Fatal(err)
			}
			var failed int
			for _, iso := range []string{"Cs-137", "Pu-239"} {
				_, err := r.TotalDoseRate(iso, "Worm")
				if errors.Is(err, ErrMissingReferenceData) {
					failed++
				}
			}
			if failed != 1 {
				t.Errorf("%d isotopes failed with missing reference data, want 1", failed)
			}
			if len(r.Failures()) != 1 {
				t.Errorf("failures = %v", r.Failures())
			}
			if v, err := r.TotalDoseRate("Sr-90", "Worm"); err != nil || !(v > 0) {
				t.Errorf("Sr-90: %g, %v", v, err)
			}
			if _, err := r.ActivityConcentration("Cs-137", Water); err == nil && test.name == "zero Kd" {
				t.Error("water activity derived with a zero Kd")
			}
		})
	}
}

func TestFillGapsNegativeTableKd(t *testing.T) {
	table := newTestTable()
	table.kd["Cs"] = -1000
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 10)
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if v, err := r.TotalDoseRate("Cs-137", "Worm"); !errors.Is(err, ErrMissingReferenceData) {
		t.Errorf("total = %g, err = %v", v, err)
	}
	if _, err := r.ActivityConcentration("Cs-137", Sediment); err == nil {
		t.Error("sediment activity derived with a negative Kd")
	}
	if len(r.Failures()) != 1 {
		t.Errorf("failures = %v", r.Failures())
	}
}

func TestFillGapsNegativeCR(t *testing.T) {
	table := newTestTable()
	table.cr["Cs"]["Worm"] = -0.5
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.AddOrganism("Fish")
	s.SetActivityConcentration("Cs-137", Water, 10)
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Worm"); !errors.Is(err, ErrMissingReferenceData) {
		t.Errorf("Worm: %v", err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Fish"); err != nil {
		t.Errorf("Fish: %v", err)
	}
}

func TestFillGapsKdNotNeeded(t *testing.T) {
	table := newTestTable()
	delete(table.kd, "Cs")
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 1)
	s.SetActivityConcentration("Cs-137", Sediment, 7)
	r, _ := quietResult(s, table)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Worm"); err != nil {
		t.Errorf("measured media should not need a Kd: %v", err)
	}
	if len(r.Failures()) != 0 {
		t.Errorf("failures = %v", r.Failures())
	}
}

func TestFillGapsNonFiniteActivity(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := NewSetting()
		s.AddIsotope("Cs-137")
		s.AddIsotope("Sr-90")
		s.AddOrganism("Worm")
		s.SetActivityConcentration("Cs-137", Water, v)
		s.SetActivityConcentration("Sr-90", Water, 1)
		r, _ := quietResult(s, newTestTable())
		if err := r.Calculate(); err != nil {
			t.Fatal(err)
		}
		if total, err := r.TotalDoseRate("Cs-137", "Worm"); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("activity %g: total = %g, err = %v", v, total, err)
		}
		if _, err := r.TotalDoseRate("Sr-90", "Worm"); err != nil {
			t.Errorf("activity %g: Sr-90: %v", v, err)
		}
		if len(r.Failures()) != 1 {
			t.Errorf("activity %g: failures = %v", v, r.Failures())
		}
	}
}

func TestFillGapsNilTable(t *testing.T) {
	s := NewSetting()
	s.AddIsotope("Cs-137")
	s.AddOrganism("Worm")
	s.SetActivityConcentration("Cs-137", Water, 10)
	r, _ := quietResult(s, nil)
	if err := r.Calculate(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.TotalDoseRate("Cs-137", "Worm"); !errors.Is(err, ErrMissingReferenceData) {
		t.Errorf("err = %v", err)
	}
}
