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

// Package risk compares absorbed dose rates with screening benchmarks.
package risk

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
	"github.com/gonum/floats"
)

const (
	secondsPerYear = 365.25 * 24 * 3600
	secondsPerHour = 3600
)

// DoseRate is the dimension of an absorbed dose rate: Gy/s, or m²/s³.
var DoseRate = unit.Dimensions{
	unit.LengthDim: 2,
	unit.TimeDim:   -3,
}

// GyPerYear returns an absorbed dose rate of v Gy/yr.
func GyPerYear(v float64) *unit.Unit {
	return unit.New(v/secondsPerYear, DoseRate)
}

// MicroGyPerHour returns an absorbed dose rate of v µGy/h.
func MicroGyPerHour(v float64) *unit.Unit {
	return unit.New(v*1e-6/secondsPerHour, DoseRate)
}

// Benchmark is an interface for any type that holds a screening dose rate
// below which effects on a population are not expected.
type Benchmark interface {
	Screening() *unit.Unit
	Name() string
}

// Screening is a fixed screening dose rate.
type Screening struct {
	// MicroGyPerHour is the benchmark dose rate [µGy/h].
	MicroGyPerHour float64

	// Label is the name of the benchmark.
	Label string
}

// Screening returns the benchmark dose rate.
func (s Screening) Screening() *unit.Unit { return MicroGyPerHour(s.MicroGyPerHour) }

// Name returns the label for this benchmark.
func (s Screening) Name() string { return s.Label }

// ERICADefault is the generic incremental screening dose rate of 10 µGy/h
// used for all organism types in the ERICA Integrated Approach:
//
// Brown JE, Alfonso B, Avila R, Beresford NA, Copplestone D, Pröhl G,
// Ulanovsky A (2008). The ERICA Tool. Journal of Environmental
// Radioactivity 99(9):1371–1383. http://doi.org/10.1016/j.jenvrad.2008.01.008
var ERICADefault = Screening{
	MicroGyPerHour: 10,
	Label:          "ERICADefault",
}

// RiskQuotient returns the ratio of doseRate to the screening dose rate
// of b. A quotient below one means the dose rate is below the benchmark.
func RiskQuotient(doseRate *unit.Unit, b Benchmark) (float64, error) {
	s := b.Screening()
	if s.Value() <= 0 {
		return math.NaN(), fmt.Errorf("risk: benchmark %s has non-positive screening dose rate", b.Name())
	}
	rq := unit.Div(doseRate, s)
	if err := rq.Check(unit.Dimless); err != nil {
		return math.NaN(), fmt.Errorf("risk: %v", err)
	}
	return rq.Value(), nil
}

// Conservative returns the risk quotient rq multiplied by the
// uncertainty factor uf. uf must be at least one.
func Conservative(rq, uf float64) (float64, error) {
	if uf < 1 || math.IsNaN(uf) || math.IsInf(uf, 0) {
		return math.NaN(), fmt.Errorf("risk: uncertainty factor %g must be >= 1", uf)
	}
	return rq * uf, nil
}

// Summary holds the combined risk quotients of an assessment.
type Summary struct {
	// Max is the largest individual risk quotient.
	Max float64

	// Sum is the sum of the risk quotients, which is the quotient
	// for an organism exposed to all of the isotopes at once.
	Sum float64

	// Exceeds is the number of risk quotients greater than one.
	Exceeds int
}

// Summarize combines the risk quotients rqs. It returns the zero
// Summary if rqs is empty.
func Summarize(rqs []float64) Summary {
	if len(rqs) == 0 {
		return Summary{}
	}
	s := Summary{
		Max: floats.Max(rqs),
		Sum: floats.Sum(rqs),
	}
	for _, rq := range rqs {
		if rq > 1 {
			s.Exceeds++
		}
	}
	return s
}
