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
	"fmt"
	"math"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/erica"
	"github.com/spatialmodel/erica/risk"
)

// Row holds the results for one isotope and organism.
type Row struct {
	Isotope, Organism string

	// Water, Sediment, and Activity are the activity concentrations in
	// water [Bq/L], sediment [Bq/kg], and the organism [Bq/kg].
	Water, Sediment, Activity float64

	// InternalCoefficient and ExternalCoefficient are the weighted dose
	// conversion coefficients [(Gy/yr)/(Bq/kg)].
	InternalCoefficient, ExternalCoefficient float64

	// Internal, ExternalWater, ExternalSediment, and Total are dose
	// rates [Gy/yr].
	Internal, ExternalWater, ExternalSediment, Total float64

	// RQ and ConservativeRQ are the risk quotient and the risk quotient
	// multiplied by the uncertainty factor.
	RQ, ConservativeRQ float64

	// Err is non-nil if no dose rate could be calculated for this pair,
	// in which case the values above are NaN.
	Err error
}

// columns are the names of the numeric values in a Row, in report order.
var columns = []string{"Water", "Sediment", "Activity", "InternalCoefficient",
	"ExternalCoefficient", "Internal", "ExternalWater", "ExternalSediment",
	"Total", "RQ", "ConservativeRQ"}

func (row Row) values() []float64 {
	return []float64{row.Water, row.Sediment, row.Activity, row.InternalCoefficient,
		row.ExternalCoefficient, row.Internal, row.ExternalWater, row.ExternalSediment,
		row.Total, row.RQ, row.ConservativeRQ}
}

// Status returns "OK" or the reason the row has no results.
func (row Row) Status() string {
	if row.Err != nil {
		return row.Err.Error()
	}
	return "OK"
}

// Rows returns a Row for every isotope and organism in r, which must
// already be calculated. Risk quotients are relative to b, and
// conservative risk quotients are multiplied by uncertainty factor uf.
func Rows(r *erica.Result, b risk.Benchmark, uf float64) ([]Row, error) {
	var rows []Row
	for _, iso := range r.Isotopes() {
		for _, org := range r.Organisms() {
			row, err := newRow(r, iso, org, b, uf)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func newRow(r *erica.Result, iso, org string, b risk.Benchmark, uf float64) (Row, error) {
	nan := math.NaN()
	row := Row{
		Isotope: iso, Organism: org,
		Water: nan, Sediment: nan, Activity: nan,
		InternalCoefficient: nan, ExternalCoefficient: nan,
		Internal: nan, ExternalWater: nan, ExternalSediment: nan, Total: nan,
		RQ: nan, ConservativeRQ: nan,
	}
	total, err := r.TotalDoseRate(iso, org)
	if err != nil {
		if errors.Is(err, erica.ErrNotCalculated) {
			return row, fmt.Errorf("ericautil: %w", err)
		}
		row.Err = err
		return row, nil
	}
	row.Total = total

	// The remaining values are available whenever the total is.
	row.Water, _ = r.ActivityConcentration(iso, erica.Water)
	row.Sediment, _ = r.ActivityConcentration(iso, erica.Sediment)
	row.Activity, _ = r.ActivityConcentration(iso, org)
	row.InternalCoefficient, _ = r.InternalCoefficient(iso, org)
	row.ExternalCoefficient, _ = r.ExternalCoefficient(iso, org)
	row.Internal, _ = r.InternalDoseRate(iso, org)
	ext, _ := r.ExternalDoseRate(iso, org)
	row.ExternalWater, row.ExternalSediment = ext[0], ext[1]

	if row.RQ, err = risk.RiskQuotient(risk.GyPerYear(total), b); err != nil {
		return row, err
	}
	if row.ConservativeRQ, err = risk.Conservative(row.RQ, uf); err != nil {
		return row, err
	}
	return row, nil
}

// Summaries combines the risk quotients of rows by organism, returning
// the organisms in the order they first appear and their summaries.
// Rows without results are left out.
func Summaries(rows []Row) ([]string, []risk.Summary) {
	var organisms []string
	rqs := make(map[string][]float64)
	for _, row := range rows {
		if _, ok := rqs[row.Organism]; !ok {
			organisms = append(organisms, row.Organism)
			rqs[row.Organism] = []float64{}
		}
		if row.Err == nil {
			rqs[row.Organism] = append(rqs[row.Organism], row.RQ)
		}
	}
	s := make([]risk.Summary, len(organisms))
	for i, org := range organisms {
		s[i] = risk.Summarize(rqs[org])
	}
	return organisms, s
}

// Outputter calculates user-defined output variables from the values
// in a Row.
//
// Output variables are expressions of the Row columns (Water, Sediment,
// Activity, InternalCoefficient, ExternalCoefficient, Internal,
// ExternalWater, ExternalSediment, Total, RQ, and ConservativeRQ) and
// of other output variables.
type Outputter struct {
	names       []string // sorted
	order       []string // evaluation order
	expressions map[string]*govaluate.EvaluableExpression
}

// floatArgs converts the arguments of the named expression function
// to numbers.
func floatArgs(name string, arg []interface{}) ([]float64, error) {
	o := make([]float64, len(arg))
	for i, a := range arg {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("ericautil: argument %d of function '%s' is %#v, not a number", i+1, name, a)
		}
		o[i] = v
	}
	return o, nil
}

// NewOutputter parses outputVariables, a map of names to expressions,
// and adds a set of default output functions. Default functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'log10(x)' which calculates the base 10 logarithm of x.
//
// 'max(x, y)' which returns the larger of x and y.
//
// outputFunctions may add to or replace the default functions.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	funcs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("ericautil: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			x, err := floatArgs("exp", arg)
			if err != nil {
				return nil, err
			}
			return math.Exp(x[0]), nil
		},
		"log10": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("ericautil: got %d arguments for function 'log10', but needs 1", len(arg))
			}
			x, err := floatArgs("log10", arg)
			if err != nil {
				return nil, err
			}
			return math.Log10(x[0]), nil
		},
		"max": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("ericautil: got %d arguments for function 'max', but needs 2", len(arg))
			}
			x, err := floatArgs("max", arg)
			if err != nil {
				return nil, err
			}
			return math.Max(x[0], x[1]), nil
		},
	}
	for key, val := range outputFunctions {
		funcs[key] = val
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	o := &Outputter{expressions: make(map[string]*govaluate.EvaluableExpression)}
	deps := make(map[string][]string)
	for name, expr := range outputVariables {
		if known[name] {
			return nil, fmt.Errorf("ericautil: output variable name '%s' is already a report column", name)
		}
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("ericautil: output variable %s: %v", name, err)
		}
		o.expressions[name] = e
		o.names = append(o.names, name)
		for _, v := range removeDuplicates(e.Vars()) {
			if _, ok := outputVariables[v]; ok {
				deps[name] = append(deps[name], v)
			} else if !known[v] {
				return nil, fmt.Errorf("ericautil: undefined variable name '%s' in output variable %s", v, name)
			}
		}
	}
	sort.Strings(o.names)

	// Order the variables so each is evaluated after the ones it uses.
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("ericautil: output variable %s depends on itself", name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, d := range deps[name] {
			if err := visit(d); err != nil {
				return err
			}
		}
		state[name] = done
		o.order = append(o.order, name)
		return nil
	}
	for _, name := range o.names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// removeDuplicates removes all duplicated strings from a slice, returning a
// slice that contains only unique strings.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]struct{})
	for _, val := range s {
		if _, ok := seen[val]; !ok {
			result = append(result, val)
			seen[val] = struct{}{}
		}
	}
	return result
}

// Names returns the names of the output variables in sorted order.
func (o *Outputter) Names() []string { return o.names }

// Header returns the column names of a report.
func (o *Outputter) Header() []string {
	h := append([]string{"Isotope", "Organism"}, columns...)
	h = append(h, o.names...)
	return append(h, "Status")
}

// Values returns the numeric values in row followed by the output
// variables, in the order given by Header. All values are NaN for a
// row without results.
func (o *Outputter) Values(row Row) ([]float64, error) {
	v := row.values()
	if row.Err != nil {
		for range o.names {
			v = append(v, math.NaN())
		}
		return v, nil
	}
	params := make(map[string]interface{}, len(columns)+len(o.names))
	for i, c := range columns {
		params[c] = v[i]
	}
	for _, name := range o.order {
		result, err := o.expressions[name].Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("ericautil: evaluating output variable %s for %s in %s: %v",
				name, row.Isotope, row.Organism, err)
		}
		f, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("ericautil: output variable %s has non-numeric value %v", name, result)
		}
		params[name] = f
	}
	for _, name := range o.names {
		v = append(v, params[name].(float64))
	}
	return v, nil
}
