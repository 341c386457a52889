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
	"strconv"
	"strings"

	"github.com/spatialmodel/erica"
	"github.com/tealeg/xlsx"
)

// Names of the worksheets in a reference workbook. Each sheet has a
// header row followed by one row per entry:
//
//	Kd:        Nuclide, Kd
//	CR:        Nuclide, Organism, CR
//	DCC:       Isotope, Organism, then the six coefficients
//	Occupancy: Organism, then one factor per habitat
const (
	KdSheet        = "Kd"
	CRSheet        = "CR"
	DCCSheet       = "DCC"
	OccupancySheet = "Occupancy"
)

// ReadExcel reads a reference table from a Microsoft Excel workbook.
func ReadExcel(fileName string) (*Table, error) {
	f, err := xlsx.OpenFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reference: opening xlsx file: %v", err)
	}
	t := NewTable()

	err = eachRow(f, KdSheet, 1, 1, func(text []string, v []float64) error {
		if err := checkRatio("Kd", v[0]); err != nil {
			return err
		}
		t.SetDistributionCoefficient(text[0], v[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = eachRow(f, CRSheet, 2, 1, func(text []string, v []float64) error {
		if err := checkRatio("CR", v[0]); err != nil {
			return err
		}
		t.SetConcentrationRatio(text[0], text[1], v[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = eachRow(f, DCCSheet, 2, len(erica.DCC{}), func(text []string, v []float64) error {
		d, err := erica.NewDCC(v)
		if err != nil {
			return err
		}
		t.SetDoseConversionCoefficients(text[0], text[1], d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = eachRow(f, OccupancySheet, 1, len(erica.OccupancyFactors{}), func(text []string, v []float64) error {
		o, err := erica.NewOccupancyFactors(v)
		if err != nil {
			return err
		}
		t.SetOccupancyFactors(text[0], o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// eachRow calls fn for every data row of the named sheet, with the
// contents of the first nText columns as text and the following nNum
// columns as numbers. Empty numeric cells are zero. Rows with an
// empty first cell are skipped.
func eachRow(f *xlsx.File, sheet string, nText, nNum int, fn func(text []string, v []float64) error) error {
	s, ok := f.Sheet[sheet]
	if !ok {
		return fmt.Errorf("reference: reading xlsx file; no sheet %s", sheet)
	}
	for j := 1; j < s.MaxRow; j++ {
		if strings.TrimSpace(s.Cell(j, 0).Value) == "" {
			continue
		}
		text := make([]string, nText)
		for i := range text {
			text[i] = strings.TrimSpace(s.Cell(j, i).Value)
		}
		v := make([]float64, nNum)
		for i := range v {
			cellString := strings.TrimSpace(s.Cell(j, nText+i).Value)
			if cellString == "" {
				continue
			}
			var err error
			v[i], err = strconv.ParseFloat(cellString, 64)
			if err != nil {
				return fmt.Errorf("reference: sheet %s row %d: %v", sheet, j+1, err)
			}
		}
		if err := fn(text, v); err != nil {
			return fmt.Errorf("reference: sheet %s row %d: %w", sheet, j+1, err)
		}
	}
	return nil
}
