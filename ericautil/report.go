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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spatialmodel/erica/risk"
	"github.com/tealeg/xlsx"
)

// Names of the worksheets in an Excel report.
const (
	DoseRateSheet = "Dose rates"
	SummarySheet  = "Summary"
)

var summaryHeader = []string{"Organism", "MaxRQ", "SumRQ", "Exceedances"}

// WriteReport writes rows to fileName in CSV format if it ends in
// ".csv", or as a Microsoft Excel workbook with an additional summary
// of risk quotients by organism if it ends in ".xlsx".
func WriteReport(fileName string, rows []Row, o *Outputter) error {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv":
		f, err := os.Create(fileName)
		if err != nil {
			return fmt.Errorf("ericautil: creating report file: %v", err)
		}
		if err := WriteCSV(f, rows, o); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		organisms, summaries := Summaries(rows)
		return WriteExcel(fileName, rows, o, organisms, summaries)
	default:
		return fmt.Errorf("ericautil: unsupported report file type '%s'", ext)
	}
}

// formatFloat formats v for a text report. NaN values are empty.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes rows to w in CSV format, with the columns given by
// o.Header.
func WriteCSV(w io.Writer, rows []Row, o *Outputter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(o.Header()); err != nil {
		return fmt.Errorf("ericautil: writing CSV report: %v", err)
	}
	for _, row := range rows {
		vals, err := o.Values(row)
		if err != nil {
			return err
		}
		rec := make([]string, 0, len(vals)+3)
		rec = append(rec, row.Isotope, row.Organism)
		for _, v := range vals {
			rec = append(rec, formatFloat(v))
		}
		rec = append(rec, row.Status())
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("ericautil: writing CSV report: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("ericautil: writing CSV report: %v", err)
	}
	return nil
}

// WriteExcel writes rows and the risk quotient summaries for organisms to
// a Microsoft Excel workbook.
func WriteExcel(fileName string, rows []Row, o *Outputter, organisms []string, summaries []risk.Summary) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(DoseRateSheet)
	if err != nil {
		return fmt.Errorf("ericautil: writing xlsx report: %v", err)
	}
	addStringRow(s, o.Header())
	for _, row := range rows {
		vals, err := o.Values(row)
		if err != nil {
			return err
		}
		r := s.AddRow()
		r.AddCell().SetString(row.Isotope)
		r.AddCell().SetString(row.Organism)
		for _, v := range vals {
			c := r.AddCell()
			if !math.IsNaN(v) {
				c.SetFloat(v)
			}
		}
		r.AddCell().SetString(row.Status())
	}

	s, err = f.AddSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("ericautil: writing xlsx report: %v", err)
	}
	addStringRow(s, summaryHeader)
	for i, org := range organisms {
		r := s.AddRow()
		r.AddCell().SetString(org)
		r.AddCell().SetFloat(summaries[i].Max)
		r.AddCell().SetFloat(summaries[i].Sum)
		r.AddCell().SetInt(summaries[i].Exceeds)
	}

	if err := f.Save(fileName); err != nil {
		return fmt.Errorf("ericautil: saving xlsx report: %v", err)
	}
	return nil
}

func addStringRow(s *xlsx.Sheet, text []string) {
	r := s.AddRow()
	for _, t := range text {
		r.AddCell().SetString(t)
	}
}
