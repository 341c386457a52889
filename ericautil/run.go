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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/erica"
	"github.com/spatialmodel/erica/reference"
	"github.com/spatialmodel/erica/risk"
	"github.com/spf13/cobra"
)

// Run runs an assessment.
//
// cmd is the cobra.Command instance where Run is called from. Log
// messages are written to its standard output as well as to logFile.
//
// outputFile is the path to the report, which is written in CSV format
// if it ends in ".csv" and as a Microsoft Excel workbook if it ends in
// ".xlsx". If plotFile is not empty, a bar chart of total dose rates is
// written there in PNG format.
//
// assessmentFile is the path to the assessment in TOML format, and
// referenceFile is the path to the reference table used to fill in
// missing values. If referenceFile is empty, no reference table is
// used.
//
// outputVariables specifies additional report columns; see Outputter.
//
// b is the benchmark that risk quotients are calculated relative to,
// and uf is the uncertainty factor used for conservative risk quotients.
func Run(cmd *cobra.Command, logFile, outputFile, plotFile, assessmentFile, referenceFile string,
	outputVariables map[string]string, b risk.Benchmark, uf float64) error {

	startTime := time.Now()

	logfile, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("erica: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := logrus.New()
	log.Out = io.MultiWriter(cmd.OutOrStdout(), logfile)
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}

	log.WithField("file", assessmentFile).Info("reading assessment")
	a, err := LoadAssessment(assessmentFile)
	if err != nil {
		return err
	}
	s, err := a.Setting()
	if err != nil {
		return err
	}

	var table erica.ReferenceTable
	if referenceFile != "" {
		log.WithField("file", referenceFile).Info("reading reference table")
		t, err := reference.Load(referenceFile)
		if err != nil {
			return err
		}
		table = t
	} else {
		log.Warn("no reference table specified; all parameters must be in the assessment file")
	}

	o, err := NewOutputter(outputVariables, nil)
	if err != nil {
		return err
	}

	r := erica.NewResult(s, table)
	r.Log = log
	log.WithFields(logrus.Fields{
		"isotopes":    len(r.Isotopes()),
		"organisms":   len(r.Organisms()),
		"fingerprint": s.Fingerprint(),
	}).Info("calculating dose rates")
	if err := r.Calculate(); err != nil {
		return err
	}

	rows, err := Rows(r, b, uf)
	if err != nil {
		return err
	}
	organisms, summaries := Summaries(rows)
	for i, org := range organisms {
		sum := summaries[i]
		l := log.WithFields(logrus.Fields{
			"organism":    org,
			"benchmark":   b.Name(),
			"max_rq":      sum.Max,
			"sum_rq":      sum.Sum,
			"exceedances": sum.Exceeds,
		})
		if sum.Sum > 1 {
			l.Warn("risk quotient exceeds screening benchmark")
		} else {
			l.Info("risk quotient")
		}
	}

	log.WithField("file", outputFile).Info("writing report")
	if err := WriteReport(outputFile, rows, o); err != nil {
		return err
	}
	if plotFile != "" {
		log.WithField("file", plotFile).Info("writing plot")
		f, err := os.Create(plotFile)
		if err != nil {
			return fmt.Errorf("erica: problem creating plot file: %v", err)
		}
		if err := PlotTotals(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("erica: problem closing plot file: %v", err)
		}
	}

	log.WithFields(logrus.Fields{
		"warnings": len(r.Warnings()),
		"failures": len(r.Failures()),
		"elapsed":  time.Since(startTime),
	}).Info("assessment complete")
	return nil
}
