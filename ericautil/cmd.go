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

// Package ericautil contains the erica command-line interface and the
// functions it uses to read assessments and write reports.
package ericautil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/erica"
	"github.com/spatialmodel/erica/reference"
	"github.com/spatialmodel/erica/risk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to erica.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "AssessmentFile",
			usage: `
              AssessmentFile is the path to the TOML file holding the isotopes,
              organisms, and measured activity concentrations to assess. It can
              include environment variables.`,
			shorthand:  "a",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ReferenceTable",
			usage: `
              ReferenceTable is the path to the reference table (.toml or .xlsx)
              used to fill in values missing from the assessment. It can include
              environment variables. If it is empty, every value must be given in
              the assessment file.`,
			shorthand:  "r",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), referenceCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output report location. The
              report is written in CSV format if the file ends in '.csv' and as a
              Microsoft Excel workbook if it ends in '.xlsx'. It can include
              environment variables.`,
			shorthand:  "o",
			defaultVal: "erica.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be
              saved in the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path to an optional PNG bar chart of total dose rates.
              It can include environment variables. No plot is made if it is empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies additional report columns as a map of names
              to expressions of the standard columns (for example Total and RQ) or
              of other output variables.`,
			defaultVal: map[string]string{
				"TotalMicroGyPerHour": "Total * 1000000 / 8766",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ScreeningDoseRate",
			usage: `
              ScreeningDoseRate is the incremental dose rate [µGy/h] that risk
              quotients are calculated relative to.`,
			defaultVal: risk.ERICADefault.MicroGyPerHour,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "UncertaintyFactor",
			usage: `
              UncertaintyFactor is multiplied by risk quotients to calculate
              conservative risk quotients. It must be at least 1.`,
			defaultVal: 3.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ERICA")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(referenceCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("erica: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "erica",
	Short: "A wildlife radiological dose rate calculator.",
	Long: `erica calculates absorbed dose rates to wildlife from radionuclides in
water and sediment using the ERICA Integrated Approach, and screens them against
a benchmark dose rate. Use the subcommands specified below to access the model
functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ERICA_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of erica.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("erica v%s\n", erica.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs an assessment.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an assessment.",
	Long: `run fills in missing parameters from the reference table, calculates
internal, external, and total dose rates for every isotope and organism in the
assessment file, and writes them to a report along with risk quotients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assessmentFile := Cfg.GetString("AssessmentFile")
		if assessmentFile == "" {
			return fmt.Errorf("erica: you need to specify an assessment file (for example: --AssessmentFile=assessment.toml)")
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		vars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(vars)
		if err != nil {
			return err
		}
		b := benchmark(Cfg.GetFloat64("ScreeningDoseRate"))
		return Run(cmd,
			checkLogFile(Cfg.GetString("LogFile"), outputFile),
			outputFile,
			expand(Cfg.GetString("PlotFile")),
			expand(assessmentFile),
			expand(Cfg.GetString("ReferenceTable")),
			outputVars,
			b,
			Cfg.GetFloat64("UncertaintyFactor"),
		)
	},
	DisableAutoGenTag: true,
}

// referenceCmd lists the contents of a reference table.
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "List the isotopes and organisms in a reference table.",
	Long: `reference lists the isotopes and organisms that the reference table
specified by the ReferenceTable option holds dose conversion coefficients and
other default parameters for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileName := expand(Cfg.GetString("ReferenceTable"))
		if fileName == "" {
			return fmt.Errorf("erica: you need to specify a reference table (for example: --ReferenceTable=reference.toml)")
		}
		t, err := reference.Load(fileName)
		if err != nil {
			return err
		}
		cmd.Println("Isotopes:")
		for _, iso := range t.Isotopes() {
			cmd.Printf("\t%s\n", iso)
		}
		cmd.Println("Organisms:")
		for _, org := range t.Organisms() {
			cmd.Printf("\t%s\n", org)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
