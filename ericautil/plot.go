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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
	barWidth   = 12 * vg.Millimeter
)

// PlotTotals writes a PNG bar chart of the total dose rates in rows to w,
// with one group of bars per organism and one bar per isotope. Pairs
// without results are plotted as zero.
func PlotTotals(w io.Writer, rows []Row) error {
	var isotopes, organisms []string
	isoIndex := make(map[string]int)
	orgIndex := make(map[string]int)
	for _, row := range rows {
		if _, ok := isoIndex[row.Isotope]; !ok {
			isoIndex[row.Isotope] = len(isotopes)
			isotopes = append(isotopes, row.Isotope)
		}
		if _, ok := orgIndex[row.Organism]; !ok {
			orgIndex[row.Organism] = len(organisms)
			organisms = append(organisms, row.Organism)
		}
	}
	if len(isotopes) == 0 {
		return fmt.Errorf("ericautil: no dose rates to plot")
	}
	values := make([]plotter.Values, len(isotopes))
	for i := range values {
		values[i] = make(plotter.Values, len(organisms))
	}
	for _, row := range rows {
		if row.Err == nil {
			values[isoIndex[row.Isotope]][orgIndex[row.Organism]] = row.Total
		}
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("ericautil: plotting: %v", err)
	}
	p.Title.Text = "Total dose rate"
	p.Y.Label.Text = "Gy/yr"
	p.Legend.Top = true
	width := barWidth / vg.Length(len(isotopes))
	for i, iso := range isotopes {
		b, err := plotter.NewBarChart(values[i], width)
		if err != nil {
			return fmt.Errorf("ericautil: plotting %s: %v", iso, err)
		}
		b.LineStyle.Width = vg.Length(0)
		b.Color = plotutil.Color(i)
		b.Offset = width * vg.Length(float64(i)-float64(len(isotopes)-1)/2)
		p.Add(b)
		p.Legend.Add(iso, b)
	}
	p.NominalX(organisms...)

	img := vgimg.New(plotWidth, plotHeight)
	p.Draw(draw.New(img))
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("ericautil: writing plot: %v", err)
	}
	return nil
}
