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

import "strings"

// Medium names. Activity concentrations for environmental media are
// keyed by these names; all other keys are organism names.
const (
	Water    = "Water"
	Sediment = "Sediment"
)

// Media holds the environmental media in the order used by
// external dose rates.
var Media = [2]string{Water, Sediment}

// Habitat describes the fraction of the infinite-medium external dose
// rate that an organism receives from each medium while it occupies
// the habitat.
type Habitat struct {
	Name string

	// Water and Sediment are the weights applied to the water and
	// sediment external dose rates, respectively.
	Water, Sediment float64
}

// Habitats are the aquatic habitats, in the order that occupancy
// factors refer to them.
var Habitats = [4]Habitat{
	{Name: "Water-surface", Water: 0.5, Sediment: 0},
	{Name: "Water", Water: 1, Sediment: 0},
	{Name: "Sediment-surface", Water: 0.5, Sediment: 0.5},
	{Name: "Sediment", Water: 0, Sediment: 1},
}

// habitatIndex returns the position of the named habitat in Habitats,
// or -1 if there is no such habitat.
func habitatIndex(name string) int {
	for i, h := range Habitats {
		if h.Name == name {
			return i
		}
	}
	return -1
}

// Nuclide returns the element part of an isotope name such as "Cs-137".
// Names without a mass number are returned unchanged.
func Nuclide(isotope string) string {
	return strings.SplitN(isotope, "-", 2)[0]
}
