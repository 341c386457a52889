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

// Command erica is a command-line interface for the erica wildlife
// dose rate calculator.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/erica/ericautil"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := ericautil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
