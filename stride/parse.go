/*
 * parse.go, part of mdsim.
 *
 * Copyright 2021 The mdsim Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package stride analyzes the secondary structure of MD trajectories, as assigned
//by STRIDE, one line per timestep and one single-letter code per residue.
//It computes helix fractions, groups trajectories, finds the helix denaturation
//time of each trajectory and compares the native and denatured parts of the
//trajectories, including the per-residue contact counts, if available.
package stride

import (
	"strings"

	"github.com/ajsmith/mdsim"
	"gonum.org/v1/gonum/mat"
)

//Helical structure codes: alpha helix, 3-10 helix and pi helix.
var helixCodes = []string{"H", "G", "I"}

//Freq maps each structure code to the number of residues with that code
//in one timestep.
type Freq map[string]int

//ProcessLine returns the structure frequencies for a line of STRIDE data.
//An empty line gives an empty map.
func ProcessLine(line string) Freq {
	ret := make(Freq)
	for _, s := range strings.Fields(line) {
		ret[s]++
	}
	return ret
}

//CountHelices returns the number of helical residues in f.
func CountHelices(f Freq) int {
	var n int
	for _, c := range helixCodes {
		n += f[c]
	}
	return n
}

//CountAll returns the total count of all structures in f.
func CountAll(f Freq) int {
	var n int
	for _, v := range f {
		n += v
	}
	return n
}

//ReadFile reads a STRIDE file and returns, for each timestep, the number of
//helical residues and the total number of residues.
func ReadFile(name string) (helix, total []float64, err error) {
	err = mdsim.ReadLines(name, func(_ int, line string) error {
		f := ProcessLine(line)
		helix = append(helix, float64(CountHelices(f)))
		total = append(total, float64(CountAll(f)))
		return nil
	})
	if err != nil {
		return nil, nil, mdsim.Decorate(err, "stride.ReadFile")
	}
	if len(helix) == 0 {
		return nil, nil, mdsim.NewParseError(name, 0, "no STRIDE records")
	}
	return helix, total, nil
}

//ReadFiles reads all the given STRIDE files. Each trajectory becomes a row
//of the helix count and total count matrices, each timestep a column.
//All the files must have the same number of timesteps.
func ReadFiles(names []string) (helices, totals *mat.Dense, err error) {
	if len(names) == 0 {
		return nil, nil, mdsim.ErrNoFiles
	}
	var steps int
	for i, name := range names {
		h, t, err := ReadFile(name)
		if err != nil {
			return nil, nil, mdsim.Decorate(err, "stride.ReadFiles")
		}
		if i == 0 {
			steps = len(h)
			helices = mat.NewDense(len(names), steps, nil)
			totals = mat.NewDense(len(names), steps, nil)
		} else if len(h) != steps {
			return nil, nil, &mdsim.ShapeError{What: "timesteps (first file " + names[0] + ")", Want: steps, Got: len(h), Filename: name}
		}
		helices.SetRow(i, h)
		totals.SetRow(i, t)
	}
	return helices, totals, nil
}
