/*
 * contacts.go, part of mdsim.
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

package stride

import (
	"math"
	"strconv"
	"strings"

	"github.com/ajsmith/mdsim"
	"gonum.org/v1/gonum/mat"
)

//ContactFile is a file with per-residue contact counts, one line per timestep,
//for the trajectory in row Row of the STRIDE matrices.
type ContactFile struct {
	File string
	Row  int
}

//ReadContacts reads a file of per-residue contact counts. In the returned matrix
//each row is a timestep and each column a residue. Every token must be an integer
//and every line must have the same number of them.
func ReadContacts(name string) (*mat.Dense, error) {
	var data []float64
	var residues, steps int
	err := mdsim.ReadLines(name, func(lineno int, line string) error {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return mdsim.NewParseError(name, lineno, "empty contact record")
		}
		if steps == 0 {
			residues = len(fields)
		} else if len(fields) != residues {
			return mdsim.NewParseError(name, lineno, "%d residues in record, previous records have %d", len(fields), residues)
		}
		for i, v := range fields {
			c, err := strconv.Atoi(v)
			if err != nil {
				return mdsim.NewParseError(name, lineno, "token %d (%q) is not an integer", i+1, v)
			}
			data = append(data, float64(c))
		}
		steps++
		return nil
	})
	if err != nil {
		return nil, mdsim.Decorate(err, "stride.ReadContacts")
	}
	if steps == 0 {
		return nil, mdsim.NewParseError(name, 0, "no contact records")
	}
	return mat.NewDense(steps, residues, data), nil
}

//ContactFrequency returns, for each residue (column of m), the mean contact count
//over the timesteps (rows) in [from, to). The window is clamped to the rows of m.
//If it ends up empty, every element of the result is NaN.
func ContactFrequency(m mat.Matrix, from, to int) []float64 {
	r, c := m.Dims()
	from = clamp(from, 0, r)
	to = clamp(to, from, r)
	ret := make([]float64, c)
	if to == from {
		for i := range ret {
			ret[i] = math.NaN()
		}
		return ret
	}
	for i := from; i < to; i++ {
		for j := range ret {
			ret[j] += m.At(i, j)
		}
	}
	n := float64(to - from)
	for j := range ret {
		ret[j] /= n
	}
	return ret
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
