/*
 * pdbcheck.go, part of mdsim.
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

//Package pdbcheck checks that the atoms of a PDB file fit in a periodic box, and
//finds the size of a box where they do.
package pdbcheck

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ajsmith/mdsim"
)

//Only ATOM records are checked, HETATM (ions, ligands, waters in some files) are not.
const atomRecord = "ATOM"

//errStop ends a scan early without it being an error.
var errStop = errors.New("stop")

//AtomCoords returns the x, y and z coordinates of an ATOM or HETATM line. The PDB fixed
//columns (31-38, 39-46 and 47-54) are used. Lines too short for them are split
//in whitespace-separated fields instead, and the 7th to 9th are taken.
func AtomCoords(line string) ([3]float64, error) {
	var coords [3]float64
	var strs [3]string
	if len(line) >= 54 {
		strs = [3]string{line[30:38], line[38:46], line[46:54]}
	} else {
		fields := strings.Fields(line)
		if len(fields) < 9 {
			return coords, fmt.Errorf("too few fields for the coordinates: %d", len(fields))
		}
		copy(strs[:], fields[6:9])
	}
	var err error
	for i, s := range strs {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return coords, fmt.Errorf("can't parse coordinate %d (%q): %v", i, s, err)
		}
	}
	return coords, nil
}

//maxAbs returns the largest absolute value among the coordinates.
func maxAbs(c [3]float64) float64 {
	return math.Max(math.Abs(c[0]), math.Max(math.Abs(c[1]), math.Abs(c[2])))
}

//Violation is an atom outside the allowed bounds.
type Violation struct {
	Line   int //1-based
	Text   string
	Coords [3]float64
}

func (V *Violation) String() string {
	return fmt.Sprintf("invalid atom at line %d: %s", V.Line, strings.TrimRight(V.Text, " "))
}

//scanAtoms calls f with the coordinates of each ATOM line of the PDB file name.
func scanAtoms(name string, f func(lineno int, line string, c [3]float64) error) error {
	err := mdsim.ReadLines(name, func(lineno int, line string) error {
		if !strings.HasPrefix(line, atomRecord) {
			return nil
		}
		c, err := AtomCoords(line)
		if err != nil {
			return mdsim.NewParseError(name, lineno, "%v", err)
		}
		return f(lineno, line, c)
	})
	if err == errStop {
		return nil
	}
	return err
}

//CheckCoordinates returns the first atom in the PDB file name with a coordinate whose
//absolute value is larger than maxDist, or nil if all the atoms are within bounds.
func CheckCoordinates(name string, maxDist float64) (*Violation, error) {
	var ret *Violation
	err := scanAtoms(name, func(lineno int, line string, c [3]float64) error {
		if maxAbs(c) > maxDist {
			ret = &Violation{Line: lineno, Text: line, Coords: c}
			return errStop
		}
		return nil
	})
	if err != nil {
		return nil, mdsim.Decorate(err, "pdbcheck.CheckCoordinates")
	}
	return ret, nil
}

//MaxCoord returns the largest absolute value of any coordinate of any atom in the PDB
//file name, that is, half the edge of the smallest origin-centered cube that holds
//all the atoms. It is an error for the file to have no atoms.
func MaxCoord(name string) (float64, error) {
	var max float64
	var atoms int
	err := scanAtoms(name, func(_ int, _ string, c [3]float64) error {
		atoms++
		max = math.Max(max, maxAbs(c))
		return nil
	})
	if err != nil {
		return 0, mdsim.Decorate(err, "pdbcheck.MaxCoord")
	}
	if atoms == 0 {
		return 0, mdsim.NewParseError(name, 0, "no %s records", atomRecord)
	}
	return max, nil
}

//CellSize returns the edge of a periodic cubic cell for a solute that reaches
//maxCoord from the origin, leaving padding Angstrom on each side.
func CellSize(maxCoord float64, padding int) int {
	return 2 * (int(math.Ceil(maxCoord)) + padding)
}
