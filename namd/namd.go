/*
 * namd.go, part of mdsim.
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

//Package namd reads the energy time series in NAMD logs, and knows which of them
//are worth looking at after each stage of a simulation.
package namd

import (
	"math"
	"strconv"
	"strings"

	"github.com/ajsmith/mdsim"
)

const energyPrefix = "ENERGY:"

//Quantity is something NAMD writes in its ENERGY: lines, or derived from it.
type Quantity int

const (
	Potential Quantity = iota
	Total
	Temperature
	//Edge of a cubic cell with the volume NAMD reports.
	CellSize
)

//Label returns a human-readable name for the quantity.
func (q Quantity) Label() string {
	switch q {
	case Potential:
		return "Potential Energy"
	case Total:
		return "Total Energy"
	case Temperature:
		return "Temperature"
	case CellSize:
		return "Unit Cell Size"
	}
	return "Unknown"
}

//Unit returns the unit NAMD uses for the quantity.
func (q Quantity) Unit() string {
	switch q {
	case Potential, Total:
		return "kcal/mol"
	case Temperature:
		return "K"
	case CellSize:
		return "Å"
	}
	return ""
}

func (q Quantity) column(c mdsim.EnergyColumns) int {
	switch q {
	case Potential:
		return c.Potential
	case Total:
		return c.Total
	case Temperature:
		return c.Temp
	case CellSize:
		return c.Volume
	}
	return -1
}

//Series holds the timesteps of a log, and the requested quantities at each of them.
type Series struct {
	TS     []float64
	Values map[Quantity][]float64
}

//ReadLog reads the ENERGY: lines of the NAMD log name, and returns the timestep and the
//given quantities for each of them. Other lines are ignored. A line with too few
//columns, or a column that is not a number, is an error.
func ReadLog(name string, cols mdsim.EnergyColumns, qs ...Quantity) (*Series, error) {
	ret := &Series{Values: make(map[Quantity][]float64, len(qs))}
	err := mdsim.ReadLines(name, func(lineno int, line string) error {
		if !strings.HasPrefix(line, energyPrefix) {
			return nil
		}
		fields := strings.Fields(line)
		ts, err := strconv.Atoi(field(fields, cols.TS))
		if err != nil {
			return mdsim.NewParseError(name, lineno, "bad timestep in column %d: %v", cols.TS, err)
		}
		ret.TS = append(ret.TS, float64(ts))
		for _, q := range qs {
			c := q.column(cols)
			v, err := strconv.ParseFloat(field(fields, c), 64)
			if err != nil {
				return mdsim.NewParseError(name, lineno, "bad %s in column %d: %v", q.Label(), c, err)
			}
			if q == CellSize {
				v = math.Cbrt(v)
			}
			ret.Values[q] = append(ret.Values[q], v)
		}
		return nil
	})
	if err != nil {
		return nil, mdsim.Decorate(err, "namd.ReadLog")
	}
	if len(ret.TS) == 0 {
		return nil, mdsim.NewParseError(name, 0, "no %s lines", energyPrefix)
	}
	return ret, nil
}

//field returns fields[i], or the empty string, which no parser takes, if there is no such column.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

//Stage is a step of a simulation protocol and the quantities plotted for it,
//one panel each.
type Stage struct {
	Name   string
	Panels []Quantity
}

//Stages are the simulation stages mdsim knows how to plot, in protocol order.
var Stages = []Stage{
	{Name: "min", Panels: []Quantity{Potential}},
	{Name: "heat", Panels: []Quantity{Potential, Temperature}},
	{Name: "equil", Panels: []Quantity{Temperature, CellSize}},
	{Name: "quench", Panels: []Quantity{Total, Temperature}},
}

//StageByName returns the stage with the given name.
func StageByName(name string) (Stage, bool) {
	for _, s := range Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}
