/*
 * defaults.go, part of mdsim.
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

package mdsim

//EnergyColumns are the (0-based, whitespace-separated) columns of the
//ENERGY: lines in a NAMD log.
type EnergyColumns struct {
	TS        int
	Total     int
	Temp      int
	Potential int
	Volume    int
}

//Defaults holds the values used when the configuration doesn't say otherwise.
//It is built once per run with NewDefaults and passed by value, so nobody
//can change it under somebody else's feet.
type Defaults struct {
	Energy EnergyColumns
	//titles for the NAMD plots, keyed by stage: min, heat, equil and quench.
	//Read it through Suptitle.
	suptitles map[string]string
	//Helix fraction above which a frame counts as folded.
	Threshold float64
	//Savitzky-Golay window, before being clamped to the series length.
	Window int
	//Only one every Stride steps is drawn in the time series plots.
	Stride int
	//Number of bins in the helix fraction histograms.
	Bins int
	//Space, in Angstrom, added on each side of the solute for the periodic cell.
	CellPadding int
	OutputDir   string
	//Output file of the group time series plot, relative to OutputDir.
	StrideOutput string
}

//NewDefaults returns the default values for every analysis.
func NewDefaults() Defaults {
	return Defaults{
		Energy: EnergyColumns{
			TS:        1,
			Total:     11,
			Temp:      12,
			Potential: 13,
			Volume:    18,
		},
		suptitles: map[string]string{
			"min":    "Minimization",
			"heat":   "Heating",
			"equil":  "Equilibration",
			"quench": "Quench",
		},
		Threshold:    0.4,
		Window:       501,
		Stride:       500,
		Bins:         10,
		CellPadding:  10,
		OutputDir:    ".",
		StrideOutput: "sstructure.png",
	}
}

//Suptitle returns the default title for the given NAMD stage, or the
//stage name itself if there is none.
func (D Defaults) Suptitle(stage string) string {
	if s, ok := D.suptitles[stage]; ok {
		return s
	}
	return stage
}
