/*
 * stats.go, part of mdsim.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//GroupStats summarizes the helix content of a trajectory, or of a group of them.
type GroupStats struct {
	//Helix fraction at each timestep. NaN where no residue was classified.
	Fraction []float64
	//Mean of Fraction. NaN if any timestep is undefined.
	Mean float64
	//Population variance of the raw helix counts (not of the fractions).
	Var    float64
	NHelix float64
	N      float64
	Steps  int
	//Number of timesteps with no classified residues.
	Undefined int
}

//Stats computes the statistics for a 2-row matrix with helix counts in the first row
//and total counts in the second, as returned by AggregateGroup.
func Stats(pair mat.Matrix) (GroupStats, error) {
	r, c := pair.Dims()
	if r != 2 {
		return GroupStats{}, fmt.Errorf("stride: Stats needs a 2-row matrix, got %d rows", r)
	}
	helix := mat.Row(nil, 0, pair)
	total := mat.Row(nil, 1, pair)
	ret := GroupStats{
		Fraction: make([]float64, c),
		Steps:    c,
		NHelix:   floats.Sum(helix),
		N:        floats.Sum(total),
		Var:      stat.PopVariance(helix, nil),
	}
	for i := range helix {
		ret.Fraction[i] = fraction(helix[i], total[i])
		if math.IsNaN(ret.Fraction[i]) {
			ret.Undefined++
		}
	}
	ret.Mean = Mean(ret.Fraction)
	return ret, nil
}

func fraction(helix, total float64) float64 {
	if total == 0 {
		return math.NaN()
	}
	return helix / total
}

//Mean returns the mean of xs. It is NaN if xs is empty or has any NaN.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

//Fractions returns the helix fraction of each trajectory (row) at each timestep
//(column). Timesteps without classified residues get NaN.
func Fractions(helices, totals mat.Matrix) (*mat.Dense, error) {
	hr, hc := helices.Dims()
	tr, tc := totals.Dims()
	if hr != tr || hc != tc {
		return nil, fmt.Errorf("stride: helix (%dx%d) and total (%dx%d) matrices don't match", hr, hc, tr, tc)
	}
	ret := mat.NewDense(hr, hc, nil)
	ret.Apply(func(i, j int, v float64) float64 {
		return fraction(v, totals.At(i, j))
	}, helices)
	return ret, nil
}

//SplitTimeline splits series in the part up to and including th (the native
//part of a trajectory with denaturation time th) and the rest (the denatured
//part). th is clamped to the series, so before+after is always the whole series.
//The returned slices share memory with series.
func SplitTimeline(series []float64, th int) (before, after []float64) {
	cut := clamp(th+1, 0, len(series))
	return series[:cut], series[cut:]
}

//TimelineMeans returns, for each trajectory (row of fractions), the mean helix
//fraction before and after its own denaturation time, th[row]. A segment with
//no timesteps has a NaN mean.
func TimelineMeans(fractions mat.Matrix, th []int) (before, after []float64, err error) {
	r, _ := fractions.Dims()
	if len(th) != r {
		return nil, nil, fmt.Errorf("stride: %d denaturation times for %d trajectories", len(th), r)
	}
	before = make([]float64, r)
	after = make([]float64, r)
	for i := 0; i < r; i++ {
		b, a := SplitTimeline(mat.Row(nil, i, fractions), th[i])
		before[i] = Mean(b)
		after[i] = Mean(a)
	}
	return before, after, nil
}

//Transitions holds the denaturation times of a set of trajectories.
type Transitions struct {
	//Denaturation time of each trajectory, in row order.
	Th []int
	//Mean denaturation time of the trajectories in each group, by group name.
	GroupMean map[string]float64
}

//CalculateTh finds the denaturation time of every trajectory (row of fractions)
//and the mean denaturation time of each group.
func CalculateTh(fractions mat.Matrix, groups []Group, window int, threshold float64) (*Transitions, error) {
	r, _ := fractions.Dims()
	ret := &Transitions{Th: make([]int, r), GroupMean: make(map[string]float64, len(groups))}
	ths := make([]float64, r)
	for i := 0; i < r; i++ {
		ret.Th[i] = DenatureTime(mat.Row(nil, i, fractions), window, threshold)
		ths[i] = float64(ret.Th[i])
	}
	for _, g := range groups {
		sel, err := Select(ths, g.Cols)
		if err != nil {
			return nil, fmt.Errorf("stride: group %s: %w", g.Name, err)
		}
		if len(sel) == 0 {
			return nil, fmt.Errorf("stride: group %s has no trajectories", g.Name)
		}
		ret.GroupMean[g.Name] = Mean(sel)
	}
	return ret, nil
}
