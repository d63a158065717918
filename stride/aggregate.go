/*
 * aggregate.go, part of mdsim.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Group is a named set of trajectories that share an experimental condition
//(for instance, the solvent). Cols are the rows of the trajectory matrices
//that belong to the group, and Trajectories their labels, in the same order.
type Group struct {
	Name         string
	Cols         []int
	Trajectories []string
}

//Label returns the label of the i-th trajectory in the group, or a label
//built from the row number if the group doesn't have one.
func (G Group) Label(i int) string {
	if i < len(G.Trajectories) && G.Trajectories[i] != "" {
		return G.Trajectories[i]
	}
	return fmt.Sprintf("%s %d", G.Name, G.Cols[i])
}

func checkRows(m mat.Matrix, rows []int) error {
	r, _ := m.Dims()
	if len(rows) == 0 {
		return fmt.Errorf("stride: empty row selection")
	}
	for _, v := range rows {
		if v < 0 || v >= r {
			return fmt.Errorf("stride: row %d out of range, the matrix has %d rows", v, r)
		}
	}
	return nil
}

//GroupSum returns the column-wise sum of the given rows of m. Rows don't
//need to be contiguous, or sorted.
func GroupSum(m mat.Matrix, rows []int) ([]float64, error) {
	if err := checkRows(m, rows); err != nil {
		return nil, err
	}
	_, c := m.Dims()
	ret := make([]float64, c)
	row := make([]float64, c)
	for _, i := range rows {
		floats.Add(ret, mat.Row(row, i, m))
	}
	return ret, nil
}

//GroupMean returns the column-wise mean of the given rows of m.
func GroupMean(m mat.Matrix, rows []int) ([]float64, error) {
	ret, err := GroupSum(m, rows)
	if err != nil {
		return nil, err
	}
	floats.Scale(1/float64(len(rows)), ret)
	return ret, nil
}

//AggregateGroup sums the helix and total counts of the trajectories in cols.
//It returns a 2-row matrix, the first row with the helix counts and the second
//with the total counts, which is what Stats takes.
func AggregateGroup(helices, totals mat.Matrix, cols []int) (*mat.Dense, error) {
	hr, hc := helices.Dims()
	tr, tc := totals.Dims()
	if hr != tr || hc != tc {
		return nil, fmt.Errorf("stride: helix (%dx%d) and total (%dx%d) matrices don't match", hr, hc, tr, tc)
	}
	h, err := GroupSum(helices, cols)
	if err != nil {
		return nil, err
	}
	t, err := GroupSum(totals, cols)
	if err != nil {
		return nil, err
	}
	ret := mat.NewDense(2, hc, nil)
	ret.SetRow(0, h)
	ret.SetRow(1, t)
	return ret, nil
}

//Select returns the elements of values at the given indexes.
func Select(values []float64, idx []int) ([]float64, error) {
	ret := make([]float64, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(values) {
			return nil, fmt.Errorf("stride: index %d out of range, %d values", i, len(values))
		}
		ret = append(ret, values[i])
	}
	return ret, nil
}
