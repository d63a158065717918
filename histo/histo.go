/*
 * histo.go, part of mdsim.
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

//Package histo builds fixed-divider histograms of helix fractions, and
//matrices of them, to compare the distributions of groups of trajectories.
package histo

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Data is a histogram. Bins are half-open, [d_i, d_i+1), except the last one,
//which also holds the value of the last divider, so a fraction of exactly 1
//is counted when the dividers go from 0 to 1.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//Dividers returns n+1 evenly spaced dividers for n bins between min and max.
func Dividers(n int, min, max float64) []float64 {
	if n < 1 {
		panic("mdsim/histo.Dividers: at least one bin is needed")
	}
	return floats.Span(make([]float64, n+1), min, max)
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//if an ID for the histogram is given, it will be set. If not, the ID will
//be set to -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 {
		panic("mdsim/histo.NewData: at least 2 dividers are needed")
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	d.AddData(rawdata...)
	return d
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//bin returns the bin where v goes, or -1 if it is off limits or NaN.
func (D *Data) bin(v float64) int {
	last := len(D.dividers) - 1
	if math.IsNaN(v) || v < D.dividers[0] || v > D.dividers[last] {
		return -1
	}
	if v == D.dividers[last] {
		return last - 1
	}
	for j := 0; j < last; j++ {
		if D.dividers[j] <= v && v < D.dividers[j+1] {
			return j
		}
	}
	return -1
}

//AddData adds the given data point(s) to the histogram. Points out of the
//dividers' range, and NaNs, are omitted and not counted in the total.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		if b := D.bin(v); b >= 0 {
			D.histo[b]++
			D.total++
		}
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Total returns the number of points in the histogram.
func (D *Data) Total() int {
	return D.total
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram, so the bins add up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

//View returns the bins of the histogram, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//Mids returns the middle point of each bin.
func (D *Data) Mids() []float64 {
	ret := make([]float64, len(D.histo))
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//A matrix of histograms, all with the same dividers. In mdsim the rows are
//groups of trajectories and the columns segments of the timeline.
type Matrix struct {
	rows, cols int
	d          []*Data //row-major
	dividers   []float64
}

//NewMatrix returns a new r x c matrix filled with empty histograms with the given dividers.
func NewMatrix(r, c int, dividers []float64) *Matrix {
	M := &Matrix{rows: r, cols: c, d: make([]*Data, r*c), dividers: dividers}
	for i := range M.d {
		M.d[i] = NewData(dividers, nil, i)
	}
	return M
}

func (M *Matrix) Dims() (int, int) {
	return M.rows, M.cols
}

//Check returns an error if the given row and column are out of range.
func (M *Matrix) Check(r, c int) error {
	if r < 0 || r >= M.rows {
		return fmt.Errorf("mdsim/histo: row %d out of range", r)
	}
	if c < 0 || c >= M.cols {
		return fmt.Errorf("mdsim/histo: column %d out of range", c)
	}
	return nil
}

//returns the index in the []*Data slice of a matrix given
//the row and column indexes. Panics if they are out of range.
func (M *Matrix) rc2i(r, c int) int {
	if err := M.Check(r, c); err != nil {
		panic(err.Error())
	}
	return M.cols*r + c
}

//View returns the histogram in the r,c position in the matrix, not a copy.
func (M *Matrix) View(r, c int) *Data {
	return M.d[M.rc2i(r, c)]
}

//AddData adds one or more data points to the histogram in the r,c position.
func (M *Matrix) AddData(r, c int, point ...float64) {
	M.d[M.rc2i(r, c)].AddData(point...)
}

//NormalizeAll normalizes all the histograms in the matrix
func (M *Matrix) NormalizeAll() {
	for _, v := range M.d {
		v.Normalize()
	}
}
