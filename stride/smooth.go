/*
 * smooth.go, part of mdsim.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Smoothing window the order-1 Savitzky-Golay filter can't go below.
const minWindow = 3

//Window returns the window Smooth actually uses for a series of n points
//when asked for window: at most half the series, odd, and smaller than n.
//It returns 0 if no valid window fits.
func Window(window, n int) int {
	w := window
	if half := n / 2; w > half {
		w = half
	}
	if w%2 == 0 {
		w--
	}
	if w < minWindow || w >= n {
		return 0
	}
	return w
}

//Smooth applies a Savitzky-Golay filter of polynomial order 1 to series, and returns
//the result in a new slice. Inside the series, that is the mean of the window centered
//in each point. For the first and last half-windows a straight line is fitted to the
//first (last) window and evaluated at each point.
//If the series is too short for any window, an unchanged copy is returned.
func Smooth(series []float64, window int) []float64 {
	n := len(series)
	ret := make([]float64, n)
	w := Window(window, n)
	if w == 0 {
		copy(ret, series)
		return ret
	}
	h := w / 2
	//No running sum: an undefined (NaN) point must only spoil the windows that hold it.
	for i := h; i < n-h; i++ {
		ret[i] = floats.Sum(series[i-h:i+h+1]) / float64(w)
	}
	x := make([]float64, w)
	for i := range x {
		x[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(x, series[:w], nil, false)
	for i := 0; i < h; i++ {
		ret[i] = alpha + beta*float64(i)
	}
	start := n - w
	alpha, beta = stat.LinearRegression(x, series[start:], nil, false)
	for i := n - h; i < n; i++ {
		ret[i] = alpha + beta*float64(i-start)
	}
	return ret
}

//LastAbove returns the last index of series whose value is larger than threshold,
//or 0 if there is none.
func LastAbove(series []float64, threshold float64) int {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] > threshold {
			return i
		}
	}
	return 0
}

//DenatureTime returns the helix denaturation time of a helix fraction series: the last
//timestep in which the smoothed series is above threshold. A trajectory that unfolds
//and folds back reports its last excursion above the threshold, not the first crossing.
func DenatureTime(series []float64, window int, threshold float64) int {
	return LastAbove(Smooth(series, window), threshold)
}
