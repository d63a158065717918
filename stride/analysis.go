/*
 * analysis.go, part of mdsim.
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
	"path/filepath"

	"github.com/ajsmith/mdsim"
	"github.com/ajsmith/mdsim/histo"
	"github.com/ajsmith/mdsim/internal/logger"
	"gonum.org/v1/gonum/mat"
)

//Segments of a trajectory's timeline, used as columns of Report.Histograms.
const (
	Native = iota
	Denatured
)

//Input is everything an analysis run needs to know.
type Input struct {
	StrideFiles []string
	Contacts    []ContactFile
	Groups      []Group
	Threshold   float64
	Window      int
	Bins        int
}

//TrajectoryReport holds the results for one trajectory.
type TrajectoryReport struct {
	Row      int
	File     string
	Label    string
	Fraction []float64
	Smoothed []float64
	Th       int
	//Mean helix fraction up to and including Th, and after it.
	MeanBefore float64
	MeanAfter  float64
	//Mean contact count per residue before and after Th. nil if the trajectory
	//has no contact file.
	ContactBefore []float64
	ContactAfter  []float64
}

//GroupReport holds the results for one group of trajectories.
type GroupReport struct {
	Group
	Stats  GroupStats
	MeanTh float64
	//Mean, over the trajectories of the group, of their TrajectoryReport fields.
	MeanBefore    float64
	MeanAfter     float64
	ContactBefore []float64
	ContactAfter  []float64
}

//Report is the result of an analysis run.
type Report struct {
	Threshold    float64
	Window       int
	Trajectories []*TrajectoryReport
	Groups       []*GroupReport
	//Helix fraction distributions. Rows are groups, in the order of Groups,
	//columns are the Native and Denatured segments.
	Histograms *histo.Matrix
}

//Analyze reads the STRIDE (and contact) files in in, and computes every statistic
//mdsim reports. It doesn't write anything.
func Analyze(in Input) (*Report, error) {
	if len(in.Groups) == 0 {
		return nil, fmt.Errorf("stride: no groups given")
	}
	helices, totals, err := ReadFiles(in.StrideFiles)
	if err != nil {
		return nil, mdsim.Decorate(err, "stride.Analyze")
	}
	fractions, err := Fractions(helices, totals)
	if err != nil {
		return nil, err
	}
	tr, err := CalculateTh(fractions, in.Groups, in.Window, in.Threshold)
	if err != nil {
		return nil, err
	}
	before, after, err := TimelineMeans(fractions, tr.Th)
	if err != nil {
		return nil, err
	}
	rows, steps := fractions.Dims()
	if w := Window(in.Window, steps); w == 0 {
		logger.Warn("%d timesteps are too few to smooth, the raw helix fractions will be used", steps)
	} else {
		logger.Debug("smoothing window: %d", w)
	}
	rep := &Report{Threshold: in.Threshold, Window: in.Window}
	for i := 0; i < rows; i++ {
		f := mat.Row(nil, i, fractions)
		rep.Trajectories = append(rep.Trajectories, &TrajectoryReport{
			Row:        i,
			File:       in.StrideFiles[i],
			Label:      filepath.Base(in.StrideFiles[i]),
			Fraction:   f,
			Smoothed:   Smooth(f, in.Window),
			Th:         tr.Th[i],
			MeanBefore: before[i],
			MeanAfter:  after[i],
		})
	}
	if err := readContacts(rep, in.Contacts); err != nil {
		return nil, mdsim.Decorate(err, "stride.Analyze")
	}
	bins := in.Bins
	if bins < 1 {
		bins = 10
	}
	rep.Histograms = histo.NewMatrix(len(in.Groups), 2, histo.Dividers(bins, 0, 1))
	for gi, g := range in.Groups {
		gr, err := groupReport(rep, g, helices, totals)
		if err != nil {
			return nil, err
		}
		gr.MeanTh = tr.GroupMean[g.Name]
		if gr.Stats.Undefined > 0 {
			logger.Warn("group %s: %d of %d timesteps have no classified residues, their helix fraction is undefined", g.Name, gr.Stats.Undefined, gr.Stats.Steps)
		}
		for _, row := range g.Cols {
			t := rep.Trajectories[row]
			b, a := SplitTimeline(t.Fraction, t.Th)
			rep.Histograms.AddData(gi, Native, b...)
			rep.Histograms.AddData(gi, Denatured, a...)
		}
		rep.Groups = append(rep.Groups, gr)
	}
	rep.Histograms.NormalizeAll()
	return rep, nil
}

func groupReport(rep *Report, g Group, helices, totals mat.Matrix) (*GroupReport, error) {
	pair, err := AggregateGroup(helices, totals, g.Cols)
	if err != nil {
		return nil, fmt.Errorf("stride: group %s: %w", g.Name, err)
	}
	st, err := Stats(pair)
	if err != nil {
		return nil, err
	}
	gr := &GroupReport{Group: g, Stats: st}
	var mb, ma []float64
	var cb, ca *mat.Dense
	var ncont int
	for i, row := range g.Cols {
		t := rep.Trajectories[row]
		t.Label = g.Label(i)
		mb = append(mb, t.MeanBefore)
		ma = append(ma, t.MeanAfter)
		if t.ContactBefore == nil {
			continue
		}
		if cb == nil {
			cb = mat.NewDense(len(g.Cols), len(t.ContactBefore), nil)
			ca = mat.NewDense(len(g.Cols), len(t.ContactAfter), nil)
		} else if _, c := cb.Dims(); c != len(t.ContactBefore) {
			return nil, &mdsim.ShapeError{What: "residues in the contact files of group " + g.Name, Want: c, Got: len(t.ContactBefore)}
		}
		cb.SetRow(ncont, t.ContactBefore)
		ca.SetRow(ncont, t.ContactAfter)
		ncont++
	}
	gr.MeanBefore = Mean(mb)
	gr.MeanAfter = Mean(ma)
	if ncont > 0 {
		sel := make([]int, ncont)
		for i := range sel {
			sel[i] = i
		}
		//errors are impossible here, sel is always in range.
		gr.ContactBefore, _ = GroupMean(cb, sel)
		gr.ContactAfter, _ = GroupMean(ca, sel)
	}
	return gr, nil
}

//readContacts reads the contact files and puts the before/after frequencies in the
//report of the corresponding trajectory.
func readContacts(rep *Report, contacts []ContactFile) error {
	for _, c := range contacts {
		if c.Row < 0 || c.Row >= len(rep.Trajectories) {
			return fmt.Errorf("stride: contact file %s: row %d out of range, %d trajectories", c.File, c.Row, len(rep.Trajectories))
		}
		t := rep.Trajectories[c.Row]
		if t.ContactBefore != nil {
			return fmt.Errorf("stride: contact file %s: trajectory %d already has contacts", c.File, c.Row)
		}
		m, err := ReadContacts(c.File)
		if err != nil {
			return err
		}
		if r, _ := m.Dims(); r != len(t.Fraction) {
			return &mdsim.ShapeError{What: "timesteps (STRIDE file " + t.File + ")", Want: len(t.Fraction), Got: r, Filename: c.File}
		}
		cut := clamp(t.Th+1, 0, len(t.Fraction))
		t.ContactBefore = ContactFrequency(m, 0, cut)
		t.ContactAfter = ContactFrequency(m, cut, len(t.Fraction))
	}
	return nil
}
