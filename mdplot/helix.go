/*
 * helix.go, part of mdsim.
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

package mdplot

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/ajsmith/mdsim/internal/logger"
	"github.com/ajsmith/mdsim/stride"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Options control the helix content figures.
type Options struct {
	Title string
	//Output is the name of the group time series figure. Its extension sets
	//the format of every other figure.
	Output string
	//Only every Stride-th timestep is drawn in the group time series.
	Stride int
}

//points returns the (i, ys[i]) point for every step-th i. Undefined values
//are left out.
func points(ys []float64, step int) plotter.XYs {
	if step < 1 {
		step = 1
	}
	pts := make(plotter.XYs, 0, len(ys)/step+1)
	for i := 0; i < len(ys); i += step {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: ys[i]})
	}
	return pts
}

//defined returns a copy of vs where undefined values are replaced by 0.
//what names the values in the warning logged for each replacement.
func defined(vs []float64, what func(i int) string) plotter.Values {
	ret := make(plotter.Values, len(vs))
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			logger.Warn("%s is undefined, drawn as 0", what(i))
			continue
		}
		ret[i] = v
	}
	return ret
}

func fractionPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Timestep"
	p.Y.Label.Text = "Helix fraction"
	p.Add(plotter.NewGrid())
	return p
}

//GroupSeries draws the helix fraction time series of each group, one line per
//group, with one point every so many timesteps, as given by every.
func GroupSeries(rep *stride.Report, title string, every int, name string) (Figure, error) {
	p := fractionPlot(title)
	p.Legend.Top = true
	for i, g := range rep.Groups {
		pts := points(g.Stats.Fraction, every)
		if len(pts) == 0 {
			logger.Warn("group %s has no defined helix fraction, not drawn", g.Name)
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return Figure{}, err
		}
		l.Color = Color(i, len(rep.Groups))
		l.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(g.Name, l)
	}
	return render(p, name, Width, Height)
}

//Trajectory draws the raw and smoothed helix fraction of a trajectory, the
//threshold, and a mark at its denaturation time.
func Trajectory(t *stride.TrajectoryReport, threshold float64, name string) (Figure, error) {
	p := fractionPlot(t.Label)
	c := Color(0, 1)
	if pts := points(t.Fraction, 1); len(pts) > 0 {
		raw, err := plotter.NewLine(pts)
		if err != nil {
			return Figure{}, err
		}
		raw.Color = faded(c)
		p.Add(raw)
		p.Legend.Add("raw", raw)
	}
	if pts := points(t.Smoothed, 1); len(pts) > 0 {
		sm, err := plotter.NewLine(pts)
		if err != nil {
			return Figure{}, err
		}
		sm.Color = c
		sm.Width = vg.Points(1.5)
		p.Add(sm)
		p.Legend.Add("smoothed", sm)
	}
	last := float64(len(t.Fraction) - 1)
	if last < 1 {
		last = 1
	}
	th, err := plotter.NewLine(plotter.XYs{{X: 0, Y: threshold}, {X: last, Y: threshold}})
	if err != nil {
		return Figure{}, err
	}
	th.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(th)
	p.Legend.Add(fmt.Sprintf("threshold %.2f", threshold), th)
	mark, err := plotter.NewLine(plotter.XYs{{X: float64(t.Th), Y: 0}, {X: float64(t.Th), Y: 1}})
	if err != nil {
		return Figure{}, err
	}
	mark.Color = Color(3, 4)
	mark.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(mark)
	p.Legend.Add(fmt.Sprintf("t_h = %d", t.Th), mark)
	p.Y.Min, p.Y.Max = 0, 1
	return render(p, name, Width, Height)
}

//ThBoxPlot draws, for each group, a box plot of the denaturation times of
//its trajectories.
func ThBoxPlot(rep *stride.Report, title, name string) (Figure, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Denaturation time (timestep)"
	p.Add(plotter.NewGrid())
	names := make([]string, 0, len(rep.Groups))
	for i, g := range rep.Groups {
		names = append(names, g.Name)
		ths := make(plotter.Values, 0, len(g.Cols))
		for _, row := range g.Cols {
			ths = append(ths, float64(rep.Trajectories[row].Th))
		}
		if len(ths) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(30), float64(i), ths)
		if err != nil {
			return Figure{}, err
		}
		b.FillColor = faded(Color(i, len(rep.Groups)))
		p.Add(b)
	}
	p.NominalX(names...)
	return render(p, name, Width, Height)
}

//beforeAfter adds the before and after bars to p, side by side.
func beforeAfter(p *plot.Plot, before, after plotter.Values) error {
	w := vg.Points(14)
	b, err := plotter.NewBarChart(before, w)
	if err != nil {
		return err
	}
	b.Color = Color(0, 2)
	b.Offset = -w / 2
	a, err := plotter.NewBarChart(after, w)
	if err != nil {
		return err
	}
	a.Color = Color(1, 2)
	a.Offset = w / 2
	p.Add(b, a)
	p.Legend.Add("before t_h", b)
	p.Legend.Add("after t_h", a)
	p.Legend.Top = true
	return nil
}

//MeanBars draws, for each group, the mean helix fraction before and after
//the denaturation time.
func MeanBars(rep *stride.Report, title, name string) (Figure, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Mean helix fraction"
	var before, after []float64
	names := make([]string, 0, len(rep.Groups))
	for _, g := range rep.Groups {
		names = append(names, g.Name)
		before = append(before, g.MeanBefore)
		after = append(after, g.MeanAfter)
	}
	what := func(when string) func(int) string {
		return func(i int) string { return fmt.Sprintf("mean helix fraction %s t_h of group %s", when, names[i]) }
	}
	if err := beforeAfter(p, defined(before, what("before")), defined(after, what("after"))); err != nil {
		return Figure{}, err
	}
	p.NominalX(names...)
	p.Y.Min = 0
	return render(p, name, Width, Height)
}

//ContactBars draws the mean contact count of each residue before and after the
//denaturation time, averaged over the trajectories of the group that have
//contact data.
func ContactBars(g *stride.GroupReport, name string) (Figure, error) {
	if g.ContactBefore == nil {
		return Figure{}, fmt.Errorf("mdplot: group %s has no contact data", g.Name)
	}
	p := plot.New()
	p.Title.Text = g.Name + ": contacts"
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Mean contacts"
	what := func(when string) func(int) string {
		return func(i int) string { return fmt.Sprintf("contacts of residue %d %s t_h in group %s", i+1, when, g.Name) }
	}
	if err := beforeAfter(p, defined(g.ContactBefore, what("before")), defined(g.ContactAfter, what("after"))); err != nil {
		return Figure{}, err
	}
	labels := make([]string, len(g.ContactBefore))
	for i := range labels {
		labels[i] = fmt.Sprint(i + 1)
	}
	p.NominalX(labels...)
	p.Y.Min = 0
	return render(p, name, Width, Height)
}

//Histograms draws, one panel per group, the distribution of helix fractions
//before (native) and after (denatured) the denaturation time.
func Histograms(rep *stride.Report, name string) (Figure, error) {
	if rep.Histograms == nil {
		return Figure{}, fmt.Errorf("mdplot: no histograms in the report")
	}
	if r, c := rep.Histograms.Dims(); r != len(rep.Groups) || c != 2 {
		return Figure{}, fmt.Errorf("mdplot: %dx%d histograms for %d groups", r, c, len(rep.Groups))
	}
	panels := make([]*plot.Plot, 0, len(rep.Groups))
	for gi, g := range rep.Groups {
		p := plot.New()
		p.Title.Text = g.Name
		p.X.Label.Text = "Helix fraction"
		p.Y.Label.Text = "Frequency"
		p.Add(plotter.NewGrid())
		for seg, label := range []string{stride.Native: "native", stride.Denatured: "denatured"} {
			h := rep.Histograms.View(gi, seg)
			mids, counts := h.Mids(), h.View()
			pts := make(plotter.XYs, len(mids))
			for i := range mids {
				pts[i] = plotter.XY{X: mids[i], Y: counts[i]}
			}
			l, err := plotter.NewLine(pts)
			if err != nil {
				return Figure{}, err
			}
			l.StepStyle = plotter.MidStep
			l.Color = Color(seg, 2)
			l.Width = vg.Points(1.5)
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return Figure{}, err
			}
			s.GlyphStyle.Shape = glyph(seg)
			s.GlyphStyle.Color = l.Color
			p.Add(l, s)
			p.Legend.Add(label, l, s)
		}
		p.Legend.Top = true
		p.X.Min, p.X.Max = 0, 1
		panels = append(panels, p)
	}
	if len(panels) == 0 {
		return Figure{}, fmt.Errorf("mdplot: no groups in the report")
	}
	return renderPanels(panels, name, Width, PanelHeight)
}

//Helix renders every helix content figure of the report: the group time series
//(named o.Output), one chart per trajectory, the denaturation time box plot, the
//before/after helix fraction bars, the helix fraction histograms, and the contact
//bars of the groups with contact data. Trajectory charts are named after the
//row and the label of the trajectory. Two figures with the same name are an error.
func Helix(rep *stride.Report, o Options) ([]Figure, error) {
	ext := filepath.Ext(o.Output)
	if ext == "" {
		ext = ".png"
	}
	var figs []Figure
	names := make(map[string]bool)
	add := func(f Figure, err error) error {
		if err != nil {
			return err
		}
		if names[f.Name] {
			return fmt.Errorf("mdplot: two figures named %s", f.Name)
		}
		names[f.Name] = true
		figs = append(figs, f)
		return nil
	}
	if err := add(GroupSeries(rep, o.Title, o.Stride, o.Output)); err != nil {
		return nil, err
	}
	for _, t := range rep.Trajectories {
		id := fmt.Sprintf("%02d_%s", t.Row, t.Label)
		if err := add(Trajectory(t, rep.Threshold, FileName("helix", id, ext))); err != nil {
			return nil, err
		}
	}
	if err := add(ThBoxPlot(rep, o.Title, FileName("th_boxplot", "", ext))); err != nil {
		return nil, err
	}
	if err := add(MeanBars(rep, o.Title, FileName("helix_before_after", "", ext))); err != nil {
		return nil, err
	}
	if err := add(Histograms(rep, FileName("histograms", "", ext))); err != nil {
		return nil, err
	}
	for _, g := range rep.Groups {
		if g.ContactBefore == nil {
			continue
		}
		if err := add(ContactBars(g, FileName("contacts", g.Name, ext))); err != nil {
			return nil, err
		}
	}
	return figs, nil
}
