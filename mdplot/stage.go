/*
 * stage.go, part of mdsim.
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

	"github.com/ajsmith/mdsim/namd"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Stage draws the quantities of a simulation stage against the timestep, one
//panel per quantity, stacked, with the suptitle on top.
func Stage(st namd.Stage, s *namd.Series, suptitle, name string) (Figure, error) {
	panels := make([]*plot.Plot, 0, len(st.Panels))
	for i, q := range st.Panels {
		ys, ok := s.Values[q]
		if !ok || len(ys) != len(s.TS) {
			return Figure{}, fmt.Errorf("mdplot: stage %s: no %s series", st.Name, q.Label())
		}
		p := plot.New()
		if i == 0 {
			p.Title.Text = suptitle
			p.Title.Padding = 3 * vg.Millimeter
		}
		p.X.Label.Text = "Timestep"
		p.Y.Label.Text = fmt.Sprintf("%s (%s)", q.Label(), q.Unit())
		p.Add(plotter.NewGrid())
		pts := make(plotter.XYs, len(ys))
		for j := range ys {
			pts[j] = plotter.XY{X: s.TS[j], Y: ys[j]}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return Figure{}, fmt.Errorf("mdplot: stage %s: %w", st.Name, err)
		}
		l.Color = Color(i, len(st.Panels))
		p.Add(l)
		panels = append(panels, p)
	}
	if len(panels) == 0 {
		return Figure{}, fmt.Errorf("mdplot: stage %s has nothing to plot", st.Name)
	}
	return renderPanels(panels, name, Width, PanelHeight)
}
