/*
 * figure.go, part of mdsim.
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

//Package mdplot renders the mdsim figures with gonum/plot. Figures are rendered
//into memory, and only written, by WriteAll, once all of them are ready, so a
//failed run leaves no partial output behind.
package mdplot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Default figure sizes.
const (
	Width       = 6 * vg.Inch
	Height      = 4 * vg.Inch
	PanelHeight = 3 * vg.Inch
)

//Figure is a rendered image, and the name of the file it goes to.
type Figure struct {
	Name string
	Data []byte
}

//Format returns the image format for the file name, from its extension.
//Names without extension are png.
func Format(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

//FileName returns a file name for the figure of the given kind and identity,
//with the extension ext. Characters that don't belong in a file name are
//replaced by underscores.
func FileName(kind, id, ext string) string {
	safe := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}
	name := kind
	if id != "" {
		name += "_" + strings.Map(safe, id)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + ext
}

//render draws p into memory, in the format given by the extension of name.
func render(p *plot.Plot, name string, w, h vg.Length) (Figure, error) {
	wt, err := p.WriterTo(w, h, Format(name))
	if err != nil {
		return Figure{}, fmt.Errorf("mdplot: %s: %w", name, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return Figure{}, fmt.Errorf("mdplot: %s: %w", name, err)
	}
	return Figure{Name: name, Data: buf.Bytes()}, nil
}

//renderPanels draws the plots one on top of the other in a single figure.
func renderPanels(panels []*plot.Plot, name string, w, h vg.Length) (Figure, error) {
	if len(panels) == 1 {
		return render(panels[0], name, w, h)
	}
	c, err := draw.NewFormattedCanvas(w, h*vg.Length(len(panels)), Format(name))
	if err != nil {
		return Figure{}, fmt.Errorf("mdplot: %s: %w", name, err)
	}
	rows := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	t := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(rows, t, draw.New(c))
	for i, p := range panels {
		p.Draw(canvases[i][0])
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return Figure{}, fmt.Errorf("mdplot: %s: %w", name, err)
	}
	return Figure{Name: name, Data: buf.Bytes()}, nil
}

//WriteAll writes the figures to dir, creating it if needed. Figures with an
//absolute name are written to that name. Every figure goes first to a temporary
//file next to its destination, and the temporary files are only renamed once all
//of them are written. If anything fails, no figure is left behind.
func WriteAll(dir string, figs []Figure) (err error) {
	type pending struct{ tmp, name string }
	var todo []pending
	var done []string
	defer func() {
		if err == nil {
			return
		}
		for _, p := range todo {
			os.Remove(p.tmp)
		}
		for _, name := range done {
			os.Remove(name)
		}
	}()
	for _, f := range figs {
		name := f.Name
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return err
		}
		tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
		if err != nil {
			return err
		}
		todo = append(todo, pending{tmp: tmp.Name(), name: name})
		_, err = tmp.Write(f.Data)
		if err == nil {
			err = tmp.Chmod(0o644)
		}
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	for i, p := range todo {
		if err := os.Rename(p.tmp, p.name); err != nil {
			todo = todo[i:]
			return err
		}
		done = append(done, p.name)
	}
	return nil
}
