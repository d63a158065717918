package mdplot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajsmith/mdsim/histo"
	"github.com/ajsmith/mdsim/namd"
	"github.com/ajsmith/mdsim/stride"
)

var pngMagic = []byte("\x89PNG")

func series(n, th int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		if i <= th {
			ret[i] = 0.8
		} else {
			ret[i] = 0.2
		}
	}
	return ret
}

func testReport() *stride.Report {
	rep := &stride.Report{Threshold: 0.4, Window: 1}
	for i, th := range []int{19, 9, 29} {
		f := series(40, th)
		rep.Trajectories = append(rep.Trajectories, &stride.TrajectoryReport{
			Row: i, Label: "traj " + string(rune('a'+i)), Fraction: f, Smoothed: f, Th: th,
			MeanBefore: 0.8, MeanAfter: 0.2,
		})
	}
	undefined := series(40, 19)
	undefined[3] = math.NaN()
	rep.Groups = []*stride.GroupReport{
		{
			Group:         stride.Group{Name: "ibu", Cols: []int{0, 1}},
			Stats:         stride.GroupStats{Fraction: undefined, Steps: 40, Undefined: 1},
			MeanTh:        14,
			MeanBefore:    math.NaN(),
			MeanAfter:     0.2,
			ContactBefore: []float64{1, 0, 2},
			ContactAfter:  []float64{0, 0, 1},
		},
		{
			Group:      stride.Group{Name: "water/5", Cols: []int{2}},
			Stats:      stride.GroupStats{Fraction: series(40, 29), Steps: 40},
			MeanTh:     29,
			MeanBefore: 0.8,
			MeanAfter:  0.2,
		},
	}
	rep.Histograms = histo.NewMatrix(2, 2, histo.Dividers(10, 0, 1))
	for gi, g := range rep.Groups {
		for _, row := range g.Cols {
			b, a := stride.SplitTimeline(rep.Trajectories[row].Fraction, rep.Trajectories[row].Th)
			rep.Histograms.AddData(gi, stride.Native, b...)
			rep.Histograms.AddData(gi, stride.Denatured, a...)
		}
	}
	rep.Histograms.NormalizeAll()
	return rep
}

func TestFileName(Te *testing.T) {
	cases := []struct {
		kind, id, ext, want string
	}{
		{"helix", "ibu 1", ".png", "helix_ibu_1.png"},
		{"contacts", "water/5", "svg", "contacts_water_5.svg"},
		{"th_boxplot", "", ".pdf", "th_boxplot.pdf"},
	}
	for _, c := range cases {
		if got := FileName(c.kind, c.id, c.ext); got != c.want {
			Te.Errorf("FileName(%q, %q, %q) = %q, want %q", c.kind, c.id, c.ext, got, c.want)
		}
	}
	if f := Format("out/sstructure.SVG"); f != "svg" {
		Te.Errorf("format %s, want svg", f)
	}
	if f := Format("sstructure"); f != "png" {
		Te.Errorf("format %s, want png", f)
	}
}

func TestHelix(Te *testing.T) {
	figs, err := Helix(testReport(), Options{Title: "test", Output: "sstructure.png", Stride: 5})
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{
		"sstructure.png",
		"helix_00_traj_a.png", "helix_01_traj_b.png", "helix_02_traj_c.png",
		"th_boxplot.png", "helix_before_after.png", "histograms.png",
		"contacts_ibu.png",
	}
	if len(figs) != len(want) {
		Te.Fatalf("%d figures, want %d", len(figs), len(want))
	}
	for i, f := range figs {
		if f.Name != want[i] {
			Te.Errorf("figure %d is %s, want %s", i, f.Name, want[i])
		}
		if !bytes.HasPrefix(f.Data, pngMagic) {
			Te.Errorf("figure %s is not a png", f.Name)
		}
	}
}

func TestHelixSharedLabels(Te *testing.T) {
	rep := testReport()
	for i, l := range []string{"1", "2", "1"} {
		rep.Trajectories[i].Label = l
	}
	figs, err := Helix(rep, Options{Output: "sstructure.png", Stride: 1})
	if err != nil {
		Te.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, f := range figs {
		if seen[f.Name] {
			Te.Errorf("figure name %s used twice", f.Name)
		}
		seen[f.Name] = true
	}
	for _, name := range []string{"helix_00_1.png", "helix_01_2.png", "helix_02_1.png"} {
		if !seen[name] {
			Te.Errorf("no figure %s", name)
		}
	}
	if _, err := Helix(rep, Options{Output: "helix_02_1.png", Stride: 1}); err == nil {
		Te.Error("two figures with the same name accepted")
	}
}

func TestHelixSVG(Te *testing.T) {
	figs, err := Helix(testReport(), Options{Output: "out.svg", Stride: 1})
	if err != nil {
		Te.Fatal(err)
	}
	for _, f := range figs {
		if !strings.HasSuffix(f.Name, ".svg") || !bytes.Contains(f.Data, []byte("<svg")) {
			Te.Errorf("figure %s is not an svg", f.Name)
		}
	}
}

func TestHelixBadFormat(Te *testing.T) {
	if _, err := Helix(testReport(), Options{Output: "out.docx", Stride: 1}); err == nil {
		Te.Error("unsupported format accepted")
	}
}

func TestContactBarsNoData(Te *testing.T) {
	rep := testReport()
	if _, err := ContactBars(rep.Groups[1], "c.png"); err == nil {
		Te.Error("group without contacts plotted")
	}
}

func TestStage(Te *testing.T) {
	s := &namd.Series{
		TS: []float64{0, 100, 200, 300},
		Values: map[namd.Quantity][]float64{
			namd.Temperature: {0, 100, 200, 300},
			namd.CellSize:    {60, 59.5, 59.2, 59.1},
		},
	}
	st, _ := namd.StageByName("equil")
	f, err := Stage(st, s, "Equilibration", "equil.png")
	if err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(f.Data, pngMagic) {
		Te.Error("not a png")
	}
	st, _ = namd.StageByName("quench")
	if _, err := Stage(st, s, "Quench", "quench.png"); err == nil {
		Te.Error("missing total energy series not detected")
	}
}

func TestWriteAllFailure(Te *testing.T) {
	dir := Te.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "taken"), []byte("x"), 0o644); err != nil {
		Te.Fatal(err)
	}
	figs := []Figure{
		{Name: "a.png", Data: []byte("a")},
		{Name: "b.png", Data: []byte("b")},
		{Name: filepath.Join("taken", "c.png"), Data: []byte("c")},
	}
	if err := WriteAll(dir, figs); err == nil {
		Te.Fatal("writing under a regular file succeeded")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "taken" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		Te.Errorf("files left after a failed write: %v", names)
	}
}

func TestWriteAll(Te *testing.T) {
	dir := Te.TempDir()
	abs := filepath.Join(Te.TempDir(), "abs", "b.png")
	figs := []Figure{{Name: "a.png", Data: []byte("a")}, {Name: abs, Data: []byte("b")}}
	if err := WriteAll(filepath.Join(dir, "new"), figs); err != nil {
		Te.Fatal(err)
	}
	for name, want := range map[string]string{filepath.Join(dir, "new", "a.png"): "a", abs: "b"} {
		got, err := os.ReadFile(name)
		if err != nil {
			Te.Fatal(err)
		}
		if string(got) != want {
			Te.Errorf("%s holds %q, want %q", name, got, want)
		}
	}
}
