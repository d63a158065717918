package stride

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ajsmith/mdsim"
	"gonum.org/v1/gonum/floats"
)

//stepLines returns n STRIDE records, 80% helical before step s and 20% helical from it on.
func stepLines(n, s int) []string {
	ret := make([]string, n)
	for i := range ret {
		if i < s {
			ret[i] = "H H H H G I H H C C"
		} else {
			ret[i] = "H H C C C E E T T C"
		}
	}
	return ret
}

func contactLines(n, s int) []string {
	ret := make([]string, n)
	for i := range ret {
		if i < s {
			ret[i] = "1 0 2"
		} else {
			ret[i] = "0 0 1"
		}
	}
	return ret
}

func testInput(Te *testing.T) Input {
	dir := Te.TempDir()
	files := []string{
		writeFile(Te, dir, "ibu1.dat", stepLines(40, 20)...),
		writeFile(Te, dir, "ibu2.dat", stepLines(40, 10)...),
		writeFile(Te, dir, "water5.dat", stepLines(40, 30)...),
		writeFile(Te, dir, "water6.dat", stepLines(40, 40)...),
	}
	return Input{
		StrideFiles: files,
		Contacts:    []ContactFile{{File: writeFile(Te, dir, "ibuContacts1.dat", contactLines(40, 20)...), Row: 0}},
		Groups: []Group{
			{Name: "ibu", Cols: []int{0, 1}, Trajectories: []string{"ibu 1", "ibu 2"}},
			{Name: "water", Cols: []int{2, 3}},
		},
		Threshold: 0.4,
		Window:    1,
		Bins:      10,
	}
}

func TestAnalyze(Te *testing.T) {
	rep, err := Analyze(testInput(Te))
	if err != nil {
		Te.Fatal(err)
	}
	wantTh := []int{19, 9, 29, 39}
	for i, t := range rep.Trajectories {
		if t.Th != wantTh[i] {
			Te.Errorf("trajectory %d: th %d, want %d", i, t.Th, wantTh[i])
		}
	}
	if rep.Trajectories[0].Label != "ibu 1" || rep.Trajectories[3].Label != "water 3" {
		Te.Errorf("labels %q %q", rep.Trajectories[0].Label, rep.Trajectories[3].Label)
	}
	ibu, water := rep.Groups[0], rep.Groups[1]
	if ibu.MeanTh != 14 || water.MeanTh != 34 {
		Te.Errorf("mean th %f %f", ibu.MeanTh, water.MeanTh)
	}
	if math.Abs(ibu.MeanBefore-0.8) > 1e-12 || math.Abs(ibu.MeanAfter-0.2) > 1e-12 {
		Te.Errorf("ibu before %f after %f", ibu.MeanBefore, ibu.MeanAfter)
	}
	if !math.IsNaN(water.MeanAfter) {
		Te.Errorf("water6 never unfolds, the group's after mean must be undefined, got %f", water.MeanAfter)
	}
	if ibu.Stats.NHelix != 8*30+2*50 || ibu.Stats.N != 800 || ibu.Stats.Steps != 40 {
		Te.Errorf("ibu stats %+v", ibu.Stats)
	}
	if !floats.Equal(ibu.ContactBefore, []float64{1, 0, 2}) || !floats.Equal(ibu.ContactAfter, []float64{0, 0, 1}) {
		Te.Errorf("contacts before %v after %v", ibu.ContactBefore, ibu.ContactAfter)
	}
	if water.ContactBefore != nil || rep.Trajectories[1].ContactBefore != nil {
		Te.Errorf("contacts where there is no contact file")
	}
	native := rep.Histograms.View(0, Native)
	if math.Abs(native.Sum()-1) > 1e-12 || native.Total() != 30 {
		Te.Errorf("native histogram %v", native)
	}
	var high float64
	for i, m := range native.Mids() {
		if m > 0.5 {
			high += native.View()[i]
		}
	}
	if math.Abs(high-1) > 1e-12 {
		Te.Errorf("native histogram has mass below 0.5: %v", native)
	}
	if rep.Histograms.View(1, Denatured).Total() != 10 {
		Te.Errorf("water denatured histogram %v", rep.Histograms.View(1, Denatured))
	}
}

func TestAnalyzeErrors(Te *testing.T) {
	in := testInput(Te)
	in.Groups = nil
	if _, err := Analyze(in); err == nil {
		Te.Errorf("no error without groups")
	}

	in = testInput(Te)
	bad := writeFile(Te, Te.TempDir(), "bad.dat", "1 0 2", "1 zero 2")
	in.Contacts = []ContactFile{{File: bad, Row: 1}}
	_, err := Analyze(in)
	var fe mdsim.FileError
	if !errors.As(err, &fe) || fe.Line() != 2 || !strings.Contains(err.Error(), "bad.dat") {
		Te.Errorf("malformed contact file: %v", err)
	}

	in = testInput(Te)
	in.Contacts = []ContactFile{{File: writeFile(Te, Te.TempDir(), "short.dat", contactLines(30, 10)...), Row: 0}}
	var shape *mdsim.ShapeError
	if _, err := Analyze(in); !errors.As(err, &shape) {
		Te.Errorf("contact file shorter than its trajectory: %v", err)
	}

	in = testInput(Te)
	in.Groups[1].Cols = []int{2, 7}
	if _, err := Analyze(in); err == nil {
		Te.Errorf("no error for a group with an out of range column")
	}
}
