package pdbcheck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ajsmith/mdsim"
)

const pdbText = `REMARK  test structure
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.639   6.071  -5.147  1.00  0.00           C
HETATM    3  O   HOH W   2      99.000   0.000   0.000  1.00  0.00           O
ATOM      4  C   ALA A   1     -21.500   4.685  -4.686  1.00  0.00           C
END
`

func writePDB(Te *testing.T, text string) string {
	Te.Helper()
	p := filepath.Join(Te.TempDir(), "test.pdb")
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		Te.Fatal(err)
	}
	return p
}

func TestAtomCoords(Te *testing.T) {
	c, err := AtomCoords("ATOM      4  C   ALA A   1     -21.500   4.685  -4.686  1.00  0.00           C")
	if err != nil || c != [3]float64{-21.5, 4.685, -4.686} {
		Te.Errorf("coords %v, error %v", c, err)
	}
	c, err = AtomCoords("ATOM 4 C ALA A 1 -21.5 4.685 -4.686")
	if err != nil || c != [3]float64{-21.5, 4.685, -4.686} {
		Te.Errorf("whitespace coords %v, error %v", c, err)
	}
	if _, err := AtomCoords("ATOM 4 C ALA"); err == nil {
		Te.Errorf("no error for a short line")
	}
}

func TestCheckCoordinates(Te *testing.T) {
	p := writePDB(Te, pdbText)
	v, err := CheckCoordinates(p, 20)
	if err != nil {
		Te.Fatal(err)
	}
	if v == nil || v.Line != 5 || v.Coords[0] != -21.5 {
		Te.Fatalf("violation %+v, want the atom at line 5", v)
	}
	v, err = CheckCoordinates(p, 21.5)
	if err != nil || v != nil {
		Te.Errorf("atoms within bounds reported as %v, %v", v, err)
	}
}

func TestMaxCoordAndCellSize(Te *testing.T) {
	p := writePDB(Te, pdbText)
	m, err := MaxCoord(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m != 21.5 {
		Te.Errorf("max coord %f, want 21.5 (HETATM ignored)", m)
	}
	if s := CellSize(m, 10); s != 64 {
		Te.Errorf("cell size %d, want 64", s)
	}
	if s := CellSize(30, 10); s != 80 {
		Te.Errorf("cell size %d, want 80", s)
	}
}

func TestMalformed(Te *testing.T) {
	p := writePDB(Te, "ATOM      1  N   ALA A   1      11.104   x.134  -6.504  1.00  0.00           N\n")
	_, err := MaxCoord(p)
	var fe mdsim.FileError
	if !errors.As(err, &fe) || fe.Line() != 1 {
		Te.Errorf("malformed coordinate: %v", err)
	}
	if _, err := MaxCoord(writePDB(Te, "REMARK nothing\n")); err == nil {
		Te.Errorf("no error for a file without atoms")
	}
}
