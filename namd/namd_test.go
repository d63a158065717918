package namd

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ajsmith/mdsim"
)

const logText = `Info: NAMD 2.14 for Linux-x86_64
ETITLE:      TS           BOND          ANGLE          DIHED          IMPRP               ELECT            VDW       BOUNDARY           MISC        KINETIC               TOTAL           TEMP      POTENTIAL         TOTAL3        TEMPAVG            PRESSURE      GPRESSURE         VOLUME       PRESSAVG      GPRESSAVG
ENERGY:       0       120.1        310.2        200.0         10.5        -30000.0      2000.0         0.0          0.0         5000.0        -22359.2      298.1      -27359.2      -22360.0       298.1           10.0         12.0        27000.0        0.0          0.0
ENERGY:     100       121.1        311.2        201.0         10.6        -30010.0      2001.0         0.0          0.0         5010.0        -22359.0      300.2      -27369.0      -22360.1       300.0           11.0         13.0        27001.0        0.0          0.0
WRITING COORDINATES TO DCD FILE AT STEP 100
`

func TestReadLog(Te *testing.T) {
	p := filepath.Join(Te.TempDir(), "heat.log")
	if err := os.WriteFile(p, []byte(logText), 0o644); err != nil {
		Te.Fatal(err)
	}
	s, err := ReadLog(p, mdsim.NewDefaults().Energy, Potential, Temperature, CellSize)
	if err != nil {
		Te.Fatal(err)
	}
	if len(s.TS) != 2 || s.TS[1] != 100 {
		Te.Errorf("timesteps %v", s.TS)
	}
	if s.Values[Potential][0] != -27359.2 || s.Values[Temperature][1] != 300.2 {
		Te.Errorf("values %v", s.Values)
	}
	if math.Abs(s.Values[CellSize][0]-30) > 1e-9 {
		Te.Errorf("cell size %f, want 30", s.Values[CellSize][0])
	}
	if _, ok := s.Values[Total]; ok {
		Te.Errorf("unrequested quantity read")
	}
}

func TestReadLogErrors(Te *testing.T) {
	dir := Te.TempDir()
	bad := filepath.Join(dir, "bad.log")
	os.WriteFile(bad, []byte("Info: x\nENERGY: 0 1 2 3\n"), 0o644)
	_, err := ReadLog(bad, mdsim.NewDefaults().Energy, Potential)
	var fe mdsim.FileError
	if !errors.As(err, &fe) || fe.Line() != 2 {
		Te.Errorf("short ENERGY line: %v", err)
	}
	none := filepath.Join(dir, "none.log")
	os.WriteFile(none, []byte("Info: nothing here\n"), 0o644)
	if _, err := ReadLog(none, mdsim.NewDefaults().Energy); err == nil {
		Te.Errorf("no error for a log without ENERGY lines")
	}
}

func TestStages(Te *testing.T) {
	s, ok := StageByName("equil")
	if !ok || len(s.Panels) != 2 || s.Panels[1] != CellSize {
		Te.Errorf("equil stage %+v", s)
	}
	if _, ok := StageByName("nope"); ok {
		Te.Errorf("unknown stage found")
	}
}
