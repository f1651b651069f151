package tracks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sargonas/stellar-forge/internal/faults"
)

const sampleCSV = `initial_mass,log_age,mass,log_L,log_Teff,log_R,phase
0.50,9.00,0.50,-0.80,3.60,-0.30,0
0.50,10.00,0.48,-0.60,3.58,-0.10,1
1.00,9.00,1.00,0.00,3.76,0.00,0
1.00,10.00,0.95,0.30,3.70,0.20,1
`

func writeSampleTrack(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("writing sample track: %v", err)
	}
}

func TestLoadDirReadsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeSampleTrack(t, dir, "feh_0.00.csv")
	writeSampleTrack(t, dir, "feh_-0.30.csv")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(table.Tracks) != 2 {
		t.Fatalf("len(table.Tracks) = %d, want 2", len(table.Tracks))
	}
	if table.Tracks[0].FeH != -0.30 {
		t.Errorf("expected tracks sorted by FeH ascending, got first FeH = %v", table.Tracks[0].FeH)
	}
}

func TestLoadDirMissingDirIsDataFault(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	var f *faults.Fault
	if !errors.As(err, &f) || f.Kind != faults.KindData {
		t.Errorf("expected a DataFault for a missing directory, got %v", err)
	}
}

func TestLoadDirRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	bad := "initial_mass,log_age,mass,log_L,log_Teff,phase\n0.5,9.0,0.5,-0.8,3.6,0\n"
	if err := os.WriteFile(filepath.Join(dir, "feh_0.00.csv"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected an error for a file missing the log_R column")
	}
}

func TestLoadDirNoMatchingFilesIsDataFault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected an error when no feh_*.csv files are present")
	}
	var f *faults.Fault
	if !errors.As(err, &f) || f.Kind != faults.KindData {
		t.Errorf("expected a DataFault when no feh_*.csv files are present, got %v", err)
	}
}
