package tracks

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sargonas/stellar-forge/internal/faults"
)

// requiredColumns is the fixed header schema spec §6 mandates. Extra
// trailing columns are tolerated; a CSV missing any of these is a
// DataFault.
var requiredColumns = []string{"initial_mass", "log_age", "mass", "log_L", "log_Teff", "log_R", "phase"}

// Table is every loaded track, one per metallicity grid point
// discovered under a DataTables directory.
type Table struct {
	Tracks []*Track
}

// LoadDir reads every *.csv file directly under dir as a Track. The
// file's [Fe/H] grid value is parsed from its name: a file named
// "feh_-0.25.csv" yields FeH -0.25. Files not matching that pattern are
// skipped rather than rejected, since a stray README or fixture file
// living alongside the real tables should not sink the load.
func LoadDir(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Data(fmt.Sprintf("reading track directory %q", dir), err)
	}

	table := &Table{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		feH, ok := parseFeHFromFilename(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		track, err := loadTrackFile(path, feH)
		if err != nil {
			return nil, err
		}
		table.Tracks = append(table.Tracks, track)
	}

	if len(table.Tracks) == 0 {
		return nil, faults.Data(fmt.Sprintf("no evolutionary track files found under %q", dir), nil)
	}

	sort.Slice(table.Tracks, func(i, j int) bool { return table.Tracks[i].FeH < table.Tracks[j].FeH })
	return table, nil
}

func parseFeHFromFilename(name string) (float64, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	const prefix = "feh_"
	if !strings.HasPrefix(base, prefix) {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimPrefix(base, prefix), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func loadTrackFile(path string, feH float64) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Data(fmt.Sprintf("opening track file %q", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ignore_extra_column tolerance, spec §6

	header, err := reader.Read()
	if err != nil {
		return nil, faults.Data(fmt.Sprintf("reading header of %q", path), err)
	}
	columnIndex, err := resolveColumns(header)
	if err != nil {
		return nil, faults.Data(fmt.Sprintf("track file %q", path), err)
	}

	var points []Point
	rowNum := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, faults.Data(fmt.Sprintf("reading row %d of %q", rowNum, path), err)
		}
		rowNum++

		point, err := parseRow(row, columnIndex)
		if err != nil {
			return nil, faults.Data(fmt.Sprintf("parsing row %d of %q", rowNum, path), err)
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		return nil, faults.Data(fmt.Sprintf("track file %q has a header but no data rows", path), nil)
	}

	return NewTrack(feH, points), nil
}

func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return index, nil
}

func parseRow(row []string, columnIndex map[string]int) (Point, error) {
	field := func(name string) (float64, error) {
		idx := columnIndex[name]
		if idx >= len(row) {
			return 0, fmt.Errorf("row has no value for column %q", name)
		}
		return strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	}

	initialMass, err := field("initial_mass")
	if err != nil {
		return Point{}, err
	}
	logAge, err := field("log_age")
	if err != nil {
		return Point{}, err
	}
	mass, err := field("mass")
	if err != nil {
		return Point{}, err
	}
	logL, err := field("log_L")
	if err != nil {
		return Point{}, err
	}
	logTeff, err := field("log_Teff")
	if err != nil {
		return Point{}, err
	}
	logR, err := field("log_R")
	if err != nil {
		return Point{}, err
	}
	phaseVal, err := field("phase")
	if err != nil {
		return Point{}, err
	}

	for _, v := range []float64{initialMass, logAge, mass, logL, logTeff, logR, phaseVal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Point{}, fmt.Errorf("non-finite value in row")
		}
	}

	return Point{
		InitialMass: initialMass,
		LogAge:      logAge,
		Mass:        mass,
		LogL:        logL,
		LogTeff:     logTeff,
		LogR:        logR,
		Phase:       Phase(int(phaseVal)),
	}, nil
}

// Nearest selects the track whose FeH grid value is closest to feH
// (spec §4.4 step 2). LoadDir guarantees at least one track, so Nearest
// never returns nil on a Table it produced.
func (t *Table) Nearest(feH float64) *Track {
	best := t.Tracks[0]
	bestDist := math.Abs(best.FeH - feH)
	for _, track := range t.Tracks[1:] {
		if d := math.Abs(track.FeH - feH); d < bestDist {
			best = track
			bestDist = d
		}
	}
	return best
}
