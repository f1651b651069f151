// Package tracks loads the PARSEC/MIST-class stellar evolutionary
// track tables the stellar generator (internal/stellargen) interpolates
// against. One CSV file is discovered per metallicity grid point under
// Assets/DataTables/.
package tracks

import "math"

// Phase mirrors astro.StellarPhase's track-derived values. Kept
// independent of the astro package so tracks has no upward dependency;
// stellargen is responsible for mapping Phase onto astro.StellarPhase.
type Phase int

// Point is one sampled row of a track: present-day properties for a
// star of InitialMass at LogAge.
type Point struct {
	InitialMass float64
	LogAge      float64
	Mass        float64
	LogL        float64
	LogTeff     float64
	LogR        float64
	Phase       Phase
}

// Track is every sampled point for a single metallicity grid value,
// indexed for bilinear interpolation over (initial mass, log age).
type Track struct {
	FeH    float64
	Points []Point

	massGrid []float64 // sorted, unique InitialMass values
	ageGrid  []float64 // sorted, unique LogAge values
	// index[i][j] is the Points index for (massGrid[i], ageGrid[j]), or
	// -1 if that grid cell was never sampled.
	index [][]int
}

// NewTrack builds a Track from an already-sampled point set, indexing
// it for interpolation. Used directly by callers that construct
// synthetic tracks (tests, and any future in-memory track source);
// LoadDir uses it internally too.
func NewTrack(feH float64, points []Point) *Track {
	t := &Track{FeH: feH, Points: points}
	t.build()
	return t
}

// build indexes Points into a dense (mass, age) grid whose axes are
// every distinct InitialMass and LogAge value present, so every row
// lands on a cell and dropped is always 0 (NewTrack discards it). Cells
// that no row sampled stay -1 and make Interpolate report a miss.
func (t *Track) build() (dropped int) {
	massSet := map[float64]bool{}
	ageSet := map[float64]bool{}
	for _, p := range t.Points {
		massSet[p.InitialMass] = true
		ageSet[p.LogAge] = true
	}
	t.massGrid = sortedKeys(massSet)
	t.ageGrid = sortedKeys(ageSet)

	t.index = make([][]int, len(t.massGrid))
	for i := range t.index {
		t.index[i] = make([]int, len(t.ageGrid))
		for j := range t.index[i] {
			t.index[i][j] = -1
		}
	}

	for pi, p := range t.Points {
		i := indexOf(t.massGrid, p.InitialMass)
		j := indexOf(t.ageGrid, p.LogAge)
		if i < 0 || j < 0 {
			dropped++
			continue
		}
		t.index[i][j] = pi
	}
	return dropped
}

func sortedKeys(set map[float64]bool) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func indexOf(grid []float64, v float64) int {
	for i, g := range grid {
		if g == v {
			return i
		}
	}
	return -1
}

// bracket returns the two grid indices bracketing v, and the fractional
// position t in [0,1] between them. Values outside the grid are clamped
// to the nearest edge (t == 0 or t == 1).
func bracket(grid []float64, v float64) (lo, hi int, t float64) {
	if len(grid) == 1 {
		return 0, 0, 0
	}
	if v <= grid[0] {
		return 0, 1, 0
	}
	if v >= grid[len(grid)-1] {
		return len(grid) - 2, len(grid) - 1, 1
	}
	for i := 1; i < len(grid); i++ {
		if v <= grid[i] {
			span := grid[i] - grid[i-1]
			if span == 0 {
				return i - 1, i, 0
			}
			return i - 1, i, (v - grid[i-1]) / span
		}
	}
	return len(grid) - 2, len(grid) - 1, 1
}

// Interpolated is the bilinearly interpolated present-day state of a
// star at (initialMass, logAge) on this track.
type Interpolated struct {
	Mass    float64
	LogL    float64
	LogTeff float64
	LogR    float64
	Phase   Phase
	Missed  bool // true when any of the four grid cells bracketing (initialMass, logAge) has no data
}

// Interpolate bilinearly interpolates Mass, LogL, LogTeff and LogR over
// the (initial mass, log age) grid, per spec §4.4 step 2. Phase is
// taken from whichever of the four corner points is nearest in
// (massFrac, ageFrac) space, since a fractional phase index is not
// meaningful.
func (t *Track) Interpolate(initialMass, logAge float64) Interpolated {
	if len(t.massGrid) == 0 || len(t.ageGrid) == 0 {
		return Interpolated{Missed: true}
	}

	mi0, mi1, mt := bracket(t.massGrid, initialMass)
	ai0, ai1, at := bracket(t.ageGrid, logAge)

	c00, ok00 := t.corner(mi0, ai0)
	c10, ok10 := t.corner(mi1, ai0)
	c01, ok01 := t.corner(mi0, ai1)
	c11, ok11 := t.corner(mi1, ai1)
	if !ok00 || !ok10 || !ok01 || !ok11 {
		return Interpolated{Missed: true}
	}

	lerp := func(a, b, frac float64) float64 { return a + (b-a)*frac }
	bilerp := func(v00, v10, v01, v11 float64) float64 {
		top := lerp(v00, v10, mt)
		bottom := lerp(v01, v11, mt)
		return lerp(top, bottom, at)
	}

	result := Interpolated{
		Mass:    bilerp(c00.Mass, c10.Mass, c01.Mass, c11.Mass),
		LogL:    bilerp(c00.LogL, c10.LogL, c01.LogL, c11.LogL),
		LogTeff: bilerp(c00.LogTeff, c10.LogTeff, c01.LogTeff, c11.LogTeff),
		LogR:    bilerp(c00.LogR, c10.LogR, c01.LogR, c11.LogR),
	}

	result.Phase = nearestPhase(c00, c10, c01, c11, mt, at)
	return result
}

func (t *Track) corner(mi, ai int) (Point, bool) {
	idx := t.index[mi][ai]
	if idx < 0 {
		return Point{}, false
	}
	return t.Points[idx], true
}

func nearestPhase(c00, c10, c01, c11 Point, mt, at float64) Phase {
	type candidate struct {
		dist  float64
		phase Phase
	}
	cands := []candidate{
		{math.Hypot(mt, at), c00.Phase},
		{math.Hypot(1-mt, at), c10.Phase},
		{math.Hypot(mt, 1-at), c01.Phase},
		{math.Hypot(1-mt, 1-at), c11.Phase},
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.dist < best.dist {
			best = c
		}
	}
	return best.phase
}
