package universe

import (
	"math"
	"testing"

	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/tracks"
)

func testTable() *tracks.Table {
	var points []tracks.Point
	masses := []float64{0.3, 0.5, 1.0, 2.0, 10.0, 30.0}
	ages := []float64{7.0, 8.0, 9.0, 9.5, 10.0, 10.1}
	for _, m := range masses {
		for _, a := range ages {
			phase := tracks.Phase(0)
			switch {
			case a >= 10.0:
				phase = tracks.Phase(5)
			case a >= 9.5:
				phase = tracks.Phase(2)
			}
			points = append(points, tracks.Point{
				InitialMass: m,
				LogAge:      a,
				Mass:        m * (1 - 0.05*(a-8)),
				LogL:        math.Log10(m) * 3,
				LogTeff:     3.7,
				LogR:        math.Log10(m) * 0.8,
				Phase:       phase,
			})
		}
	}
	return &tracks.Table{Tracks: []*tracks.Track{tracks.NewTrack(0, points)}}
}

func testDriver() *Driver {
	return New(config.Default(), testTable())
}

// Scenario 1: (seed=42, N=1) must succeed and yield >=1 star with a
// finite effective temperature in (2000, 60000) (spec §8).
func TestBuildUniverseScenarioOne(t *testing.T) {
	d := testDriver()
	catalog, err := d.BuildUniverse(42, 1)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
	if len(catalog.Systems) != 1 {
		t.Fatalf("expected 1 system, got %d (abandoned=%d)", len(catalog.Systems), catalog.SystemsAbandoned)
	}
	sys := catalog.Systems[0]
	if sys.StarCount() == 0 {
		t.Fatal("expected at least one star")
	}
	teff := sys.Stars[0].EffectiveTempK
	if math.IsNaN(teff) || math.IsInf(teff, 0) || teff <= 2000 || teff >= 60000 {
		t.Errorf("EffectiveTempK = %v, want finite and in (2000, 60000)", teff)
	}
}

// Scenario 3: (seed=1681068171, N=1) must complete without invariant
// violation (spec §8).
func TestBuildUniverseScenarioThree(t *testing.T) {
	d := testDriver()
	_, err := d.BuildUniverse(1681068171, 1)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
}

// Scenario 4: LifeOccurrenceProbability = 0, run many systems: no
// planet has life == true (spec §8).
func TestBuildUniverseScenarioFourNoLifeWhenProbabilityZero(t *testing.T) {
	cfg := config.Default()
	cfg.LifeOccurrenceProbability = 0
	d := New(cfg, testTable())

	catalog, err := d.BuildUniverse(7, 50)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
	for _, sys := range catalog.Systems {
		for i := range sys.Planets {
			if sys.Planets[i].HasLife() {
				t.Fatalf("planet has life with LifeOccurrenceProbability=0")
			}
		}
	}
}

func TestBuildUniverseIsDeterministic(t *testing.T) {
	d1 := testDriver()
	c1, err := d1.BuildUniverse(99, 5)
	if err != nil {
		t.Fatalf("BuildUniverse (run 1): %v", err)
	}

	d2 := testDriver()
	c2, err := d2.BuildUniverse(99, 5)
	if err != nil {
		t.Fatalf("BuildUniverse (run 2): %v", err)
	}

	if len(c1.Systems) != len(c2.Systems) {
		t.Fatalf("system counts diverged: %d vs %d", len(c1.Systems), len(c2.Systems))
	}
	// The catalog is order-unstable, so systems are matched by name,
	// which is fixed by each system's slot index.
	masses := make(map[string]float64, len(c1.Systems))
	for _, sys := range c1.Systems {
		masses[sys.Name] = sys.Stars[0].MassSol
	}
	for _, sys := range c2.Systems {
		if want, ok := masses[sys.Name]; !ok || sys.Stars[0].MassSol != want {
			t.Errorf("%s primary mass diverged: %v vs %v", sys.Name, want, sys.Stars[0].MassSol)
		}
	}
}

func TestBuildUniverseRejectsNonPositiveCount(t *testing.T) {
	d := testDriver()
	if _, err := d.BuildUniverse(1, 0); err == nil {
		t.Fatal("expected an error for a non-positive system count")
	}
}

func TestBuildUniversePublishesWithinOctreeSeparation(t *testing.T) {
	cfg := config.Default()
	cfg.MinSeparationParsecs = 5
	cfg.OctreeRadius = 50
	d := New(cfg, testTable())

	catalog, err := d.BuildUniverse(13, 20)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
	for i, a := range catalog.Systems {
		for j, b := range catalog.Systems {
			if i == j {
				continue
			}
			dx := a.BaryCenter.Position.X - b.BaryCenter.Position.X
			dy := a.BaryCenter.Position.Y - b.BaryCenter.Position.Y
			dz := a.BaryCenter.Position.Z - b.BaryCenter.Position.Z
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist < cfg.MinSeparationParsecs {
				t.Errorf("systems %d and %d are %v pc apart, want >= %v", i, j, dist, cfg.MinSeparationParsecs)
			}
		}
	}
}

func TestBuildUniverseAggregatesClassCounts(t *testing.T) {
	d := testDriver()
	catalog, err := d.BuildUniverse(21, 10)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
	total := 0
	for _, count := range catalog.ClassCounts {
		total += count
	}
	starCount := 0
	for _, sys := range catalog.Systems {
		starCount += sys.StarCount()
	}
	if total != starCount {
		t.Errorf("ClassCounts total = %d, want %d (total stars published)", total, starCount)
	}
}

func TestCancelStopsProcessingRemainingJobs(t *testing.T) {
	d := testDriver()
	d.Cancel()
	if !d.Cancelled() {
		t.Fatal("expected Cancelled() to report true after Cancel()")
	}
	catalog, err := d.BuildUniverse(1, 25)
	if err != nil {
		t.Fatalf("BuildUniverse: %v", err)
	}
	if len(catalog.Systems) != 0 {
		t.Errorf("expected no systems to be built once cancelled, got %d", len(catalog.Systems))
	}
}
