package stellargen

import (
	"math"
	"testing"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/randdist"
	"github.com/sargonas/stellar-forge/internal/tracks"
)

func testTable() *tracks.Table {
	var points []tracks.Point
	masses := []float64{0.5, 1.0, 2.0, 10.0, 30.0}
	ages := []float64{8.0, 9.0, 9.5, 10.0, 10.1}
	for _, m := range masses {
		for _, a := range ages {
			phase := tracks.Phase(0)
			if a >= 10.0 {
				phase = tracks.Phase(5) // post-AGB
			} else if a >= 9.5 {
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

func newGenerator() *Generator {
	return New(config.Default(), testTable())
}

func TestGenerateProducesPositiveProperties(t *testing.T) {
	g := newGenerator()
	e := randdist.NewEngine(1, 2, 3)

	star, err := g.Generate(e, BasicProperties{InitialMassSol: 1.0, AgeYears: 5e9, FeH: 0})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if star.MassSol <= 0 {
		t.Errorf("MassSol = %v, want > 0", star.MassSol)
	}
	if star.RadiusM <= 0 {
		t.Errorf("RadiusM = %v, want > 0", star.RadiusM)
	}
	if star.EscapeVelocityMS <= 0 {
		t.Errorf("EscapeVelocityMS = %v, want > 0", star.EscapeVelocityMS)
	}
	if star.SpectralClass == "" {
		t.Error("expected a non-empty spectral class string")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := newGenerator()
	in := BasicProperties{}

	star1, err1 := g.Generate(randdist.NewEngine(42, 7), in)
	star2, err2 := g.Generate(randdist.NewEngine(42, 7), in)
	if err1 != nil || err2 != nil {
		t.Fatalf("Generate errors: %v %v", err1, err2)
	}
	if star1.MassSol != star2.MassSol || star1.AgeYears != star2.AgeYears {
		t.Error("same seed sequence should produce bit-identical stars")
	}
}

func TestGenerateDifferentSeedsDiverge(t *testing.T) {
	g := newGenerator()
	in := BasicProperties{}
	star1, _ := g.Generate(randdist.NewEngine(1), in)
	star2, _ := g.Generate(randdist.NewEngine(2), in)
	if star1.MassSol == star2.MassSol && star1.AgeYears == star2.AgeYears && star1.FeH == star2.FeH {
		t.Error("different seeds should not produce identical stars")
	}
}

func TestIMFClampsToDomain(t *testing.T) {
	e := randdist.NewEngine(99)
	for i := 0; i < 500; i++ {
		m := clampMass(sampleIMF(e))
		if m < imfMinMass || m > imfMaxMass {
			t.Fatalf("sampled mass %v outside [%v, %v]", m, imfMinMass, imfMaxMass)
		}
	}
}

func TestCompactRemnantSubstitution(t *testing.T) {
	g := newGenerator()
	star := astro.Star{Phase: astro.PhasePostAGB, MassSol: 1.0, RadiusM: 1e6}
	g.applyCompactRemnantSubstitution(&star, 30.0)
	if star.Phase != astro.PhaseBlackHole {
		t.Errorf("progenitor mass 30 should collapse to a black hole, got phase %v", star.Phase)
	}
	if !star.SpinIsDimensionless {
		t.Error("expected compact remnant spin to be dimensionless")
	}
}

func TestCompactRemnantSkippedBelowThreshold(t *testing.T) {
	g := newGenerator()
	star := astro.Star{Phase: astro.PhasePostAGB, MassSol: 1.0, RadiusM: 1e6}
	g.applyCompactRemnantSubstitution(&star, 2.0)
	if star.Phase == astro.PhaseBlackHole || star.Phase == astro.PhaseNeutronStar {
		t.Error("a low-mass progenitor should not collapse into a compact remnant")
	}
}

func TestDrawBinaryHighMassMoreLikelyBinary(t *testing.T) {
	cfg := config.Default()
	lowCount, highCount := 0, 0
	for i := 0; i < 2000; i++ {
		e := randdist.NewEngine(uint64(i), 1)
		if DrawBinary(e, cfg, 0.3).IsBinary {
			lowCount++
		}
		e2 := randdist.NewEngine(uint64(i), 2)
		if DrawBinary(e2, cfg, 20.0).IsBinary {
			highCount++
		}
	}
	if highCount <= lowCount {
		t.Errorf("expected high-mass binary fraction (%d) to exceed low-mass (%d)", highCount, lowCount)
	}
}
