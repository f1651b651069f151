package orbitalgen

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

func sunLikeStar() astro.Star {
	return astro.Star{
		MassSol:        1.0,
		RadiusM:        6.957e8,
		EffectiveTempK: 5772,
		LuminositySol:  1.0,
		IsSingle:       true,
	}
}

func newTestSystemSingle() *astro.StellarSystem {
	sys := astro.NewStellarSystem(uuid.Nil, "Test System", 1, astro.BaryCenter{})
	sys.AddStar(sunLikeStar())
	return sys
}

func TestGenerateOrbitalsRejectsStarlessSystem(t *testing.T) {
	g := New(config.Default())
	sys := astro.NewStellarSystem(uuid.Nil, "Empty", 1, astro.BaryCenter{})
	err := g.GenerateOrbitals(randdist.NewEngine(1), 1, sys)
	if err == nil {
		t.Fatal("expected an error for a system with no stars")
	}
}

func TestGenerateOrbitalsSingleStarProducesOrbits(t *testing.T) {
	g := New(config.Default())
	sys := newTestSystemSingle()
	err := g.GenerateOrbitals(randdist.NewEngine(42), 42, sys)
	if err != nil {
		t.Fatalf("GenerateOrbitals: %v", err)
	}
	if len(sys.Orbits) == 0 {
		t.Fatal("expected at least one orbit to be generated")
	}
	if len(sys.Planets) == 0 {
		t.Fatal("expected at least one planet to be generated")
	}
}

func TestGenerateOrbitalsIsDeterministic(t *testing.T) {
	g := New(config.Default())

	sys1 := newTestSystemSingle()
	err1 := g.GenerateOrbitals(randdist.NewEngine(7, 8), 7, sys1)

	sys2 := newTestSystemSingle()
	err2 := g.GenerateOrbitals(randdist.NewEngine(7, 8), 7, sys2)

	if err1 != nil || err2 != nil {
		t.Fatalf("GenerateOrbitals errors: %v %v", err1, err2)
	}
	if len(sys1.Planets) != len(sys2.Planets) {
		t.Fatalf("planet counts diverged: %d vs %d", len(sys1.Planets), len(sys2.Planets))
	}
	for i := range sys1.Planets {
		if sys1.Planets[i].MassEarth != sys2.Planets[i].MassEarth {
			t.Errorf("planet %d mass diverged: %v vs %v", i, sys1.Planets[i].MassEarth, sys2.Planets[i].MassEarth)
		}
	}
}

func TestKeplerRoundTrip(t *testing.T) {
	const starMassKg = 1.989e30
	semiMajorAxisM := 1.0 * astronomicalUnitM

	period := keplerPeriod(semiMajorAxisM, starMassKg)
	backAU := keplerSemiMajorAxis(period, starMassKg) / astronomicalUnitM

	if math.Abs(backAU-1.0) > 1e-6 {
		t.Errorf("round-trip semi-major axis = %v AU, want 1.0", backAU)
	}
	// A solar-mass star at 1 AU should yield close to a 1-year period.
	years := period / secondsPerYear
	if math.Abs(years-1.0) > 0.01 {
		t.Errorf("period = %v years, want ~1.0", years)
	}
}

func TestHabitableZoneScalesWithLuminosity(t *testing.T) {
	inLow, outLow := habitableZoneBounds(0.5, false)
	inHigh, outHigh := habitableZoneBounds(2.0, false)
	if inHigh <= inLow || outHigh <= outLow {
		t.Error("expected habitable zone bounds to grow with luminosity")
	}
}

func TestHabitableZoneUltravioletWidensInnerEdge(t *testing.T) {
	inDefault, outDefault := habitableZoneBounds(1.0, false)
	inUV, outUV := habitableZoneBounds(1.0, true)
	if inUV >= inDefault {
		t.Errorf("UV habitable zone inner edge = %v, want < default %v", inUV, inDefault)
	}
	if outUV != outDefault {
		t.Errorf("outer edge should be unaffected by the UV flag: %v vs %v", outUV, outDefault)
	}
}

func TestBinarySeparationSumsToComponents(t *testing.T) {
	g := New(config.Default())
	sys := astro.NewStellarSystem(uuid.Nil, "Binary", 1, astro.BaryCenter{})
	sys.AddStar(astro.Star{MassSol: 1.0})
	sys.AddStar(astro.Star{MassSol: 0.8})

	separationAU, err := g.generateBinarySetup(randdist.NewEngine(5), 5, sys)
	if err != nil {
		t.Fatalf("generateBinarySetup: %v", err)
	}
	if len(sys.Orbits) != 2 {
		t.Fatalf("expected 2 orbits for a binary setup, got %d", len(sys.Orbits))
	}
	sum := sys.Orbits[0].SemiMajorAxisAU + sys.Orbits[1].SemiMajorAxisAU
	if math.Abs(sum-separationAU) > 1e-9*separationAU {
		t.Errorf("component semi-major axes sum to %v, want %v", sum, separationAU)
	}
}

func TestHillSphereRadiusIsPositiveForEarthLikeParameters(t *testing.T) {
	hill := hillSphereRadiusAU(1.0, 0.0, 5.972e24, 1.989e30)
	if hill <= 0 {
		t.Fatal("expected a positive Hill sphere radius for Earth-like parameters")
	}
}
