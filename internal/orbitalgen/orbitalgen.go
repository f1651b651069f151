// Package orbitalgen implements the orbital generator (component C5):
// given a StellarSystem already populated with its stars, it builds the
// bary center orbit, protoplanetary disks, planets, moons, rings, and
// every orbit's Keplerian elements. Grounded on
// other_examples/furan917-go-solar-system's orbital-calculator (Kepler
// helper functions) and
// other_examples/leemwalker-thousand-worlds's satellite/moon placement
// style, composed in the "generator struct wrapping shared config"
// shape JoshuaAFerguson-terminal-velocity's universe generator uses.
package orbitalgen

import (
	"fmt"
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/faults"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

const (
	gravitationalConstant = 6.674e-11
	solarMassKg            = 1.989e30
	earthMassKg            = 5.972e24
	earthRadiusM           = 6.371e6
	astronomicalUnitM      = 1.496e11
	secondsPerDay          = 86400.0
	secondsPerYear         = 365.25 * secondsPerDay

	ln10 = 2.302585092994046

	// inclinationSigmaRad is the half-normal sigma (≈2°) spec §4.5.6
	// specifies for orbital inclination relative to the system normal.
	inclinationSigmaRad = 2.0 * math.Pi / 180.0
)

// Generator builds orbital structure for an already star-populated
// StellarSystem.
type Generator struct {
	cfg config.Config
}

// New constructs an orbital Generator over shared configuration.
func New(cfg config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// GenerateOrbitals runs the entire orbital generation pipeline (binary
// setup, protoplanetary disks, planet placement, moons and rings,
// orbital element synthesis) against a system whose stars are already
// populated. Per spec §4.5.7, any unsatisfiable constraint aborts the
// whole system with a recoverable fault carrying seed, rather than
// publishing a partial system.
func (g *Generator) GenerateOrbitals(e *randdist.Engine, seed uint64, sys *astro.StellarSystem) error {
	if len(sys.Stars) == 0 {
		return faults.Recoverable(seed, "cannot generate orbitals for a system with no stars", nil)
	}

	var disks []protoDisk

	if sys.IsBinary() {
		binSMA, err := g.generateBinarySetup(e, seed, sys)
		if err != nil {
			return err
		}
		disks = append(disks,
			g.buildDisk(0, &sys.Stars[0], binSMA, true),
			g.buildDisk(1, &sys.Stars[1], binSMA, true),
		)
	} else {
		disks = append(disks, g.buildDisk(0, &sys.Stars[0], 0, false))
	}

	for _, disk := range disks {
		if err := g.populateDisk(e, seed, sys, disk); err != nil {
			return err
		}
	}

	return nil
}

// keplerSemiMajorAxis solves Kepler's third law for the semi-major axis
// (meters) given an orbital period (seconds) and the total orbiting
// mass (kg): a = ((P^2 * G * M) / (4*pi^2))^(1/3).
func keplerSemiMajorAxis(periodSeconds, totalMassKg float64) float64 {
	return math.Cbrt((periodSeconds * periodSeconds * gravitationalConstant * totalMassKg) / (4 * math.Pi * math.Pi))
}

// keplerPeriod solves Kepler's third law for orbital period (seconds)
// given a semi-major axis (meters) and the total orbiting mass (kg).
func keplerPeriod(semiMajorAxisM, totalMassKg float64) float64 {
	if totalMassKg <= 0 {
		return 0
	}
	return 2 * math.Pi * math.Sqrt(math.Pow(semiMajorAxisM, 3)/(gravitationalConstant*totalMassKg))
}

func checkFinite(seed uint64, label string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return faults.Recoverable(seed, fmt.Sprintf("non-finite value computing %s", label), nil)
	}
	return nil
}
