package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

// generateBinarySetup places both stars of a binary system on mirrored
// orbits about the shared bary center (spec §4.5.1), and returns the
// binary separation in AU for the disk step's forbidden-zone geometry.
func (g *Generator) generateBinarySetup(e *randdist.Engine, seed uint64, sys *astro.StellarSystem) (float64, error) {
	m1 := sys.Stars[0].MassSol * solarMassKg
	m2 := sys.Stars[1].MassSol * solarMassKg
	totalMass := m1 + m2

	periodDays := randdist.LogNormal{
		LogMean:  g.cfg.BinaryPeriodMean * ln10,
		LogSigma: g.cfg.BinaryPeriodSigma * ln10,
	}.Draw(e)
	periodSeconds := periodDays * secondsPerDay

	separationM := keplerSemiMajorAxis(periodSeconds, totalMass)
	if err := checkFinite(seed, "binary separation", separationM); err != nil {
		return 0, err
	}
	separationAU := separationM / astronomicalUnitM

	a1 := separationAU * m2 / totalMass
	a2 := separationAU * m1 / totalMass

	ecc := binaryEccentricity(e, periodDays)
	inclination := randdist.HalfNormal{Sigma: inclinationSigmaRad}.Draw(e)
	lan := randdist.Uniform{Min: 0, Max: 2 * math.Pi}.Draw(e)
	argPeri := randdist.Uniform{Min: 0, Max: 2 * math.Pi}.Draw(e)

	period := keplerPeriod(separationM, totalMass)

	orbit1 := astro.Orbit{
		Parent:                    astro.ObjectRef{Type: astro.ObjectBaryCenter},
		SemiMajorAxisAU:           a1,
		Eccentricity:              ecc,
		InclinationRad:            inclination,
		LongitudeAscendingNodeRad: lan,
		ArgPeriapsisRad:           argPeri,
		PeriodSeconds:             period,
	}
	orbit1.AddObject(astro.ObjectRef{Type: astro.ObjectStar, Index: 0}, 0, astro.Vec3{})

	orbit2 := astro.Orbit{
		Parent:                    astro.ObjectRef{Type: astro.ObjectBaryCenter},
		SemiMajorAxisAU:           a2,
		Eccentricity:              ecc,
		InclinationRad:            inclination,
		LongitudeAscendingNodeRad: lan,
		ArgPeriapsisRad:           argPeri,
		PeriodSeconds:             period,
	}
	orbit2.AddObject(astro.ObjectRef{Type: astro.ObjectStar, Index: 1}, math.Pi, astro.Vec3{})

	sys.AddOrbit(orbit1)
	sys.AddOrbit(orbit2)
	sys.Stars[0].IsSingle = false
	sys.Stars[1].IsSingle = false

	return separationAU, nil
}

// binaryEccentricity samples eccentricity per orbital period regime
// (spec §4.5.1): short-period binaries are tidally circularized, long
// period ones retain a wider spread.
func binaryEccentricity(e *randdist.Engine, periodDays float64) float64 {
	if periodDays < 10 {
		return randdist.TruncatedNormal{Mean: 0.02, Sigma: 0.02, Min: 0, Max: 0.1}.Draw(e)
	}
	return randdist.Beta{Alpha: 1.5, Beta: 3}.Draw(e) * 0.9
}
