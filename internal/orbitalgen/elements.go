package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

// eccentricityParams parameterizes the Beta distribution orbital
// eccentricity is drawn from, per spec §4.5.6.
type eccentricityParams struct {
	alpha, beta float64
	max         float64
}

// synthesizeOrbit samples every orbital element for a single-body
// orbit around parentRef, per spec §4.5.6, and returns the completed
// Orbit with objRef already attached.
func (g *Generator) synthesizeOrbit(e *randdist.Engine, seed uint64, parentRef, objRef astro.ObjectRef, semiMajorAxisAU, parentMassKg float64, ecc eccentricityParams) (astro.Orbit, error) {
	eccentricity := randdist.Beta{Alpha: ecc.alpha, Beta: ecc.beta}.Draw(e) * ecc.max
	inclination := randdist.HalfNormal{Sigma: inclinationSigmaRad}.Draw(e)
	lan := randdist.Uniform{Min: 0, Max: 2 * math.Pi}.Draw(e)
	argPeri := randdist.Uniform{Min: 0, Max: 2 * math.Pi}.Draw(e)
	trueAnomaly := randdist.Uniform{Min: 0, Max: 2 * math.Pi}.Draw(e)

	periodSeconds := keplerPeriod(semiMajorAxisAU*astronomicalUnitM, parentMassKg)
	if err := checkFinite(seed, "orbital period", periodSeconds); err != nil {
		return astro.Orbit{}, err
	}

	orbit := astro.Orbit{
		Parent:                    parentRef,
		SemiMajorAxisAU:           semiMajorAxisAU,
		Eccentricity:              eccentricity,
		InclinationRad:            inclination,
		LongitudeAscendingNodeRad: lan,
		ArgPeriapsisRad:           argPeri,
		TrueAnomalyRad:            trueAnomaly,
		PeriodSeconds:             periodSeconds,
	}
	orbit.AddObject(objRef, trueAnomaly, astro.Vec3{})
	return orbit, nil
}

// hillSphereRadiusAU computes the Hill sphere radius (AU) of a body of
// planetMassKg orbiting at semiMajorAxisAU from a star of starMassKg,
// used both to bound moon placement and ring radii (spec §3 invariant:
// "any moon's semi-major axis lies strictly inside its host planet's
// Hill sphere radius").
func hillSphereRadiusAU(semiMajorAxisAU, eccentricity, planetMassKg, starMassKg float64) float64 {
	if starMassKg <= 0 {
		return 0
	}
	return semiMajorAxisAU * (1 - eccentricity) * math.Cbrt(planetMassKg/(3*starMassKg))
}

// rocheLimitM computes the rigid-body Roche limit (meters),
// planetRadiusM * cbrt(2 * rhoPrimaryKgM3 / rhoSatelliteKgM3), where
// rhoPrimaryKgM3 is the density of the body of radius planetRadiusM and
// rhoSatelliteKgM3 the density of the body orbiting it.
func rocheLimitM(planetRadiusM, rhoPrimaryKgM3, rhoSatelliteKgM3 float64) float64 {
	if rhoSatelliteKgM3 <= 0 {
		return 0
	}
	return planetRadiusM * math.Cbrt(2*rhoPrimaryKgM3/rhoSatelliteKgM3)
}
