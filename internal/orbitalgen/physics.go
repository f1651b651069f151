package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

// derivePhysicalProperties fills radius, spin, equilibrium/surface
// temperature and a placeholder magnetic field for a newly massed
// planet (spec §4.5.4).
func (g *Generator) derivePhysicalProperties(e *randdist.Engine, disk protoDisk, s slot, p *astro.Planet) {
	p.RadiusEarth = planetRadius(p.Type, p.MassEarth)

	orbitPeriodSeconds := keplerPeriod(s.semiMajorAxisAU*astronomicalUnitM, disk.star.MassSol*solarMassKg)
	lockThreshold := tidalLockThreshold(disk.star.MassSol, s.semiMajorAxisAU)
	if orbitPeriodSeconds < lockThreshold {
		p.TidallyLocked = true
		p.SpinPeriodS = orbitPeriodSeconds
	} else {
		p.SpinPeriodS = randdist.LogNormal{LogMean: math.Log(86400), LogSigma: 0.4}.Draw(e) / math.Sqrt(p.MassEarth+0.1)
	}

	p.AlbedoBond = albedoForType(e, p.Type)
	p.BalanceTempK = equilibriumTemperature(disk.star.EffectiveTempK, disk.star.RadiusM, s.semiMajorAxisAU, p.AlbedoBond)
	p.SurfaceTempK = surfaceTemperature(p.BalanceTempK, p.Type)

	p.MagneticFieldT = planetMagneticField(p)
}

// planetRadius follows the piecewise mass-radius relations of spec
// §4.5.4: R ∝ M^0.28 rocky, R ∝ M^0.59 ice, Fortney-style for gas
// giants (capped near 1.15 Rj before electron-degeneracy pressure
// flattens the curve).
func planetRadius(t astro.PlanetType, massEarth float64) float64 {
	const jupiterRadiusEarths = 11.2

	switch t {
	case astro.PlanetGasGiant:
		r := jupiterRadiusEarths * math.Pow(massEarth/jupiterMassEarths, 0.01)
		if r > jupiterRadiusEarths*1.15 {
			r = jupiterRadiusEarths * 1.15
		}
		return r
	case astro.PlanetIceGiant:
		return math.Pow(massEarth, 0.59)
	default:
		return math.Pow(massEarth, 0.28)
	}
}

// tidalLockThreshold approximates the orbital period (seconds) below
// which a planet of this semi-major axis around a star of this mass is
// expected to be tidally locked. Close-in planets around low-mass
// stars lock on much longer timescales than the same distance around a
// massive star, captured here as a threshold that grows with the square
// root of stellar mass.
func tidalLockThreshold(starMassSol, semiMajorAxisAU float64) float64 {
	if semiMajorAxisAU <= 0 {
		return 0
	}
	return 30 * secondsPerDay * math.Pow(0.1/semiMajorAxisAU, 1.5) * math.Sqrt(starMassSol)
}

// albedoForType draws bond albedo from a composition-dependent
// distribution, per spec §4.5.4.
func albedoForType(e *randdist.Engine, t astro.PlanetType) float64 {
	switch t {
	case astro.PlanetGasGiant, astro.PlanetIceGiant:
		return randdist.TruncatedNormal{Mean: 0.5, Sigma: 0.1, Min: 0.2, Max: 0.8}.Draw(e)
	case astro.PlanetOcean:
		return randdist.TruncatedNormal{Mean: 0.3, Sigma: 0.08, Min: 0.05, Max: 0.6}.Draw(e)
	default:
		return randdist.TruncatedNormal{Mean: 0.25, Sigma: 0.1, Min: 0.02, Max: 0.9}.Draw(e)
	}
}

// equilibriumTemperature applies spec §4.5.4's formula:
// T_eq = T_star * sqrt(R_star / (2a)) * (1-A)^(1/4).
func equilibriumTemperature(starTeffK, starRadiusM, semiMajorAxisAU, albedo float64) float64 {
	a := semiMajorAxisAU * astronomicalUnitM
	if a <= 0 {
		return 0
	}
	return starTeffK * math.Sqrt(starRadiusM/(2*a)) * math.Pow(1-albedo, 0.25)
}

// surfaceTemperature adds a crude greenhouse offset on top of the
// equilibrium temperature for atmosphere-bearing types.
func surfaceTemperature(balanceTempK float64, t astro.PlanetType) float64 {
	switch t {
	case astro.PlanetGasGiant, astro.PlanetIceGiant:
		return balanceTempK // no solid surface to speak of
	case astro.PlanetOcean:
		return balanceTempK + 30
	default:
		return balanceTempK + 10
	}
}

// planetMagneticField is a crude proxy: only sufficiently massive,
// non-tidally-locked rocky/ocean planets and all giants are assumed to
// sustain a dynamo.
func planetMagneticField(p *astro.Planet) float64 {
	if p.Type == astro.PlanetGasGiant || p.Type == astro.PlanetIceGiant {
		return 1e-4 * math.Sqrt(p.MassEarth)
	}
	if p.TidallyLocked || p.MassEarth < 0.3 {
		return 0
	}
	return 3e-5 * math.Sqrt(p.MassEarth)
}
