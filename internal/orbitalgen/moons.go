package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

const (
	// ringProbabilityGiant and ringProbabilityRocky are the ring
	// probabilities for a coarse planet class: gas and ice giants are
	// far more likely to carry a ring system than rocky worlds (spec §4.5.5: "Bernoulli-sample presence with per-class
	// probability").
	ringProbabilityGiant = 0.6
	ringProbabilityRocky = 0.05

	ringDensityKgM3     = 1500.0 // typical icy-ring particle density
	satelliteDensityKgM3 = 3000.0
)

// populateMoonsAndRings assigns a moon count to the planet at planetRef
// (Poisson, mean scaled by mass and distance), places each moon, and
// rolls a ring-presence Bernoulli (spec §4.5.5).
func (g *Generator) populateMoonsAndRings(e *randdist.Engine, seed uint64, sys *astro.StellarSystem, planetRef astro.ObjectRef, parentOrbitIndex int) error {
	planet := sys.Planet(planetRef)
	star := hostStar(sys, sys.Orbits[parentOrbitIndex])
	if star == nil {
		return nil
	}

	semiMajorAxisAU := sys.Orbits[parentOrbitIndex].SemiMajorAxisAU
	planetMassKg := planet.MassEarth * earthMassKg
	planetRadiusM := planet.RadiusEarth * earthRadiusM
	starMassKg := star.MassSol * solarMassKg

	hillRadiusAU := hillSphereRadiusAU(semiMajorAxisAU, sys.Orbits[parentOrbitIndex].Eccentricity, planetMassKg, starMassKg)
	hillRadiusM := hillRadiusAU * astronomicalUnitM

	meanMoonCount := moonCountMean(planet.MassEarth, semiMajorAxisAU)
	moonCount := randdist.Poisson{Mean: meanMoonCount}.DrawInt(e)

	innerBoundM := 1.5 * planetRadiusM
	outerBoundM := 0.35 * hillRadiusM

	for i := int64(0); i < moonCount; i++ {
		if outerBoundM <= innerBoundM {
			break
		}
		moonSMAau := randdist.Uniform{Min: innerBoundM, Max: outerBoundM}.Draw(e) / astronomicalUnitM
		maxMoonMassEarth := planet.MassEarth / 200
		moonMassEarth := math.Min(randdist.LogNormal{LogMean: -2, LogSigma: 1.0}.Draw(e), maxMoonMassEarth)

		moon := astro.Planet{
			AstroObject: astro.AstroObject{Name: "Unnamed Moon"},
			MassEarth:   moonMassEarth,
			Type:        astro.PlanetRocky,
		}
		moon.RadiusEarth = planetRadius(moon.Type, moon.MassEarth)
		moon.AlbedoBond = 0.12
		moon.BalanceTempK = equilibriumTemperature(star.EffectiveTempK, star.RadiusM, semiMajorAxisAU, moon.AlbedoBond)
		moon.SurfaceTempK = moon.BalanceTempK

		moonRef := sys.AddPlanet(moon)
		orbit, err := g.synthesizeOrbit(e, seed, planetRef, moonRef, moonSMAau, planetMassKg, eccentricityParams{alpha: 2, beta: 8, max: 0.3})
		if err != nil {
			return err
		}
		sys.AddOrbit(orbit)
		sys.Planet(planetRef).Moons = append(sys.Planet(planetRef).Moons, moonRef)
	}

	return g.maybeAddRing(e, sys, planetRef, planetRadiusM)
}

// moonCountMean scales the Poisson mean by planet mass (bigger planets
// hold more moons) and inversely by distance from the star (close-in
// planets lose potential moons to tidal stripping), per spec §4.5.5.
func moonCountMean(massEarth, semiMajorAxisAU float64) float64 {
	massFactor := math.Log10(massEarth+1) * 0.8
	distanceFactor := math.Min(1.0, semiMajorAxisAU/5.0)
	return massFactor * distanceFactor
}

func hostStar(sys *astro.StellarSystem, orbit astro.Orbit) *astro.Star {
	switch orbit.Parent.Type {
	case astro.ObjectStar:
		return sys.Star(orbit.Parent)
	case astro.ObjectBaryCenter:
		if len(sys.Stars) > 0 {
			return &sys.Stars[0]
		}
	}
	return nil
}

// maybeAddRing rolls the ring-presence Bernoulli for planetRef's class
// and, on success, adds an AsteroidCluster orbit confined inside the
// Roche limit (spec §4.5.5).
func (g *Generator) maybeAddRing(e *randdist.Engine, sys *astro.StellarSystem, planetRef astro.ObjectRef, planetRadiusM float64) error {
	planet := sys.Planet(planetRef)
	p := ringProbabilityRocky
	if planet.Type == astro.PlanetGasGiant || planet.Type == astro.PlanetIceGiant {
		p = ringProbabilityGiant
	}
	if !(randdist.Bernoulli{P: p}).Trial(e) {
		return nil
	}

	rocheM := rocheLimitM(planetRadiusM, ringDensityKgM3, satelliteDensityKgM3)
	outerM := rocheM * 0.95
	innerM := planetRadiusM * 1.2
	if outerM <= innerM {
		return nil
	}

	cluster := astro.AsteroidCluster{
		AstroObject:   astro.AstroObject{Name: "Unnamed Ring"},
		IsRing:        true,
		Composition:   astro.CompositionIcy,
		InnerRadiusAU: innerM / astronomicalUnitM,
		OuterRadiusAU: outerM / astronomicalUnitM,
		DustFraction:  0.3,
		TotalMassKg:   1e15,
	}
	clusterRef := sys.AddAsteroidCluster(cluster)

	orbit := astro.Orbit{
		Parent:          planetRef,
		SemiMajorAxisAU: (cluster.InnerRadiusAU + cluster.OuterRadiusAU) / 2,
	}
	orbit.AddObject(clusterRef, 0, astro.Vec3{})
	sys.AddOrbit(orbit)

	sys.Planet(planetRef).Rings = append(sys.Planet(planetRef).Rings, clusterRef)
	return nil
}
