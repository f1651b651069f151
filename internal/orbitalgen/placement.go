package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/faults"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

const (
	maxPlanetSlots = 12

	// titiusBodeBase and titiusBodeFactor drive the modified
	// Titius-Bode-like progression spec §4.5.3 calls for: slot n sits at
	// base * factor^n AU from the star, before forbidden-zone rejection.
	titiusBodeBase   = 0.3
	titiusBodeFactor = 1.6

	coreMassLognormalLogMean = 0.0 // peaked near 1 earth mass in log-space
	coreMassLognormalSigma   = 0.9

	envelopeThresholdEarthMasses = 10.0
	jupiterMassEarths            = 317.8
	jupiterMassSaturationEarths  = jupiterMassEarths * 1.15
)

// populateDisk generates planets for one disk, places moons and rings,
// and synthesizes every resulting orbit's elements (spec §4.5.3 through
// §4.5.6).
func (g *Generator) populateDisk(e *randdist.Engine, seed uint64, sys *astro.StellarSystem, disk protoDisk) error {
	slots := g.proposeSlots(disk)
	if len(slots) == 0 {
		// Zero survived planet slots is explicitly named in spec §4.5.7
		// as an unsatisfiable-constraint condition, but only for a
		// single-star system with no companion disk to fall back on —
		// a binary's second disk failing to seat a planet is not fatal
		// on its own.
		if !sys.IsBinary() {
			return faults.Recoverable(seed, "no planet slots survived forbidden-zone rejection", nil)
		}
		return nil
	}

	slots = applyStochasticEvents(e, g.cfg, slots)

	parentRef := astro.ObjectRef{Type: astro.ObjectBaryCenter}
	if disk.star != nil {
		parentRef = astro.ObjectRef{Type: astro.ObjectStar, Index: disk.starIndex}
	}

	for _, slot := range slots {
		planet, err := g.buildPlanet(e, seed, disk, slot)
		if err != nil {
			return err
		}
		ref := sys.AddPlanet(planet)

		orbit, err := g.synthesizeOrbit(e, seed, parentRef, ref, slot.semiMajorAxisAU, disk.star.MassSol*solarMassKg, planetOrbitEccentricityParams())
		if err != nil {
			return err
		}
		sys.AddOrbit(orbit)

		if err := g.populateMoonsAndRings(e, seed, sys, ref, len(sys.Orbits)-1); err != nil {
			return err
		}
	}

	return nil
}

// slot is one surviving planet-placement candidate before the planet
// itself is built.
type slot struct {
	semiMajorAxisAU float64
	pastFrostLine   bool
}

// proposeSlots generates the Titius-Bode-like progression and rejects
// placements in the forbidden binary zone or outside the disk bounds
// (spec §4.5.3).
func (g *Generator) proposeSlots(disk protoDisk) []slot {
	var slots []slot
	for n := 0; n < maxPlanetSlots; n++ {
		a := titiusBodeBase * math.Pow(titiusBodeFactor, float64(n))
		if a < disk.innerRadiusAU || a > disk.outerRadiusAU {
			continue
		}
		if disk.inForbiddenZone(a) {
			continue
		}
		slots = append(slots, slot{semiMajorAxisAU: a, pastFrostLine: a > disk.frostLineAU})
	}
	return slots
}

// applyStochasticEvents rolls migration, scattering and walk-in as
// independent Bernoulli events per slot (spec §4.5.3).
func applyStochasticEvents(e *randdist.Engine, cfg config.Config, slots []slot) []slot {
	for i := range slots {
		if (randdist.Bernoulli{P: cfg.MigrationProbability}).Trial(e) && i+1 < len(slots) {
			slots[i].semiMajorAxisAU, slots[i+1].semiMajorAxisAU = slots[i+1].semiMajorAxisAU, slots[i].semiMajorAxisAU
		}
		if (randdist.Bernoulli{P: cfg.ScatteringProbability}).Trial(e) {
			slots[i].semiMajorAxisAU *= 1 + 4*randdist.Uniform{Min: 0, Max: 1}.Draw(e)
		}
		if (randdist.Bernoulli{P: cfg.WalkInProbability}).Trial(e) && slots[i].pastFrostLine {
			slots[i].semiMajorAxisAU = randdist.Uniform{Min: 0.01, Max: 0.1}.Draw(e)
			slots[i].pastFrostLine = false
		}
	}
	return slots
}

// buildPlanet derives a planet's core/envelope mass for the slot (spec
// §4.5.3), then delegates radius, spin and temperature to physics.go.
func (g *Generator) buildPlanet(e *randdist.Engine, seed uint64, disk protoDisk, s slot) (astro.Planet, error) {
	diskDensityFactor := 1.0 / (1.0 + s.semiMajorAxisAU)
	coreMassEarth := randdist.LogNormal{LogMean: coreMassLognormalLogMean, LogSigma: coreMassLognormalSigma}.Draw(e) * diskDensityFactor * 10

	planet := astro.Planet{
		AstroObject: astro.AstroObject{Name: "Unnamed Planet"},
	}

	if s.pastFrostLine && coreMassEarth > envelopeThresholdEarthMasses {
		envelopeMassEarth := (coreMassEarth - envelopeThresholdEarthMasses) * 8
		if envelopeMassEarth > jupiterMassSaturationEarths {
			envelopeMassEarth = jupiterMassSaturationEarths
		}
		planet.MassEarth = coreMassEarth + envelopeMassEarth
		planet.Type = classifyGiant(planet.MassEarth)
	} else {
		planet.MassEarth = coreMassEarth
		planet.Type = classifyRocky(coreMassEarth, s.pastFrostLine)
	}

	if err := checkFinite(seed, "planet mass", planet.MassEarth); err != nil {
		return astro.Planet{}, err
	}

	g.derivePhysicalProperties(e, disk, s, &planet)
	g.deriveMinerals(&planet, s.pastFrostLine)

	return planet, nil
}

func classifyGiant(massEarth float64) astro.PlanetType {
	if massEarth > 4000 {
		return astro.PlanetGasGiant
	}
	return astro.PlanetIceGiant
}

func classifyRocky(massEarth float64, pastFrostLine bool) astro.PlanetType {
	switch {
	case pastFrostLine:
		return astro.PlanetIceGiant
	case massEarth < 0.3:
		return astro.PlanetSubEarth
	case massEarth > 2.0:
		return astro.PlanetOcean
	default:
		return astro.PlanetRocky
	}
}

// deriveMinerals splits a planet's mass into core/mantle/crust/
// hydrosphere/atmosphere layers using simple fractional splits by type,
// a placeholder civilization generator later augments with industrial
// inventory (spec §4.6).
func (g *Generator) deriveMinerals(p *astro.Planet, pastFrostLine bool) {
	massKg := p.MassEarth * earthMassKg
	switch p.Type {
	case astro.PlanetGasGiant, astro.PlanetIceGiant:
		p.Minerals = astro.MineralMasses{
			Core:       0.1 * massKg,
			Mantle:     0.2 * massKg,
			Atmosphere: 0.7 * massKg,
		}
		p.Atmosphere = astro.AtmosphereComposition{"H2": 0.75, "He": 0.24, "CH4": 0.01}
	case astro.PlanetOcean:
		p.Minerals = astro.MineralMasses{
			Core:        0.32 * massKg,
			Mantle:      0.48 * massKg,
			Crust:       0.05 * massKg,
			Hydrosphere: 0.15 * massKg,
		}
		p.Atmosphere = astro.AtmosphereComposition{"N2": 0.78, "O2": 0.21, "Ar": 0.01}
	default:
		p.Minerals = astro.MineralMasses{
			Core:   0.325 * massKg,
			Mantle: 0.67 * massKg,
			Crust:  0.005 * massKg,
		}
		if pastFrostLine {
			p.Minerals.Hydrosphere = 0.1 * massKg
		}
		p.Atmosphere = astro.AtmosphereComposition{"CO2": 0.95, "N2": 0.03, "Ar": 0.02}
	}
}

func planetOrbitEccentricityParams() eccentricityParams {
	return eccentricityParams{alpha: 2, beta: 5, max: 0.9}
}
