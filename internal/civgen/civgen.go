// Package civgen implements the civilization generator (component C6):
// for each habitable terrestrial planet, gates life emergence and, on
// success, advances the resulting civilization through its phase
// progression and (for the rare survivors) the post-Cenoziocera
// stage tables. Grounded on
// original_source/NpgsCore/Sources/Engine/Core/Modules/CivilizationGenerator.cpp,
// whose probability tables are carried over verbatim rather than
// "cleaned up" into something more regular, per spec §4.6.
package civgen

import (
	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

const (
	// civilizationAgeDivisor is the "5*10^8" constant spec §4.6's phase
	// formula divides by: phase = clamp(1..4, floor((r*age)/(5e8))).
	civilizationAgeDivisor = 5e8

	// asiFilterProbability is the fixed 0.2 chance spec §4.6 names for
	// the ASI-filter diversion, independent of config.EnableAsiFilter
	// (which only gates whether the branch is rolled at all).
	asiFilterProbability = 0.2
)

// Generator runs life-occurrence and civilization-progression rolls
// against habitable terrestrial planets.
type Generator struct {
	cfg config.Config
}

// New constructs a civilization Generator over shared configuration.
func New(cfg config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// IsEligible reports whether p is a habitable terrestrial candidate for
// the life-occurrence gate: within a star's habitable band by surface
// temperature, and of a rocky/ocean/sub-earth type (spec §4.6: "for
// each habitable terrestrial planet").
func IsEligible(p *astro.Planet) bool {
	switch p.Type {
	case astro.PlanetRocky, astro.PlanetOcean, astro.PlanetSubEarth:
	default:
		return false
	}
	return p.SurfaceTempK >= 260 && p.SurfaceTempK <= 320
}

// Generate runs the full civilization-generation algorithm for a single
// eligible planet (spec §4.6). It always returns a non-nil
// *astro.Civilization; callers attach it to the planet only when
// LifeOccurred is true, matching the invariant "civilization phase is
// populated only if life occurrence succeeded."
func (g *Generator) Generate(e *randdist.Engine, starAgeYears float64, p *astro.Planet) *astro.Civilization {
	civ := &astro.Civilization{}

	if !(randdist.Bernoulli{P: g.cfg.LifeOccurrenceProbability}).Trial(e) {
		return civ
	}
	civ.LifeOccurred = true

	r := randdist.Uniform{Min: 2, Max: 3}.Draw(e)
	phaseIndex := int((r * starAgeYears) / civilizationAgeDivisor)
	// Clamped to [1, 4]: Carbon-based intelligence through Steam age are
	// the only phases this roll can land on directly. Steam age is the formula's
	// terminal value and doubles as the Cenoziocera-equivalent trigger
	// point spec §4.6 names — Electric age through Pre-ASI exist in the
	// phase enum (spec §3) but are not reachable from this roll; only
	// the post-Cenoziocera stage table below can carry a planet further.
	phaseIndex = clampInt(phaseIndex, 1, 4)
	civ.Phase = astro.CivilizationPhase(phaseIndex)

	// civ.Progress stays zero for every phase below Steam age (spec §3:
	// "civilization-progress = 0 when phase < Cenoziocera-equivalent").
	// It is only ever set inside advancePostCenoziocera, from whichever
	// stage table applies.
	if civ.Phase == astro.PhaseSteamAge {
		g.advancePostCenoziocera(e, civ)
	}

	if (randdist.Bernoulli{P: g.cfg.DestroyedByDisasterProbability}).Trial(e) {
		civ.DestroyedByDisaster = true
	}

	g.augmentCrustMinerals(civ, p)

	return civ
}

// advancePostCenoziocera rolls the post-Cenoziocera stage table and,
// when the ASI filter is enabled, an independent diversion into the
// Sat-Tee-Touy-by-ASI branch with its own stage table (spec §4.6). The
// non-ASI path stays at PhaseSteamAge unless it hits the table's final
// bucket, promoting to PhaseSatTeeTouy; the ASI path diverts to
// PhaseSatTeeTouyByASI immediately and stays there unless its own
// table's final bucket promotes it to PhaseNewCivilization.
func (g *Generator) advancePostCenoziocera(e *randdist.Engine, civ *astro.Civilization) {
	var (
		table         [7]float64
		baselinePhase astro.CivilizationPhase
		runawayPhase  astro.CivilizationPhase
	)

	if g.cfg.EnableAsiFilter && (randdist.Bernoulli{P: asiFilterProbability}).Trial(e) {
		civ.AsiFilterTriggered = true
		table, baselinePhase, runawayPhase = astro.ASIFilterStageTable, astro.PhaseSatTeeTouyByASI, astro.PhaseNewCivilization
	} else {
		table, baselinePhase, runawayPhase = astro.PostCivilizationStageTable, astro.PhaseSteamAge, astro.PhaseSatTeeTouy
	}

	phase, bucket := rollStageTable(e, table, baselinePhase, runawayPhase)
	civ.Phase = phase
	civ.Progress = float64(bucket) + randdist.Uniform{Min: 0, Max: 1}.Draw(e)
}

// rollStageTable walks a cumulative-probability table (entries from 0.2
// down to one-in-a-million). bucket is 0 when the roll misses every
// entry — the most likely outcome, since the table's total mass is
// about 2.5% for PostCivilizationStageTable and about 25% for
// ASIFilterStageTable — or i+1 when it lands in entry i. Landing in the table's final entry (bucket == len(table))
// promotes the planet from baselinePhase to runawayPhase; any other
// outcome leaves it at baselinePhase. bucket is the integer part the
// caller folds into civ.Progress.
func rollStageTable(e *randdist.Engine, table [7]float64, baselinePhase, runawayPhase astro.CivilizationPhase) (phase astro.CivilizationPhase, bucket int) {
	roll := randdist.Uniform{Min: 0, Max: 1}.Draw(e)
	cumulative := 0.0
	for i, p := range table {
		cumulative += p
		if roll < cumulative {
			bucket = i + 1
			break
		}
	}

	phase = baselinePhase
	if bucket == len(table) {
		phase = runawayPhase
	}
	return phase, bucket
}

// augmentCrustMinerals adds the civilization's industrial inventory to
// the planet's crust mass, per spec §4.6: "crust mineral mass is
// augmented by the civilization's industrial inventory."
func (g *Generator) augmentCrustMinerals(civ *astro.Civilization, p *astro.Planet) {
	if !civ.LifeOccurred {
		return
	}
	industrialFactor := 1.0 + 0.02*civ.Progress
	p.Minerals.Crust *= industrialFactor
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
